package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuarp/timeshard-api/internal/domain/vo"
	"github.com/joshuarp/timeshard-api/internal/timeshard"
)

// datetimeLayout renders timestamps at millisecond resolution, matching
// the resolution the ids themselves carry.
const datetimeLayout = "2006-01-02 15:04:05.000"

// IDDecoder decodes an id under the service's active layout and epoch.
type IDDecoder interface {
	Parse(id int64) timeshard.ParsedID
}

type ParseIDService struct {
	decoder IDDecoder
}

func NewParseIDService(decoder IDDecoder) *ParseIDService {
	return &ParseIDService{decoder: decoder}
}

// Parse decodes the decimal rendering of an id. Decoding never touches
// generator state; ids encoded under a different layout or epoch decode
// to well-formed but meaningless fields.
func (s *ParseIDService) Parse(ctx context.Context, raw string) (vo.ParsedID, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id < 0 {
		return vo.ParsedID{}, fmt.Errorf("%w: got %q", vo.ErrNotDecimal, raw)
	}

	parsed := s.decoder.Parse(id)

	return vo.ParsedID{
		ID:          parsed.ID,
		TimestampMs: parsed.TimestampMillis,
		OffsetMs:    parsed.OffsetMillis,
		NodeID:      parsed.NodeID,
		Sequence:    parsed.Sequence,
		Datetime:    parsed.Time.Format(datetimeLayout),
	}, nil
}
