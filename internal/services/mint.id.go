package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/joshuarp/timeshard-api/internal/domain/vo"
	"github.com/joshuarp/timeshard-api/internal/timeshard"
)

// DefaultMaxBatch bounds a single mint call when no limit is configured.
const DefaultMaxBatch = 1000

// IDSource mints raw 64-bit ids. Implementations must be safe for
// concurrent use.
type IDSource interface {
	Next() (int64, error)
}

type MintIDService struct {
	source   IDSource
	maxBatch int
}

func NewMintIDService(source IDSource, maxBatch int) *MintIDService {
	if maxBatch <= 0 {
		maxBatch = DefaultMaxBatch
	}
	return &MintIDService{source: source, maxBatch: maxBatch}
}

// Mint produces request.Count ids (one when zero) and applies the
// optional prefix formatting. Prefix work happens on already minted ids,
// outside the generator's lock.
func (s *MintIDService) Mint(ctx context.Context, request vo.MintRequest) (vo.MintResult, error) {
	count := request.Count
	if count == 0 {
		count = 1
	}
	if count < 0 || count > s.maxBatch {
		return vo.MintResult{}, fmt.Errorf("%w: got %d, max %d", vo.ErrInvalidCount, count, s.maxBatch)
	}

	ids := make([]vo.MintedID, 0, count)
	for i := 0; i < count; i++ {
		id, err := s.source.Next()
		if err != nil {
			if errors.Is(err, timeshard.ErrClockMovedBackward) {
				return vo.MintResult{}, errors.Join(vo.ErrClockSkew, err)
			}
			return vo.MintResult{}, err
		}

		minted := vo.MintedID{
			ID:       id,
			IDString: strconv.FormatInt(id, 10),
		}

		if request.Prefix != "" {
			if request.PrefixPosition != nil {
				formatted, err := timeshard.WithPrefixAt(id, request.Prefix, *request.PrefixPosition)
				if err != nil {
					return vo.MintResult{}, errors.Join(vo.ErrInvalidPrefixPosition, err)
				}
				minted.Formatted = formatted
			} else {
				minted.Formatted = timeshard.WithPrefix(id, request.Prefix)
			}
		}

		ids = append(ids, minted)
	}

	return vo.MintResult{IDs: ids}, nil
}
