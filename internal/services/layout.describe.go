package services

import (
	"context"

	"github.com/joshuarp/timeshard-api/internal/domain/vo"
	"github.com/joshuarp/timeshard-api/internal/timeshard"
)

// LayoutSource exposes the active bit layout of the id generator.
type LayoutSource interface {
	Layout() timeshard.Layout
	NodeID() int64
	Describe() string
}

type DescribeLayoutService struct {
	source LayoutSource
}

func NewDescribeLayoutService(source LayoutSource) *DescribeLayoutService {
	return &DescribeLayoutService{source: source}
}

func (s *DescribeLayoutService) DescribeLayout(ctx context.Context) vo.LayoutInfo {
	layout := s.source.Layout()

	return vo.LayoutInfo{
		TimestampBits: timeshard.TimestampBits,
		NodeIDBits:    layout.NodeBits(),
		SequenceBits:  layout.SequenceBits(),
		NodeID:        s.source.NodeID(),
		MaxNodeID:     layout.MaxNodeID(),
		MaxSequence:   layout.MaxSequence(),
		CustomEpochMs: layout.EpochMillis(),
		IDsPerMs:      layout.MaxSequence() + 1,
		Description:   s.source.Describe(),
	}
}
