package uid

import (
	"context"
	"fmt"

	"github.com/joshuarp/timeshard-api/internal/timeshard"
)

var _ UIDGenerator = (*timeshardGenerator)(nil)

type timeshardGenerator struct {
	generator *timeshard.Generator
}

// NewTimeshard creates a UIDGenerator backed by a timeshard Generator.
// The generator carries its own lock; this wrapper adds no locking.
func NewTimeshard(generator *timeshard.Generator) (UIDGenerator, error) {
	if generator == nil {
		return nil, fmt.Errorf("uid: timeshard strategy requires a generator")
	}
	return &timeshardGenerator{generator: generator}, nil
}

func (g *timeshardGenerator) Generate(ctx context.Context) (string, error) {
	id, err := g.generator.NextString()
	if err != nil {
		return "", fmt.Errorf("uid: failed to generate timeshard id: %w", err)
	}
	return id, nil
}
