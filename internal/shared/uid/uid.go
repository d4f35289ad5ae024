package uid

import (
	"context"
	"fmt"

	"github.com/joshuarp/timeshard-api/internal/timeshard"
)

// Strategy defines which UID generation algorithm to use.
type Strategy string

const (
	StrategyTimeshard Strategy = "timeshard"
	StrategyUUIDv7    Strategy = "uuidv7"
)

// Options configures the UID generator.
type Options struct {
	// Strategy selects the generation algorithm.
	Strategy Strategy

	// Generator backs the timeshard strategy. Required for it, ignored
	// by the others.
	Generator *timeshard.Generator
}

// UIDGenerator is the interface consumers depend on for generating unique
// identifiers. Implementations must be safe for concurrent use.
type UIDGenerator interface {
	// Generate returns a new unique identifier as a string.
	Generate(ctx context.Context) (string, error)
}

// New creates a UIDGenerator based on the provided options.
// Returns an error if the strategy is unknown or configuration is invalid.
func New(opts Options) (UIDGenerator, error) {
	switch opts.Strategy {
	case StrategyTimeshard:
		return NewTimeshard(opts.Generator)
	case StrategyUUIDv7:
		return NewUUIDv7()
	default:
		return nil, fmt.Errorf("uid: unknown strategy %q", opts.Strategy)
	}
}
