// Package timeshard implements a Snowflake-style 64-bit id generator:
// a signed integer packing a 41-bit millisecond timestamp offset, a
// configurable node id and a per-millisecond sequence counter. The sign
// bit is always zero, so ids are non-negative and sort by creation time.
package timeshard

import (
	"fmt"
)

const (
	// TimestampBits is the fixed width of the timestamp offset field.
	TimestampBits = 41

	// workerSpaceBits is the total space shared between node id and
	// sequence: 64 - 1 sign bit - 41 timestamp bits.
	workerSpaceBits = 22

	minNodeBits = 1
	maxNodeBits = 16

	// DefaultNodeBits splits the worker space 10/12, the classic
	// Twitter Snowflake allocation: 1024 nodes, 4096 ids per ms each.
	DefaultNodeBits = 10

	// DefaultEpochMillis is 2023-12-12 UTC.
	DefaultEpochMillis int64 = 1702385533000

	maxTimestampOffset int64 = (1 << TimestampBits) - 1
)

// Layout is the immutable bit split of an id, derived once at
// construction and reused for every encode and decode. Decoding an id
// with a different layout or epoch than the one it was encoded with
// silently yields wrong fields; nothing in the id is self-describing.
type Layout struct {
	nodeBits     int
	sequenceBits int
	epochMillis  int64

	maxNodeID   int64
	maxSequence int64

	timestampShift uint
	nodeShift      uint
}

// NewLayout validates nodeBits and derives the masks and shifts for the
// remaining fields. nodeBits must be in [1, 16]; the sequence gets the
// other 22 - nodeBits bits. epochMillis is the absolute Unix millisecond
// all timestamps are offset from and must be positive.
func NewLayout(nodeBits int, epochMillis int64) (Layout, error) {
	if nodeBits < minNodeBits || nodeBits > maxNodeBits {
		return Layout{}, fmt.Errorf("%w: got %d, want %d-%d", ErrInvalidNodeBits, nodeBits, minNodeBits, maxNodeBits)
	}
	if epochMillis <= 0 {
		return Layout{}, fmt.Errorf("%w: got %d", ErrInvalidEpoch, epochMillis)
	}

	sequenceBits := workerSpaceBits - nodeBits

	return Layout{
		nodeBits:       nodeBits,
		sequenceBits:   sequenceBits,
		epochMillis:    epochMillis,
		maxNodeID:      (1 << nodeBits) - 1,
		maxSequence:    (1 << sequenceBits) - 1,
		timestampShift: uint(nodeBits + sequenceBits),
		nodeShift:      uint(sequenceBits),
	}, nil
}

// NodeBits returns the width of the node id field.
func (l Layout) NodeBits() int { return l.nodeBits }

// SequenceBits returns the width of the sequence field.
func (l Layout) SequenceBits() int { return l.sequenceBits }

// EpochMillis returns the custom epoch in absolute Unix milliseconds.
func (l Layout) EpochMillis() int64 { return l.epochMillis }

// MaxNodeID returns the largest node id the layout can encode.
func (l Layout) MaxNodeID() int64 { return l.maxNodeID }

// MaxSequence returns the largest per-millisecond sequence value.
func (l Layout) MaxSequence() int64 { return l.maxSequence }
