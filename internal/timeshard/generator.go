package timeshard

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Options configures a Generator.
type Options struct {
	// NodeID identifies this process in every id it mints.
	// Valid range: [0, 2^NodeBits - 1]. Callers without an assigned id
	// can derive one with DeriveNodeID before construction.
	NodeID int64

	// NodeBits sets the node id field width (1-16). Zero means
	// DefaultNodeBits.
	NodeBits int

	// EpochMillis is the custom epoch in Unix milliseconds. Zero means
	// DefaultEpochMillis.
	EpochMillis int64

	// Clock overrides the time source. Nil means the system wall clock.
	Clock Clock
}

// Generator mints unique, time-ordered 64-bit ids. One instance owns its
// (lastTimestamp, sequence) state exclusively; all minting runs under a
// single mutex, so ids from one instance are totally ordered by
// (timestamp, sequence) in lock-admission order. Instances share nothing:
// uniqueness across processes relies on each being configured with a
// distinct node id, which is the deployer's responsibility.
type Generator struct {
	layout Layout
	clock  Clock
	nodeID int64

	mu            sync.Mutex
	lastTimestamp int64 // -1 before the first id
	sequence      int64
}

// New validates the options and builds a Generator.
func New(opts Options) (*Generator, error) {
	nodeBits := opts.NodeBits
	if nodeBits == 0 {
		nodeBits = DefaultNodeBits
	}
	epochMillis := opts.EpochMillis
	if epochMillis == 0 {
		epochMillis = DefaultEpochMillis
	}

	layout, err := NewLayout(nodeBits, epochMillis)
	if err != nil {
		return nil, err
	}

	if opts.NodeID < 0 || opts.NodeID > layout.MaxNodeID() {
		return nil, fmt.Errorf("%w: got %d, want 0-%d", ErrInvalidNodeID, opts.NodeID, layout.MaxNodeID())
	}

	clock := opts.Clock
	if clock == nil {
		clock = SystemClock()
	}

	return &Generator{
		layout:        layout,
		clock:         clock,
		nodeID:        opts.NodeID,
		lastTimestamp: -1,
	}, nil
}

// Next mints the next id. It fails with ErrClockMovedBackward when the
// clock reads lower than the last minted millisecond, and with
// ErrEpochUnderflow or ErrTimestampOverflow when the offset does not fit
// the timestamp field. On sequence exhaustion within one millisecond it
// spins until the clock advances, normally under a millisecond.
func (g *Generator) Next() (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock.NowMillis()
	if g.lastTimestamp >= 0 && now < g.lastTimestamp {
		return 0, fmt.Errorf("%w: last timestamp %d, current %d", ErrClockMovedBackward, g.lastTimestamp, now)
	}

	sequence := int64(0)
	if now == g.lastTimestamp {
		sequence = g.sequence + 1
		if sequence > g.layout.maxSequence {
			now = g.waitNextMillis(now)
			sequence = 0
		}
	}

	offset := now - g.layout.epochMillis
	if offset < 0 {
		return 0, fmt.Errorf("%w: epoch %d, current %d", ErrEpochUnderflow, g.layout.epochMillis, now)
	}
	if offset > maxTimestampOffset {
		return 0, fmt.Errorf("%w: offset %d, max %d", ErrTimestampOverflow, offset, maxTimestampOffset)
	}

	g.lastTimestamp = now
	g.sequence = sequence

	return g.layout.Pack(offset, g.nodeID, sequence), nil
}

// waitNextMillis re-polls the clock until it passes last. Called with the
// generator lock held; the wait is bounded by the clock reaching the next
// millisecond, so it yields instead of sleeping.
func (g *Generator) waitNextMillis(last int64) int64 {
	now := g.clock.NowMillis()
	for now <= last {
		runtime.Gosched()
		now = g.clock.NowMillis()
	}
	return now
}

// NextString mints an id and renders it as decimal digits.
func (g *Generator) NextString() (string, error) {
	id, err := g.Next()
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(id, 10), nil
}

// NextWithPrefix mints an id and prepends prefix to its decimal form.
// Formatting happens outside the generator lock.
func (g *Generator) NextWithPrefix(prefix string) (string, error) {
	id, err := g.Next()
	if err != nil {
		return "", err
	}
	return WithPrefix(id, prefix), nil
}

// NextWithPrefixAt mints an id and splices prefix into its decimal form
// at the given character offset. Fails with ErrInvalidPosition when the
// offset is outside the rendered id; the minted id is then lost, since
// there is no way to un-mint it.
func (g *Generator) NextWithPrefixAt(prefix string, position int) (string, error) {
	id, err := g.Next()
	if err != nil {
		return "", err
	}
	return WithPrefixAt(id, prefix, position)
}

// Parse decodes an id minted with this generator's layout and epoch.
func (g *Generator) Parse(id int64) ParsedID {
	return g.layout.Unpack(id)
}

// Layout returns the generator's bit layout.
func (g *Generator) Layout() Layout { return g.layout }

// NodeID returns the node id embedded in every minted id.
func (g *Generator) NodeID() int64 { return g.nodeID }

// Describe renders the active configuration for humans: bit allocation,
// field ranges and derived throughput.
func (g *Generator) Describe() string {
	l := g.layout

	lifespanYears := float64(maxTimestampOffset) / 1000 / (365.25 * 24 * 60 * 60)
	epochTime := time.UnixMilli(l.epochMillis).UTC().Format(time.RFC3339)

	var b strings.Builder
	fmt.Fprintf(&b, "timeshard generator configuration:\n")
	fmt.Fprintf(&b, "  bit allocation: %d-%d-%d (sign bit unused)\n", TimestampBits, l.nodeBits, l.sequenceBits)
	fmt.Fprintf(&b, "  timestamp: %d bits, ~%.1f years from epoch %d (%s)\n", TimestampBits, lifespanYears, l.epochMillis, epochTime)
	fmt.Fprintf(&b, "  node id: %d bits, %d nodes, current node %d\n", l.nodeBits, l.maxNodeID+1, g.nodeID)
	fmt.Fprintf(&b, "  sequence: %d bits, %d ids/ms per node, %d ids/ms globally\n",
		l.sequenceBits, l.maxSequence+1, (l.maxNodeID+1)*(l.maxSequence+1))
	return b.String()
}
