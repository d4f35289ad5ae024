package timeshard

import "errors"

var (
	// ErrInvalidNodeBits reports a node bit width outside [1, 16].
	ErrInvalidNodeBits = errors.New("timeshard: node id bits out of range")

	// ErrInvalidEpoch reports a non-positive custom epoch.
	ErrInvalidEpoch = errors.New("timeshard: custom epoch must be a positive unix millisecond value")

	// ErrInvalidNodeID reports a node id outside [0, max] for the layout.
	ErrInvalidNodeID = errors.New("timeshard: node id out of range")

	// ErrClockMovedBackward reports a wall-clock reading lower than the
	// last one observed. No id is produced and generator state is left
	// untouched; the caller decides whether to retry after the clock
	// resyncs. Past timestamps are never reused to compensate.
	ErrClockMovedBackward = errors.New("timeshard: clock moved backwards, refusing to generate id")

	// ErrEpochUnderflow reports a current time before the configured epoch.
	ErrEpochUnderflow = errors.New("timeshard: current time is before the configured epoch")

	// ErrTimestampOverflow reports a timestamp offset that no longer fits
	// the 41-bit field, roughly 69 years past the epoch.
	ErrTimestampOverflow = errors.New("timeshard: timestamp offset exceeds the 41-bit range")

	// ErrInvalidPosition reports a prefix insertion offset outside the
	// decimal rendering of the id.
	ErrInvalidPosition = errors.New("timeshard: prefix position out of range")
)
