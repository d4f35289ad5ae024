package timeshard

import "time"

// Clock supplies the current wall-clock time in Unix milliseconds.
// Readings are expected to be non-decreasing but are not trusted to be:
// the generator re-checks every reading against its own state.
// Implementations must be safe for concurrent use.
type Clock interface {
	NowMillis() int64
}

// SystemClock returns a Clock backed by the system wall clock.
func SystemClock() Clock {
	return systemClock{}
}

type systemClock struct{}

func (systemClock) NowMillis() int64 {
	return time.Now().UnixMilli()
}
