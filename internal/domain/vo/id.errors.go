package vo

import "errors"

var (
	// ErrInvalidCount reports a mint count outside [1, configured batch limit].
	ErrInvalidCount = errors.New("count must be between 1 and the configured batch limit")

	// ErrInvalidPrefixPosition reports a prefix offset outside the decimal
	// rendering of the id.
	ErrInvalidPrefixPosition = errors.New("prefix position is out of range for the id")

	// ErrClockSkew reports that id generation refused to run because the
	// system clock moved backwards. Retry after the clock resyncs.
	ErrClockSkew = errors.New("clock moved backwards, id generation temporarily unavailable")

	// ErrNotDecimal reports an id path parameter that is not a
	// non-negative decimal integer.
	ErrNotDecimal = errors.New("id must be a non-negative decimal integer")
)
