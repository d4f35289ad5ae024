package timeshard

import (
	"fmt"
	"strconv"
)

// WithPrefix returns prefix followed by the decimal rendering of id.
// Purely textual: no delimiter is added and nothing about the prefix is
// validated. Stripping a known prefix length back off is the caller's
// job; the codec does not auto-detect prefixes.
func WithPrefix(id int64, prefix string) string {
	return prefix + strconv.FormatInt(id, 10)
}

// WithPrefixAt splices prefix into the decimal rendering of id at the
// given character offset. position must be in [0, len(digits)]; anything
// outside fails with ErrInvalidPosition rather than clamping, and no
// partial string is returned.
func WithPrefixAt(id int64, prefix string, position int) (string, error) {
	digits := strconv.FormatInt(id, 10)
	if position < 0 || position > len(digits) {
		return "", fmt.Errorf("%w: position %d, id length %d", ErrInvalidPosition, position, len(digits))
	}
	return digits[:position] + prefix + digits[position:], nil
}
