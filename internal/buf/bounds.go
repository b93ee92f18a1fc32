package buf

import "math"

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int64.
func AddOverflowSafe(a, b int64) (int64, bool) {
	switch {
	case b > 0 && a > math.MaxInt64-b:
		return 0, false
	case b < 0 && a < math.MinInt64-b:
		return 0, false
	default:
		return a + b, true
	}
}

// Fits reports whether n more bytes can be consumed from a window of limit
// bytes of which used have already been consumed. Negative inputs never fit.
//
// This is the single check behind every bounded read, seek and nested
// header in the chunk reader:
//
//	if !buf.Fits(frame.consumed, n, frame.size) {
//	    return 0, ErrBoundary
//	}
func Fits(used, n, limit int64) bool {
	if used < 0 || n < 0 || limit < 0 {
		return false
	}
	end, ok := AddOverflowSafe(used, n)
	return ok && end <= limit
}

// Remaining returns limit-used clamped to zero.
func Remaining(used, limit int64) int64 {
	if used >= limit {
		return 0
	}
	return limit - used
}
