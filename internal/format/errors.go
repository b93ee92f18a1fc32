package format

import "errors"

var (
	// ErrTruncated indicates the buffer lacked the bytes required for a header.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrSizeOverflow indicates a size would not fit in its header field.
	ErrSizeOverflow = errors.New("format: size overflows header field")
)
