package chunk

import (
	"io"
	"log/slog"
)

// Options configures a Writer or Reader.
type Options struct {
	// MaxDepth bounds chunk nesting. Zero or negative uses DefaultMaxDepth,
	// which matches the fixed stacks of existing readers and writers.
	MaxDepth int

	// Logger receives Debug records for failed operations and a Warn record
	// when a Writer is poisoned. Nil discards.
	Logger *slog.Logger
}

// DefaultOptions returns the options used when nil is passed to NewWriter
// or NewReader.
func DefaultOptions() *Options {
	return &Options{MaxDepth: DefaultMaxDepth}
}

func (o *Options) maxDepth() int {
	if o == nil || o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

func (o *Options) logger() *slog.Logger {
	if o == nil || o.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.Logger
}

// stackHint caps the initial stack allocation; the stack grows on demand.
func stackHint(maxDepth int) int {
	return min(maxDepth, 16)
}
