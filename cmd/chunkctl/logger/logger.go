// Package logger holds the process-wide slog logger used by chunkctl.
package logger

import (
	"io"
	"log/slog"
)

// L is the global logger instance. It discards all output until Init is called.
var L = slog.New(slog.NewTextHandler(io.Discard, nil))

// Options configures the logger initialization.
type Options struct {
	Out   io.Writer  // Destination. Nil discards.
	Level slog.Level // Minimum level. Zero value is Info.
	JSON  bool       // Emit JSON records instead of text.
}

// Init replaces L according to opts. Call from the root command before any
// log calls.
func Init(opts Options) {
	if opts.Out == nil {
		L = slog.New(slog.NewTextHandler(io.Discard, nil))
		return
	}
	ho := &slog.HandlerOptions{Level: opts.Level}
	if opts.JSON {
		L = slog.New(slog.NewJSONHandler(opts.Out, ho))
		return
	}
	L = slog.New(slog.NewTextHandler(opts.Out, ho))
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }
