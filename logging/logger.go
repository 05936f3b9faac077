// Package logging provides a tiny abstraction over slog so the rest of the
// library can depend on a minimal interface while callers plug in whatever
// structured logger they already run.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Logger is the minimal logging interface tagwire components depend on.
// Arguments follow slog's alternating key/value convention.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// SlogAdapter wraps *slog.Logger to implement the Logger interface.
type SlogAdapter struct {
	*slog.Logger
}

// NewSlogAdapter creates a Logger from *slog.Logger.
func NewSlogAdapter(logger *slog.Logger) Logger {
	return &SlogAdapter{Logger: logger}
}

// NewDefault creates a Logger backed by slog.Default().
func NewDefault() Logger {
	return NewSlogAdapter(slog.Default())
}

// NewText creates a Logger writing human-readable lines to w at the given
// level. Useful for example binaries and interactive sessions.
func NewText(w io.Writer, level slog.Level) Logger {
	if w == nil {
		w = os.Stderr
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return NewSlogAdapter(slog.New(handler))
}

// NoOp discards all log messages. Useful for tests or when logging is
// disabled.
type NoOp struct{}

// Debug discards the message.
func (NoOp) Debug(string, ...any) {}

// Info discards the message.
func (NoOp) Info(string, ...any) {}

// Warn discards the message.
func (NoOp) Warn(string, ...any) {}

// Error discards the message.
func (NoOp) Error(string, ...any) {}
