// Package log wraps slog with a component label so every line from a
// binary can be traced back to the piece that emitted it.
package log

import (
	"log/slog"
	"os"
)

// Logger is a slog.Logger that stamps a component attribute on every
// record.
type Logger struct {
	*slog.Logger
	base      *slog.Logger
	component string
}

// New creates a component-scoped logger writing text to stdout.
func New(component string, level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	base := slog.New(handler)
	return &Logger{
		Logger:    base.With("component", component),
		base:      base,
		component: component,
	}
}

// WithComponent returns a logger scoped to a different component,
// sharing the same handler.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger:    l.base.With("component", component),
		base:      l.base,
		component: component,
	}
}

// Component returns the logger's component name.
func (l *Logger) Component() string {
	return l.component
}

// SetDefault installs the logger as the process-wide slog default.
func SetDefault(l *Logger) {
	slog.SetDefault(l.Logger)
}
