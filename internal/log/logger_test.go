package log

import (
	"log/slog"
	"testing"
)

func TestComponentScoping(t *testing.T) {
	l := New("shell", slog.LevelInfo)
	if l.Component() != "shell" {
		t.Fatalf("component = %q", l.Component())
	}

	w := l.WithComponent("worker")
	if w.Component() != "worker" {
		t.Fatalf("component = %q", w.Component())
	}
	// Scoping must not touch the original.
	if l.Component() != "shell" {
		t.Fatalf("original component changed to %q", l.Component())
	}
}
