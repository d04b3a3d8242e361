package logging

import (
	"testing"

	"github.com/rs/zerolog"
)

// New sets the process-wide global level rather than a per-logger one, so
// these tests assert against zerolog.GlobalLevel() instead of the
// returned Logger's own (unset) level.

func TestNewParsesLevel(t *testing.T) {
	New("debug", false)
	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Fatalf("expected debug level, got %v", zerolog.GlobalLevel())
	}
}

func TestNewDefaultsToInfoOnUnknownLevel(t *testing.T) {
	New("not-a-level", false)
	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Fatalf("expected info level default, got %v", zerolog.GlobalLevel())
	}
}

func TestNewDevModeDoesNotPanic(t *testing.T) {
	log := New("warn", true)
	log.Warn().Msg("smoke test")
	if zerolog.GlobalLevel() != zerolog.WarnLevel {
		t.Fatalf("expected warn level, got %v", zerolog.GlobalLevel())
	}
}
