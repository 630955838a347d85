package helpers

import (
	"testing"
	"time"
)

func TestDetermineUpdated(t *testing.T) {
	if got := DetermineUpdated(time.Time{}); got != "-" {
		t.Errorf("expected '-' for a zero time, got %q", got)
	}
	if got := DetermineUpdated(time.Now().Add(-2 * time.Hour)); got != "2 hours ago" {
		t.Errorf("expected '2 hours ago', got %q", got)
	}
}

func TestDetermineValue(t *testing.T) {
	if got := DetermineValue(""); got != "-" {
		t.Errorf("expected '-' for an empty value, got %q", got)
	}
	if got := DetermineValue("abc123"); got != "abc123" {
		t.Errorf("expected value to pass through, got %q", got)
	}
}

func TestDetermineSchemaSize(t *testing.T) {
	if got := DetermineSchemaSize(""); got != "0 B" {
		t.Errorf("expected '0 B', got %q", got)
	}
	if got := DetermineSchemaSize(string(make([]byte, 2048))); got != "2.0 kB" {
		t.Errorf("expected '2.0 kB', got %q", got)
	}
}
