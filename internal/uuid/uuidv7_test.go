package uuid

import (
	"testing"

	googleuuid "github.com/google/uuid"
)

func TestNewGeneratesValidUUID(t *testing.T) {
	id := New()
	if _, err := googleuuid.Parse(id); err != nil {
		t.Errorf("generated ID %q is not a valid UUID: %v", id, err)
	}
	if len(id) != 36 {
		t.Errorf("expected 36-character UUID, got %d: %q", len(id), id)
	}
	if id[14] != '7' {
		t.Errorf("expected version 7 UUID, got %q", id)
	}
}

func TestNewGeneratesUniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := New()
		if seen[id] {
			t.Fatalf("duplicate ID generated: %q", id)
		}
		seen[id] = true
	}
}

func TestNewIsTimeOrdered(t *testing.T) {
	first := New()
	second := New()
	// Same-millisecond IDs share a timestamp prefix; later IDs never sort
	// before earlier ones on the prefix.
	if first[:8] > second[:8] {
		t.Errorf("expected time-ordered IDs, got %q before %q", first, second)
	}
}
