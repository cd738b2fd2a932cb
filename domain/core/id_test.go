package core

import (
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id == "" {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestShortIDsDiffer tests that short forms stay unique for temp-file naming
func TestShortIDsDiffer(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		short := NewID().Short()
		if len(short) != 12 {
			t.Fatalf("Expected 12 characters, got %q", short)
		}
		if seen[short] {
			t.Fatalf("Duplicate short ID %s", short)
		}
		seen[short] = true
	}

	if got := ID("ab-cd").Short(); got != "abcd" {
		t.Errorf("Expected 'abcd', got %q", got)
	}
}

// TestComputeSetHashIgnoresOrder tests that record order does not change the hash
func TestComputeSetHashIgnoresOrder(t *testing.T) {
	a := ComputeSetHash([]string{"1|x|File 1", "3|z|File 2"})
	b := ComputeSetHash([]string{"3|z|File 2", "1|x|File 1"})
	c := ComputeSetHash([]string{"1|x|File 1"})

	if a != b {
		t.Errorf("Expected equal hashes, got %s and %s", a, b)
	}
	if a == c {
		t.Error("Expected different hashes for different sets")
	}
	if a == "" {
		t.Error("Expected non-empty hash")
	}
}
