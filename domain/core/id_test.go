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
		if id.IsEmpty() {
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

// TestIDIsEmpty tests ID emptiness check
func TestIDIsEmpty(t *testing.T) {
	if !ID("").IsEmpty() {
		t.Error("Expected empty ID to be empty")
	}
	if ID("not-empty").IsEmpty() {
		t.Error("Expected non-empty ID to not be empty")
	}
}

// TestParseRunID tests run ID parsing
func TestParseRunID(t *testing.T) {
	valid := NewRunID().String()

	tests := []struct {
		input    string
		hasError bool
	}{
		{valid, false},
		{"", true},
		{"   ", true},
		{"not-a-uuid", true},
	}

	for _, tt := range tests {
		result, err := ParseRunID(tt.input)
		if tt.hasError {
			if err == nil {
				t.Errorf("ParseRunID(%q) expected error, got nil", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRunID(%q) unexpected error: %v", tt.input, err)
		}
		if result.String() != tt.input {
			t.Errorf("ParseRunID(%q) = %q", tt.input, result)
		}
	}
}

// TestParseSequenceKey tests sequence key parsing
func TestParseSequenceKey(t *testing.T) {
	if _, err := ParseSequenceKey(" "); err == nil {
		t.Error("Expected error for blank sequence key")
	}
	key, err := ParseSequenceKey("chr1")
	if err != nil || key != SequenceKey("chr1") {
		t.Errorf("ParseSequenceKey(chr1) = %q, %v", key, err)
	}
}

// TestComputeSequenceHash checks fingerprints depend on exact codes and boundaries
func TestComputeSequenceHash(t *testing.T) {
	a := ComputeSequenceHash([]int{1, 23})
	b := ComputeSequenceHash([]int{12, 3})
	if a == b {
		t.Error("Expected different hashes for [1 23] and [12 3]")
	}
	if a != ComputeSequenceHash([]int{1, 23}) {
		t.Error("Expected hash to be deterministic")
	}
	if len(Hash(a).Short()) != 12 {
		t.Errorf("Expected 12-character short hash, got %q", Hash(a).Short())
	}
}
