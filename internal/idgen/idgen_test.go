package idgen

import (
	"regexp"
	"testing"
)

var runIDPattern = regexp.MustCompile(`^run-[0-9a-z]{10}$`)

func TestNewRunID_Shape(t *testing.T) {
	for i := 0; i < 100; i++ {
		id, err := NewRunID()
		if err != nil {
			t.Fatalf("NewRunID() error: %v", err)
		}
		if !runIDPattern.MatchString(id) {
			t.Fatalf("NewRunID() = %q, does not match %s", id, runIDPattern)
		}
	}
}

func TestMustRunID_Shape(t *testing.T) {
	if id := MustRunID(); !runIDPattern.MatchString(id) {
		t.Errorf("MustRunID() = %q, does not match %s", id, runIDPattern)
	}
}

func TestNewRunID_Unique(t *testing.T) {
	const count = 5_000
	seen := make(map[string]struct{}, count)
	for i := 0; i < count; i++ {
		id := MustRunID()
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate run ID after %d generations: %q", i, id)
		}
		seen[id] = struct{}{}
	}
}
