// Package idgen generates the run identifiers that tag every log record of a
// single esaudit invocation.
package idgen

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// RunPrefix starts every run ID.
const RunPrefix = "run-"

// Lowercase only so IDs survive case-insensitive log search.
const (
	runAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	runLength   = 10
)

// NewRunID returns a fresh run ID such as "run-4k2x9q0m7a".
func NewRunID() (string, error) {
	id, err := nanoid.Generate(runAlphabet, runLength)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return RunPrefix + id, nil
}

// MustRunID is NewRunID for callers that cannot handle an error. It returns
// RunPrefix + "unknown" if generation fails.
func MustRunID() string {
	id, err := NewRunID()
	if err != nil {
		return RunPrefix + "unknown"
	}
	return id
}
