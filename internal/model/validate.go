package model

import "strings"

// ValidationError holds a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation failure on a named field.
type FieldError struct {
	Field   string
	Message string
}

// Error formats the validation error as a semicolon-separated list of field messages.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether the validation error contains any field errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// ValidateProof checks that a proof carries the fields needed to replay it.
// An empty sibling list is valid (single-leaf tree); a missing one is not.
// It returns a *ValidationError if any rules fail, or nil if the proof is usable.
func ValidateProof(p *Proof) error {
	var ve ValidationError

	if p.EventHash == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "eventHash", Message: "is required"})
	}
	if p.MerkleRoot == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: "merkleRoot", Message: "is required"})
	}
	if p.Siblings == nil {
		ve.Errors = append(ve.Errors, FieldError{Field: "siblingHashes", Message: "is required"})
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}
