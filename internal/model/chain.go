package model

// ChainErrorKind classifies a chain violation.
type ChainErrorKind string

const (
	ChainNullPredecessor     ChainErrorKind = "null-predecessor"
	ChainPredecessorMismatch ChainErrorKind = "predecessor-mismatch"
	ChainHashMismatch        ChainErrorKind = "hash-mismatch"
	ChainHashFailure         ChainErrorKind = "hash-failure"
)

// String returns the string representation of the kind.
func (k ChainErrorKind) String() string {
	return string(k)
}

// ChainError is a single violation found while validating a hash chain.
type ChainError struct {
	EventID string         `json:"eventId"`
	Kind    ChainErrorKind `json:"-"`
	Message string         `json:"message"`
}

// ChainResult is the complete outcome of one chain validation pass.
type ChainResult struct {
	IsValid     bool         `json:"isValid"`
	TotalEvents int          `json:"totalEvents"`
	Errors      []ChainError `json:"errors"`
}

// Count returns the number of violations of the given kind.
func (r ChainResult) Count(kind ChainErrorKind) int {
	n := 0
	for _, e := range r.Errors {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
