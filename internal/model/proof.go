package model

// Position is the side a sibling digest occupies relative to the running
// hash while a proof is replayed.
type Position string

const (
	PositionLeft  Position = "left"
	PositionRight Position = "right"
)

// String returns the string representation of the position.
func (p Position) String() string {
	return string(p)
}

// IsValid checks whether the position is a known value.
func (p Position) IsValid() bool {
	switch p {
	case PositionLeft, PositionRight:
		return true
	}
	return false
}

// Sibling is one step of a Merkle inclusion path.
type Sibling struct {
	Hash     string   `json:"hash"`
	Position Position `json:"position"`
}

// Proof is a Merkle inclusion proof for a single event digest.
// Siblings are ordered from the leaf level up to the root.
type Proof struct {
	EventID    string    `json:"eventId"`
	EventHash  string    `json:"eventHash"`
	Siblings   []Sibling `json:"siblingHashes"`
	MerkleRoot string    `json:"merkleRoot"`
}
