package merkle

import (
	"errors"
	"fmt"
	"slices"

	"github.com/alfredjeanlab/esaudit/internal/integrity"
	"github.com/alfredjeanlab/esaudit/internal/model"
)

var (
	ErrEmptyInput     = errors.New("merkle: cannot build root from empty list")
	ErrTargetNotFound = errors.New("merkle: target hash not found in the list")
	ErrInvalidProof   = errors.New("merkle: invalid proof structure")
)

// parents collapses one level of the tree. The last node of an odd-sized
// level is paired with itself.
func parents(level []string) []string {
	next := make([]string, 0, (len(level)+1)/2)
	for i := 0; i < len(level); i += 2 {
		left := level[i]
		right := left
		if i+1 < len(level) {
			right = level[i+1]
		}
		next = append(next, integrity.HashPair(left, right))
	}
	return next
}

// BuildRoot computes the Merkle root of leaves. A single leaf is its own root.
func BuildRoot(leaves []string) (string, error) {
	if len(leaves) == 0 {
		return "", ErrEmptyInput
	}
	level := leaves
	for len(level) > 1 {
		level = parents(level)
	}
	return level[0], nil
}

// GenerateProof builds the inclusion proof for target. When target occurs
// more than once, the first occurrence is proven. The returned proof has no
// EventID; callers attach it.
func GenerateProof(leaves []string, target string) (model.Proof, error) {
	if len(leaves) == 0 {
		return model.Proof{}, ErrEmptyInput
	}
	index := slices.Index(leaves, target)
	if index < 0 {
		return model.Proof{}, ErrTargetNotFound
	}

	siblings := []model.Sibling{}
	level := leaves
	for len(level) > 1 {
		if index%2 == 0 {
			sibling := level[index]
			if index+1 < len(level) {
				sibling = level[index+1]
			}
			siblings = append(siblings, model.Sibling{Hash: sibling, Position: model.PositionRight})
		} else {
			siblings = append(siblings, model.Sibling{Hash: level[index-1], Position: model.PositionLeft})
		}
		level = parents(level)
		index /= 2
	}

	return model.Proof{
		EventHash:  target,
		Siblings:   siblings,
		MerkleRoot: level[0],
	}, nil
}

// ComputeRoot replays the sibling path of p starting from its event hash.
// It returns false if a sibling has an unknown position.
func ComputeRoot(p model.Proof) (string, bool) {
	running := p.EventHash
	for _, s := range p.Siblings {
		switch s.Position {
		case model.PositionLeft:
			running = integrity.HashPair(s.Hash, running)
		case model.PositionRight:
			running = integrity.HashPair(running, s.Hash)
		default:
			return "", false
		}
	}
	return running, true
}

// CheckProof rejects a proof that lacks the fields needed to replay it. The
// error matches ErrInvalidProof and wraps the *model.ValidationError.
func CheckProof(p model.Proof) error {
	if err := model.ValidateProof(&p); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidProof, err)
	}
	return nil
}

// VerifyProof reports whether replaying p yields exactly p.MerkleRoot.
// Callers are expected to reject structurally invalid proofs first
// (see CheckProof).
func VerifyProof(p model.Proof) bool {
	root, ok := ComputeRoot(p)
	return ok && root == p.MerkleRoot
}
