// Package merkle builds binary Merkle trees over ordered lists of event
// digests and produces and checks inclusion proofs against their roots.
//
// Leaves are hex digest strings and parents are integrity.HashPair of their
// children. A level with an odd number of nodes pairs its last node with
// itself. Root building and proof generation walk the same levels, so the root
// in a generated proof always equals BuildRoot over the same leaves.
//
// A proof lists one sibling per level, from the leaves up. Each sibling records
// the side it sits on relative to the running hash:
//
//	left:  running = HashPair(sibling, running)
//	right: running = HashPair(running, sibling)
package merkle
