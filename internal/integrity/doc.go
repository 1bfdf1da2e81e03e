// Package integrity computes the digests that make an event log tamper-evident:
// the canonical per-event hash and the pair hash used to build Merkle trees.
//
// Digests are lowercase hex SHA-256 strings. Every combination step hashes the
// hex text of its inputs rather than their raw bytes, so values produced here
// match digests already stored by the event store.
package integrity
