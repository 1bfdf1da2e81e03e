package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/esaudit/internal/integrity"
	"github.com/alfredjeanlab/esaudit/internal/merkle"
	"github.com/alfredjeanlab/esaudit/internal/model"
)

// parseProof accepts either inline JSON or the path of a JSON file.
func parseProof(arg string) (model.Proof, error) {
	var p model.Proof
	if err := json.Unmarshal([]byte(arg), &p); err == nil {
		return p, nil
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return model.Proof{}, err
	}
	p = model.Proof{}
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Proof{}, err
	}
	return p, nil
}

// warnMalformedDigests logs proof values that are not SHA-256 hex digests.
// Such proofs still replay, but cannot come from an event store backup.
func warnMalformedDigests(logger *slog.Logger, p model.Proof) {
	check := func(field, v string) {
		if !integrity.IsDigest(v) {
			logger.Warn("proof value is not a sha256 hex digest", "field", field, "value", v)
		}
	}
	check("eventHash", p.EventHash)
	check("merkleRoot", p.MerkleRoot)
	for i, s := range p.Siblings {
		check(fmt.Sprintf("siblingHashes[%d]", i), s.Hash)
	}
}

func newVerifyProofCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify-proof <proof-json-or-file>",
		Short: "Verify a Merkle inclusion proof",
		Example: `  esaudit verify-proof proof.json
  esaudit verify-proof '{"eventId":"42","eventHash":"...","siblingHashes":[],"merkleRoot":"..."}'`,
		GroupID: "merkle",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proof, err := parseProof(args[0])
			if err != nil {
				return fail(cmd, 1, "Failed to verify Merkle proof: %v", err)
			}
			if err := merkle.CheckProof(proof); err != nil {
				a.logger.Debug("proof rejected", "error", err)
				err := fail(cmd, 1, "Invalid proof structure")
				printLine(cmd, "Must contain eventHash, merkleRoot, and siblingHashes")
				return err
			}

			warnMalformedDigests(a.logger, proof)

			valid := merkle.VerifyProof(proof)
			a.logger.Debug("proof verified", "event_id", proof.EventID, "valid", valid, "siblings", len(proof.Siblings))

			var result error
			if valid {
				printLine(cmd, "%s", renderPass("Merkle proof is valid"))
			} else {
				result = fail(cmd, 1, "Merkle proof is invalid")
			}
			printLine(cmd, "Event ID: %s", proof.EventID)
			printLine(cmd, "Event Hash: %s", proof.EventHash)
			printLine(cmd, "Merkle Root: %s", proof.MerkleRoot)
			return result
		},
	}
}
