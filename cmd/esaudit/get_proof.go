package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/esaudit/internal/backup"
	"github.com/alfredjeanlab/esaudit/internal/merkle"
	"github.com/alfredjeanlab/esaudit/internal/ui"
)

func newGetProofCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "get-proof <file> <event-id>",
		Short: "Generate a Merkle inclusion proof for one event",
		Example: `  esaudit get-proof backup.jsonl 42
  esaudit get-proof backup.jsonl 42 --output proof.json`,
		GroupID: "merkle",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[1]

			entries, err := a.loadBackup(cmd.Context(), args[0])
			if err != nil {
				return fail(cmd, 1, "Failed to generate Merkle proof: %v", err)
			}
			entry, ok := backup.FindByID(entries, id)
			if !ok {
				return fail(cmd, 1, "Event with ID %s not found", id)
			}
			proof, err := merkle.GenerateProof(backup.Hashes(entries), entry.Hash())
			if err != nil {
				return fail(cmd, 1, "Failed to generate Merkle proof: %v", err)
			}
			proof.EventID = entry.ID()

			if output != "" {
				data, err := json.MarshalIndent(proof, "", "  ")
				if err != nil {
					return fail(cmd, 1, "Failed to generate Merkle proof: %v", err)
				}
				if err := os.WriteFile(output, append(data, '\n'), 0o644); err != nil {
					return fail(cmd, 1, "Failed to write proof: %v", err)
				}
				printLine(cmd, "%s", renderPass("Proof for event %s written to %s", proof.EventID, output))
				return nil
			}
			if a.jsonOutput {
				return printJSON(cmd, proof)
			}

			printLine(cmd, "Merkle Proof for Event %s", proof.EventID)
			printLine(cmd, "")
			printLine(cmd, "Event Hash: %s", proof.EventHash)
			printLine(cmd, "Merkle Root: %s", proof.MerkleRoot)
			printLine(cmd, "")
			printLine(cmd, "Sibling Hashes (%d):", len(proof.Siblings))
			for i, s := range proof.Siblings {
				printLine(cmd, "  %d. %s %s", i+1, s.Hash, ui.RenderMuted("("+s.Position.String()+")"))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the proof as JSON to this file")
	return cmd
}
