package main

import (
	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/esaudit/internal/backup"
	"github.com/alfredjeanlab/esaudit/internal/merkle"
)

func newMerkleRootCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "merkle-root <file>",
		Short: "Calculate the Merkle root of a backup",
		Example: `  esaudit merkle-root backup.jsonl
  esaudit merkle-root s3://audit-bucket/backups/2024-01-01.jsonl --json`,
		GroupID: "merkle",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := a.loadBackup(cmd.Context(), args[0])
			if err != nil {
				return fail(cmd, 1, "Failed to calculate Merkle root: %v", err)
			}
			root, err := merkle.BuildRoot(backup.Hashes(entries))
			if err != nil {
				return fail(cmd, 1, "Failed to calculate Merkle root: %v", err)
			}
			a.logger.Debug("merkle root computed", "leaves", len(entries), "root", root)

			if a.jsonOutput {
				return printJSON(cmd, struct {
					MerkleRoot  string `json:"merkleRoot"`
					TotalEvents int    `json:"totalEvents"`
				}{root, len(entries)})
			}
			printLine(cmd, "Merkle Root: %s", root)
			printLine(cmd, "Total events: %d", len(entries))
			return nil
		},
	}
}
