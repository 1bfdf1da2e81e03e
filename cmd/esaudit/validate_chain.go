package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/esaudit/internal/chain"
)

func newValidateChainCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate-chain <file>",
		Short: "Validate the hash chain of a backup",
		Example: `  esaudit validate-chain backup.jsonl
  esaudit validate-chain backup.jsonl --workers 8 --json`,
		GroupID: "chain",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			entries, err := a.loadBackup(ctx, args[0])
			if err != nil {
				return fail(cmd, 1, "Failed to validate chain: %v", err)
			}

			start := time.Now()
			result, err := chain.ValidateParallel(ctx, entries, a.cfg.Workers)
			if err != nil {
				return fail(cmd, 1, "Failed to validate chain: %v", err)
			}
			a.logger.Debug("chain validated",
				"entries", result.TotalEvents,
				"violations", len(result.Errors),
				"workers", a.cfg.Workers,
				"duration", time.Since(start))

			if a.jsonOutput {
				if err := printJSON(cmd, result); err != nil {
					return err
				}
				if !result.IsValid {
					return &exitError{code: 1}
				}
				return nil
			}

			if result.IsValid {
				printLine(cmd, "%s", renderPass("Chain is valid (%d events)", result.TotalEvents))
				return nil
			}
			err = fail(cmd, 1, "Chain validation failed")
			printLine(cmd, "Total events: %d", result.TotalEvents)
			printLine(cmd, "Errors found: %d", len(result.Errors))
			printLine(cmd, "")
			for _, e := range result.Errors {
				printLine(cmd, "Event %s: %s", e.EventID, e.Message)
			}
			return err
		},
	}
}
