package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/esaudit/internal/backup"
	"github.com/alfredjeanlab/esaudit/internal/model"
	"github.com/alfredjeanlab/esaudit/internal/ui"
)

func printLine(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format+"\n", args...)
}

// fail prints a "✗" line and returns the matching exit error.
func fail(cmd *cobra.Command, code int, format string, args ...any) error {
	fmt.Fprintln(cmd.OutOrStdout(), ui.RenderFail(fmt.Sprintf(format, args...)))
	return &exitError{code: code}
}

func usageError(cmd *cobra.Command, msg string) error {
	err := fail(cmd, 2, "%s", msg)
	printLine(cmd, "See more help with --help")
	return err
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	printLine(cmd, "%s", data)
	return nil
}

// loadBackup reads the entries at loc, a file path or s3://bucket/key.
func (a *app) loadBackup(ctx context.Context, loc string) ([]model.Entry, error) {
	src, err := backup.ParseLocation(loc)
	if err != nil {
		return nil, err
	}
	if s3src, ok := src.(backup.S3Source); ok {
		client, err := newS3Client(ctx, a.cfg.S3Region, a.cfg.S3Endpoint)
		if err != nil {
			return nil, err
		}
		s3src.Client = client
		src = s3src
	}
	return backup.Load(ctx, src)
}

func renderPass(format string, args ...any) string {
	return ui.RenderPass(fmt.Sprintf(format, args...))
}
