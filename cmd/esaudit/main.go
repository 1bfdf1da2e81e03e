package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/esaudit/internal/backup"
	"github.com/alfredjeanlab/esaudit/internal/config"
	"github.com/alfredjeanlab/esaudit/internal/idgen"
	"github.com/alfredjeanlab/esaudit/internal/ui"
)

// exitError carries a process exit code out of a command's RunE. The message
// has already been printed by the time it is returned.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// newS3Client is replaced in tests.
var newS3Client = func(ctx context.Context, region, endpoint string) (backup.ObjectGetter, error) {
	return backup.NewS3Client(ctx, region, endpoint)
}

// app holds the state shared by every command of one invocation.
type app struct {
	configPath string
	logLevel   string
	workers    int
	noColor    bool
	jsonOutput bool

	cfg    *config.Config
	logger *slog.Logger
	stderr io.Writer
}

func newRootCmd(stderr io.Writer) *cobra.Command {
	a := &app{stderr: stderr}

	root := &cobra.Command{
		Use:           "esaudit <command>",
		Short:         "Audit the integrity of event store backups",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default $ESAUDIT_CONFIG or ~/.config/esaudit/config.toml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	root.PersistentFlags().IntVar(&a.workers, "workers", 0, "hashing workers for chain validation (default from config)")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable colored output")
	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "output as JSON where supported")

	root.AddGroup(
		&cobra.Group{ID: "merkle", Title: "Merkle Trees:"},
		&cobra.Group{ID: "chain", Title: "Hash Chain:"},
	)

	cobra.EnableCommandSorting = false
	root.SetHelpFunc(a.helpFunc)

	// Merkle Trees
	root.AddCommand(newMerkleRootCmd(a))
	root.AddCommand(newGetProofCmd(a))
	root.AddCommand(newVerifyProofCmd(a))

	// Hash Chain
	root.AddCommand(newValidateChainCmd(a))
	root.AddCommand(newValidateEventHashCmd(a))

	return root
}

// setup resolves configuration and installs the logger. Flags win over the
// environment, which wins over the config file.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fail(cmd, 1, "Failed to load configuration: %v", err)
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("workers") {
		cfg.Workers = a.workers
	}
	if flags.Changed("no-color") {
		cfg.NoColor = a.noColor
	}
	if cfg.NoColor {
		ui.ForceNoColor()
	}
	if err := cfg.Validate(); err != nil {
		return usageError(cmd, err.Error())
	}
	a.cfg = cfg

	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: cfg.Level()})).
		With("run_id", idgen.MustRunID())
	slog.SetDefault(a.logger)
	a.logger.Debug("configuration loaded", "log_level", cfg.LogLevel, "workers", cfg.Workers)
	return nil
}

// execute runs the CLI and returns the process exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	// Decided up front: cobra reports bad args and flags before setup runs.
	ui.SetColor(ui.ShouldUseColorFor(stdout))

	root := newRootCmd(stderr)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	// Anything cobra rejects before RunE is a usage error.
	fmt.Fprintln(stdout, ui.RenderFail(err.Error()))
	fmt.Fprintln(stdout, "See more help with --help")
	return 2
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
