package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/checkoutfn/internal/function"
	"github.com/roach88/checkoutfn/internal/store"
)

// DatabaseEnv names the environment variable holding the default
// invocation log path.
const DatabaseEnv = "CHECKOUTFN_DB"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	// Registry overrides the function registry (for testing).
	// If nil, function.Default() is used.
	Registry *function.Registry
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the checkoutfn CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "checkoutfn",
		Short: "checkoutfn - checkout discount, payment and delivery functions",
		Long: `Run and verify checkout customization functions.

Each function reads a host input document (cart, payment methods,
delivery options and the merchant's metafield configuration) and
returns the operations the checkout should apply.

Invocations can be recorded to a SQLite log, replayed to verify
determinism, and exercised through YAML conformance scenarios.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))
	cmd.AddCommand(NewFunctionsCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))
	cmd.AddCommand(NewTraceCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

func (o *RootOptions) registry() *function.Registry {
	if o.Registry != nil {
		return o.Registry
	}
	return function.Default()
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:  o.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: o.Verbose,
	}
}

// logger returns a text logger on w, at debug level when verbose.
func (o *RootOptions) logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if o.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// addDatabaseFlag registers --db, defaulting to $CHECKOUTFN_DB.
func addDatabaseFlag(cmd *cobra.Command, dst *string) {
	cmd.Flags().StringVar(dst, "db", os.Getenv(DatabaseEnv),
		"path to SQLite invocation log (default $"+DatabaseEnv+")")
}

// openStore opens the invocation log at path. Commands that only read the
// log pass mustExist so a mistyped path is not silently created.
func openStore(path string, mustExist bool) (*store.Store, error) {
	if path == "" {
		return nil, NewExitError(ExitCommandError, "database path required: use --db or set "+DatabaseEnv)
	}
	if mustExist {
		if _, err := os.Stat(path); err != nil {
			return nil, WrapExitError(ExitCommandError, "database not found", err)
		}
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}
