package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/checkoutfn/internal/function"
	"github.com/roach88/checkoutfn/internal/recorder"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Input    string // input file, "-" for stdin
	Record   bool
	Database string
	RunToken string // optional - append to an existing run

	// TokenGenerator allows overriding the run token generator (for testing).
	// If nil, defaults to recorder.UUIDv7Generator.
	TokenGenerator recorder.TokenGenerator
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <function>",
		Short: "Run a function on a host input document",
		Long: `Run a checkout function on one host input document and print its output.

The input is read from --input, or from stdin when --input is "-".
With --record the invocation is appended to the invocation log under
a new run token (or --run to append to an existing run).

Exit codes:
  0 - Function produced an output
  1 - Function aborted (malformed merchant configuration)
  2 - Command error (unknown function, unreadable input, database error)

Examples:
  checkoutfn run payment --input cart.json
  cat cart.json | checkoutfn run delivery
  checkoutfn run discount --input cart.json --record --db ./checkoutfn.db
  checkoutfn run payment --input cart.json --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFunction(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Input, "input", "i", "-", "input document file (- for stdin)")
	cmd.Flags().BoolVar(&opts.Record, "record", false, "append the invocation to the invocation log")
	addDatabaseFlag(cmd, &opts.Database)
	cmd.Flags().StringVar(&opts.RunToken, "run", "", "run token to record under (default: new UUIDv7)")

	return cmd
}

func runFunction(opts *RunOptions, name string, cmd *cobra.Command) error {
	registry := opts.registry()
	f := opts.formatter(cmd)

	if _, ok := registry.Lookup(name); !ok {
		_ = f.Error(string(function.CodeUnknownFunction), fmt.Sprintf("unknown function %q", name), registry.Names())
		return NewExitError(ExitCommandError, fmt.Sprintf("unknown function %q (available: %v)", name, registry.Names()))
	}

	input, err := readInput(opts.Input, cmd.InOrStdin())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read input", err)
	}

	var (
		output   []byte
		runToken string
	)
	if opts.Record {
		output, runToken, err = invokeRecorded(opts, name, input, cmd)
	} else {
		output, err = registry.Invoke(name, input)
	}
	if err != nil {
		return reportInvokeError(f, err)
	}

	return f.Document(output, runToken)
}

func invokeRecorded(opts *RunOptions, name string, input []byte, cmd *cobra.Command) ([]byte, string, error) {
	logger := opts.logger(cmd.ErrOrStderr())

	st, err := openStore(opts.Database, false)
	if err != nil {
		return nil, "", err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()

	recOpts := []recorder.Option{recorder.WithLogger(logger)}
	if opts.RunToken != "" {
		recOpts = append(recOpts, recorder.WithRunToken(opts.RunToken))
	}
	if opts.TokenGenerator != nil {
		recOpts = append(recOpts, recorder.WithTokenGenerator(opts.TokenGenerator))
	}
	rec := recorder.New(opts.registry(), st, recOpts...)

	logger.Debug("recording invocation", "db", opts.Database, "run_token", rec.RunToken(), "function", name)

	output, err := rec.Invoke(cmd.Context(), name, input)
	return output, rec.RunToken(), err
}

// reportInvokeError writes the error envelope and maps the error to an
// exit code.
func reportInvokeError(f *OutputFormatter, err error) error {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}

	code := function.Code(err)
	switch code {
	case "":
		if errors.Is(err, recorder.ErrNotRecordable) {
			_ = f.Error(CodeNotRecordable, err.Error(), nil)
			return WrapExitError(ExitCommandError, "invocation not recorded", err)
		}
		_ = f.Error(CodeRecordFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to record invocation", err)
	case function.CodeUnknownFunction, function.CodeInvalidInput:
		_ = f.Error(string(code), err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid request", err)
	default:
		_ = f.Error(string(code), err.Error(), nil)
		return WrapExitError(ExitFailure, "function aborted", err)
	}
}

// readInput reads the document at path, or from stdin when path is "-".
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" || path == "" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}
