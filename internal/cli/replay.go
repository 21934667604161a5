package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/checkoutfn/internal/ir"
	"github.com/roach88/checkoutfn/internal/recorder"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
	RunToken string // optional - specific run only
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Re-execute recorded invocations and verify outputs",
		Long: `Re-execute every recorded invocation with the current functions and
verify that each produces the same output bytes, or aborts with the
same error code, as when it was recorded.

Exit codes:
  0 - Every invocation matched its record
  1 - One or more invocations diverged
  2 - Command error (database not found, etc.)

Examples:
  checkoutfn replay --db ./checkoutfn.db
  checkoutfn replay --db ./checkoutfn.db --run 0192f0c4-...
  checkoutfn replay --db ./checkoutfn.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	addDatabaseFlag(cmd, &opts.Database)
	cmd.Flags().StringVar(&opts.RunToken, "run", "", "replay specific run only")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()

	st, err := openStore(opts.Database, true)
	if err != nil {
		return err
	}
	defer st.Close()

	var records []ir.InvocationRecord
	if opts.RunToken != "" {
		records, err = st.ReadRun(ctx, opts.RunToken)
	} else {
		records, err = st.ReadAll(ctx)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read invocations", err)
	}

	f := opts.formatter(cmd)
	opts.logger(cmd.ErrOrStderr()).Debug("replaying invocations", "count", len(records), "run_token", opts.RunToken)

	result, err := recorder.Replay(ctx, opts.registry(), records)
	if err != nil {
		return WrapExitError(ExitCommandError, "replay interrupted", err)
	}

	if opts.Format == "json" {
		if result.OK() {
			return f.Success(result)
		}
		message := fmt.Sprintf("%d of %d invocation(s) diverged", len(result.Divergences), result.Checked)
		if err := f.Failure(result, CodeReplayDiverged, message); err != nil {
			return err
		}
		return NewExitError(ExitFailure, "replay diverged")
	}

	w := cmd.OutOrStdout()
	if result.Checked == 0 {
		fmt.Fprintln(w, "No invocations found in database.")
		return nil
	}

	for _, d := range result.Divergences {
		fmt.Fprintf(w, "✗ [%d] %s (run %s)\n", d.Seq, d.Function, d.RunToken)
		fmt.Fprintf(w, "  recorded: %s\n", d.Recorded)
		fmt.Fprintf(w, "  replayed: %s\n", d.Replayed)
	}

	fmt.Fprintf(w, "Replay Summary: %d checked, %d diverged\n", result.Checked, len(result.Divergences))
	if !result.OK() {
		return NewExitError(ExitFailure, "replay diverged")
	}
	fmt.Fprintln(w, "✓ All invocations reproduced")
	return nil
}
