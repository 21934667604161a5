package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/checkoutfn/internal/ir"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database string
	RunToken string
	Function string // optional - filter to specific function
}

// TraceEvent represents a single invocation in the trace timeline.
type TraceEvent struct {
	Seq      int64           `json:"seq"`
	ID       string          `json:"id"`
	Function string          `json:"function"`
	Input    json.RawMessage `json:"input"`
	Output   json.RawMessage `json:"output,omitempty"`
	Error    *CLIError       `json:"error,omitempty"`
}

// TraceStats holds summary statistics for the trace.
type TraceStats struct {
	Invocations int `json:"invocations"`
	Failed      int `json:"failed"`
}

// TraceResult holds the complete trace output.
type TraceResult struct {
	RunToken string       `json:"run_token"`
	Timeline []TraceEvent `json:"timeline"`
	Stats    TraceStats   `json:"stats"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Show the recorded timeline of a run",
		Long: `Show the invocations recorded under one run token, in the order they
were recorded, with their inputs and outcomes.

Examples:
  checkoutfn trace --db ./checkoutfn.db --run 0192f0c4-...
  checkoutfn trace --db ./checkoutfn.db --run 0192f0c4-... --function payment
  checkoutfn trace --db ./checkoutfn.db --run 0192f0c4-... --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, cmd)
		},
	}

	addDatabaseFlag(cmd, &opts.Database)
	cmd.Flags().StringVar(&opts.RunToken, "run", "", "run token to trace (required)")
	_ = cmd.MarkFlagRequired("run")
	cmd.Flags().StringVar(&opts.Function, "function", "", "filter to specific function")

	return cmd
}

func runTrace(opts *TraceOptions, cmd *cobra.Command) error {
	st, err := openStore(opts.Database, true)
	if err != nil {
		return err
	}
	defer st.Close()

	records, err := st.ReadRun(cmd.Context(), opts.RunToken)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read run", err)
	}

	if len(records) == 0 {
		f := opts.formatter(cmd)
		_ = f.Error(CodeRunNotFound, fmt.Sprintf("no invocations recorded under run %q", opts.RunToken), nil)
		return NewExitError(ExitCommandError, fmt.Sprintf("run not found: %s", opts.RunToken))
	}

	result := buildTrace(opts.RunToken, records, opts.Function)

	if opts.Format == "json" {
		return opts.formatter(cmd).Success(result)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Run: %s\n\n", result.RunToken)
	for _, ev := range result.Timeline {
		fmt.Fprintf(w, "[%d] %s %s\n", ev.Seq, ev.Function, shortID(ev.ID))
		fmt.Fprintf(w, "     input:  %s\n", ev.Input)
		if ev.Error != nil {
			fmt.Fprintf(w, "     error:  %s %s\n", ev.Error.Code, ev.Error.Message)
		} else {
			fmt.Fprintf(w, "     output: %s\n", ev.Output)
		}
	}
	fmt.Fprintf(w, "\n%d invocation(s), %d failed\n", result.Stats.Invocations, result.Stats.Failed)
	return nil
}

func buildTrace(runToken string, records []ir.InvocationRecord, fn string) TraceResult {
	result := TraceResult{RunToken: runToken, Timeline: []TraceEvent{}}

	for _, rec := range records {
		if fn != "" && rec.Function != fn {
			continue
		}

		ev := TraceEvent{
			Seq:      rec.Seq,
			ID:       rec.ID,
			Function: rec.Function,
			Input:    json.RawMessage(rec.Input),
		}
		if rec.Failed() {
			ev.Error = &CLIError{Code: rec.ErrorCode, Message: rec.ErrorMessage}
			result.Stats.Failed++
		} else {
			ev.Output = json.RawMessage(rec.Output)
		}
		result.Timeline = append(result.Timeline, ev)
		result.Stats.Invocations++
	}
	return result
}

// shortID abbreviates a content hash for display.
func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
