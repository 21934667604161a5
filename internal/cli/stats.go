package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/checkoutfn/internal/store"
)

// StatsOptions holds flags for the stats command.
type StatsOptions struct {
	*RootOptions
	Database string
}

// StatsResult summarizes the invocation log.
type StatsResult struct {
	Runs      int                   `json:"runs"`
	Functions []store.FunctionStats `json:"functions"`
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StatsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the invocation log",
		Long: `Print the number of recorded runs and per-function invocation counts.

Examples:
  checkoutfn stats --db ./checkoutfn.db
  CHECKOUTFN_DB=./checkoutfn.db checkoutfn stats --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(opts, cmd)
		},
	}

	addDatabaseFlag(cmd, &opts.Database)

	return cmd
}

func runStats(opts *StatsOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()

	st, err := openStore(opts.Database, true)
	if err != nil {
		return err
	}
	defer st.Close()

	tokens, err := st.ListRunTokens(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}
	stats, err := st.CountByFunction(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to count invocations", err)
	}

	result := StatsResult{Runs: len(tokens), Functions: stats}
	if opts.Format == "json" {
		return opts.formatter(cmd).Success(result)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Runs: %d\n", result.Runs)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FUNCTION\tTOTAL\tFAILED")
	for _, s := range stats {
		fmt.Fprintf(tw, "%s\t%d\t%d\n", s.Function, s.Total, s.Failed)
	}
	return tw.Flush()
}
