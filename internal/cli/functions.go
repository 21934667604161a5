package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// FunctionInfo describes a registered function.
type FunctionInfo struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	ConfigFields []string `json:"config_fields"`
}

// NewFunctionsCommand creates the functions command.
func NewFunctionsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "functions",
		Short:         "List registered functions",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFunctions(rootOpts, cmd)
		},
	}
}

func runFunctions(opts *RootOptions, cmd *cobra.Command) error {
	registry := opts.registry()

	infos := make([]FunctionInfo, 0, len(registry.Names()))
	for _, name := range registry.Names() {
		fn, _ := registry.Lookup(name)
		infos = append(infos, FunctionInfo{
			Name:         name,
			Description:  fn.Description(),
			ConfigFields: fn.ConfigFields(),
		})
	}

	if opts.Format == "json" {
		return opts.formatter(cmd).Success(infos)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCONFIG\tDESCRIPTION")
	for _, info := range infos {
		fields := "-"
		if len(info.ConfigFields) > 0 {
			fields = strings.Join(info.ConfigFields, ",")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", info.Name, fields, info.Description)
	}
	return tw.Flush()
}
