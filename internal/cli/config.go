package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/roach88/checkoutfn/internal/config"
	"github.com/roach88/checkoutfn/internal/function"
)

// ConfigResult is the decoded configuration of one function.
type ConfigResult struct {
	Function string `json:"function"`
	Config   any    `json:"config"`
}

// NewConfigCommand creates the config command.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config <function> <metafield-value>",
		Short: "Check a merchant configuration value",
		Long: `Parse a metafield value the way the function would and print the
decoded configuration.

Member names are matched case-insensitively and ignore "_", "-" and
spaces, so "Method", "METHOD" and "method" all configure the same field.
Every field the function declares is required and must be a string.

Exit codes:
  0 - Configuration is well formed
  1 - Configuration is malformed
  2 - Command error (unknown function)

Examples:
  checkoutfn config payment '{"method":"COD","rate":"Express"}'
  checkoutfn config delivery '{"Rate":"Standard","ZIP":"90210"}' --format json

Use "checkoutfn config build" to produce a value from field flags.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig(rootOpts, args[0], args[1], cmd)
		},
	}

	cmd.AddCommand(NewConfigBuildCommand(rootOpts))

	return cmd
}

func runConfig(opts *RootOptions, name, raw string, cmd *cobra.Command) error {
	registry := opts.registry()
	f := opts.formatter(cmd)

	fn, ok := registry.Lookup(name)
	if !ok {
		_ = f.Error(string(function.CodeUnknownFunction), fmt.Sprintf("unknown function %q", name), registry.Names())
		return NewExitError(ExitCommandError, fmt.Sprintf("unknown function %q (available: %v)", name, registry.Names()))
	}

	cfg, err := fn.ParseConfig(raw)
	if err != nil {
		_ = f.Error(string(function.Code(err)), err.Error(), nil)
		return WrapExitError(ExitFailure, "malformed configuration", err)
	}

	if opts.Format == "json" {
		return f.Success(ConfigResult{Function: name, Config: cfg})
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to encode configuration", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s configuration is well formed\n%s\n", name, data)
	return nil
}

// BuildOptions holds flags for the config build command.
type BuildOptions struct {
	*RootOptions
	Values    map[string]*string // one flag per configuration field
	Namespace string
	Key       string
}

// BuildResult is a configuration value produced by config build.
type BuildResult struct {
	Function  string                 `json:"function"`
	Value     string                 `json:"value"`
	Config    any                    `json:"config"`
	Metafield *config.MetafieldInput `json:"metafield,omitempty"`
}

// NewConfigBuildCommand creates the config build command.
func NewConfigBuildCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BuildOptions{RootOptions: rootOpts, Values: map[string]*string{}}

	cmd := &cobra.Command{
		Use:   "build <function>",
		Short: "Produce a merchant configuration value",
		Long: `Render field values as the metafield value a function reads, and check
that the function parses it back to the same configuration.

Every field the function declares must be given. With --namespace and
--key the value is wrapped in the metafield input that is attached to
the customization or discount node when it is created.

Exit codes:
  0 - Value produced
  1 - Value does not parse back
  2 - Command error (unknown function, missing or undeclared fields)

Examples:
  checkoutfn config build payment --method "Cash on Delivery (COD)" --rate Standard
  checkoutfn config build delivery --rate Express --zip 90210
  checkoutfn config build discount
  checkoutfn config build payment --method COD --rate Express \
      --namespace '$app:payment-customization' --key function-configuration`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigBuild(opts, args[0], cmd)
		},
	}

	for _, field := range configFields(rootOpts.registry()) {
		opts.Values[field] = cmd.Flags().String(field, "", fmt.Sprintf("value of the %q configuration field", field))
	}
	cmd.Flags().StringVar(&opts.Namespace, "namespace", "", "metafield namespace (requires --key)")
	cmd.Flags().StringVar(&opts.Key, "key", "", "metafield key (requires --namespace)")

	return cmd
}

// configFields returns the union of every function's configuration fields.
func configFields(registry *function.Registry) []string {
	seen := map[string]bool{}
	var fields []string
	for _, name := range registry.Names() {
		fn, _ := registry.Lookup(name)
		for _, field := range fn.ConfigFields() {
			if !seen[field] {
				seen[field] = true
				fields = append(fields, field)
			}
		}
	}
	sort.Strings(fields)
	return fields
}

func runConfigBuild(opts *BuildOptions, name string, cmd *cobra.Command) error {
	registry := opts.registry()
	f := opts.formatter(cmd)

	fn, ok := registry.Lookup(name)
	if !ok {
		_ = f.Error(string(function.CodeUnknownFunction), fmt.Sprintf("unknown function %q", name), registry.Names())
		return NewExitError(ExitCommandError, fmt.Sprintf("unknown function %q (available: %v)", name, registry.Names()))
	}

	if (opts.Namespace == "") != (opts.Key == "") {
		return NewExitError(ExitCommandError, "--namespace and --key must be given together")
	}

	// Only flags given on the command line count, so an explicit empty
	// value is still a value.
	values := map[string]string{}
	for field, value := range opts.Values {
		if cmd.Flags().Changed(field) {
			values[field] = *value
		}
	}

	raw, err := fn.BuildConfig(values)
	if err != nil {
		_ = f.Error(string(function.Code(err)), err.Error(), fn.ConfigFields())
		return WrapExitError(ExitCommandError, "cannot build configuration", err)
	}

	cfg, err := fn.ParseConfig(raw)
	if err != nil {
		_ = f.Error(string(function.Code(err)), err.Error(), raw)
		return WrapExitError(ExitFailure, "built configuration does not parse", err)
	}

	result := BuildResult{Function: name, Value: raw, Config: cfg}
	if opts.Namespace != "" {
		mf := config.NewMetafieldInput(opts.Namespace, opts.Key, raw)
		result.Metafield = &mf
	}

	if opts.Format == "json" {
		return f.Success(result)
	}

	if result.Metafield != nil {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetEscapeHTML(false)
		return enc.Encode(result.Metafield)
	}
	fmt.Fprintln(cmd.OutOrStdout(), raw)
	return nil
}
