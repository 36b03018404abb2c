package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toolmesh/multitool/domain/provider"
)

// listToolsOptions holds options for the list-tools command.
type listToolsOptions struct {
	configPath string
	jsonOutput bool
}

// newListToolsCmd creates the list-tools command.
func (a *App) newListToolsCmd() *cobra.Command {
	opts := &listToolsOptions{}

	cmd := &cobra.Command{
		Use:   "list-tools",
		Short: "List every tool the enabled packs expose",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.listTools(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output full descriptors as JSON")

	return cmd
}

// listTools prints the aggregated catalog.
func (a *App) listTools(ctx context.Context, opts *listToolsOptions) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	registry, err := buildRegistry(ctx, cfg)
	if err != nil {
		return err
	}

	listed, err := registry.ListTools(ctx, provider.ListToolsRequest{})
	if err != nil {
		return fmt.Errorf("failed to list tools: %w", err)
	}

	if opts.jsonOutput {
		data, err := json.MarshalIndent(listed.Tools, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode tools: %w", err)
		}
		fmt.Fprintln(a.stdout, string(data))
		return nil
	}

	for _, p := range registry.Providers() {
		providerListed, err := p.ListTools(ctx, provider.ListToolsRequest{})
		if err != nil {
			return fmt.Errorf("failed to list tools of %q: %w", p.Name(), err)
		}
		fmt.Fprintf(a.stdout, "%s:\n", p.Name())
		for _, t := range providerListed.Tools {
			fmt.Fprintf(a.stdout, "  %-15s %s\n", t.Name, t.Options.Description)
		}
	}
	return nil
}

// callOptions holds options for the call command.
type callOptions struct {
	configPath string
}

// newCallCmd creates the call command.
func (a *App) newCallCmd() *cobra.Command {
	opts := &callOptions{}

	cmd := &cobra.Command{
		Use:   "call <tool> [arguments-json]",
		Short: "Invoke a single tool and print its result",
		Long: `Invoke a tool by name with a JSON argument object.

Examples:
  multitool call add '{"a": 2, "b": 3}'
  multitool call reverse '{"text": "hello"}'
  multitool call timestamp`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var arguments *string
			if len(args) > 1 {
				arguments = &args[1]
			}
			return a.callTool(cmd.Context(), opts, args[0], arguments)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file")

	return cmd
}

// callTool dispatches one invocation through the registry. An error
// result prints its diagnostic and fails the command; an unclaimed name
// is reported as unknown.
func (a *App) callTool(ctx context.Context, opts *callOptions, name string, arguments *string) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	registry, err := buildRegistry(ctx, cfg)
	if err != nil {
		return err
	}

	outcome := registry.CallTool(ctx, provider.CallToolRequest{
		Name:      name,
		Arguments: arguments,
	})
	switch outcome.Disposition {
	case provider.Succeeded:
		fmt.Fprintln(a.stdout, outcome.Result.Text())
		return nil
	case provider.Failed:
		return fmt.Errorf("tool %q failed: %s", name, outcome.Result.Text())
	default:
		return fmt.Errorf("unknown tool %q", name)
	}
}
