// Package main provides washctl, a manager for the local wasmCloud
// development environment that hosts the multitool component.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	app := newApp(os.Stdout, os.Stderr, execRunner{})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newApp builds the washctl command tree around a wash runner.
func newApp(stdout, stderr io.Writer, runner washRunner) *cobra.Command {
	m := &manager{
		wash:   runner,
		stdout: stdout,
	}

	root := &cobra.Command{
		Use:           "washctl",
		Short:         "Manage the wasmCloud development environment",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.AddCommand(
		newStatusCmd(m),
		newStartCmd(m),
		newStopCmd(m),
		newCleanCmd(m),
	)

	return root
}

func newStatusCmd(m *manager) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check if wash is currently running",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return m.status(cmd.Context())
		},
	}
}

func newStartCmd(m *manager) *cobra.Command {
	opts := &startOptions{}

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the development environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return m.start(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.component, "component", "c", "", "Path to the component WASM file")
	cmd.Flags().StringVarP(&opts.id, "id", "i", defaultComponentID, "Component ID to use")
	cmd.Flags().Uint16VarP(&opts.port, "port", "p", 8080, "Port to bind HTTP server to")
	_ = cmd.MarkFlagRequired("component")

	return cmd
}

func newStopCmd(m *manager) *cobra.Command {
	var (
		id      string
		cleanup bool
	)

	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the development environment and clean up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return m.stop(cmd.Context(), id, cleanup)
		},
	}

	cmd.Flags().StringVarP(&id, "id", "i", defaultComponentID, "Component ID to stop")
	cmd.Flags().BoolVar(&cleanup, "cleanup", true, "Clean up configs")

	return cmd
}

func newCleanCmd(m *manager) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Clean up persistent configurations and links",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return m.clean(cmd.Context())
		},
	}
}
