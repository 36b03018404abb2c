// Package main provides deployctl, a manager for Cosmonic Control
// deployments of the multitool server.
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
	app := newApp(os.Stdout, os.Stderr, execRunner{}, kubeconfigClient)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := app.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newApp builds the deployctl command tree.
func newApp(stdout, stderr io.Writer, runner cmdRunner, clients clientFactory) *cobra.Command {
	m := &manager{
		runner:    runner,
		newClient: clients,
		stdout:    stdout,
	}

	root := &cobra.Command{
		Use:           "deployctl",
		Short:         "Manage Cosmonic Control deployments",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.AddCommand(
		newSetupCmd(m),
		newDeployCmd(m),
		newStatusCmd(m),
		newCleanCmd(m),
	)

	return root
}

func newSetupCmd(m *manager) *cobra.Command {
	var (
		cluster    string
		licenseKey string
	)

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Set up kind cluster and install Cosmonic Control",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return m.setup(cmd.Context(), cluster, licenseKey)
		},
	}

	cmd.Flags().StringVar(&cluster, "cluster", defaultClusterName, "Cluster name")
	cmd.Flags().StringVar(&licenseKey, "license-key", "", "Cosmonic license key (or set COSMONIC_LICENSE_KEY env var)")
	_ = cmd.MarkFlagRequired("license-key")

	return cmd
}

func newDeployCmd(m *manager) *cobra.Command {
	opts := &deployOptions{}

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy application to cluster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return m.deploy(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.deployType, "deploy-type", "d", "httptrigger", "Deployment type (httptrigger or deployment)")
	cmd.Flags().StringVarP(&opts.version, "version", "v", "latest", "Application version (can be overridden by --image)")
	cmd.Flags().StringVarP(&opts.namespace, "namespace", "n", "default", "Namespace")
	cmd.Flags().StringVar(&opts.appName, "app-name", defaultAppName, "Application name")
	cmd.Flags().StringVar(&opts.image, "image", "", "Full image reference, overrides --image-base and --version")
	cmd.Flags().StringVar(&opts.imageBase, "image-base", "ghcr.io/wasmcp/example-mcp", "Image base without tag")

	return cmd
}

func newStatusCmd(m *manager) *cobra.Command {
	var (
		namespace string
		appName   string
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check deployment status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return m.status(cmd.Context(), namespace, appName)
		},
	}

	cmd.Flags().StringVarP(&namespace, "namespace", "n", "default", "Namespace")
	cmd.Flags().StringVar(&appName, "app-name", defaultAppName, "Application name")

	return cmd
}

func newCleanCmd(m *manager) *cobra.Command {
	var (
		namespace string
		appName   string
	)

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Clean up deployment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return m.clean(cmd.Context(), namespace, appName)
		},
	}

	cmd.Flags().StringVarP(&namespace, "namespace", "n", "default", "Namespace")
	cmd.Flags().StringVar(&appName, "app-name", defaultAppName, "Application name")

	return cmd
}
