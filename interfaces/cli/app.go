// Package cli provides the command-line interface for the multitool server.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	multitool "github.com/toolmesh/multitool"
	"github.com/toolmesh/multitool/domain/provider"
	"github.com/toolmesh/multitool/infrastructure/config"
	"github.com/toolmesh/multitool/pack/calculator"
	"github.com/toolmesh/multitool/pack/stringutil"
	"github.com/toolmesh/multitool/pack/sysinfo"
)

// Version information set at build time.
var (
	Version   = multitool.Version
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// App represents the CLI application.
type App struct {
	root   *cobra.Command
	stdout io.Writer
	stderr io.Writer
}

// New creates a new CLI application.
func New() *App {
	app := &App{
		stdout: os.Stdout,
		stderr: os.Stderr,
	}

	app.root = &cobra.Command{
		Use:   "multitool",
		Short: "Pluggable tool capability server",
		Long: `multitool exposes a family of tool capability providers (arithmetic,
string transforms, system utilities) behind a uniform discovery and
invocation contract, served over the Model Context Protocol.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	app.root.AddCommand(
		app.newVersionCmd(),
		app.newServeCmd(),
		app.newListToolsCmd(),
		app.newCallCmd(),
	)

	return app
}

// WithOutput sets custom output writers.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	a.root.SetOut(stdout)
	a.root.SetErr(stderr)
	return a
}

// Execute runs the CLI application.
func (a *App) Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return a.root.ExecuteContext(ctx)
}

// ExecuteWithArgs runs the CLI with specific arguments (useful for testing).
func (a *App) ExecuteWithArgs(ctx context.Context, args []string) error {
	a.root.SetArgs(args)
	return a.Execute(ctx)
}

// newVersionCmd creates the version command.
func (a *App) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "multitool version %s\n", Version)
			fmt.Fprintf(a.stdout, "  Git commit: %s\n", GitCommit)
			fmt.Fprintf(a.stdout, "  Build date: %s\n", BuildDate)
		},
	}
}

// loadConfig resolves the effective configuration: the file when given,
// built-in defaults otherwise.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.NewLoader().LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// buildRegistry assembles the provider registry from the enabled packs.
func buildRegistry(ctx context.Context, cfg *config.Config) (*provider.Registry, error) {
	var providers []provider.Provider
	if cfg.Packs.Calculator {
		providers = append(providers, calculator.Provider())
	}
	if cfg.Packs.StringUtil {
		providers = append(providers, stringutil.Provider())
	}
	if cfg.Packs.SysInfo {
		providers = append(providers, sysinfo.Provider())
	}

	registry := provider.NewRegistry()
	if err := registry.Register(ctx, providers...); err != nil {
		return nil, fmt.Errorf("failed to assemble providers: %w", err)
	}
	return registry, nil
}
