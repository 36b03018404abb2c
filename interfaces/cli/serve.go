package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/toolmesh/multitool/infrastructure/config"
	"github.com/toolmesh/multitool/infrastructure/logging"
	"github.com/toolmesh/multitool/infrastructure/mcp"
	"github.com/toolmesh/multitool/infrastructure/observability"
)

// serveOptions holds options for the serve command.
type serveOptions struct {
	configPath string
	transport  string
	addr       string
	logLevel   string
}

// newServeCmd creates the serve command.
func (a *App) newServeCmd() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tool providers over the Model Context Protocol",
		Long: `Serve every enabled tool pack behind a single MCP server.

Examples:
  # Serve over stdio with the built-in defaults
  multitool serve

  # Serve over HTTP with a configuration file
  multitool serve -c config.yaml --transport http --addr :9090`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file")
	cmd.Flags().StringVar(&opts.transport, "transport", "", "Transport (stdio or http, overrides config)")
	cmd.Flags().StringVar(&opts.addr, "addr", "", "Listen address for http transport (overrides config)")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level (overrides config)")

	return cmd
}

// serve runs the MCP server until the context is canceled.
func (a *App) serve(ctx context.Context, opts *serveOptions) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.transport != "" {
		cfg.Server.Transport = opts.transport
	}
	if opts.addr != "" {
		cfg.Server.Addr = opts.addr
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	obsOpts := []observability.Option{
		observability.WithServiceName(cfg.Server.Name),
		observability.WithServiceVersion(cfg.Server.Version),
	}
	if cfg.Tracing.Enabled && cfg.Tracing.Exporter == "stdout" {
		obsOpts = append(obsOpts, observability.WithStdoutTracing())
	}
	obs, err := observability.New(obsOpts...)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			logging.Warn().Add(logging.ErrorField(err)).Msg("tracing shutdown failed")
		}
	}()

	registry, err := buildRegistry(ctx, cfg)
	if err != nil {
		return err
	}

	srv, err := mcp.NewToolServer(ctx, mcp.ToolServerConfig{
		Name:         cfg.Server.Name,
		Version:      cfg.Server.Version,
		Instructions: cfg.Server.Instructions,
		Registry:     registry,
		Tracer:       obs.Tracer(),
	})
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}

	switch cfg.Server.Transport {
	case config.TransportHTTP:
		return srv.ServeHTTP(ctx, cfg.Server.Addr)
	default:
		return srv.ServeStdio(ctx)
	}
}
