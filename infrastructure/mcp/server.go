// Package mcp exposes a provider registry over the Model Context Protocol.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mcpgo "github.com/felixgeelhaar/mcp-go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/toolmesh/multitool/domain/provider"
	"github.com/toolmesh/multitool/infrastructure/logging"
)

// ErrUnknownTool is returned when a call names a tool no provider claims.
// With registration done from the registry's own catalog this only
// happens if the registry changes underneath the server.
var ErrUnknownTool = errors.New("unknown tool")

// ToolServer wraps an MCP server to expose the tools of a provider registry.
type ToolServer struct {
	srv      *mcpgo.Server
	registry *provider.Registry
	tracer   trace.Tracer
	info     mcpgo.ServerInfo
}

// ToolServerConfig configures a tool MCP server.
type ToolServerConfig struct {
	// Name is the server name.
	Name string

	// Version is the server version.
	Version string

	// Registry holds the providers whose tools the server exposes.
	Registry *provider.Registry

	// Description is an optional server description.
	Description string

	// Instructions provides usage instructions for clients.
	Instructions string

	// Tracer records a span per invocation. Nil means no tracing.
	Tracer trace.Tracer
}

// NewToolServer creates an MCP server from a provider registry. Every
// tool of every registered provider is exposed under its catalog name.
func NewToolServer(ctx context.Context, cfg ToolServerConfig) (*ToolServer, error) {
	info := mcpgo.ServerInfo{
		Name:        cfg.Name,
		Version:     cfg.Version,
		Description: cfg.Description,
		Capabilities: mcpgo.Capabilities{
			Tools: true,
		},
	}

	var opts []mcpgo.Option
	if cfg.Instructions != "" {
		opts = append(opts, mcpgo.WithInstructions(cfg.Instructions))
	}

	tracer := cfg.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer(cfg.Name)
	}

	ts := &ToolServer{
		srv:      mcpgo.NewServer(info, opts...),
		registry: cfg.Registry,
		tracer:   tracer,
		info:     info,
	}

	if cfg.Registry != nil {
		if err := ts.registerTools(ctx); err != nil {
			return nil, err
		}
	}

	return ts, nil
}

// registerTools registers every tool the registry aggregates.
func (s *ToolServer) registerTools(ctx context.Context) error {
	listed, err := s.registry.ListTools(ctx, provider.ListToolsRequest{})
	if err != nil {
		return fmt.Errorf("list tools: %w", err)
	}

	for _, t := range listed.Tools {
		s.srv.Tool(t.Name).
			Description(t.Options.Description).
			Handler(s.handlerFor(t.Name))
	}

	logging.Info().
		Add(logging.Component("mcp")).
		Add(logging.ToolCount(len(listed.Tools))).
		Msg("tools registered")
	return nil
}

// handlerFor adapts registry dispatch to the mcp-go handler signature.
// A failed outcome surfaces as a handler error so the transport layer
// reports it as a tool error result rather than a protocol fault.
func (s *ToolServer) handlerFor(name string) func(context.Context, json.RawMessage) (string, error) {
	return func(ctx context.Context, input json.RawMessage) (string, error) {
		ctx, span := s.tracer.Start(ctx, "tool.call",
			trace.WithAttributes(attribute.String("tool.name", name)))
		defer span.End()

		var arguments *string
		if len(input) > 0 {
			raw := string(input)
			arguments = &raw
		}

		start := time.Now()
		outcome := s.registry.CallTool(ctx, provider.CallToolRequest{
			Name:      name,
			Arguments: arguments,
		})
		span.SetAttributes(attribute.String("tool.disposition", outcome.Disposition.String()))

		logging.Debug().
			Add(logging.ToolName(name)).
			Add(logging.Disposition(outcome.Disposition)).
			Add(logging.Duration(time.Since(start))).
			Msg("tool call dispatched")

		switch outcome.Disposition {
		case provider.Succeeded:
			return outcome.Result.Text(), nil
		case provider.Failed:
			msg := outcome.Result.Text()
			span.SetStatus(codes.Error, msg)
			return "", errors.New(msg)
		default:
			span.SetStatus(codes.Error, ErrUnknownTool.Error())
			return "", fmt.Errorf("%w: %s", ErrUnknownTool, name)
		}
	}
}

// Server returns the underlying mcp-go server.
func (s *ToolServer) Server() *mcpgo.Server {
	return s.srv
}

// ServeStdio runs the server over stdin/stdout.
func (s *ToolServer) ServeStdio(ctx context.Context, opts ...mcpgo.ServeOption) error {
	logging.Info().
		Add(logging.Component("mcp")).
		Add(logging.Transport("stdio")).
		Msg("serving")
	return mcpgo.ServeStdio(ctx, s.srv, opts...)
}

// ServeHTTP runs the server over HTTP with SSE.
func (s *ToolServer) ServeHTTP(ctx context.Context, addr string, opts ...mcpgo.HTTPOption) error {
	logging.Info().
		Add(logging.Component("mcp")).
		Add(logging.Transport("http")).
		Add(logging.Str("addr", addr)).
		Msg("serving")
	return mcpgo.ServeHTTP(ctx, s.srv, addr, opts...)
}

// QuickServe is a convenience function to create and run an MCP server over stdio.
func QuickServe(ctx context.Context, name, version string, registry *provider.Registry) error {
	srv, err := NewToolServer(ctx, ToolServerConfig{
		Name:     name,
		Version:  version,
		Registry: registry,
	})
	if err != nil {
		return err
	}
	return srv.ServeStdio(ctx)
}
