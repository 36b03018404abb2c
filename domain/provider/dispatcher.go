package provider

import (
	"context"
	"fmt"

	"github.com/toolmesh/multitool/domain/tool"
)

// Handler executes one tool against its raw argument payload. It returns
// the value's textual representation, or an error whose message becomes
// the diagnostic of an error result. Handlers receive arguments exactly as
// the caller sent them; argument parsing happens inside the handler via
// tool.ParseArgs so each tool enforces its own schema.
type Handler func(ctx context.Context, arguments *string) (string, error)

// Dispatcher routes invocations by name to the matching handler and wraps
// every outcome in the uniform response envelope. It implements Provider.
type Dispatcher struct {
	name     string
	catalog  *Catalog
	handlers map[string]Handler
}

// New creates a provider from a catalog and its handler table. Every
// catalog tool must have a handler and every handler a catalog tool;
// a mismatch is a provider-initialization defect.
func New(name string, catalog *Catalog, handlers map[string]Handler) (*Dispatcher, error) {
	for _, toolName := range catalog.Names() {
		h, ok := handlers[toolName]
		if !ok || h == nil {
			return nil, fmt.Errorf("%w: %q", ErrNoHandler, toolName)
		}
	}
	for toolName := range handlers {
		if !catalog.Has(toolName) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownHandler, toolName)
		}
	}
	return &Dispatcher{
		name:     name,
		catalog:  catalog,
		handlers: handlers,
	}, nil
}

// MustNew creates a provider or panics. Intended for the static provider
// constructors of the concrete packs.
func MustNew(name string, catalog *Catalog, handlers map[string]Handler) *Dispatcher {
	d, err := New(name, catalog, handlers)
	if err != nil {
		panic(err)
	}
	return d
}

// Name returns the provider name.
func (d *Dispatcher) Name() string {
	return d.name
}

// Catalog returns the provider's catalog.
func (d *Dispatcher) Catalog() *Catalog {
	return d.catalog
}

// ListTools returns the full catalog in declaration order. A request
// cursor is accepted but ignored and NextCursor is never set.
func (d *Dispatcher) ListTools(_ context.Context, _ ListToolsRequest) (ListToolsResult, error) {
	return ListToolsResult{Tools: d.catalog.Tools()}, nil
}

// CallTool routes an invocation by name. An unrecognized name yields
// Unhandled; for a recognized name every internal failure, including a
// handler panic, degrades to a readable error result.
func (d *Dispatcher) CallTool(ctx context.Context, req CallToolRequest) Outcome {
	handler, ok := d.handlers[req.Name]
	if !ok {
		return Unhandled()
	}

	text, err := safeCall(ctx, handler, req.Arguments)
	if err != nil {
		return Handled(tool.ErrorResult(err.Error()))
	}
	return Handled(tool.TextResult(text))
}

// safeCall invokes a handler, converting a panic into an error so a
// malformed call can never escape the dispatch boundary as a fault.
func safeCall(ctx context.Context, handler Handler, arguments *string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tool execution panic: %v", r)
		}
	}()
	return handler(ctx, arguments)
}
