package provider

import (
	"context"
	"fmt"
	"sync"
)

// Registry multiplexes an ordered set of providers behind the same
// two-operation contract. CallTool probes providers in registration order
// and the first to claim the name wins; registration rejects overlapping
// tool names so at most one provider can ever claim a call.
type Registry struct {
	mu        sync.RWMutex
	providers []Provider
	owners    map[string]string // tool name -> provider name
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		owners: make(map[string]string),
	}
}

// Register adds providers in order. Provider names must be unique and
// their catalogs must not overlap.
func (r *Registry) Register(ctx context.Context, providers ...Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range providers {
		for _, existing := range r.providers {
			if existing.Name() == p.Name() {
				return fmt.Errorf("%w: %q", ErrProviderExists, p.Name())
			}
		}

		listed, err := p.ListTools(ctx, ListToolsRequest{})
		if err != nil {
			return fmt.Errorf("list tools of %q: %w", p.Name(), err)
		}
		for _, t := range listed.Tools {
			if owner, taken := r.owners[t.Name]; taken {
				return fmt.Errorf("%w: %q already exposed by %q", ErrToolConflict, t.Name, owner)
			}
		}
		for _, t := range listed.Tools {
			r.owners[t.Name] = p.Name()
		}
		r.providers = append(r.providers, p)
	}
	return nil
}

// Providers returns the registered providers in registration order.
func (r *Registry) Providers() []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	providers := make([]Provider, len(r.providers))
	copy(providers, r.providers)
	return providers
}

// ListTools aggregates every provider's catalog in registration order.
func (r *Registry) ListTools(ctx context.Context, req ListToolsRequest) (ListToolsResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result ListToolsResult
	for _, p := range r.providers {
		listed, err := p.ListTools(ctx, req)
		if err != nil {
			return ListToolsResult{}, fmt.Errorf("list tools of %q: %w", p.Name(), err)
		}
		result.Tools = append(result.Tools, listed.Tools...)
	}
	return result, nil
}

// CallTool probes providers in registration order and returns the first
// handled outcome. When no provider claims the name the registry itself
// reports NotHandled, leaving the "unknown tool" decision to the host.
func (r *Registry) CallTool(ctx context.Context, req CallToolRequest) Outcome {
	r.mu.RLock()
	providers := r.providers
	r.mu.RUnlock()

	for _, p := range providers {
		if outcome := p.CallTool(ctx, req); outcome.IsHandled() {
			return outcome
		}
	}
	return Unhandled()
}
