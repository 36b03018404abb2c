// Package provider defines the two-operation contract every tool
// capability provider implements: tool discovery and tool invocation.
// A provider composes one immutable catalog with one dispatcher; the host
// probes providers with the same call and exactly one should claim it.
package provider

import (
	"context"

	"github.com/toolmesh/multitool/domain/tool"
)

// ListToolsRequest asks a provider for its catalog. Cursor is accepted for
// contract compatibility but ignored: catalogs are small and returned whole.
type ListToolsRequest struct {
	Cursor *string `json:"cursor,omitempty"`
}

// ListToolsResult carries the full tool list in stable declaration order.
// NextCursor is never produced by this design.
type ListToolsResult struct {
	Tools      []tool.Tool `json:"tools"`
	NextCursor *string     `json:"nextCursor,omitempty"`
}

// CallToolRequest names a tool and carries its JSON-encoded arguments.
// Arguments is nil when the caller supplied none.
type CallToolRequest struct {
	Name      string  `json:"name"`
	Arguments *string `json:"arguments,omitempty"`
}

// Provider is the contract between a tool capability provider and its host.
type Provider interface {
	// Name identifies the provider.
	Name() string

	// ListTools returns the provider's full catalog. Failure here is a
	// provider-initialization defect, not a validation failure.
	ListTools(ctx context.Context, req ListToolsRequest) (ListToolsResult, error)

	// CallTool invokes a tool by name. An unrecognized name yields a
	// NotHandled outcome so the host can route elsewhere; a recognized
	// name always yields a result, with internal failures converted to
	// error results rather than faults.
	CallTool(ctx context.Context, req CallToolRequest) Outcome
}
