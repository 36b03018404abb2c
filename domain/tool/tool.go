// Package tool provides the domain model for provider tools: the
// self-describing descriptor a caller discovers, the argument parser that
// enforces the descriptor's schema, and the result envelope every
// invocation returns.
package tool

import "encoding/json"

// Tool describes a single callable operation exposed by a provider.
// The descriptor is immutable after catalog construction; InputSchema is
// the wire-visible contract a caller uses to build valid arguments.
type Tool struct {
	// Name is the stable identifier, unique within a provider.
	Name string `json:"name"`

	// InputSchema is a literal JSON Schema object describing accepted
	// parameters. It must match exactly what the argument parser accepts.
	InputSchema json.RawMessage `json:"inputSchema"`

	// Options carries human-facing metadata.
	Options Options `json:"options"`
}

// Options holds the human metadata attached to a tool descriptor.
type Options struct {
	// Title is a short display name.
	Title string `json:"title,omitempty"`

	// Description explains what the tool does.
	Description string `json:"description,omitempty"`

	// OutputSchema optionally describes the result shape.
	OutputSchema json.RawMessage `json:"outputSchema,omitempty"`

	// Annotations describe tool behavior for hosts.
	Annotations *Annotations `json:"annotations,omitempty"`

	// Meta holds arbitrary additional metadata.
	Meta map[string]any `json:"_meta,omitempty"`
}

// Annotations describe tool behavior hints for the host.
type Annotations struct {
	// ReadOnly indicates the tool has no side effects.
	ReadOnly bool `json:"readOnly"`

	// Idempotent indicates repeated calls with the same input yield the
	// same result.
	Idempotent bool `json:"idempotent"`
}

// New creates a tool descriptor.
func New(name string, inputSchema json.RawMessage, opts Options) Tool {
	return Tool{
		Name:        name,
		InputSchema: inputSchema,
		Options:     opts,
	}
}
