package provider

import "errors"

// Domain errors for provider construction and registration. These surface
// at provider start, never during dispatch.
var (
	// ErrEmptyToolName indicates a catalog tool with an empty name.
	ErrEmptyToolName = errors.New("tool name cannot be empty")

	// ErrDuplicateTool indicates two catalog tools share a name.
	ErrDuplicateTool = errors.New("duplicate tool name")

	// ErrNoHandler indicates a catalog tool without a handler.
	ErrNoHandler = errors.New("tool has no handler")

	// ErrUnknownHandler indicates a handler for a tool not in the catalog.
	ErrUnknownHandler = errors.New("handler has no catalog tool")

	// ErrProviderExists indicates a provider name already registered.
	ErrProviderExists = errors.New("provider already registered")

	// ErrToolConflict indicates two providers expose the same tool name.
	ErrToolConflict = errors.New("tool name exposed by another provider")
)
