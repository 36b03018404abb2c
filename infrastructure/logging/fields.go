package logging

import (
	"time"

	"github.com/felixgeelhaar/bolt/v3"

	"github.com/toolmesh/multitool/domain/provider"
)

// Field is a function that applies structured data to a log event.
type Field func(*bolt.Event) *bolt.Event

// Common field constructors for tool dispatch logging.

// ProviderName adds a provider name field.
func ProviderName(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("provider", name)
	}
}

// ToolName adds a tool name field.
func ToolName(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("tool", name)
	}
}

// Disposition adds the dispatch disposition field.
func Disposition(d provider.Disposition) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("disposition", d.String())
	}
}

// ToolCount adds a tool count field.
func ToolCount(count int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("tool_count", count)
	}
}

// Transport adds a transport field.
func Transport(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("transport", name)
	}
}

// Duration adds a duration field in milliseconds.
func Duration(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("duration_ms", d.Milliseconds())
	}
}

// ErrorField adds an error field.
func ErrorField(err error) Field {
	return func(e *bolt.Event) *bolt.Event {
		if err == nil {
			return e
		}
		return e.Err(err)
	}
}

// Component adds a component field for categorization.
func Component(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("component", name)
	}
}

// Operation adds an operation field.
func Operation(op string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("operation", op)
	}
}

// Str adds a string field with custom key.
func Str(key, value string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str(key, value)
	}
}
