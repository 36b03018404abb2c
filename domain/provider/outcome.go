package provider

import "github.com/toolmesh/multitool/domain/tool"

// Disposition classifies how a provider handled an invocation.
type Disposition int

const (
	NotHandled Disposition = iota // name matched none of the provider's tools
	Succeeded                     // handled, result carries a value
	Failed                        // handled, result carries a diagnostic
)

// String returns the string representation of the disposition.
func (d Disposition) String() string {
	switch d {
	case NotHandled:
		return "not_handled"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the three-way result of an invocation. Handled outcomes carry
// a result envelope; a NotHandled outcome carries none and signals the
// host to try other providers.
type Outcome struct {
	Disposition Disposition
	Result      tool.CallToolResult
}

// Handled returns an outcome for a recognized tool, deriving the
// disposition from the result's error flag.
func Handled(result tool.CallToolResult) Outcome {
	d := Succeeded
	if result.IsError {
		d = Failed
	}
	return Outcome{Disposition: d, Result: result}
}

// Unhandled returns the outcome for an unrecognized tool name.
func Unhandled() Outcome {
	return Outcome{Disposition: NotHandled}
}

// IsHandled reports whether the provider claimed the invocation.
func (o Outcome) IsHandled() bool {
	return o.Disposition != NotHandled
}
