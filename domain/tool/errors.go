package tool

import (
	"errors"
	"fmt"
)

// Domain errors for argument parsing. The messages are wire-visible: the
// dispatcher forwards them verbatim as error-result diagnostics, so they
// keep the exact phrasing callers are tested against.
var (
	// ErrMissingArguments indicates the arguments field itself was absent.
	ErrMissingArguments = errors.New("Missing arguments")
)

// InvalidJSONError indicates the arguments string did not parse as JSON.
type InvalidJSONError struct {
	Detail string
}

func (e *InvalidJSONError) Error() string {
	return fmt.Sprintf("Invalid JSON arguments: %s", e.Detail)
}

// ParameterError indicates the parsed arguments were not an object, lacked
// a required field, or carried a value of the wrong JSON type.
type ParameterError struct {
	Field string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("Missing or invalid parameter '%s'", e.Field)
}
