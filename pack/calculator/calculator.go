// Package calculator provides the arithmetic tool capability provider.
package calculator

import (
	"context"
	"errors"
	"strconv"

	"github.com/toolmesh/multitool/domain/provider"
	"github.com/toolmesh/multitool/domain/tool"
)

// ProviderName identifies the arithmetic provider.
const ProviderName = "calculator"

// ErrDivisionByZero is reported when the divisor is exactly zero. The check
// happens before dividing so the operation never produces Inf or NaN.
var ErrDivisionByZero = errors.New("Error: Division by zero")

// Provider returns the arithmetic provider with its fixed tool set.
func Provider() *provider.Dispatcher {
	return provider.MustNew(ProviderName, catalog(), handlers())
}

func catalog() *provider.Catalog {
	return provider.MustCatalog(
		tool.New("add",
			operandSchema("First number", "Second number"),
			tool.Options{
				Title:       "Add",
				Description: "Add two numbers together",
				Annotations: pureAnnotations(),
			}),
		tool.New("subtract",
			operandSchema("Number to subtract from", "Number to subtract"),
			tool.Options{
				Title:       "Subtract",
				Description: "Subtract b from a",
				Annotations: pureAnnotations(),
			}),
		tool.New("multiply",
			operandSchema("First number", "Second number"),
			tool.Options{
				Title:       "Multiply",
				Description: "Multiply two numbers",
				Annotations: pureAnnotations(),
			}),
		tool.New("divide",
			operandSchema("Dividend", "Divisor"),
			tool.Options{
				Title:       "Divide",
				Description: "Divide a by b",
				Annotations: pureAnnotations(),
			}),
	)
}

func handlers() map[string]provider.Handler {
	return map[string]provider.Handler{
		"add":      binaryOp(func(a, b float64) float64 { return a + b }),
		"subtract": binaryOp(func(a, b float64) float64 { return a - b }),
		"multiply": binaryOp(func(a, b float64) float64 { return a * b }),
		"divide":   divide,
	}
}

// operandSchema declares the two required number parameters every
// arithmetic tool accepts.
func operandSchema(descA, descB string) []byte {
	return tool.ObjectSchema(map[string]tool.Property{
		"a": tool.NumberProperty(descA),
		"b": tool.NumberProperty(descB),
	}, []string{"a", "b"})
}

func pureAnnotations() *tool.Annotations {
	return &tool.Annotations{ReadOnly: true, Idempotent: true}
}

// binaryOp wraps a total arithmetic operation behind argument parsing.
func binaryOp(op func(a, b float64) float64) provider.Handler {
	return func(_ context.Context, arguments *string) (string, error) {
		args, err := tool.ParseArgs(arguments, tool.NumberField("a"), tool.NumberField("b"))
		if err != nil {
			return "", err
		}
		return formatNumber(op(args.Number("a"), args.Number("b"))), nil
	}
}

func divide(_ context.Context, arguments *string) (string, error) {
	args, err := tool.ParseArgs(arguments, tool.NumberField("a"), tool.NumberField("b"))
	if err != nil {
		return "", err
	}
	b := args.Number("b")
	if b == 0 {
		return "", ErrDivisionByZero
	}
	return formatNumber(args.Number("a") / b), nil
}

// formatNumber renders the shortest decimal representation that
// round-trips, so integral results print without a fractional part.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
