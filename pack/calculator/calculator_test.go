package calculator_test

import (
	"context"
	"strings"
	"testing"

	"github.com/toolmesh/multitool/domain/provider"
	"github.com/toolmesh/multitool/pack/calculator"
)

func call(t *testing.T, name, arguments string) provider.Outcome {
	t.Helper()

	return calculator.Provider().CallTool(context.Background(), provider.CallToolRequest{
		Name:      name,
		Arguments: &arguments,
	})
}

func TestProvider_ListTools(t *testing.T) {
	t.Parallel()

	p := calculator.Provider()
	result, err := p.ListTools(context.Background(), provider.ListToolsRequest{})
	if err != nil {
		t.Fatalf("ListTools() error = %v", err)
	}

	want := []string{"add", "subtract", "multiply", "divide"}
	if len(result.Tools) != len(want) {
		t.Fatalf("ListTools() returned %d tools, want %d", len(result.Tools), len(want))
	}
	for i, name := range want {
		if result.Tools[i].Name != name {
			t.Errorf("tool[%d] = %q, want %q", i, result.Tools[i].Name, name)
		}
	}
}

func TestArithmetic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		tool      string
		arguments string
		want      string
	}{
		{name: "add integers", tool: "add", arguments: `{"a": 2, "b": 3}`, want: "5"},
		{name: "add fractions", tool: "add", arguments: `{"a": 0.1, "b": 0.2}`, want: "0.30000000000000004"},
		{name: "subtract", tool: "subtract", arguments: `{"a": 10, "b": 4}`, want: "6"},
		{name: "subtract below zero", tool: "subtract", arguments: `{"a": 1, "b": 3}`, want: "-2"},
		{name: "multiply", tool: "multiply", arguments: `{"a": 6, "b": 7}`, want: "42"},
		{name: "multiply by zero", tool: "multiply", arguments: `{"a": 123.4, "b": 0}`, want: "0"},
		{name: "divide exact", tool: "divide", arguments: `{"a": 10, "b": 4}`, want: "2.5"},
		{name: "divide integral result", tool: "divide", arguments: `{"a": 10, "b": 2}`, want: "5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			outcome := call(t, tt.tool, tt.arguments)
			if outcome.Disposition != provider.Succeeded {
				t.Fatalf("Disposition = %v, want %v (text %q)",
					outcome.Disposition, provider.Succeeded, outcome.Result.Text())
			}
			if got := outcome.Result.Text(); got != tt.want {
				t.Errorf("result = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDivisionByZero(t *testing.T) {
	t.Parallel()

	outcome := call(t, "divide", `{"a": 10, "b": 0}`)
	if outcome.Disposition != provider.Failed {
		t.Fatalf("Disposition = %v, want %v", outcome.Disposition, provider.Failed)
	}
	if got := outcome.Result.Text(); !strings.Contains(got, "Division by zero") {
		t.Errorf("result = %q, want division-by-zero diagnostic", got)
	}
}

func TestInvalidArguments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		arguments *string
		wantText  string
	}{
		{
			name:     "absent arguments",
			wantText: "Missing arguments",
		},
		{
			name:      "unparseable payload",
			arguments: strPtr(`{"a": 2,`),
			wantText:  "Invalid JSON arguments",
		},
		{
			name:      "missing operand",
			arguments: strPtr(`{"a": 2}`),
			wantText:  "Missing or invalid parameter 'b'",
		},
		{
			name:      "quoted numeral is not a number",
			arguments: strPtr(`{"a": "2", "b": 3}`),
			wantText:  "Missing or invalid parameter 'a'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			outcome := calculator.Provider().CallTool(context.Background(), provider.CallToolRequest{
				Name:      "add",
				Arguments: tt.arguments,
			})
			if outcome.Disposition != provider.Failed {
				t.Fatalf("Disposition = %v, want %v", outcome.Disposition, provider.Failed)
			}
			if got := outcome.Result.Text(); !strings.Contains(got, tt.wantText) {
				t.Errorf("result = %q, want substring %q", got, tt.wantText)
			}
		})
	}
}

func TestUnknownToolUnclaimed(t *testing.T) {
	t.Parallel()

	outcome := call(t, "modulo", `{"a": 10, "b": 3}`)
	if outcome.IsHandled() {
		t.Fatalf("Disposition = %v, want %v", outcome.Disposition, provider.NotHandled)
	}
}

func strPtr(s string) *string {
	return &s
}
