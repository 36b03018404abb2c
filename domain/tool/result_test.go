package tool_test

import (
	"encoding/json"
	"testing"

	"github.com/toolmesh/multitool/domain/tool"
)

func TestTextResult(t *testing.T) {
	t.Parallel()

	result := tool.TextResult("5")

	if result.IsError {
		t.Error("TextResult() IsError = true, want false")
	}
	if len(result.Content) != 1 {
		t.Fatalf("TextResult() content length = %d, want 1", len(result.Content))
	}
	if result.Content[0].Type != tool.ContentBlockText {
		t.Errorf("content type = %q, want %q", result.Content[0].Type, tool.ContentBlockText)
	}
	if got := result.Text(); got != "5" {
		t.Errorf("Text() = %q, want %q", got, "5")
	}
}

func TestErrorResult(t *testing.T) {
	t.Parallel()

	result := tool.ErrorResult("Missing arguments")

	if !result.IsError {
		t.Error("ErrorResult() IsError = false, want true")
	}
	if got := result.Text(); got != "Missing arguments" {
		t.Errorf("Text() = %q, want %q", got, "Missing arguments")
	}
}

func TestCallToolResult_WireShape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		result     tool.CallToolResult
		wantFields map[string]bool // field name -> must be present
	}{
		{
			name:   "success omits error flag",
			result: tool.TextResult("ok"),
			wantFields: map[string]bool{
				"content": true,
				"isError": false,
			},
		},
		{
			name:   "failure carries error flag",
			result: tool.ErrorResult("boom"),
			wantFields: map[string]bool{
				"content": true,
				"isError": true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, err := json.Marshal(tt.result)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}

			var wire map[string]json.RawMessage
			if err := json.Unmarshal(data, &wire); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}

			for field, want := range tt.wantFields {
				if _, present := wire[field]; present != want {
					t.Errorf("field %q present = %v, want %v", field, present, want)
				}
			}
		})
	}
}

func TestCallToolResult_TextOnEmptyContent(t *testing.T) {
	t.Parallel()

	var result tool.CallToolResult
	if got := result.Text(); got != "" {
		t.Errorf("Text() = %q, want empty", got)
	}
}
