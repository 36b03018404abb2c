package tool

import "encoding/json"

// ContentBlockText is the type tag of a text content block.
const ContentBlockText = "text"

// ContentBlock is one typed unit of a result's payload. Only the text
// variant is produced by this module.
type ContentBlock struct {
	// Type is the variant tag.
	Type string `json:"type"`

	// Text is the payload of the text variant.
	Text string `json:"text"`
}

// TextBlock returns a text content block.
func TextBlock(text string) ContentBlock {
	return ContentBlock{Type: ContentBlockText, Text: text}
}

// CallToolResult is the uniform response envelope of a tool invocation.
// Success and failure use the same textual slot; callers branch on IsError
// to interpret the text, not on its shape.
type CallToolResult struct {
	// Content is the ordered result payload; never empty.
	Content []ContentBlock `json:"content"`

	// IsError marks the content as a diagnostic rather than a value.
	// Absent and false are the same state.
	IsError bool `json:"isError,omitempty"`

	// StructuredContent is an optional machine-readable payload, unused
	// by the providers in this module.
	StructuredContent json.RawMessage `json:"structuredContent,omitempty"`
}

// TextResult wraps a computed value's textual representation in a
// successful envelope.
func TextResult(text string) CallToolResult {
	return CallToolResult{
		Content: []ContentBlock{TextBlock(text)},
	}
}

// ErrorResult wraps a human-readable diagnostic in a failed envelope.
func ErrorResult(message string) CallToolResult {
	return CallToolResult{
		Content: []ContentBlock{TextBlock(message)},
		IsError: true,
	}
}

// Text returns the text of the first content block, the conventional slot
// for both values and diagnostics.
func (r CallToolResult) Text() string {
	if len(r.Content) == 0 {
		return ""
	}
	return r.Content[0].Text
}
