package tool

import "encoding/json"

// Property describes one accepted parameter in an object schema.
type Property struct {
	// Type is the JSON type name ("number", "string").
	Type string `json:"type"`

	// Description explains the parameter to callers.
	Description string `json:"description,omitempty"`
}

// objectSchema is the wire shape of an input schema.
type objectSchema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required"`
}

// ObjectSchema returns a literal JSON Schema object with the given
// properties and required field names. Properties and required are
// always emitted, even when empty, matching the descriptors of
// parameterless tools.
func ObjectSchema(properties map[string]Property, required []string) json.RawMessage {
	if properties == nil {
		properties = map[string]Property{}
	}
	if required == nil {
		required = []string{}
	}
	raw, _ := json.Marshal(objectSchema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	})
	return raw
}

// EmptySchema returns the schema for a tool that takes no parameters.
func EmptySchema() json.RawMessage {
	return ObjectSchema(nil, nil)
}

// NumberProperty returns a number-typed property with a description.
func NumberProperty(description string) Property {
	return Property{Type: "number", Description: description}
}

// StringProperty returns a string-typed property with a description.
func StringProperty(description string) Property {
	return Property{Type: "string", Description: description}
}
