package tool

import "encoding/json"

// Kind is the expected JSON type of a required argument field.
type Kind int

const (
	Number Kind = iota // JSON number
	String             // JSON string
)

// String returns the JSON type name of the kind.
func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case String:
		return "string"
	default:
		return "unknown"
	}
}

// Field specifies one required argument field and its expected kind.
type Field struct {
	Name string
	Kind Kind
}

// NumberField specifies a required number field.
func NumberField(name string) Field {
	return Field{Name: name, Kind: Number}
}

// StringField specifies a required string field.
func StringField(name string) Field {
	return Field{Name: name, Kind: String}
}

// Values holds the extracted, correctly-typed argument values. Getters
// assume ParseArgs validated the field; a getter for an unparsed field
// returns the zero value.
type Values map[string]any

// Number returns the named field as a float64.
func (v Values) Number(name string) float64 {
	n, _ := v[name].(float64)
	return n
}

// String returns the named field as a string.
func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

// ParseArgs extracts and type-checks the given required fields from an
// optionally-absent JSON arguments payload. This is the only place type
// safety is enforced; operations downstream trust their inputs.
//
// Failures are classified: ErrMissingArguments when arguments is nil,
// InvalidJSONError when the string does not parse, and ParameterError when
// the payload is not an object, lacks a field, or the field's JSON type
// does not match (no coercion: a quoted numeral is not a number).
func ParseArgs(arguments *string, fields ...Field) (Values, error) {
	if arguments == nil {
		return nil, ErrMissingArguments
	}

	var parsed any
	if err := json.Unmarshal([]byte(*arguments), &parsed); err != nil {
		return nil, &InvalidJSONError{Detail: err.Error()}
	}

	obj, ok := parsed.(map[string]any)
	if !ok {
		if len(fields) == 0 {
			return Values{}, nil
		}
		return nil, &ParameterError{Field: fields[0].Name}
	}

	values := make(Values, len(fields))
	for _, f := range fields {
		raw, present := obj[f.Name]
		if !present {
			return nil, &ParameterError{Field: f.Name}
		}
		switch f.Kind {
		case Number:
			n, ok := raw.(float64)
			if !ok {
				return nil, &ParameterError{Field: f.Name}
			}
			values[f.Name] = n
		case String:
			s, ok := raw.(string)
			if !ok {
				return nil, &ParameterError{Field: f.Name}
			}
			values[f.Name] = s
		default:
			return nil, &ParameterError{Field: f.Name}
		}
	}
	return values, nil
}
