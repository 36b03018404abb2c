package tool_test

import (
	"errors"
	"testing"

	"github.com/toolmesh/multitool/domain/tool"
)

func strPtr(s string) *string {
	return &s
}

func TestParseArgs_Classification(t *testing.T) {
	t.Parallel()

	numFields := []tool.Field{tool.NumberField("a"), tool.NumberField("b")}

	tests := []struct {
		name      string
		arguments *string
		fields    []tool.Field
		wantMsg   string
	}{
		{
			name:      "absent arguments",
			arguments: nil,
			fields:    numFields,
			wantMsg:   "Missing arguments",
		},
		{
			name:      "unparseable JSON",
			arguments: strPtr("{not json"),
			fields:    numFields,
		},
		{
			name:      "array instead of object",
			arguments: strPtr(`[1, 2]`),
			fields:    numFields,
			wantMsg:   "Missing or invalid parameter 'a'",
		},
		{
			name:      "scalar instead of object",
			arguments: strPtr(`42`),
			fields:    numFields,
			wantMsg:   "Missing or invalid parameter 'a'",
		},
		{
			name:      "missing field",
			arguments: strPtr(`{"a": 1}`),
			fields:    numFields,
			wantMsg:   "Missing or invalid parameter 'b'",
		},
		{
			name:      "quoted numeral is not a number",
			arguments: strPtr(`{"a": "2", "b": 3}`),
			fields:    numFields,
			wantMsg:   "Missing or invalid parameter 'a'",
		},
		{
			name:      "number is not a string",
			arguments: strPtr(`{"text": 7}`),
			fields:    []tool.Field{tool.StringField("text")},
			wantMsg:   "Missing or invalid parameter 'text'",
		},
		{
			name:      "null field value",
			arguments: strPtr(`{"text": null}`),
			fields:    []tool.Field{tool.StringField("text")},
			wantMsg:   "Missing or invalid parameter 'text'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := tool.ParseArgs(tt.arguments, tt.fields...)
			if err == nil {
				t.Fatal("ParseArgs() error = nil, want classified failure")
			}
			if tt.wantMsg != "" && err.Error() != tt.wantMsg {
				t.Errorf("ParseArgs() error = %q, want %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestParseArgs_ErrorKinds(t *testing.T) {
	t.Parallel()

	if _, err := tool.ParseArgs(nil, tool.NumberField("a")); !errors.Is(err, tool.ErrMissingArguments) {
		t.Errorf("ParseArgs(nil) error = %v, want ErrMissingArguments", err)
	}

	var invalidJSON *tool.InvalidJSONError
	if _, err := tool.ParseArgs(strPtr("{"), tool.NumberField("a")); !errors.As(err, &invalidJSON) {
		t.Errorf("ParseArgs({) error = %v, want InvalidJSONError", err)
	}

	var paramErr *tool.ParameterError
	if _, err := tool.ParseArgs(strPtr(`{}`), tool.NumberField("a")); !errors.As(err, &paramErr) {
		t.Fatalf("ParseArgs({}) error = %v, want ParameterError", err)
	}
	if paramErr.Field != "a" {
		t.Errorf("ParameterError.Field = %q, want %q", paramErr.Field, "a")
	}
}

func TestParseArgs_ExtractsTypedValues(t *testing.T) {
	t.Parallel()

	args, err := tool.ParseArgs(strPtr(`{"a": 2.5, "b": -3, "text": "hello"}`),
		tool.NumberField("a"),
		tool.NumberField("b"),
		tool.StringField("text"),
	)
	if err != nil {
		t.Fatalf("ParseArgs() error = %v", err)
	}

	if got := args.Number("a"); got != 2.5 {
		t.Errorf("Number(a) = %v, want 2.5", got)
	}
	if got := args.Number("b"); got != -3 {
		t.Errorf("Number(b) = %v, want -3", got)
	}
	if got := args.String("text"); got != "hello" {
		t.Errorf("String(text) = %q, want %q", got, "hello")
	}
}

func TestParseArgs_ExtraFieldsIgnored(t *testing.T) {
	t.Parallel()

	args, err := tool.ParseArgs(strPtr(`{"a": 1, "unknown": true}`), tool.NumberField("a"))
	if err != nil {
		t.Fatalf("ParseArgs() error = %v", err)
	}
	if got := args.Number("a"); got != 1 {
		t.Errorf("Number(a) = %v, want 1", got)
	}
}

func TestParseArgs_NoFieldsRequired(t *testing.T) {
	t.Parallel()

	// A parameterless parse accepts any valid JSON payload.
	for _, payload := range []string{`{}`, `[]`, `"ignored"`} {
		if _, err := tool.ParseArgs(strPtr(payload)); err != nil {
			t.Errorf("ParseArgs(%s) error = %v, want nil", payload, err)
		}
	}
}
