// Package sysinfo provides the system utility tool capability provider.
package sysinfo

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/toolmesh/multitool/domain/provider"
	"github.com/toolmesh/multitool/domain/tool"
)

// ProviderName identifies the system utility provider.
const ProviderName = "system-info"

// ErrNotText is reported when decoded base64 bytes are not valid text.
var ErrNotText = errors.New("Decoded data is not valid UTF-8 text")

// Provider returns the system utility provider backed by the system clock
// and crypto/rand UUIDs.
func Provider() *provider.Dispatcher {
	return ProviderWithSource(SystemSource())
}

// ProviderWithSource returns the provider with a custom clock/randomness
// source. Tests use this to make timestamp and random_uuid deterministic.
func ProviderWithSource(src Source) *provider.Dispatcher {
	return provider.MustNew(ProviderName, catalog(), handlers(src))
}

func catalog() *provider.Catalog {
	return provider.MustCatalog(
		tool.New("timestamp",
			tool.EmptySchema(),
			tool.Options{
				Title:       "Timestamp",
				Description: "Get current Unix timestamp",
				Annotations: &tool.Annotations{ReadOnly: true},
			}),
		tool.New("random_uuid",
			tool.EmptySchema(),
			tool.Options{
				Title:       "Random UUID",
				Description: "Generate a random UUID v4",
				Annotations: &tool.Annotations{ReadOnly: true},
			}),
		tool.New("base64_encode",
			textSchema("Text to encode to base64"),
			tool.Options{
				Title:       "Base64 Encode",
				Description: "Encode string to base64",
				Annotations: &tool.Annotations{ReadOnly: true, Idempotent: true},
			}),
		tool.New("base64_decode",
			textSchema("Base64 text to decode"),
			tool.Options{
				Title:       "Base64 Decode",
				Description: "Decode base64 to string",
				Annotations: &tool.Annotations{ReadOnly: true, Idempotent: true},
			}),
	)
}

func handlers(src Source) map[string]provider.Handler {
	return map[string]provider.Handler{
		"timestamp":     timestamp(src),
		"random_uuid":   randomUUID(src),
		"base64_encode": base64Encode,
		"base64_decode": base64Decode,
	}
}

func textSchema(description string) []byte {
	return tool.ObjectSchema(map[string]tool.Property{
		"text": tool.StringProperty(description),
	}, []string{"text"})
}

// timestamp reports whole seconds since the Unix epoch. Arguments are
// ignored; the tool takes no parameters.
func timestamp(src Source) provider.Handler {
	return func(_ context.Context, _ *string) (string, error) {
		return strconv.FormatInt(src.Now().Unix(), 10), nil
	}
}

func randomUUID(src Source) provider.Handler {
	return func(_ context.Context, _ *string) (string, error) {
		return src.UUID(), nil
	}
}

func base64Encode(_ context.Context, arguments *string) (string, error) {
	args, err := tool.ParseArgs(arguments, tool.StringField("text"))
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString([]byte(args.String("text"))), nil
}

// base64Decode reverses base64_encode and additionally requires the
// decoded bytes to be valid text.
func base64Decode(_ context.Context, arguments *string) (string, error) {
	args, err := tool.ParseArgs(arguments, tool.StringField("text"))
	if err != nil {
		return "", err
	}
	decoded, err := base64.StdEncoding.DecodeString(args.String("text"))
	if err != nil {
		return "", fmt.Errorf("Invalid base64: %v", err)
	}
	if !utf8.Valid(decoded) {
		return "", ErrNotText
	}
	return string(decoded), nil
}
