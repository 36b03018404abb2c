// Package stringutil provides the string transform tool capability provider.
package stringutil

import (
	"context"
	"fmt"
	"strings"

	"github.com/toolmesh/multitool/domain/provider"
	"github.com/toolmesh/multitool/domain/tool"
)

// ProviderName identifies the string transform provider.
const ProviderName = "string-utils"

// Provider returns the string transform provider with its fixed tool set.
func Provider() *provider.Dispatcher {
	return provider.MustNew(ProviderName, catalog(), handlers())
}

func catalog() *provider.Catalog {
	return provider.MustCatalog(
		tool.New("uppercase",
			textSchema("Text to convert to uppercase"),
			tool.Options{
				Title:       "Uppercase",
				Description: "Convert text to uppercase",
				Annotations: pureAnnotations(),
			}),
		tool.New("lowercase",
			textSchema("Text to convert to lowercase"),
			tool.Options{
				Title:       "Lowercase",
				Description: "Convert text to lowercase",
				Annotations: pureAnnotations(),
			}),
		tool.New("reverse",
			textSchema("Text to reverse"),
			tool.Options{
				Title:       "Reverse",
				Description: "Reverse a string",
				Annotations: pureAnnotations(),
			}),
		tool.New("word_count",
			textSchema("Text to count words in"),
			tool.Options{
				Title:       "Word Count",
				Description: "Count words in text",
				Annotations: pureAnnotations(),
			}),
	)
}

func handlers() map[string]provider.Handler {
	return map[string]provider.Handler{
		"uppercase":  textOp(strings.ToUpper),
		"lowercase":  textOp(strings.ToLower),
		"reverse":    textOp(reverse),
		"word_count": textOp(wordCount),
	}
}

func textSchema(description string) []byte {
	return tool.ObjectSchema(map[string]tool.Property{
		"text": tool.StringProperty(description),
	}, []string{"text"})
}

func pureAnnotations() *tool.Annotations {
	return &tool.Annotations{ReadOnly: true, Idempotent: true}
}

// textOp wraps a pure string transform behind argument parsing.
func textOp(op func(string) string) provider.Handler {
	return func(_ context.Context, arguments *string) (string, error) {
		args, err := tool.ParseArgs(arguments, tool.StringField("text"))
		if err != nil {
			return "", err
		}
		return op(args.String("text")), nil
	}
}

// reverse reverses the sequence of characters. The unit of reversal is a
// rune, not a byte, so multi-byte text stays intact.
func reverse(text string) string {
	runes := []rune(text)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// wordCount counts non-empty tokens between runs of whitespace.
func wordCount(text string) string {
	return fmt.Sprintf("%d words", len(strings.Fields(text)))
}
