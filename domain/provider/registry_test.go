package provider_test

import (
	"context"
	"errors"
	"testing"

	"github.com/toolmesh/multitool/domain/provider"
	"github.com/toolmesh/multitool/domain/tool"
)

func staticProvider(t *testing.T, name string, tools ...string) provider.Provider {
	t.Helper()

	descriptors := make([]tool.Tool, len(tools))
	handlers := make(map[string]provider.Handler, len(tools))
	for i, toolName := range tools {
		descriptors[i] = descriptor(toolName)
		reply := name + "/" + toolName
		handlers[toolName] = func(context.Context, *string) (string, error) {
			return reply, nil
		}
	}
	p, err := provider.New(name, provider.MustCatalog(descriptors...), handlers)
	if err != nil {
		t.Fatalf("New(%q) error = %v", name, err)
	}
	return p
}

func TestRegistry_Register(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("duplicate provider name rejected", func(t *testing.T) {
		t.Parallel()

		registry := provider.NewRegistry()
		if err := registry.Register(ctx, staticProvider(t, "calc", "add")); err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		err := registry.Register(ctx, staticProvider(t, "calc", "negate"))
		if !errors.Is(err, provider.ErrProviderExists) {
			t.Fatalf("Register() error = %v, want %v", err, provider.ErrProviderExists)
		}
	})

	t.Run("overlapping tool names rejected", func(t *testing.T) {
		t.Parallel()

		registry := provider.NewRegistry()
		if err := registry.Register(ctx, staticProvider(t, "calc", "add")); err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		err := registry.Register(ctx, staticProvider(t, "other", "add"))
		if !errors.Is(err, provider.ErrToolConflict) {
			t.Fatalf("Register() error = %v, want %v", err, provider.ErrToolConflict)
		}
		if got := len(registry.Providers()); got != 1 {
			t.Errorf("Providers() length after rejected registration = %d, want 1", got)
		}
	})
}

func TestRegistry_ListTools(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	registry := provider.NewRegistry()
	err := registry.Register(ctx,
		staticProvider(t, "calc", "add", "subtract"),
		staticProvider(t, "strings", "reverse"),
	)
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	result, err := registry.ListTools(ctx, provider.ListToolsRequest{})
	if err != nil {
		t.Fatalf("ListTools() error = %v", err)
	}

	want := []string{"add", "subtract", "reverse"}
	if len(result.Tools) != len(want) {
		t.Fatalf("ListTools() returned %d tools, want %d", len(result.Tools), len(want))
	}
	for i, name := range want {
		if result.Tools[i].Name != name {
			t.Errorf("tool[%d] = %q, want %q", i, result.Tools[i].Name, name)
		}
	}
}

func TestRegistry_CallTool(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	registry := provider.NewRegistry()
	err := registry.Register(ctx,
		staticProvider(t, "calc", "add"),
		staticProvider(t, "strings", "reverse"),
	)
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []struct {
		name     string
		toolName string
		wantText string
	}{
		{name: "first provider claims its tool", toolName: "add", wantText: "calc/add"},
		{name: "later provider claims its tool", toolName: "reverse", wantText: "strings/reverse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			outcome := registry.CallTool(ctx, provider.CallToolRequest{Name: tt.toolName})
			if outcome.Disposition != provider.Succeeded {
				t.Fatalf("Disposition = %v, want %v", outcome.Disposition, provider.Succeeded)
			}
			if got := outcome.Result.Text(); got != tt.wantText {
				t.Errorf("result text = %q, want %q", got, tt.wantText)
			}
		})
	}

	t.Run("unknown tool stays unclaimed", func(t *testing.T) {
		t.Parallel()

		outcome := registry.CallTool(ctx, provider.CallToolRequest{Name: "missing"})
		if outcome.IsHandled() {
			t.Fatalf("Disposition = %v, want %v", outcome.Disposition, provider.NotHandled)
		}
	})
}
