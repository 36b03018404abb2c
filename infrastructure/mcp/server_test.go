package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/toolmesh/multitool/domain/provider"
	"github.com/toolmesh/multitool/pack/calculator"
	"github.com/toolmesh/multitool/pack/stringutil"
)

func testRegistry(t *testing.T) *provider.Registry {
	t.Helper()

	registry := provider.NewRegistry()
	if err := registry.Register(context.Background(), calculator.Provider(), stringutil.Provider()); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	return registry
}

func testServer(t *testing.T) *ToolServer {
	t.Helper()

	srv, err := NewToolServer(context.Background(), ToolServerConfig{
		Name:     "test-server",
		Version:  "0.0.1",
		Registry: testRegistry(t),
	})
	if err != nil {
		t.Fatalf("NewToolServer() error = %v", err)
	}
	return srv
}

func TestNewToolServer(t *testing.T) {
	t.Parallel()

	srv := testServer(t)
	if srv.Server() == nil {
		t.Fatal("Server() returned nil")
	}
}

func TestNewToolServer_NoRegistry(t *testing.T) {
	t.Parallel()

	srv, err := NewToolServer(context.Background(), ToolServerConfig{
		Name:    "empty",
		Version: "0.0.1",
	})
	if err != nil {
		t.Fatalf("NewToolServer() error = %v", err)
	}
	if srv.Server() == nil {
		t.Fatal("Server() returned nil")
	}
}

func TestHandler_Success(t *testing.T) {
	t.Parallel()

	srv := testServer(t)
	handler := srv.handlerFor("add")

	got, err := handler(context.Background(), json.RawMessage(`{"a": 2, "b": 3}`))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if got != "5" {
		t.Errorf("handler = %q, want %q", got, "5")
	}
}

func TestHandler_ToolFailure(t *testing.T) {
	t.Parallel()

	srv := testServer(t)
	handler := srv.handlerFor("divide")

	_, err := handler(context.Background(), json.RawMessage(`{"a": 10, "b": 0}`))
	if err == nil {
		t.Fatal("handler should report division by zero")
	}
	if !strings.Contains(err.Error(), "Division by zero") {
		t.Errorf("error = %q, want division-by-zero diagnostic", err)
	}
}

func TestHandler_MissingArguments(t *testing.T) {
	t.Parallel()

	srv := testServer(t)
	handler := srv.handlerFor("add")

	_, err := handler(context.Background(), nil)
	if err == nil {
		t.Fatal("handler should report missing arguments")
	}
	if !strings.Contains(err.Error(), "Missing arguments") {
		t.Errorf("error = %q, want missing-arguments diagnostic", err)
	}
}

func TestHandler_UnknownTool(t *testing.T) {
	t.Parallel()

	srv := testServer(t)
	handler := srv.handlerFor("not-registered")

	_, err := handler(context.Background(), json.RawMessage(`{}`))
	if !errors.Is(err, ErrUnknownTool) {
		t.Fatalf("handler error = %v, want %v", err, ErrUnknownTool)
	}
}

func TestHandler_CrossProviderRouting(t *testing.T) {
	t.Parallel()

	srv := testServer(t)
	handler := srv.handlerFor("uppercase")

	got, err := handler(context.Background(), json.RawMessage(`{"text": "hi"}`))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if got != "HI" {
		t.Errorf("handler = %q, want %q", got, "HI")
	}
}
