package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

// fakeRunner scripts wash responses keyed by the joined argument list.
type fakeRunner struct {
	responses map[string]fakeResponse
	calls     []string
}

type fakeResponse struct {
	out []byte
	err error
}

func (f *fakeRunner) run(_ context.Context, args ...string) ([]byte, error) {
	key := strings.Join(args, " ")
	f.calls = append(f.calls, key)
	if resp, ok := f.responses[key]; ok {
		return resp.out, resp.err
	}
	return nil, nil
}

func (f *fakeRunner) runEnv(ctx context.Context, _ []string, args ...string) ([]byte, error) {
	return f.run(ctx, args...)
}

func (f *fakeRunner) called(key string) bool {
	for _, c := range f.calls {
		if c == key {
			return true
		}
	}
	return false
}

func newTestManager(runner *fakeRunner) (*manager, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return &manager{wash: runner, stdout: buf}, buf
}

func TestStatus_NotRunning(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{responses: map[string]fakeResponse{
		"get hosts --output json": {err: errors.New("connection refused")},
	}}
	m, buf := newTestManager(runner)

	if err := m.status(context.Background()); err != nil {
		t.Fatalf("status() error = %v", err)
	}
	if !strings.Contains(buf.String(), "wash is not running") {
		t.Errorf("output = %q, want not-running notice", buf.String())
	}
	if !strings.Contains(buf.String(), "wash up") {
		t.Errorf("output = %q, want start hint", buf.String())
	}
}

func TestStatus_Running(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{responses: map[string]fakeResponse{
		"get hosts --output json": {out: []byte(`{"hosts": [{"id": "NHOST1"}]}`)},
		"get hosts":               {out: []byte("Host NHOST1\n")},
		"get inventory NHOST1":    {out: []byte("Component multitool\n")},
	}}
	m, buf := newTestManager(runner)

	if err := m.status(context.Background()); err != nil {
		t.Fatalf("status() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"wash is running", "Active hosts:", "Host NHOST1", "Component multitool"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestStart_FreshEnvironment(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{responses: map[string]fakeResponse{
		"get inventory --output json": {out: []byte(`{"components": []}`)},
		"get links --output json":     {out: []byte(`[{"source_id": "httpserver", "target": "multitool"}]`)},
	}}
	m, buf := newTestManager(runner)

	err := m.start(context.Background(), &startOptions{
		component: "./build/multitool.wasm",
		id:        "multitool",
		port:      8080,
	})
	if err != nil {
		t.Fatalf("start() error = %v", err)
	}

	for _, want := range []string{
		"start component ./build/multitool.wasm multitool",
		"start provider " + httpProviderRef + " " + httpProviderID,
		"link put httpserver multitool wasi http --source-config httpserver-config --interface incoming-handler",
	} {
		if !runner.called(want) {
			t.Errorf("expected wash call %q, got %v", want, runner.calls)
		}
	}
	if !strings.Contains(buf.String(), "Development environment ready!") {
		t.Errorf("output = %q, want ready banner", buf.String())
	}
}

func TestStart_RestartsDeployedComponent(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{responses: map[string]fakeResponse{
		"get inventory --output json": {out: []byte(`{"components": [{"id": "multitool"}]}`)},
		"get links --output json":     {out: []byte(`[{"source_id": "httpserver", "target": "multitool"}]`)},
	}}
	m, _ := newTestManager(runner)

	err := m.start(context.Background(), &startOptions{
		component: "./build/multitool.wasm",
		id:        "multitool",
		port:      8080,
	})
	if err != nil {
		t.Fatalf("start() error = %v", err)
	}
	if !runner.called("stop component multitool") {
		t.Errorf("expected existing component to be stopped, got %v", runner.calls)
	}
}

func TestStart_ComponentStartFails(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{responses: map[string]fakeResponse{
		"start component ./bad.wasm multitool": {err: errors.New("no such file")},
	}}
	m, _ := newTestManager(runner)

	err := m.start(context.Background(), &startOptions{
		component: "./bad.wasm",
		id:        "multitool",
		port:      8080,
	})
	if err == nil || !strings.Contains(err.Error(), "failed to start component") {
		t.Fatalf("start() error = %v, want component failure", err)
	}
}

func TestStop_CleansByDefault(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{responses: map[string]fakeResponse{}}
	m, buf := newTestManager(runner)

	if err := m.stop(context.Background(), "multitool", true); err != nil {
		t.Fatalf("stop() error = %v", err)
	}

	for _, want := range []string{
		"link del multitool wasi http",
		"stop provider httpserver",
		"stop component multitool",
		"config del httpserver-config",
	} {
		if !runner.called(want) {
			t.Errorf("expected wash call %q, got %v", want, runner.calls)
		}
	}
	if !strings.Contains(buf.String(), "Environment stopped successfully") {
		t.Errorf("output = %q, want stop banner", buf.String())
	}
}

func TestStop_ToleratesTeardownErrors(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{responses: map[string]fakeResponse{
		"stop provider httpserver":     {err: errors.New("not running")},
		"stop component multitool":     {err: errors.New("not running")},
		"link del multitool wasi http": {err: errors.New("no such link")},
	}}
	m, _ := newTestManager(runner)

	if err := m.stop(context.Background(), "multitool", false); err != nil {
		t.Fatalf("stop() error = %v, teardown errors should be tolerated", err)
	}
	if runner.called("config del httpserver-config") {
		t.Error("clean should be skipped when cleanup is false")
	}
}

func TestClean(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{responses: map[string]fakeResponse{}}
	m, buf := newTestManager(runner)

	if err := m.clean(context.Background()); err != nil {
		t.Fatalf("clean() error = %v", err)
	}
	if !runner.called("config del httpserver-config") {
		t.Errorf("expected config deletion, got %v", runner.calls)
	}
	if !strings.Contains(buf.String(), "Configs and links cleaned") {
		t.Errorf("output = %q, want cleaned banner", buf.String())
	}
}
