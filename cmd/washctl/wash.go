package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
)

const (
	defaultComponentID = "multitool"
	httpConfigName     = "httpserver-config"
	httpProviderID     = "httpserver"
	httpProviderRef    = "ghcr.io/wasmcloud/http-server:0.22.0"
)

// washRunner executes wash subcommands. The seam exists so tests can
// script wash's behavior without the binary installed.
type washRunner interface {
	run(ctx context.Context, args ...string) ([]byte, error)
	runEnv(ctx context.Context, env []string, args ...string) ([]byte, error)
}

// execRunner shells out to the wash binary on PATH.
type execRunner struct{}

func (execRunner) run(ctx context.Context, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, "wash", args...).Output()
}

func (execRunner) runEnv(ctx context.Context, env []string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "wash", args...)
	cmd.Env = append(cmd.Environ(), env...)
	return cmd.Output()
}

// manager drives the wash lifecycle operations.
type manager struct {
	wash   washRunner
	stdout io.Writer
}

type startOptions struct {
	component string
	id        string
	port      uint16
}

// hostList mirrors the shape of `wash get hosts --output json`.
type hostList struct {
	Hosts []struct {
		ID string `json:"id"`
	} `json:"hosts"`
}

func (m *manager) printf(format string, args ...any) {
	fmt.Fprintf(m.stdout, format+"\n", args...)
}

// status reports whether a wash host is reachable and prints its
// inventory when it is.
func (m *manager) status(ctx context.Context) error {
	m.printf("Checking wasmCloud status...")

	hostsJSON, err := m.wash.run(ctx, "get", "hosts", "--output", "json")
	if err != nil || len(hostsJSON) == 0 {
		m.printf("✗ wash is not running")
		m.printf("")
		m.printf("To start wash, run: wash up")
		return nil
	}

	m.printf("✓ wash is running")

	if hosts, err := m.wash.run(ctx, "get", "hosts"); err == nil {
		m.printf("")
		m.printf("Active hosts:")
		m.printf("%s", strings.TrimRight(string(hosts), "\n"))
	}

	var parsed hostList
	if err := json.Unmarshal(hostsJSON, &parsed); err == nil && len(parsed.Hosts) > 0 {
		if inventory, err := m.wash.run(ctx, "get", "inventory", parsed.Hosts[0].ID); err == nil {
			m.printf("%s", strings.TrimRight(string(inventory), "\n"))
		}
	}

	return nil
}

// start brings up wash if needed, then wires config, component,
// provider, and link.
func (m *manager) start(ctx context.Context, opts *startOptions) error {
	m.printf("Starting development environment for component: %s", opts.id)

	if _, err := m.wash.run(ctx, "get", "hosts"); err != nil {
		m.printf("wash is not running, starting it...")

		env := []string{"WASMCLOUD_MAX_CORE_INSTANCES_PER_COMPONENT=50"}
		if out, err := m.wash.runEnv(ctx, env, "up", "-d"); err != nil {
			return fmt.Errorf("failed to start wash: %s", commandDetail(out, err))
		}

		if err := m.awaitHost(ctx); err != nil {
			return fmt.Errorf("wash did not become ready: %w", err)
		}
		m.printf("✓ wash started")
	} else {
		m.printf("✓ wash is running")
	}

	if err := m.ensureConfig(ctx, opts.port); err != nil {
		return err
	}
	m.printf("✓ Config ready")

	if err := m.ensureComponent(ctx, opts.component, opts.id); err != nil {
		return err
	}
	m.printf("✓ Component ready")

	if err := m.ensureProvider(ctx); err != nil {
		return err
	}
	m.printf("✓ Provider ready")

	if err := m.ensureLink(ctx, opts.id); err != nil {
		return err
	}
	m.printf("✓ Link ready")

	m.printf("")
	m.printf("Development environment ready! HTTP server listening on http://localhost:%d/mcp", opts.port)
	return nil
}

// awaitHost polls until the host responds, replacing a fixed sleep with
// bounded exponential backoff.
func (m *manager) awaitHost(ctx context.Context) error {
	r := retry.New[[]byte](retry.Config{
		MaxAttempts:   8,
		InitialDelay:  500 * time.Millisecond,
		BackoffPolicy: retry.BackoffExponential,
		Multiplier:    2.0,
	})
	_, err := r.Do(ctx, func(ctx context.Context) ([]byte, error) {
		return m.wash.run(ctx, "get", "hosts")
	})
	return err
}

// ensureConfig creates the HTTP server config when absent and verifies
// it reads back.
func (m *manager) ensureConfig(ctx context.Context, port uint16) error {
	if _, err := m.wash.run(ctx, "config", "get", httpConfigName); err != nil {
		address := fmt.Sprintf("address=0.0.0.0:%d", port)
		if out, err := m.wash.run(ctx, "config", "put", httpConfigName, address); err != nil {
			return fmt.Errorf("failed to create config: %s", commandDetail(out, err))
		}
	}

	if _, err := m.wash.run(ctx, "config", "get", httpConfigName); err != nil {
		return fmt.Errorf("config validation failed")
	}
	return nil
}

// ensureComponent restarts the component when it is already deployed,
// then starts the requested build.
func (m *manager) ensureComponent(ctx context.Context, path, id string) error {
	if inventory, err := m.wash.run(ctx, "get", "inventory", "--output", "json"); err == nil {
		if strings.Contains(string(inventory), id) {
			if out, err := m.wash.run(ctx, "stop", "component", id); err != nil {
				return fmt.Errorf("failed to stop existing component: %s", commandDetail(out, err))
			}
		}
	}

	if out, err := m.wash.run(ctx, "start", "component", path, id); err != nil {
		return fmt.Errorf("failed to start component: %s", commandDetail(out, err))
	}
	return nil
}

// ensureProvider starts the HTTP server provider unless it is running.
func (m *manager) ensureProvider(ctx context.Context) error {
	if inventory, err := m.wash.run(ctx, "get", "inventory", "--output", "json"); err == nil {
		if strings.Contains(string(inventory), httpProviderID) {
			return nil
		}
	}

	if out, err := m.wash.run(ctx, "start", "provider", httpProviderRef, httpProviderID); err != nil {
		return fmt.Errorf("failed to start provider: %s", commandDetail(out, err))
	}
	return nil
}

// ensureLink links the provider to the component and verifies the link
// landed.
func (m *manager) ensureLink(ctx context.Context, id string) error {
	args := []string{
		"link", "put", httpProviderID, id, "wasi", "http",
		"--source-config", httpConfigName,
		"--interface", "incoming-handler",
	}
	if out, err := m.wash.run(ctx, args...); err != nil {
		return fmt.Errorf("failed to create link: %s", commandDetail(out, err))
	}

	links, err := m.wash.run(ctx, "get", "links", "--output", "json")
	if err != nil {
		return fmt.Errorf("failed to validate link")
	}
	linkOutput := string(links)
	if !strings.Contains(linkOutput, id) || !strings.Contains(linkOutput, httpProviderID) {
		return fmt.Errorf("link not found in validation")
	}
	return nil
}

// stop tears the environment down. Individual teardown failures are
// tolerated so a partial environment can still be stopped.
func (m *manager) stop(ctx context.Context, id string, cleanup bool) error {
	m.printf("Stopping environment for component: %s", id)

	m.printf("Deleting link...")
	_, _ = m.wash.run(ctx, "link", "del", id, "wasi", "http")
	m.printf("✓ Link deleted")

	m.printf("Stopping HTTP provider...")
	_, _ = m.wash.run(ctx, "stop", "provider", httpProviderID)
	m.printf("✓ Provider stopped")

	m.printf("Stopping component...")
	_, _ = m.wash.run(ctx, "stop", "component", id)
	m.printf("✓ Component stopped")

	if cleanup {
		if err := m.clean(ctx); err != nil {
			return err
		}
	}

	m.printf("")
	m.printf("Environment stopped successfully")
	return nil
}

// clean removes the persistent config and link.
func (m *manager) clean(ctx context.Context) error {
	m.printf("Cleaning up persistent configurations and links...")

	_, _ = m.wash.run(ctx, "config", "del", httpConfigName)
	_, _ = m.wash.run(ctx, "link", "del", defaultComponentID, "wasi", "http")

	m.printf("✓ Configs and links cleaned")
	return nil
}

// commandDetail extracts the most useful diagnostic from a failed command.
func commandDetail(out []byte, err error) string {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
		return strings.TrimSpace(string(exitErr.Stderr))
	}
	if len(out) > 0 {
		return strings.TrimSpace(string(out))
	}
	return err.Error()
}
