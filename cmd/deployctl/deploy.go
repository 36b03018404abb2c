package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
)

const (
	defaultAppName     = "multitool"
	defaultClusterName = "cosmonic-cluster"
	controlNamespace   = "cosmonic-system"
	controlChart       = "oci://ghcr.io/cosmonic/cosmonic-control"
	hostGroupChart     = "oci://ghcr.io/cosmonic/cosmonic-control-hostgroup"
	controlVersion     = "0.3.0"
	triggerCRD         = "httptriggers.control.cosmonic.io"
)

// cmdRunner executes external binaries (kind, docker, helm, kubectl).
// The seam exists so tests can script the toolchain.
type cmdRunner interface {
	run(ctx context.Context, name string, args ...string) ([]byte, error)
	runIn(ctx context.Context, stdin []byte, name string, args ...string) ([]byte, error)
}

// execRunner shells out to binaries on PATH.
type execRunner struct{}

func (execRunner) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

func (execRunner) runIn(ctx context.Context, stdin []byte, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(string(stdin))
	return cmd.Output()
}

// clientFactory builds the Kubernetes API client used for pod listings.
type clientFactory func() (kubernetes.Interface, error)

// kubeconfigClient loads the client from the ambient kubeconfig.
func kubeconfigClient() (kubernetes.Interface, error) {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	cfg, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, nil).ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("load kubeconfig: %w", err)
	}
	return kubernetes.NewForConfig(cfg)
}

// manager drives the deployment lifecycle operations.
type manager struct {
	runner    cmdRunner
	newClient clientFactory
	stdout    io.Writer
}

type deployOptions struct {
	deployType string
	version    string
	namespace  string
	appName    string
	image      string
	imageBase  string
}

func (m *manager) printf(format string, args ...any) {
	fmt.Fprintf(m.stdout, format+"\n", args...)
}

// setup creates the kind cluster, local registry, and Cosmonic Control
// installation.
func (m *manager) setup(ctx context.Context, clusterName, licenseKey string) error {
	m.printf("Setting up cluster: %s", clusterName)

	clusters, err := m.runner.run(ctx, "kind", "get", "clusters")
	if err != nil {
		return fmt.Errorf("failed to check clusters: %w", err)
	}

	if !strings.Contains(string(clusters), clusterName) {
		m.printf("Creating kind cluster...")

		kindConfig, err := renderKindConfig()
		if err != nil {
			return fmt.Errorf("failed to render kind config: %w", err)
		}
		configPath := filepath.Join(os.TempDir(), "kind-config.yaml")
		if err := os.WriteFile(configPath, kindConfig, 0o644); err != nil {
			return fmt.Errorf("failed to write kind config: %w", err)
		}

		if out, err := m.runner.run(ctx, "kind", "create", "cluster",
			"--name", clusterName, "--config", configPath); err != nil {
			return fmt.Errorf("failed to create cluster: %s", commandDetail(out, err))
		}
		m.printf("✓ Cluster created")

		if err := m.ensureRegistry(ctx); err != nil {
			return err
		}
		m.printf("✓ Registry ready")
	} else {
		m.printf("✓ Cluster already exists")
	}

	m.printf("Installing Cosmonic Control...")

	namespaceYAML, err := renderNamespace(controlNamespace)
	if err != nil {
		return fmt.Errorf("failed to render namespace: %w", err)
	}
	if out, err := m.runner.runIn(ctx, namespaceYAML, "kubectl", "apply", "-f", "-"); err != nil {
		return fmt.Errorf("failed to create namespace: %s", commandDetail(out, err))
	}

	if err := m.ensureHelmRelease(ctx, "cosmonic-control", controlChart,
		"--set", fmt.Sprintf("cosmonicLicenseKey=%s", licenseKey),
		"--set", "envoy.service.type=NodePort",
		"--set", "envoy.service.httpNodePort=30950",
		"--wait", "--timeout", "5m"); err != nil {
		return err
	}

	m.printf("Waiting for CRDs...")
	if err := m.awaitCRD(ctx); err != nil {
		return fmt.Errorf("CRDs did not become ready: %w", err)
	}

	if err := m.ensureHelmRelease(ctx, "hostgroup", hostGroupChart,
		"--wait", "--timeout", "1m"); err != nil {
		m.printf("⚠ HostGroup installation may have issues")
	}

	m.printf("")
	m.printf("Setup complete!")
	return nil
}

// ensureRegistry starts the local image registry container and joins it
// to the kind network.
func (m *manager) ensureRegistry(ctx context.Context) error {
	m.printf("Setting up local registry...")

	running, err := m.runner.run(ctx, "docker",
		"ps", "--filter", "name=kind-registry", "--format", "{{.Names}}")
	if err != nil {
		return fmt.Errorf("failed to check registry: %w", err)
	}
	if strings.Contains(string(running), "kind-registry") {
		return nil
	}

	if _, err := m.runner.run(ctx, "docker",
		"run", "-d", "--restart=always",
		"-p", "5001:5000",
		"--network=bridge",
		"--name", "kind-registry",
		"registry:2"); err != nil {
		m.printf("⚠ Registry may already exist")
	}

	// Joining the network fails harmlessly when already connected.
	_, _ = m.runner.run(ctx, "docker", "network", "connect", "kind", "kind-registry")
	return nil
}

// ensureHelmRelease installs a chart unless the release already exists.
func (m *manager) ensureHelmRelease(ctx context.Context, release, chart string, extraArgs ...string) error {
	releases, err := m.runner.run(ctx, "helm", "list", "-n", controlNamespace, "--output", "json")
	if err == nil && strings.Contains(string(releases), release) {
		m.printf("✓ %s already installed", release)
		return nil
	}

	args := append([]string{
		"install", release, chart,
		"--version", controlVersion,
		"--namespace", controlNamespace,
	}, extraArgs...)
	if out, err := m.runner.run(ctx, "helm", args...); err != nil {
		return fmt.Errorf("failed to install %s: %s", release, commandDetail(out, err))
	}
	m.printf("✓ %s installed", release)
	return nil
}

// awaitCRD polls until the HTTPTrigger CRD is registered.
func (m *manager) awaitCRD(ctx context.Context) error {
	r := retry.New[[]byte](retry.Config{
		MaxAttempts:   10,
		InitialDelay:  time.Second,
		BackoffPolicy: retry.BackoffExponential,
		Multiplier:    1.5,
	})
	_, err := r.Do(ctx, func(ctx context.Context) ([]byte, error) {
		return m.runner.run(ctx, "kubectl", "get", "crd", triggerCRD)
	})
	return err
}

// deploy renders and applies the application manifest, running setup
// first when the cluster or control plane is missing.
func (m *manager) deploy(ctx context.Context, opts *deployOptions) error {
	m.printf("Deploying %s as %s", opts.appName, opts.deployType)
	m.printf("Checking prerequisites...")

	_, clusterErr := m.runner.run(ctx, "kubectl", "cluster-info")
	_, crdErr := m.runner.run(ctx, "kubectl", "get", "crd", triggerCRD)
	needSetup := clusterErr != nil
	needControl := crdErr != nil && opts.deployType == "httptrigger"

	if needSetup || needControl {
		m.printf("Prerequisites not met, running setup...")

		licenseKey := os.Getenv("COSMONIC_LICENSE_KEY")
		if licenseKey == "" {
			return errors.New("COSMONIC_LICENSE_KEY environment variable not set. Please set it or run setup manually.")
		}
		clusterName := os.Getenv("CLUSTER_NAME")
		if clusterName == "" {
			clusterName = defaultClusterName
		}
		if err := m.setup(ctx, clusterName, licenseKey); err != nil {
			return err
		}
	} else {
		m.printf("✓ Prerequisites verified")
	}

	image := opts.image
	if image == "" {
		image = fmt.Sprintf("%s:%s", opts.imageBase, opts.version)
	}

	if opts.namespace != "default" {
		namespaceYAML, err := renderNamespace(opts.namespace)
		if err != nil {
			return fmt.Errorf("failed to render namespace: %w", err)
		}
		if out, err := m.runner.runIn(ctx, namespaceYAML, "kubectl", "apply", "-f", "-"); err != nil {
			return fmt.Errorf("failed to create namespace: %s", commandDetail(out, err))
		}
	}

	var (
		manifest []byte
		err      error
	)
	if opts.deployType == "httptrigger" {
		manifest, err = renderHTTPTrigger(opts.appName, opts.namespace, image)
	} else {
		manifest, err = renderDeployment(opts.appName, opts.namespace, image)
	}
	if err != nil {
		return fmt.Errorf("failed to render manifest: %w", err)
	}

	outputDir := "manifests"
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create manifests directory: %w", err)
	}
	outputFile := filepath.Join(outputDir, opts.deployType+".yaml")
	if err := os.WriteFile(outputFile, manifest, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	m.printf("✓ Manifest generated: %s", outputFile)

	if out, err := m.runner.run(ctx, "kubectl", "apply", "-f", outputFile); err != nil {
		return fmt.Errorf("failed to apply manifest: %s", commandDetail(out, err))
	}
	m.printf("✓ Manifest applied")

	if opts.deployType != "httptrigger" {
		m.printf("Waiting for Deployment...")
		_, _ = m.runner.run(ctx, "kubectl", "rollout", "status",
			"deployment/"+opts.appName, "-n", opts.namespace, "--timeout=60s")
	}

	m.printf("")
	m.printf("Deployment complete!")
	m.printAccessInfo(ctx, opts.appName, opts.namespace)
	return nil
}

// printAccessInfo reports the endpoints a deployed app is reachable on.
func (m *manager) printAccessInfo(ctx context.Context, appName, namespace string) {
	m.printf("")
	m.printf("=== Access Information ===")

	nodePort, err := m.runner.run(ctx, "kubectl",
		"get", "svc", "ingress",
		"-n", controlNamespace,
		"-o", "jsonpath={.spec.ports[?(@.port==80)].nodePort}")
	if err == nil && len(nodePort) > 0 {
		m.printf("")
		m.printf("MCP Server Endpoint:")
		m.printf("  http://localhost:%s/mcp", string(nodePort))
	}

	m.printf("")
	m.printf("Internal Service:")
	m.printf("  %s.%s.svc.cluster.local", appName, namespace)

	m.printf("")
	m.printf("Alternative (port-forward):")
	m.printf("  kubectl port-forward svc/%s 8080:80 -n %s", appName, namespace)
	m.printf("  Then visit: http://localhost:8080")
}

// status reports the trigger, deployment, service, and pod state of one
// app. Pods are listed through the API so the report carries phase and
// readiness even when kubectl's table output changes.
func (m *manager) status(ctx context.Context, namespace, appName string) error {
	m.printf("Checking deployment status...")

	if out, err := m.runner.run(ctx, "kubectl", "get", "httptrigger", appName, "-n", namespace); err == nil {
		m.printf("")
		m.printf("HTTPTrigger:")
		m.printf("%s", strings.TrimRight(string(out), "\n"))
	}

	if out, err := m.runner.run(ctx, "kubectl", "get", "deployment", appName, "-n", namespace); err == nil {
		m.printf("")
		m.printf("Deployment:")
		m.printf("%s", strings.TrimRight(string(out), "\n"))
	}

	if out, err := m.runner.run(ctx, "kubectl", "get", "svc", "-l", "app="+appName, "-n", namespace); err == nil {
		m.printf("")
		m.printf("Services:")
		m.printf("%s", strings.TrimRight(string(out), "\n"))
	}

	client, err := m.newClient()
	if err != nil {
		return fmt.Errorf("failed to build Kubernetes client: %w", err)
	}
	pods, err := client.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{
		LabelSelector: "app=" + appName,
	})
	if err != nil {
		return fmt.Errorf("failed to list pods: %w", err)
	}

	m.printf("")
	m.printf("Pods:")
	if len(pods.Items) == 0 {
		m.printf("  none")
		return nil
	}
	for _, pod := range pods.Items {
		ready := 0
		for _, cs := range pod.Status.ContainerStatuses {
			if cs.Ready {
				ready++
			}
		}
		m.printf("  %s  %s  %d/%d ready", pod.Name, pod.Status.Phase, ready, len(pod.Spec.Containers))
	}
	return nil
}

// clean removes the app's trigger, deployment, service, and ingress.
// Missing resources are tolerated so a partial deployment still cleans.
func (m *manager) clean(ctx context.Context, namespace, appName string) error {
	m.printf("Cleaning up deployment: %s", appName)

	for _, resource := range []string{"httptrigger", "deployment", "service", "ingress"} {
		_, _ = m.runner.run(ctx, "kubectl", "delete", resource, appName, "-n", namespace)
	}

	m.printf("✓ Cleanup complete")
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
