// Package observability provides distributed tracing for tool dispatch.
package observability

import "time"

// Exporter names a span exporter backend.
type Exporter string

const (
	// ExporterStdout writes pretty-printed spans to stdout.
	ExporterStdout Exporter = "stdout"
	// ExporterNoop discards all spans.
	ExporterNoop Exporter = "noop"
)

// Config configures the observability provider.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string

	Tracing TracingConfig
}

// TracingConfig configures span export.
type TracingConfig struct {
	Enabled            bool
	Exporter           Exporter
	SampleRate         float64
	BatchTimeout       time.Duration
	MaxExportBatchSize int
}

// DefaultConfig returns a configuration with tracing disabled.
func DefaultConfig() Config {
	return Config{
		ServiceName:    "multitool",
		ServiceVersion: "dev",
		Environment:    "development",
		Tracing: TracingConfig{
			Exporter:           ExporterNoop,
			SampleRate:         1.0,
			BatchTimeout:       5 * time.Second,
			MaxExportBatchSize: 512,
		},
	}
}

// Option configures the provider.
type Option func(*Config)

// WithServiceName sets the service name reported on every span.
func WithServiceName(name string) Option {
	return func(c *Config) {
		c.ServiceName = name
	}
}

// WithServiceVersion sets the service version reported on every span.
func WithServiceVersion(version string) Option {
	return func(c *Config) {
		c.ServiceVersion = version
	}
}

// WithEnvironment sets the deployment environment attribute.
func WithEnvironment(env string) Option {
	return func(c *Config) {
		c.Environment = env
	}
}

// WithStdoutTracing enables tracing with the stdout exporter.
func WithStdoutTracing() Option {
	return func(c *Config) {
		c.Tracing.Enabled = true
		c.Tracing.Exporter = ExporterStdout
	}
}

// WithSampleRate sets the trace sampling ratio in [0, 1].
func WithSampleRate(rate float64) Option {
	return func(c *Config) {
		c.Tracing.SampleRate = rate
	}
}
