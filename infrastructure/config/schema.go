package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/toolmesh/multitool"
)

// Sentinel errors for configuration loading and validation.
var (
	ErrConfigNotFound    = errors.New("configuration file not found")
	ErrInvalidFormat     = errors.New("invalid configuration format")
	ErrUnsupportedFormat = errors.New("unsupported configuration format")
	ErrValidationFailed  = errors.New("configuration validation failed")
	ErrMissingEnvVar     = errors.New("missing environment variable")
)

// Transport names accepted by the server configuration.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config is the root server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server" json:"server"`
	Packs   PacksConfig   `yaml:"packs" json:"packs"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
	Tracing TracingConfig `yaml:"tracing" json:"tracing"`
}

// ServerConfig describes the serving identity and transport.
type ServerConfig struct {
	Name         string `yaml:"name" json:"name"`
	Version      string `yaml:"version" json:"version"`
	Instructions string `yaml:"instructions" json:"instructions"`
	Transport    string `yaml:"transport" json:"transport"`
	Addr         string `yaml:"addr" json:"addr"`
}

// PacksConfig selects which tool packs the server exposes.
type PacksConfig struct {
	Calculator bool `yaml:"calculator" json:"calculator"`
	StringUtil bool `yaml:"string_util" json:"string_util"`
	SysInfo    bool `yaml:"sys_info" json:"sys_info"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

// TracingConfig configures the trace exporter.
type TracingConfig struct {
	Enabled  bool   `yaml:"enabled" json:"enabled"`
	Exporter string `yaml:"exporter" json:"exporter"`
}

// Default returns the configuration used when no file is given: every
// pack enabled, stdio transport, console logging, tracing off.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Name:      "multitool",
			Version:   multitool.Version,
			Transport: TransportStdio,
			Addr:      ":8080",
		},
		Packs: PacksConfig{
			Calculator: true,
			StringUtil: true,
			SysInfo:    true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Tracing: TracingConfig{
			Exporter: "stdout",
		},
	}
}

// Validate checks the configuration for structural errors. It returns
// every problem found, joined, so a bad file is reported in one pass.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Server.Name) == "" {
		problems = append(problems, "server.name must not be empty")
	}
	if strings.TrimSpace(c.Server.Version) == "" {
		problems = append(problems, "server.version must not be empty")
	}
	switch c.Server.Transport {
	case TransportStdio:
	case TransportHTTP:
		if strings.TrimSpace(c.Server.Addr) == "" {
			problems = append(problems, "server.addr required for http transport")
		}
	default:
		problems = append(problems, fmt.Sprintf("server.transport %q must be %q or %q",
			c.Server.Transport, TransportStdio, TransportHTTP))
	}

	if !c.Packs.Calculator && !c.Packs.StringUtil && !c.Packs.SysInfo {
		problems = append(problems, "at least one pack must be enabled")
	}

	switch c.Logging.Level {
	case "", "trace", "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("logging.level %q is not a known level", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format %q must be console or json", c.Logging.Format))
	}

	if c.Tracing.Enabled {
		switch c.Tracing.Exporter {
		case "stdout", "noop":
		default:
			problems = append(problems, fmt.Sprintf("tracing.exporter %q must be stdout or noop", c.Tracing.Exporter))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrValidationFailed, strings.Join(problems, "; "))
	}
	return nil
}
