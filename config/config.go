// File: config/config.go
// Author: momentics <momentics@gmail.com>
//
// YAML-backed tunables for the safemem library: log level, default leak
// policy, pool free-list capacity and the allocation audit switch.
// Everything has a working default; a config file only overrides.

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/momentics/safemem/buffer"
	"github.com/momentics/safemem/control"
	"github.com/momentics/safemem/internal/logger"
)

// Config represents library configuration.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Leak    LeakConfig    `yaml:"leak"`
	Pool    PoolConfig    `yaml:"pool"`
	Audit   AuditConfig   `yaml:"audit"`
}

// LoggingConfig selects the library log level.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug|info|warn|error
}

// LeakConfig selects the default leak policy applied when no handler
// is registered.
type LeakConfig struct {
	Policy string `yaml:"policy"` // fatal|log|free
}

// PoolConfig bounds pool free lists built from this config.
type PoolConfig struct {
	Capacity int `yaml:"capacity"`
}

// AuditConfig switches the allocation audit registry.
type AuditConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "warn"},
		Leak:    LeakConfig{Policy: "fatal"},
		Pool:    PoolConfig{Capacity: 4096},
		Audit:   AuditConfig{Enabled: false},
	}
}

// Load reads a YAML file over the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enum fields and bounds.
func (c *Config) Validate() error {
	switch c.Leak.Policy {
	case "fatal", "log", "free":
	default:
		return fmt.Errorf("config: unknown leak policy %q", c.Leak.Policy)
	}
	if c.Pool.Capacity < 0 {
		return fmt.Errorf("config: negative pool capacity %d", c.Pool.Capacity)
	}
	return nil
}

// Apply installs the configuration into the process-wide knobs.
func (c *Config) Apply() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := logger.Init(c.Logging.Level); err != nil {
		return err
	}
	switch c.Leak.Policy {
	case "log":
		buffer.SetLeakPolicy(buffer.LeakLog)
	case "free":
		buffer.SetLeakPolicy(buffer.LeakFree)
	default:
		buffer.SetLeakPolicy(buffer.LeakFatal)
	}
	control.DefaultAudit().SetEnabled(c.Audit.Enabled)
	return nil
}
