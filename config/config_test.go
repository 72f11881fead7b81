package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/momentics/safemem/config"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Leak.Policy != "fatal" {
		t.Errorf("default leak policy = %q, want fatal", cfg.Leak.Policy)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "safemem.yaml")
	data := []byte(`
logging:
  level: debug
leak:
  policy: log
pool:
  capacity: 128
audit:
  enabled: true
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Leak.Policy != "log" {
		t.Errorf("policy = %q, want log", cfg.Leak.Policy)
	}
	if cfg.Pool.Capacity != 128 {
		t.Errorf("capacity = %d, want 128", cfg.Pool.Capacity)
	}
	if !cfg.Audit.Enabled {
		t.Error("audit not enabled")
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "safemem.yaml")
	if err := os.WriteFile(path, []byte("pool:\n  capacity: 16\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Pool.Capacity != 16 {
		t.Errorf("capacity = %d, want 16", cfg.Pool.Capacity)
	}
	if cfg.Leak.Policy != "fatal" {
		t.Errorf("policy = %q, want default fatal", cfg.Leak.Policy)
	}
}

func TestLoadRejectsBadPolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "safemem.yaml")
	if err := os.WriteFile(path, []byte("leak:\n  policy: ignore\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(path); err == nil {
		t.Error("Load accepted unknown leak policy")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load accepted a missing file")
	}
}

func TestApply(t *testing.T) {
	cfg := config.Default()
	cfg.Leak.Policy = "log"
	cfg.Audit.Enabled = true
	if err := cfg.Apply(); err != nil {
		t.Fatalf("Apply: %v", err)
	}
}
