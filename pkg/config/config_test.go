package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/marmos91/blocklist/internal/bytesize"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoad_DefaultConfig(t *testing.T) {
	configPath := writeConfig(t, "config.yaml", `
logging:
  level: "debug"

list:
  degree: 64

workload:
  operations: 5000
  memory_limit: 64Mi
  timeout: 30s
  mix:
    append: 5
    remove: 5
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("Expected normalized level 'DEBUG', got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Expected default format 'text', got %q", cfg.Logging.Format)
	}
	if cfg.List.Degree != 64 {
		t.Errorf("Expected degree 64, got %d", cfg.List.Degree)
	}
	if cfg.Workload.Operations != 5000 {
		t.Errorf("Expected 5000 operations, got %d", cfg.Workload.Operations)
	}
	if cfg.Workload.MemoryLimit != 64*bytesize.MiB {
		t.Errorf("Expected memory limit 64MiB, got %v", cfg.Workload.MemoryLimit)
	}
	if cfg.Workload.Timeout != 30*time.Second {
		t.Errorf("Expected timeout 30s, got %v", cfg.Workload.Timeout)
	}
	if cfg.Workload.Mix.Append != 5 || cfg.Workload.Mix.Remove != 5 {
		t.Errorf("Expected file weights to be applied, got %+v", cfg.Workload.Mix)
	}
	if cfg.Workload.InitialSize != 1000 {
		t.Errorf("Expected default initial size 1000, got %d", cfg.Workload.InitialSize)
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	// Loading with no config file returns a valid default config.
	nonExistentPath := filepath.Join(t.TempDir(), "nonexistent.yaml")

	cfg, err := Load(nonExistentPath)
	if err != nil {
		t.Fatalf("Expected no error when loading default config, got: %v", err)
	}
	if cfg == nil {
		t.Fatal("Expected default config to be returned")
	}
	if cfg.List.Degree != 128 {
		t.Errorf("Expected default degree 128, got %d", cfg.List.Degree)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	configPath := writeConfig(t, "invalid.yaml", `
logging:
  level: INFO
  invalid yaml here [[[
`)

	if _, err := Load(configPath); err == nil {
		t.Fatal("Expected error with invalid YAML, got nil")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	configPath := writeConfig(t, "config.yaml", `
list:
  degree: 1
`)

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Expected validation error for degree 1")
	}
	if !strings.Contains(err.Error(), "list.degree") {
		t.Errorf("Expected error to name list.degree, got: %v", err)
	}
}

func TestLoad_InvalidByteSize(t *testing.T) {
	configPath := writeConfig(t, "config.yaml", `
workload:
  memory_limit: lots
`)

	if _, err := Load(configPath); err == nil {
		t.Fatal("Expected error for unparseable memory limit")
	}
}

func TestLoad_TOML(t *testing.T) {
	configPath := writeConfig(t, "config.toml", `
[logging]
level = "WARN"
format = "json"

[workload]
name = "toml"
seed = 99
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load TOML config: %v", err)
	}

	if cfg.Logging.Level != "WARN" {
		t.Errorf("Expected level 'WARN', got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Expected format 'json', got %q", cfg.Logging.Format)
	}
	if cfg.Workload.Name != "toml" || cfg.Workload.Seed != 99 {
		t.Errorf("Expected workload toml/99, got %q/%d", cfg.Workload.Name, cfg.Workload.Seed)
	}
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("BLOCKLIST_LOGGING_LEVEL", "ERROR")
	t.Setenv("BLOCKLIST_WORKLOAD_OPERATIONS", "777")

	configPath := writeConfig(t, "config.yaml", `
logging:
  level: "INFO"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Logging.Level != "ERROR" {
		t.Errorf("Expected level 'ERROR' from env var, got %q", cfg.Logging.Level)
	}
	if cfg.Workload.Operations != 777 {
		t.Errorf("Expected 777 operations from env var, got %d", cfg.Workload.Operations)
	}
}

func TestLoad_EnvironmentWithoutFile(t *testing.T) {
	t.Setenv("BLOCKLIST_LIST_DEGREE", "32")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.List.Degree != 32 {
		t.Errorf("Expected degree 32 from env var, got %d", cfg.List.Degree)
	}
}

func TestMustLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")

	_, err := MustLoad(path)
	if err == nil {
		t.Fatal("Expected error for missing config file")
	}
	if !strings.Contains(err.Error(), "blocklist init") {
		t.Errorf("Expected init instructions in error, got: %v", err)
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := GetDefaultConfig()
	cfg.Workload.Seed = 1234
	cfg.Workload.MemoryLimit = 32 * bytesize.MiB
	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load saved config: %v", err)
	}
	if loaded.Workload.Seed != 1234 {
		t.Errorf("Expected seed 1234, got %d", loaded.Workload.Seed)
	}
	if loaded.Workload.MemoryLimit != 32*bytesize.MiB {
		t.Errorf("Expected memory limit 32MiB, got %v", loaded.Workload.MemoryLimit)
	}
}

func TestGetDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := GetDefaultConfigPath()

	if !filepath.IsAbs(path) {
		t.Errorf("Expected absolute path, got %q", path)
	}
	if filepath.Base(path) != "config.yaml" {
		t.Errorf("Expected filename 'config.yaml', got %q", filepath.Base(path))
	}
}

func TestGetConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := GetConfigDir()

	if filepath.Base(dir) != "blocklist" {
		t.Errorf("Expected directory name 'blocklist', got %q", filepath.Base(dir))
	}
}
