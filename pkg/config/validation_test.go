package config

import (
	"strings"
	"testing"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	err := Validate(cfg)
	if err != nil {
		t.Errorf("Expected valid config to pass validation, got error: %v", err)
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Logging.Level = "INVALID"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for invalid log level")
	}
	if !strings.Contains(err.Error(), "oneof") {
		t.Errorf("Expected 'oneof' validation error, got: %v", err)
	}
	if !strings.Contains(err.Error(), "logging.level") {
		t.Errorf("Expected error to name the config key, got: %v", err)
	}
}

func TestValidate_InvalidLogFormat(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Logging.Format = "xml"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for invalid log format")
	}
}

func TestValidate_InvalidMetricsPort(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Metrics.Port = 70000 // Out of range

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for port out of range")
	}
	if !strings.Contains(err.Error(), "max") {
		t.Errorf("Expected 'max' validation error, got: %v", err)
	}
}

func TestValidate_DegreeBounds(t *testing.T) {
	for _, degree := range []int{1, -4, 1<<20 + 1} {
		cfg := GetDefaultConfig()
		cfg.List.Degree = degree

		if err := Validate(cfg); err == nil {
			t.Errorf("Expected validation error for degree %d", degree)
		}
	}

	cfg := GetDefaultConfig()
	cfg.List.Degree = 2
	if err := Validate(cfg); err != nil {
		t.Errorf("Expected degree 2 to be valid, got: %v", err)
	}
}

func TestValidate_NegativeWeight(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Workload.Mix.Remove = -1

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for negative weight")
	}
	if !strings.Contains(err.Error(), "workload.mix.remove") {
		t.Errorf("Expected error to name workload.mix.remove, got: %v", err)
	}
}

func TestValidate_EmptyMix(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Workload.Mix = MixConfig{}

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for an all-zero mix")
	}
	if !strings.Contains(err.Error(), "mix_total") {
		t.Errorf("Expected 'mix_total' validation error, got: %v", err)
	}
}

func TestValidate_TelemetryEnabledWithoutEndpoint(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Telemetry.Enabled = true
	cfg.Telemetry.Endpoint = ""

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error when telemetry is enabled without endpoint")
	}
	if !strings.Contains(err.Error(), "telemetry.endpoint") {
		t.Errorf("Expected error to name telemetry.endpoint, got: %v", err)
	}
}

func TestValidate_TelemetrySampleRate(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Telemetry.SampleRate = 1.5

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for sample rate above 1")
	}
}

func TestValidate_UnknownProfileType(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Telemetry.Profiling.ProfileTypes = []string{"cpu", "bogus"}

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for unknown profile type")
	}
}

func TestValidate_ReportsAllViolations(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Logging.Format = "xml"
	cfg.Workload.Operations = -1

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error")
	}
	if !strings.Contains(err.Error(), "logging.format") || !strings.Contains(err.Error(), "workload.operations") {
		t.Errorf("Expected both violations in error, got: %v", err)
	}
}

func TestValidate_LogLevelNormalization(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Logging.Level = "debug"

	if err := Validate(cfg); err != nil {
		t.Errorf("Expected lowercase log level to be valid, got: %v", err)
	}
}
