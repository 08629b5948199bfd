package config

import (
	"strings"

	"github.com/marmos91/blocklist/internal/telemetry"
	"github.com/marmos91/blocklist/pkg/blocklist"
)

// ApplyDefaults sets default values for any unspecified configuration fields.
//
// Default Strategy:
//   - Zero values (0, "", false, nil) are replaced with defaults
//   - Explicit values are preserved
func ApplyDefaults(cfg *Config) {
	applyLoggingDefaults(&cfg.Logging)
	applyTelemetryDefaults(&cfg.Telemetry)
	applyMetricsDefaults(&cfg.Metrics)
	applyListDefaults(&cfg.List)
	applyWorkloadDefaults(&cfg.Workload)
}

// applyLoggingDefaults sets logging defaults and normalizes values.
func applyLoggingDefaults(cfg *LoggingConfig) {
	if cfg.Level == "" {
		cfg.Level = "INFO"
	}
	cfg.Level = strings.ToUpper(cfg.Level)

	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Output == "" {
		cfg.Output = "stderr"
	}
}

// applyTelemetryDefaults sets OpenTelemetry defaults.
func applyTelemetryDefaults(cfg *TelemetryConfig) {
	defaults := telemetry.DefaultConfig()
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaults.Endpoint
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = defaults.SampleRate
	}

	applyProfilingDefaults(&cfg.Profiling)
}

// applyProfilingDefaults sets Pyroscope profiling defaults.
func applyProfilingDefaults(cfg *ProfilingConfig) {
	defaults := telemetry.DefaultProfilingConfig()
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaults.Endpoint
	}
	if len(cfg.ProfileTypes) == 0 {
		cfg.ProfileTypes = defaults.ProfileTypes
	}
}

// applyMetricsDefaults sets metrics defaults.
func applyMetricsDefaults(cfg *MetricsConfig) {
	if cfg.Enabled && cfg.Port == 0 {
		cfg.Port = 9090
	}
}

func applyListDefaults(cfg *ListConfig) {
	if cfg.Degree == 0 {
		cfg.Degree = blocklist.DefaultDegree
	}
}

// applyWorkloadDefaults fills in the workload. An all-zero mix becomes the
// balanced default mix.
func applyWorkloadDefaults(cfg *WorkloadConfig) {
	if cfg.Name == "" {
		cfg.Name = "mixed"
	}
	if cfg.Operations == 0 {
		cfg.Operations = 100000
	}
	if cfg.Mix.Total() == 0 {
		cfg.Mix = DefaultMix()
	}
	if cfg.CheckEvery == 0 {
		cfg.CheckEvery = 1000
	}
	if cfg.Runs == 0 {
		cfg.Runs = 8
	}
}

// DefaultMix returns a balanced mix that keeps the list size roughly stable.
func DefaultMix() MixConfig {
	return MixConfig{
		Append:  20,
		Insert:  20,
		Remove:  30,
		Get:     15,
		Set:     10,
		Iterate: 2,
		Compact: 3,
	}
}

// GetDefaultConfig returns a Config struct with all default values applied.
//
// This is useful for:
//   - Generating sample configuration files
//   - Testing
//   - Documentation
func GetDefaultConfig() *Config {
	cfg := &Config{
		Workload: WorkloadConfig{
			InitialSize: 1000,
		},
	}

	ApplyDefaults(cfg)
	return cfg
}
