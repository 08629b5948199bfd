package config

import (
	"github.com/marmos91/blocklist/internal/logger"
	"github.com/marmos91/blocklist/internal/telemetry"
	"github.com/marmos91/blocklist/pkg/workload"
)

// WorkloadConfig converts the list and workload sections into a runnable
// workload configuration.
func (c *Config) WorkloadConfig() workload.Config {
	w := c.Workload
	return workload.Config{
		Name:        w.Name,
		Operations:  w.Operations,
		Seed:        w.Seed,
		InitialSize: w.InitialSize,
		Degree:      c.List.Degree,
		Mix: workload.Mix{
			Append:  w.Mix.Append,
			Insert:  w.Mix.Insert,
			Remove:  w.Mix.Remove,
			Get:     w.Mix.Get,
			Set:     w.Mix.Set,
			Iterate: w.Mix.Iterate,
			Compact: w.Mix.Compact,
		},
		CheckEvery:   w.CheckEvery,
		CompactEvery: w.CompactEvery,
		MemoryLimit:  w.MemoryLimit,
		Timeout:      w.Timeout,
	}
}

// LoggerConfig converts the logging section for logger.Init.
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{
		Level:  c.Logging.Level,
		Format: c.Logging.Format,
		Output: c.Logging.Output,
	}
}

// TelemetryConfig converts the telemetry section for telemetry.Init.
func (c *Config) TelemetryConfig(version string) telemetry.Config {
	cfg := telemetry.DefaultConfig()
	cfg.Enabled = c.Telemetry.Enabled
	cfg.ServiceVersion = version
	cfg.Endpoint = c.Telemetry.Endpoint
	cfg.Insecure = c.Telemetry.Insecure
	cfg.SampleRate = c.Telemetry.SampleRate
	return cfg
}

// ProfilingConfig converts the profiling section for telemetry.InitProfiling.
func (c *Config) ProfilingConfig(version string) telemetry.ProfilingConfig {
	cfg := telemetry.DefaultProfilingConfig()
	cfg.Enabled = c.Telemetry.Profiling.Enabled
	cfg.ServiceVersion = version
	cfg.Endpoint = c.Telemetry.Profiling.Endpoint
	cfg.ProfileTypes = c.Telemetry.Profiling.ProfileTypes
	return cfg
}
