package config

import (
	"testing"
	"time"

	"github.com/marmos91/blocklist/internal/bytesize"
)

func TestConfig_WorkloadConfig(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.List.Degree = 32
	cfg.Workload.Seed = 7
	cfg.Workload.MemoryLimit = 8 * bytesize.MiB
	cfg.Workload.Timeout = time.Minute
	cfg.Workload.Mix = MixConfig{Append: 1, Iterate: 2, Compact: 3}

	w := cfg.WorkloadConfig()

	if w.Degree != 32 {
		t.Errorf("Expected degree 32, got %d", w.Degree)
	}
	if w.Seed != 7 || w.Name != "mixed" {
		t.Errorf("Expected seed 7 and name mixed, got %d/%q", w.Seed, w.Name)
	}
	if w.MemoryLimit != 8*bytesize.MiB || w.Timeout != time.Minute {
		t.Errorf("Limits not carried over: %v %v", w.MemoryLimit, w.Timeout)
	}
	if w.Mix.Append != 1 || w.Mix.Iterate != 2 || w.Mix.Compact != 3 || w.Mix.Total() != 6 {
		t.Errorf("Mix not carried over: %+v", w.Mix)
	}
	if err := w.Validate(); err != nil {
		t.Errorf("Converted workload should be valid, got: %v", err)
	}
}

func TestConfig_TelemetryConversion(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Telemetry.Enabled = true
	cfg.Telemetry.SampleRate = 0.5
	cfg.Telemetry.Profiling.ProfileTypes = []string{"goroutines"}

	tc := cfg.TelemetryConfig("1.2.3")
	if !tc.Enabled || tc.SampleRate != 0.5 || tc.ServiceVersion != "1.2.3" {
		t.Errorf("Unexpected telemetry config: %+v", tc)
	}
	if tc.ServiceName != "blocklist" {
		t.Errorf("Expected service name blocklist, got %q", tc.ServiceName)
	}

	pc := cfg.ProfilingConfig("1.2.3")
	if pc.Enabled || len(pc.ProfileTypes) != 1 || pc.ProfileTypes[0] != "goroutines" {
		t.Errorf("Unexpected profiling config: %+v", pc)
	}

	lc := cfg.LoggerConfig()
	if lc.Level != "INFO" || lc.Format != "text" {
		t.Errorf("Unexpected logger config: %+v", lc)
	}
}
