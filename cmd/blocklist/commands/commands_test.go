package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/marmos91/blocklist/internal/bytesize"
	"github.com/marmos91/blocklist/pkg/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

// ============================================================================
// Command tree
// ============================================================================

func TestRootCmd_Subcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range GetRootCmd().Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"bench", "verify", "init", "logs", "version", "config", "completion"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Version")
	assert.Contains(t, out, Version)
}

func TestCompletionCmd(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "blocklist")

	_, err = execute(t, "completion", "tcsh")
	assert.Error(t, err)
}

// ============================================================================
// init, verify and bench
// ============================================================================

func TestInitThenVerify(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	out, err := execute(t, "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "mixed", cfg.Workload.Name)

	_, err = execute(t, "init", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	out, err = execute(t, "verify", "--config", path,
		"--runs", "2", "--ops", "300", "--seed", "9", "--degree", "4", "-o", "json")
	require.NoError(t, err)

	var reports []struct {
		Seed       uint64 `json:"seed"`
		Degree     int    `json:"degree"`
		Operations int    `json:"operations"`
		Error      string `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 2)
	for i, r := range reports {
		assert.Equal(t, uint64(9+i), r.Seed)
		assert.Equal(t, 4, r.Degree)
		assert.Equal(t, 300, r.Operations)
		assert.Empty(t, r.Error)
	}
}

func TestBench_MemoryLimitFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")

	out, err := execute(t, "bench", "--config", path,
		"--ops", "100", "--seed", "3", "--degree", "4", "--initial-size", "100",
		"--memory-limit", "64", "-o", "yaml")
	require.ErrorIs(t, err, ErrRunsFailed)
	assert.Contains(t, out, "memory")
	assert.Contains(t, out, "seed: 3")
}

func TestBench_RejectsUnknownMix(t *testing.T) {
	_, err := execute(t, "bench", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "--mix", "bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mix preset")
}

// ============================================================================
// Flag overrides
// ============================================================================

func TestRunFlags_Apply(t *testing.T) {
	var f runFlags
	cmd := &cobra.Command{Use: "test"}
	f.register(cmd)
	require.NoError(t, cmd.ParseFlags([]string{
		"--ops", "50", "--seed", "7", "--degree", "16", "--mix", "churn",
		"--memory-limit", "2Mi", "--timeout", "3s", "--metrics", "--metrics-port", "9100",
	}))

	cfg := config.GetDefaultConfig()
	cfg.Workload.InitialSize = 123
	require.NoError(t, f.apply(cmd, cfg))

	churn, err := config.LookupMix("churn")
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Workload.Operations)
	assert.Equal(t, uint64(7), cfg.Workload.Seed)
	assert.Equal(t, 16, cfg.List.Degree)
	assert.Equal(t, "churn", cfg.Workload.Name)
	assert.Equal(t, churn, cfg.Workload.Mix)
	assert.Equal(t, 2*bytesize.MiB, cfg.Workload.MemoryLimit)
	assert.Equal(t, 3*time.Second, cfg.Workload.Timeout)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, 9100, cfg.Metrics.Port)
	assert.Equal(t, 123, cfg.Workload.InitialSize, "unset flags keep configured values")
}

func TestRunFlags_InvalidMemoryLimit(t *testing.T) {
	var f runFlags
	cmd := &cobra.Command{Use: "test"}
	f.register(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--memory-limit", "lots"}))

	err := f.apply(cmd, config.GetDefaultConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--memory-limit")
}

func TestProgress_Status(t *testing.T) {
	p := newProgress("churn", 3)
	p.done(true)
	p.done(false)

	s, ok := p.status().(progressStatus)
	require.True(t, ok)
	assert.Equal(t, "churn", s.Workload)
	assert.Equal(t, 3, s.Runs)
	assert.Equal(t, int64(2), s.Completed)
	assert.Equal(t, int64(1), s.Failed)
}

// ============================================================================
// logs
// ============================================================================

func TestTailLines(t *testing.T) {
	input := "a\nb\nc\nd\ne\n"

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{"fewer than available", 2, []string{"d", "e"}},
		{"exactly available", 5, []string{"a", "b", "c", "d", "e"}},
		{"more than available", 10, []string{"a", "b", "c", "d", "e"}},
		{"zero", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tailLines(strings.NewReader(input), tt.n, logFilter{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTailLines_RunFilter(t *testing.T) {
	input := strings.Join([]string{
		"[2024-01-15 10:00:00.000] [INFO] Workload started run_id=aaa",
		"[2024-01-15 10:00:01.000] [INFO] Workload started run_id=bbb",
		"[2024-01-15 10:00:02.000] [INFO] Workload finished run_id=aaa",
	}, "\n")

	got, err := tailLines(strings.NewReader(input), 10, logFilter{runID: "aaa"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Contains(t, got[1], "Workload finished")
}

func TestExtractTimestamp(t *testing.T) {
	text := extractTimestamp("[2024-01-15 10:30:45.123] [INFO] Workload started")
	assert.True(t, time.Date(2024, 1, 15, 10, 30, 45, 123_000_000, time.Local).Equal(text), "got %v", text)

	js := extractTimestamp(`{"time":"2024-01-15T10:30:45.5Z","level":"INFO","msg":"Workload started"}`)
	assert.True(t, time.Date(2024, 1, 15, 10, 30, 45, 500_000_000, time.UTC).Equal(js), "got %v", js)

	assert.True(t, extractTimestamp("no timestamp here").IsZero())
}

func TestLogFilter_Since(t *testing.T) {
	since := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	f := logFilter{since: since}

	assert.False(t, f.match(`{"time":"2024-01-15T09:59:59Z","msg":"old"}`))
	assert.True(t, f.match(`{"time":"2024-01-15T10:00:01Z","msg":"new"}`))
	assert.True(t, f.match("continuation line without a timestamp"))
}

func TestShowLogs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blocklist.log")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\nthree\n"), 0644))

	var buf bytes.Buffer
	require.NoError(t, showLogs(&buf, path, 2, logFilter{}))
	assert.Equal(t, "two\nthree\n", buf.String())

	assert.Error(t, showLogs(&buf, filepath.Join(t.TempDir(), "missing.log"), 2, logFilter{}))
}
