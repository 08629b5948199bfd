package commands

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/marmos91/blocklist/internal/bytesize"
	"github.com/marmos91/blocklist/internal/cli/output"
	"github.com/marmos91/blocklist/internal/logger"
	"github.com/marmos91/blocklist/internal/telemetry"
	"github.com/marmos91/blocklist/pkg/blocklist"
	"github.com/marmos91/blocklist/pkg/config"
	"github.com/marmos91/blocklist/pkg/metrics"
	"github.com/spf13/cobra"
)

// InitLogger initializes the structured logger from configuration.
func InitLogger(cfg *config.Config) error {
	if err := logger.Init(cfg.LoggerConfig()); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// getConfigSource returns a description of where the config was loaded from
func getConfigSource(configFile string) string {
	if configFile != "" {
		return configFile
	}
	if config.DefaultConfigExists() {
		return config.GetDefaultConfigPath()
	}
	return "defaults"
}

// runFlags are the workload overrides shared by bench and verify. Only flags
// set on the command line replace configured values.
type runFlags struct {
	ops          int
	seed         uint64
	degree       int
	initialSize  int
	mix          string
	checkEvery   int
	compactEvery int
	memoryLimit  string
	timeout      time.Duration
	metrics      bool
	metricsPort  int
	output       string
}

func (f *runFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.IntVarP(&f.ops, "ops", "n", 0, "Number of operations per run")
	flags.Uint64Var(&f.seed, "seed", 0, "Random seed (0 picks a fresh seed)")
	flags.IntVarP(&f.degree, "degree", "d", 0, "Block capacity hint, rounded up to a power of two")
	flags.IntVar(&f.initialSize, "initial-size", 0, "Elements appended before the operation stream")
	flags.StringVar(&f.mix, "mix", "", "Operation mix preset (append-heavy|churn|iterate|mixed|read-heavy)")
	flags.IntVar(&f.checkEvery, "check-every", 0, "Operations between structural invariant checks")
	flags.IntVar(&f.compactEvery, "compact-every", 0, "Operations between forced compactions (0 disables)")
	flags.StringVar(&f.memoryLimit, "memory-limit", "", "Abort when the slot footprint exceeds this size (e.g. 64Mi)")
	flags.DurationVar(&f.timeout, "timeout", 0, "Abort a run after this long")
	flags.BoolVar(&f.metrics, "metrics", false, "Serve Prometheus metrics while running")
	flags.IntVar(&f.metricsPort, "metrics-port", 0, "Metrics port (default 9090)")
	flags.StringVarP(&f.output, "output", "o", "table", "Output format (table|json|yaml)")

	_ = cmd.RegisterFlagCompletionFunc("mix", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return config.MixPresetNames(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("output", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"table", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})
}

// loadRunConfig loads the configuration and applies the flags of cmd.
func loadRunConfig(cmd *cobra.Command, f *runFlags) (*config.Config, error) {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := f.apply(cmd, cfg); err != nil {
		return nil, err
	}

	config.ApplyDefaults(cfg)
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (f *runFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	changed := cmd.Flags().Changed
	w := &cfg.Workload

	if changed("ops") {
		w.Operations = f.ops
	}
	if changed("seed") {
		w.Seed = f.seed
	}
	if changed("degree") {
		cfg.List.Degree = f.degree
	}
	if changed("initial-size") {
		w.InitialSize = f.initialSize
	}
	if changed("mix") {
		mix, err := config.LookupMix(f.mix)
		if err != nil {
			return err
		}
		w.Mix = mix
		w.Name = f.mix
	}
	if changed("check-every") {
		w.CheckEvery = f.checkEvery
	}
	if changed("compact-every") {
		w.CompactEvery = f.compactEvery
	}
	if changed("memory-limit") {
		limit, err := bytesize.ParseByteSize(f.memoryLimit)
		if err != nil {
			return fmt.Errorf("invalid --memory-limit: %w", err)
		}
		w.MemoryLimit = limit
	}
	if changed("timeout") {
		w.Timeout = f.timeout
	}
	if changed("metrics") {
		cfg.Metrics.Enabled = f.metrics
	}
	if changed("metrics-port") {
		cfg.Metrics.Port = f.metricsPort
	}
	return nil
}

// progress tracks a batch of runs for the /health endpoint.
type progress struct {
	workload  string
	runs      int
	started   time.Time
	completed atomic.Int64
	failed    atomic.Int64
}

type progressStatus struct {
	Workload  string  `json:"workload"`
	Runs      int     `json:"runs"`
	Completed int64   `json:"completed"`
	Failed    int64   `json:"failed"`
	ElapsedMs float64 `json:"elapsed_ms"`
}

func newProgress(workload string, runs int) *progress {
	return &progress{workload: workload, runs: runs, started: time.Now()}
}

func (p *progress) done(ok bool) {
	p.completed.Add(1)
	if !ok {
		p.failed.Add(1)
	}
}

func (p *progress) status() any {
	return progressStatus{
		Workload:  p.workload,
		Runs:      p.runs,
		Completed: p.completed.Load(),
		Failed:    p.failed.Load(),
		ElapsedMs: logger.Duration(p.started),
	}
}

// environment holds everything a run command sets up around the workload:
// logging, tracing, profiling and the optional metrics endpoint.
type environment struct {
	cfg      *config.Config
	printer  *output.Printer
	metrics  blocklist.Metrics
	progress *progress
	closers  []func()
}

func setupEnvironment(cmd *cobra.Command, cfg *config.Config, format string, runs int) (*environment, error) {
	ctx := cmd.Context()
	outFormat, err := output.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	if err := InitLogger(cfg); err != nil {
		return nil, err
	}

	env := &environment{
		cfg:      cfg,
		printer:  output.NewAutoPrinter(cmd.OutOrStdout(), outFormat),
		progress: newProgress(cfg.Workload.Name, runs),
	}

	telemetryShutdown, err := telemetry.Init(ctx, cfg.TelemetryConfig(Version))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	env.closers = append(env.closers, func() {
		// ctx may already be cancelled by a signal.
		if err := telemetryShutdown(context.Background()); err != nil {
			logger.Error("Telemetry shutdown error", logger.Err(err))
		}
	})
	if telemetry.IsEnabled() {
		logger.Info("Telemetry enabled", "endpoint", cfg.Telemetry.Endpoint, "sample_rate", cfg.Telemetry.SampleRate)
	}

	profilingShutdown, err := telemetry.InitProfiling(cfg.ProfilingConfig(Version), map[string]string{
		"workload": cfg.Workload.Name,
	})
	if err != nil {
		env.close()
		return nil, fmt.Errorf("failed to initialize profiling: %w", err)
	}
	env.closers = append(env.closers, func() {
		if err := profilingShutdown(); err != nil {
			logger.Error("Profiling shutdown error", logger.Err(err))
		}
	})
	if telemetry.IsProfilingEnabled() {
		logger.Info("Profiling enabled", "endpoint", cfg.Telemetry.Profiling.Endpoint, "profile_types", cfg.Telemetry.Profiling.ProfileTypes)
	}

	if cfg.Metrics.Enabled {
		env.startMetrics(ctx)
	} else {
		logger.Debug("Metrics collection disabled")
	}

	return env, nil
}

// startMetrics enables the registry and serves it until the environment is
// closed. A server that fails to bind is logged and the run continues.
func (e *environment) startMetrics(ctx context.Context) {
	reg := metrics.InitRegistry()
	// One instance per registry: metric names are fixed.
	e.metrics = metrics.NewListMetrics()

	srv := metrics.NewServer(e.cfg.Metrics.Port, reg, e.progress.status)
	srvCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := srv.Start(srvCtx); err != nil {
			logger.Error("Metrics server error", logger.Err(err))
		}
	}()

	e.closers = append(e.closers, func() {
		cancel()
		<-done
		metrics.Disable()
	})
}

// close releases resources in reverse order of acquisition.
func (e *environment) close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
	e.closers = nil
}
