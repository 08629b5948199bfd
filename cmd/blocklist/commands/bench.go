package commands

import (
	"fmt"

	"github.com/marmos91/blocklist/internal/logger"
	"github.com/marmos91/blocklist/pkg/workload"
	"github.com/spf13/cobra"
)

var benchFlags runFlags

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run a single workload and report its throughput",
	Long: `Run one seeded workload against the block list and print its report.

Workload settings come from the configuration file and can be overridden
with flags. Every operation is checked against a reference slice, so a
benchmark run also fails on any divergence.

Examples:
  # Run the configured workload
  blocklist bench

  # One million churn operations on small blocks
  blocklist bench --mix churn --ops 1000000 --degree 16

  # Reproduce a run and print the report as JSON
  blocklist bench --seed 42 -o json

  # Expose Prometheus metrics on :9090 while running
  blocklist bench --metrics`,
	RunE: runBench,
}

func init() {
	benchFlags.register(benchCmd)
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(cmd, &benchFlags)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	env, err := setupEnvironment(cmd, cfg, benchFlags.output, 1)
	if err != nil {
		return err
	}
	defer env.close()

	logger.Debug("Configuration loaded", "source", getConfigSource(GetConfigFile()))

	report, runErr := workload.Run(ctx, cfg.WorkloadConfig(),
		workload.WithMetrics(env.metrics),
		workload.OnFinish(func(r *workload.Report) { env.progress.done(r.OK()) }),
	)
	if report == nil {
		return runErr
	}

	if err := env.printer.Print(report); err != nil {
		return fmt.Errorf("failed to print report: %w", err)
	}
	if runErr != nil {
		if !env.printer.Structured() {
			env.printer.Println()
			env.printer.Error(runErr.Error())
		}
		return ErrRunsFailed
	}
	return nil
}
