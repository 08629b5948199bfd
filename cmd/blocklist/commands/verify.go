package commands

import (
	"errors"
	"fmt"

	"github.com/marmos91/blocklist/internal/cli/output"
	"github.com/marmos91/blocklist/pkg/workload"
	"github.com/spf13/cobra"
)

var (
	verifyFlags runFlags
	verifyRuns  int
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Run a batch of seeded differential workloads",
	Long: `Run several workloads with consecutive seeds and compare the block list
against a reference slice after every operation.

The command exits with a non-zero status if any run diverges, violates a
structural invariant, exceeds the memory limit or times out. Failed runs
print their seed so they can be replayed with "blocklist bench --seed".

Examples:
  # Run the configured number of seeds
  blocklist verify

  # 32 runs starting at seed 1000 with degree 2 blocks
  blocklist verify --runs 32 --seed 1000 --degree 2

  # Machine-readable results
  blocklist verify -o json`,
	RunE: runVerify,
}

func init() {
	verifyFlags.register(verifyCmd)
	verifyCmd.Flags().IntVarP(&verifyRuns, "runs", "r", 0, "Number of runs (default from workload.runs)")
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(cmd, &verifyFlags)
	if err != nil {
		return err
	}
	runs := cfg.Workload.Runs
	if cmd.Flags().Changed("runs") {
		runs = verifyRuns
	}

	ctx := cmd.Context()
	env, err := setupEnvironment(cmd, cfg, verifyFlags.output, runs)
	if err != nil {
		return err
	}
	defer env.close()

	reports, verifyErr := workload.Verify(ctx, cfg.WorkloadConfig(), runs,
		workload.WithMetrics(env.metrics),
		workload.OnFinish(func(r *workload.Report) { env.progress.done(r.OK()) }),
	)
	if reports == nil {
		return verifyErr
	}

	if err := env.printer.Print(reports); err != nil {
		return fmt.Errorf("failed to print reports: %w", err)
	}

	if !env.printer.Structured() {
		env.printer.Println()
		printVerifySummary(env.printer, reports, verifyErr)
	}
	if verifyErr != nil {
		return ErrRunsFailed
	}
	return nil
}

func printVerifySummary(p *output.Printer, reports workload.Reports, err error) {
	if err == nil {
		p.Success(fmt.Sprintf("All %d runs passed", len(reports)))
		return
	}

	failed := reports.Failed()
	if failed == 0 {
		p.Error(err.Error())
		return
	}

	p.Error(fmt.Sprintf("%d of %d runs failed:", failed, len(reports)))
	for _, r := range reports {
		if !r.OK() {
			p.Printf("  seed %d: %s\n", r.Seed, r.Error)
		}
	}

	var div *workload.DivergenceError
	if errors.As(err, &div) {
		p.Printf("\nReplay the first divergence with the same configuration:\n  blocklist bench --seed %d\n", div.Seed)
	}
}
