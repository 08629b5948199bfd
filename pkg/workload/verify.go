package workload

import (
	"context"
	"errors"
	"fmt"

	"github.com/marmos91/blocklist/internal/logger"
	"github.com/marmos91/blocklist/internal/telemetry"
)

// Verify performs runs consecutive workloads seeded cfg.Seed, cfg.Seed+1, ...
// (a fresh base seed when cfg.Seed is zero). Every run is attempted; the
// returned error joins the errors of all failed runs. Cancellation of ctx
// stops the batch after the current run.
func Verify(ctx context.Context, cfg Config, runs int, opts ...Option) (Reports, error) {
	if runs < 1 {
		return nil, fmt.Errorf("%w: runs must be >= 1, got %d", ErrInvalidConfig, runs)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = freshSeed()
	}

	ctx, span := telemetry.StartWorkloadSpan(ctx, telemetry.SpanVerifyBatch,
		telemetry.Workload(cfg.Name),
		telemetry.Seed(cfg.Seed),
		telemetry.Operations(cfg.Operations),
	)
	defer span.End()

	reports := make(Reports, 0, runs)
	var errs []error
	for i := 0; i < runs; i++ {
		if err := ctx.Err(); err != nil {
			errs = append(errs, fmt.Errorf("verification interrupted after %d runs: %w", i, err))
			break
		}

		runCfg := cfg
		runCfg.Seed = cfg.Seed + uint64(i)
		if runCfg.Seed == 0 {
			// Skip the zero seed, which would request a fresh one.
			runCfg.Seed = 1
		}

		report, err := Run(ctx, runCfg, opts...)
		if report != nil {
			reports = append(reports, report)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("run %d (seed %d): %w", i+1, runCfg.Seed, err))
		}
	}

	err := errors.Join(errs...)
	telemetry.RecordError(ctx, err)
	logger.InfoCtx(ctx, "Verification finished",
		"runs", len(reports),
		"failed", reports.Failed(),
		logger.KeySeed, cfg.Seed)
	return reports, err
}
