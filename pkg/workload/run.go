package workload

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/marmos91/blocklist/internal/bytesize"
	"github.com/marmos91/blocklist/internal/logger"
	"github.com/marmos91/blocklist/internal/telemetry"
	"github.com/marmos91/blocklist/pkg/blocklist"
)

const (
	// slotBytes is the size of one int slot.
	slotBytes = strconv.IntSize / 8

	// cancelCheckInterval is how often, in operations, the context is polled.
	cancelCheckInterval = 256

	// iterateRemoveModulus: values divisible by it are removed through the
	// iterator during an iterate operation.
	iterateRemoveModulus = 16

	// probeOneIn: one get in this many probes the index just past the end.
	probeOneIn = 64
)

// Option configures a single Run.
type Option func(*runOptions)

type runOptions struct {
	runID    string
	metrics  blocklist.Metrics
	onFinish func(*Report)
}

// WithRunID sets the run identifier instead of generating a UUID.
func WithRunID(id string) Option {
	return func(o *runOptions) {
		o.runID = id
	}
}

// WithMetrics attaches a metrics sink to the list under test.
func WithMetrics(m blocklist.Metrics) Option {
	return func(o *runOptions) {
		o.metrics = m
	}
}

// OnFinish registers fn to be called with the report when the run ends,
// whether or not it failed. Verify calls it once per run.
func OnFinish(fn func(*Report)) Option {
	return func(o *runOptions) {
		o.onFinish = fn
	}
}

type runner struct {
	cfg    Config
	rng    *rand.Rand
	list   *blocklist.List[int]
	ref    []int
	next   int
	report *Report
}

// Run executes one workload. It returns the report of the run together with
// the first error encountered: a *DivergenceError when the list disagrees with
// the reference, ErrMemoryLimit when the footprint limit is hit, or the
// context error when ctx is cancelled. The report is non-nil whenever the
// configuration is valid.
func Run(ctx context.Context, cfg Config, opts ...Option) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := runOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.runID == "" {
		o.runID = uuid.New().String()
	}
	if cfg.Seed == 0 {
		cfg.Seed = freshSeed()
	}
	if cfg.Name == "" {
		cfg.Name = "unnamed"
	}
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	r := &runner{
		cfg:  cfg,
		rng:  rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
		list: blocklist.New[int](blocklist.WithDegree(cfg.Degree), blocklist.WithMetrics(o.metrics)),
		ref:  make([]int, 0, cfg.InitialSize),
	}
	r.report = newReport(o.runID, cfg, r.list.Degree())

	ctx, span := telemetry.StartWorkloadSpan(ctx, telemetry.SpanWorkloadRun,
		telemetry.RunID(o.runID),
		telemetry.Workload(cfg.Name),
		telemetry.Seed(cfg.Seed),
		telemetry.Degree(r.list.Degree()),
		telemetry.Operations(cfg.Operations),
	)
	defer span.End()

	lc := logger.NewLogContext(o.runID, cfg.Name, cfg.Seed).
		WithTrace(telemetry.TraceID(ctx), telemetry.SpanID(ctx))
	ctx = logger.WithContext(ctx, lc)

	logger.InfoCtx(ctx, "Workload started",
		logger.KeyOps, cfg.Operations,
		logger.KeyDegree, r.list.Degree(),
		logger.KeySize, cfg.InitialSize)

	start := time.Now()
	err := r.run(ctx)
	r.report.finish(r.list, time.Since(start), err)
	if o.onFinish != nil {
		o.onFinish(r.report)
	}

	telemetry.SetAttributes(ctx, telemetry.Shape(r.list.Len(), r.list.Blocks(), r.list.LoadFactor())...)
	telemetry.RecordError(ctx, err)

	if err != nil {
		logger.ErrorCtx(ctx, "Workload failed",
			logger.KeyOps, r.report.Operations,
			logger.Err(err),
			logger.DurationMs(lc.DurationMs()))
		return r.report, err
	}

	logger.InfoCtx(ctx, "Workload finished",
		logger.KeyOps, r.report.Operations,
		logger.KeySize, r.list.Len(),
		logger.KeyBlocks, r.list.Blocks(),
		logger.KeyLoad, r.list.LoadFactor(),
		logger.DurationMs(lc.DurationMs()))
	return r.report, nil
}

func (r *runner) run(ctx context.Context) error {
	if err := r.phase(ctx, telemetry.SpanWorkloadPopulate, r.populate); err != nil {
		return err
	}
	if err := r.phase(ctx, telemetry.SpanWorkloadExecute, r.execute); err != nil {
		return err
	}
	return r.phase(ctx, telemetry.SpanWorkloadVerify, r.verify)
}

func (r *runner) phase(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, span := telemetry.StartWorkloadSpan(ctx, name)
	defer span.End()

	err := fn(ctx)
	telemetry.SetAttributes(ctx, telemetry.Shape(r.list.Len(), r.list.Blocks(), r.list.LoadFactor())...)
	telemetry.RecordError(ctx, err)
	return err
}

func (r *runner) populate(ctx context.Context) error {
	for i := 0; i < r.cfg.InitialSize; i++ {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("workload interrupted while populating: %w", err)
			}
		}
		v := r.value()
		r.list.Append(v)
		r.ref = append(r.ref, v)
		if err := r.checkMemory(); err != nil {
			return err
		}
	}
	return r.compareAll(PhasePopulate, r.cfg.InitialSize, "")
}

func (r *runner) execute(ctx context.Context) error {
	for step := 0; step < r.cfg.Operations; step++ {
		if step%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("workload interrupted at step %d: %w", step, err)
			}
		}

		op := r.pick()
		if err := r.apply(step, op); err != nil {
			return err
		}
		r.report.Operations++
		r.report.Counts[op]++

		if err := r.compareSample(step, op); err != nil {
			return err
		}
		if err := r.checkMemory(); err != nil {
			return err
		}

		n := step + 1
		if r.cfg.CompactEvery > 0 && n%r.cfg.CompactEvery == 0 {
			if err := r.compact(step); err != nil {
				return err
			}
		}
		if r.cfg.CheckEvery > 0 && n%r.cfg.CheckEvery == 0 {
			if err := r.checkInvariants(PhaseExecute, step); err != nil {
				return err
			}
			logger.DebugCtx(ctx, "Invariants verified",
				logger.KeyStep, n,
				logger.KeySize, r.list.Len(),
				logger.KeyBlocks, r.list.Blocks())
		}
	}
	return nil
}

func (r *runner) verify(ctx context.Context) error {
	if err := r.checkInvariants(PhaseVerify, r.cfg.Operations); err != nil {
		return err
	}
	return r.compareAll(PhaseVerify, r.cfg.Operations, "")
}

// pick draws an operation according to the mix. Operations that need an
// element fall back to append on an empty list.
func (r *runner) pick() Op {
	n := r.rng.IntN(r.cfg.Mix.Total())
	op := OpAppend
	for _, candidate := range AllOps {
		w := r.cfg.Mix.Weight(candidate)
		if n < w {
			op = candidate
			break
		}
		n -= w
	}
	if len(r.ref) == 0 {
		switch op {
		case OpRemove, OpGet, OpSet:
			return OpAppend
		}
	}
	return op
}

func (r *runner) value() int {
	v := r.next
	r.next++
	return v
}

func (r *runner) apply(step int, op Op) error {
	switch op {
	case OpAppend:
		v := r.value()
		r.list.Append(v)
		r.ref = append(r.ref, v)

	case OpInsert:
		at := r.rng.IntN(len(r.ref) + 1)
		v := r.value()
		if err := r.list.Insert(at, v); err != nil {
			return r.diverged(PhaseExecute, step, op, at, "insert rejected", err)
		}
		r.ref = slices.Insert(r.ref, at, v)

	case OpRemove:
		at := r.rng.IntN(len(r.ref))
		got, err := r.list.Remove(at)
		if err != nil {
			return r.diverged(PhaseExecute, step, op, at, "remove rejected", err)
		}
		if want := r.ref[at]; got != want {
			return r.diverged(PhaseExecute, step, op, at, fmt.Sprintf("removed %d, want %d", got, want), nil)
		}
		r.ref = slices.Delete(r.ref, at, at+1)

	case OpGet:
		if r.rng.IntN(probeOneIn) == 0 {
			return r.probeOutOfRange(step)
		}
		at := r.rng.IntN(len(r.ref))
		got, err := r.list.Get(at)
		if err != nil {
			return r.diverged(PhaseExecute, step, op, at, "get rejected", err)
		}
		if want := r.ref[at]; got != want {
			return r.diverged(PhaseExecute, step, op, at, fmt.Sprintf("got %d, want %d", got, want), nil)
		}

	case OpSet:
		at := r.rng.IntN(len(r.ref))
		v := r.value()
		old, err := r.list.Set(at, v)
		if err != nil {
			return r.diverged(PhaseExecute, step, op, at, "set rejected", err)
		}
		if want := r.ref[at]; old != want {
			return r.diverged(PhaseExecute, step, op, at, fmt.Sprintf("replaced %d, want %d", old, want), nil)
		}
		r.ref[at] = v

	case OpIterate:
		return r.iterate(step)

	case OpCompact:
		return r.compact(step)
	}
	return nil
}

func (r *runner) probeOutOfRange(step int) error {
	at := len(r.ref)
	_, err := r.list.Get(at)
	if !errors.Is(err, blocklist.ErrIndexOutOfRange) {
		return r.diverged(PhaseExecute, step, OpGet, at, fmt.Sprintf("expected out of range error, got %v", err), nil)
	}
	return nil
}

// iterate walks the whole list with an iterator, comparing every element and
// removing those divisible by iterateRemoveModulus through the iterator.
func (r *runner) iterate(step int) error {
	n := len(r.ref)
	kept := r.ref[:0]
	it := r.list.Iterator()
	i := 0
	for it.HasNext() {
		v, err := it.Next()
		if err != nil {
			return r.diverged(PhaseExecute, step, OpIterate, i, "iterator failed", err)
		}
		if i >= n {
			return r.diverged(PhaseExecute, step, OpIterate, i, "iterator yielded too many elements", nil)
		}
		if want := r.ref[i]; v != want {
			return r.diverged(PhaseExecute, step, OpIterate, i, fmt.Sprintf("iterator yielded %d, want %d", v, want), nil)
		}
		if v%iterateRemoveModulus == 0 {
			if err := it.Remove(); err != nil {
				return r.diverged(PhaseExecute, step, OpIterate, i, "iterator remove failed", err)
			}
			r.report.IteratorRemovals++
		} else {
			kept = append(kept, v)
		}
		i++
	}
	if i != n {
		return r.diverged(PhaseExecute, step, OpIterate, i, fmt.Sprintf("iterator yielded %d elements, want %d", i, n), nil)
	}
	r.ref = kept
	return r.compareAll(PhaseExecute, step, OpIterate)
}

func (r *runner) compact(step int) error {
	freed := r.list.Compact()
	r.report.Compactions++
	r.report.BlocksFreed += freed

	// After compaction only the tail block may be partially filled.
	counts := r.list.Stats().BlockCounts
	for i, c := range counts[:len(counts)-1] {
		if c != r.list.Degree() {
			return r.diverged(PhaseExecute, step, OpCompact, i,
				fmt.Sprintf("block %d holds %d elements after compaction, want %d", i, c, r.list.Degree()), nil)
		}
	}
	return r.compareAll(PhaseExecute, step, OpCompact)
}

// compareSample checks the length and one random position.
func (r *runner) compareSample(step int, op Op) error {
	if got, want := r.list.Len(), len(r.ref); got != want {
		return r.diverged(PhaseExecute, step, op, -1, fmt.Sprintf("length %d, want %d", got, want), nil)
	}
	if len(r.ref) == 0 {
		return nil
	}
	at := r.rng.IntN(len(r.ref))
	got, err := r.list.Get(at)
	if err != nil {
		return r.diverged(PhaseExecute, step, op, at, "sampled get rejected", err)
	}
	if want := r.ref[at]; got != want {
		return r.diverged(PhaseExecute, step, op, at, fmt.Sprintf("sampled %d, want %d", got, want), nil)
	}
	return nil
}

// compareAll checks the full sequence through Values.
func (r *runner) compareAll(phase Phase, step int, op Op) error {
	if got, want := r.list.Len(), len(r.ref); got != want {
		return r.diverged(phase, step, op, -1, fmt.Sprintf("length %d, want %d", got, want), nil)
	}
	i := 0
	for v := range r.list.Values() {
		if i >= len(r.ref) {
			return r.diverged(phase, step, op, i, "sequence longer than reference", nil)
		}
		if v != r.ref[i] {
			return r.diverged(phase, step, op, i, fmt.Sprintf("element %d, want %d", v, r.ref[i]), nil)
		}
		i++
	}
	if i != len(r.ref) {
		return r.diverged(phase, step, op, i, fmt.Sprintf("sequence has %d elements, want %d", i, len(r.ref)), nil)
	}
	return nil
}

func (r *runner) checkInvariants(phase Phase, step int) error {
	r.report.Checks++
	if err := r.list.CheckInvariants(); err != nil {
		return r.diverged(phase, step, "", -1, "structural check failed", err)
	}
	return nil
}

func (r *runner) checkMemory() error {
	footprint := r.footprint()
	if footprint > r.report.PeakFootprint {
		r.report.PeakFootprint = footprint
	}
	if r.cfg.MemoryLimit > 0 && footprint > r.cfg.MemoryLimit {
		return fmt.Errorf("%w: estimated footprint %s exceeds %s", ErrMemoryLimit, footprint, r.cfg.MemoryLimit)
	}
	return nil
}

// footprint estimates the slot memory held by linked blocks.
func (r *runner) footprint() bytesize.ByteSize {
	return bytesize.ByteSize(uint64(r.list.Blocks()) * uint64(r.list.Degree()) * slotBytes)
}

func (r *runner) diverged(phase Phase, step int, op Op, index int, detail string, cause error) error {
	return &DivergenceError{
		Phase:  phase,
		Step:   step,
		Op:     op,
		Index:  index,
		Seed:   r.cfg.Seed,
		Detail: detail,
		Cause:  cause,
	}
}

func freshSeed() uint64 {
	for {
		if s := rand.Uint64(); s != 0 {
			return s
		}
	}
}
