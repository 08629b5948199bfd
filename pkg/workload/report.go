package workload

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/marmos91/blocklist/internal/bytesize"
	"github.com/marmos91/blocklist/pkg/blocklist"
)

// Report summarizes one workload run.
type Report struct {
	RunID       string `json:"run_id" yaml:"run_id"`
	Workload    string `json:"workload" yaml:"workload"`
	Seed        uint64 `json:"seed" yaml:"seed"`
	Degree      int    `json:"degree" yaml:"degree"`
	InitialSize int    `json:"initial_size" yaml:"initial_size"`

	// Operations is the number of operations executed, which is lower than
	// requested when the run stopped early.
	Operations       int        `json:"operations" yaml:"operations"`
	Requested        int        `json:"requested" yaml:"requested"`
	Counts           map[Op]int `json:"counts" yaml:"counts"`
	Checks           int        `json:"checks" yaml:"checks"`
	Compactions      int        `json:"compactions" yaml:"compactions"`
	BlocksFreed      int        `json:"blocks_freed" yaml:"blocks_freed"`
	IteratorRemovals int        `json:"iterator_removals" yaml:"iterator_removals"`

	Final         blocklist.Stats   `json:"final" yaml:"final"`
	PeakFootprint bytesize.ByteSize `json:"peak_footprint" yaml:"peak_footprint"`

	Duration   time.Duration `json:"-" yaml:"-"`
	DurationMs float64       `json:"duration_ms" yaml:"duration_ms"`

	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

func newReport(runID string, cfg Config, degree int) *Report {
	return &Report{
		RunID:       runID,
		Workload:    cfg.Name,
		Seed:        cfg.Seed,
		Degree:      degree,
		InitialSize: cfg.InitialSize,
		Requested:   cfg.Operations,
		Counts:      make(map[Op]int, len(AllOps)),
	}
}

func (r *Report) finish(l *blocklist.List[int], d time.Duration, err error) {
	r.Final = l.Stats()
	// Per-block counts are only useful for small lists.
	r.Final.BlockCounts = nil
	r.Duration = d
	r.DurationMs = float64(d.Microseconds()) / 1000.0
	if err != nil {
		r.Error = err.Error()
	}
}

// OK reports whether the run completed without error.
func (r *Report) OK() bool { return r.Error == "" }

// OpsPerSecond returns the throughput of the operation stream.
func (r *Report) OpsPerSecond() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.Operations) / r.Duration.Seconds()
}

// Headers implements output.TableRenderer.
func (r *Report) Headers() []string {
	return []string{"Field", "Value"}
}

// Rows implements output.TableRenderer.
func (r *Report) Rows() [][]string {
	rows := [][]string{
		{"Run ID", r.RunID},
		{"Workload", r.Workload},
		{"Seed", strconv.FormatUint(r.Seed, 10)},
		{"Degree", strconv.Itoa(r.Degree)},
		{"Initial size", strconv.Itoa(r.InitialSize)},
		{"Operations", fmt.Sprintf("%d/%d", r.Operations, r.Requested)},
		{"Mix", r.countsString()},
		{"Invariant checks", strconv.Itoa(r.Checks)},
		{"Compactions", fmt.Sprintf("%d (%d blocks freed)", r.Compactions, r.BlocksFreed)},
		{"Iterator removals", strconv.Itoa(r.IteratorRemovals)},
		{"Final size", strconv.Itoa(r.Final.Size)},
		{"Final blocks", strconv.Itoa(r.Final.Blocks)},
		{"Load factor", strconv.FormatFloat(r.Final.LoadFactor, 'f', 3, 64)},
		{"Peak footprint", r.PeakFootprint.String()},
		{"Duration", r.Duration.Round(time.Microsecond).String()},
		{"Ops/sec", strconv.FormatFloat(r.OpsPerSecond(), 'f', 0, 64)},
		{"Status", r.status()},
	}
	return rows
}

func (r *Report) countsString() string {
	parts := make([]string, 0, len(AllOps))
	for _, op := range AllOps {
		if n := r.Counts[op]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", op, n))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

func (r *Report) status() string {
	if r.OK() {
		return "ok"
	}
	return "FAILED: " + r.Error
}

// Reports is the result of a verification batch.
type Reports []*Report

// Failed returns the number of runs that ended in error.
func (rs Reports) Failed() int {
	n := 0
	for _, r := range rs {
		if !r.OK() {
			n++
		}
	}
	return n
}

// Headers implements output.TableRenderer.
func (rs Reports) Headers() []string {
	return []string{"Run", "Seed", "Ops", "Size", "Blocks", "Load", "Duration", "Status"}
}

// Rows implements output.TableRenderer.
func (rs Reports) Rows() [][]string {
	rows := make([][]string, 0, len(rs))
	for i, r := range rs {
		status := "ok"
		if !r.OK() {
			status = "FAILED"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.FormatUint(r.Seed, 10),
			strconv.Itoa(r.Operations),
			strconv.Itoa(r.Final.Size),
			strconv.Itoa(r.Final.Blocks),
			strconv.FormatFloat(r.Final.LoadFactor, 'f', 3, 64),
			r.Duration.Round(time.Millisecond).String(),
			status,
		})
	}
	return rows
}
