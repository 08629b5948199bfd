// Package workload drives a blocklist.List with a seeded random operation
// stream and checks it, step by step, against a plain slice holding the same
// sequence.
//
// A run is fully determined by its Config: the same seed, degree, mix and
// sizes always produce the same operation stream, so a divergence found once
// can be replayed exactly.
package workload

import (
	"errors"
	"fmt"
	"time"

	"github.com/marmos91/blocklist/internal/bytesize"
)

// Op is one kind of operation in a workload.
type Op string

const (
	OpAppend  Op = "append"
	OpInsert  Op = "insert"
	OpRemove  Op = "remove"
	OpGet     Op = "get"
	OpSet     Op = "set"
	OpIterate Op = "iterate"
	OpCompact Op = "compact"
)

// AllOps lists every operation kind in report order.
var AllOps = []Op{OpAppend, OpInsert, OpRemove, OpGet, OpSet, OpIterate, OpCompact}

// Mix holds the relative weight of each operation kind.
type Mix struct {
	Append  int `json:"append" yaml:"append"`
	Insert  int `json:"insert" yaml:"insert"`
	Remove  int `json:"remove" yaml:"remove"`
	Get     int `json:"get" yaml:"get"`
	Set     int `json:"set" yaml:"set"`
	Iterate int `json:"iterate" yaml:"iterate"`
	Compact int `json:"compact" yaml:"compact"`
}

// Weight returns the weight of op.
func (m Mix) Weight(op Op) int {
	switch op {
	case OpAppend:
		return m.Append
	case OpInsert:
		return m.Insert
	case OpRemove:
		return m.Remove
	case OpGet:
		return m.Get
	case OpSet:
		return m.Set
	case OpIterate:
		return m.Iterate
	case OpCompact:
		return m.Compact
	default:
		return 0
	}
}

// Total returns the sum of all weights.
func (m Mix) Total() int {
	total := 0
	for _, op := range AllOps {
		total += m.Weight(op)
	}
	return total
}

// Config describes one workload run.
type Config struct {
	// Name labels the run in logs, spans and reports.
	Name string

	// Operations is the number of random operations applied after the list
	// has been populated.
	Operations int

	// Seed drives every random choice. Zero picks a fresh seed, which is
	// recorded in the Report.
	Seed uint64

	// InitialSize elements are appended before the operation stream starts.
	InitialSize int

	// Degree is the block capacity hint passed to the list.
	Degree int

	Mix Mix

	// CheckEvery runs CheckInvariants every N operations; zero only checks
	// at the end.
	CheckEvery int

	// CompactEvery forces a compaction every N operations; zero disables it.
	CompactEvery int

	// MemoryLimit caps the estimated slot footprint; zero disables it.
	MemoryLimit bytesize.ByteSize

	// Timeout bounds the run; zero disables it.
	Timeout time.Duration
}

// Validate reports whether cfg describes a runnable workload.
func (c Config) Validate() error {
	var errs []error
	if c.Operations < 0 {
		errs = append(errs, fmt.Errorf("operations must be >= 0, got %d", c.Operations))
	}
	if c.InitialSize < 0 {
		errs = append(errs, fmt.Errorf("initial size must be >= 0, got %d", c.InitialSize))
	}
	if c.CheckEvery < 0 || c.CompactEvery < 0 {
		errs = append(errs, errors.New("check and compaction intervals must be >= 0"))
	}
	for _, op := range AllOps {
		if w := c.Mix.Weight(op); w < 0 {
			errs = append(errs, fmt.Errorf("weight of %s must be >= 0, got %d", op, w))
		}
	}
	if c.Mix.Total() <= 0 {
		errs = append(errs, errors.New("at least one operation weight must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
