package workload

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is returned when a Config cannot be run.
	ErrInvalidConfig = errors.New("workload: invalid config")

	// ErrDivergence marks every mismatch between the list and the reference.
	ErrDivergence = errors.New("workload: list diverged from reference")

	// ErrMemoryLimit is returned when the estimated footprint exceeds the
	// configured limit.
	ErrMemoryLimit = errors.New("workload: memory limit exceeded")
)

// Phase names the part of a run in which something happened.
type Phase string

const (
	PhasePopulate Phase = "populate"
	PhaseExecute  Phase = "execute"
	PhaseVerify   Phase = "verify"
)

// DivergenceError describes the first point at which the list stopped
// matching the reference slice, or failed its structural check.
type DivergenceError struct {
	Phase  Phase
	Step   int
	Op     Op
	Index  int
	Seed   uint64
	Detail string

	// Cause is the underlying list error, if any.
	Cause error
}

func (e *DivergenceError) Error() string {
	msg := fmt.Sprintf("workload: divergence in %s at step %d", e.Phase, e.Step)
	if e.Op != "" {
		msg += fmt.Sprintf(" (%s index %d)", e.Op, e.Index)
	}
	msg += fmt.Sprintf(", seed %d: %s", e.Seed, e.Detail)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap exposes both ErrDivergence and the underlying cause.
func (e *DivergenceError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrDivergence}
	}
	return []error{ErrDivergence, e.Cause}
}
