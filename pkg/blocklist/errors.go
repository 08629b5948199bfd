package blocklist

import (
	"errors"
	"fmt"
)

// ============================================================================
// Standard List Errors
// ============================================================================

var (
	// ErrIndexOutOfRange indicates a positional access outside [0, Len()-1]
	// or a positional insertion outside [0, Len()].
	//
	// The list is never modified when this error is returned.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrConcurrentModification indicates the list was structurally modified
	// while an iterator was in use, by something other than that iterator.
	ErrConcurrentModification = errors.New("concurrent modification detected")

	// ErrIteratorExhausted indicates Next was called with no elements left.
	ErrIteratorExhausted = errors.New("iterator exhausted")

	// ErrIllegalState indicates Remove was called before Next, or twice
	// without an intervening Next.
	ErrIllegalState = errors.New("illegal iterator state")
)

// IndexError describes a rejected positional operation.
// It wraps ErrIndexOutOfRange, so callers can match with errors.Is.
type IndexError struct {
	Op    string
	Index int
	Size  int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("blocklist: %s index %d out of range for list of size %d", e.Op, e.Index, e.Size)
}

func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}

// errBlockFull is raised (as a panic) when the list tries to add to a block
// with no free slot. Reaching it means the orchestration code is broken.
var errBlockFull = errors.New("blocklist: add to full block")
