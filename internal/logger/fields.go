package logger

import (
	"log/slog"
)

// Standard field keys for structured logging.
// Use these keys consistently so runs can be correlated across logs, traces
// and metrics.
const (
	// ========================================================================
	// Distributed Tracing
	// ========================================================================
	KeyTraceID = "trace_id" // OpenTelemetry trace ID
	KeySpanID  = "span_id"  // OpenTelemetry span ID

	// ========================================================================
	// List Shape
	// ========================================================================
	KeySize   = "size"   // Number of elements
	KeyBlocks = "blocks" // Number of linked blocks
	KeyDegree = "degree" // Block capacity
	KeyIndex  = "index"  // Global element index
	KeyLocal  = "local"  // Index within a block
	KeyMoved  = "moved"  // Elements moved by compaction
	KeyFreed  = "freed"  // Blocks released by compaction
	KeyLoad   = "load"   // Load factor

	// ========================================================================
	// Workload Runs
	// ========================================================================
	KeyRunID    = "run_id"   // Run identifier
	KeyWorkload = "workload" // Workload name
	KeySeed     = "seed"     // Random seed
	KeyOps      = "ops"      // Operation count
	KeyStep     = "step"     // Step at which something happened
	KeyOp       = "op"       // Operation kind

	// ========================================================================
	// Operation Metadata
	// ========================================================================
	KeyDurationMs = "duration_ms" // Duration in milliseconds
	KeyError      = "error"       // Error message
	KeyAddress    = "address"     // Listen address
	KeyPath       = "path"        // File path
)

// ============================================================================
// Field constructors
// ============================================================================

// RunID returns a slog.Attr for a workload run identifier
func RunID(id string) slog.Attr {
	return slog.String(KeyRunID, id)
}

// Seed returns a slog.Attr for a random seed
func Seed(seed uint64) slog.Attr {
	return slog.Uint64(KeySeed, seed)
}

// Blocks returns a slog.Attr for a block count
func Blocks(n int) slog.Attr {
	return slog.Int(KeyBlocks, n)
}

// DurationMs returns a slog.Attr for a duration in milliseconds
func DurationMs(ms float64) slog.Attr {
	return slog.Float64(KeyDurationMs, ms)
}

// Err returns a slog.Attr for an error. A nil error yields an empty attr,
// which handlers drop.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}
