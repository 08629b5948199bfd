package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys for workload spans.
const (
	AttrRunID      = "run.id"
	AttrWorkload   = "workload.name"
	AttrSeed       = "workload.seed"
	AttrOperations = "workload.operations"
	AttrStep       = "workload.step"
	AttrOp         = "workload.op"

	AttrDegree = "list.degree"
	AttrSize   = "list.size"
	AttrBlocks = "list.blocks"
	AttrLoad   = "list.load_factor"
)

// Span names. Format: <component>.<phase>
const (
	SpanWorkloadRun      = "workload.run"
	SpanWorkloadPopulate = "workload.populate"
	SpanWorkloadExecute  = "workload.execute"
	SpanWorkloadVerify   = "workload.verify"
	SpanVerifyBatch      = "verify.batch"
)

// RunID returns an attribute for a workload run identifier
func RunID(id string) attribute.KeyValue {
	return attribute.String(AttrRunID, id)
}

// Workload returns an attribute for a workload name
func Workload(name string) attribute.KeyValue {
	return attribute.String(AttrWorkload, name)
}

// Seed returns an attribute for a random seed
func Seed(seed uint64) attribute.KeyValue {
	return attribute.Int64(AttrSeed, int64(seed))
}

// Operations returns an attribute for an operation count
func Operations(n int) attribute.KeyValue {
	return attribute.Int(AttrOperations, n)
}

// Degree returns an attribute for a block capacity
func Degree(n int) attribute.KeyValue {
	return attribute.Int(AttrDegree, n)
}

// Shape returns size, block count and load factor attributes.
func Shape(size, blocks int, load float64) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int(AttrSize, size),
		attribute.Int(AttrBlocks, blocks),
		attribute.Float64(AttrLoad, load),
	}
}

// StartWorkloadSpan starts a child span for one phase of a workload run.
func StartWorkloadSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return StartSpan(ctx, name, trace.WithAttributes(attrs...))
}
