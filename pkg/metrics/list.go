package metrics

import (
	"github.com/marmos91/blocklist/pkg/blocklist"
	"github.com/prometheus/client_golang/prometheus"
)

// NewListMetrics creates a Prometheus-backed blocklist.Metrics registered on
// the active registry.
//
// Returns nil if metrics are not enabled (InitRegistry not called) or if no
// implementation has been registered. When nil is returned, callers should
// pass nil to blocklist.WithMetrics, which results in zero overhead.
//
// Example usage:
//
//	metrics.InitRegistry()
//	m := metrics.NewListMetrics()
//	l := blocklist.New[int](blocklist.WithMetrics(m))
//
// Metric names are fixed, so call it once per registry and share the result
// between lists.
func NewListMetrics() blocklist.Metrics {
	mu.RLock()
	reg, constructor := registry, newPrometheusListMetrics
	mu.RUnlock()

	if reg == nil || constructor == nil {
		return nil
	}
	return constructor(reg)
}

// newPrometheusListMetrics is implemented in pkg/metrics/prometheus/blocklist.go.
// This indirection avoids import cycles while keeping the API clean.
var newPrometheusListMetrics func(reg prometheus.Registerer) blocklist.Metrics

// RegisterListMetricsConstructor registers the Prometheus list metrics constructor.
// Called by pkg/metrics/prometheus during package initialization.
func RegisterListMetricsConstructor(constructor func(reg prometheus.Registerer) blocklist.Metrics) {
	mu.Lock()
	newPrometheusListMetrics = constructor
	mu.Unlock()
}
