// Package prometheus implements the metrics interfaces of the blocklist
// packages on top of the Prometheus client. Import it for its side effect of
// registering the constructors with pkg/metrics.
package prometheus

import (
	"strconv"
	"time"

	"github.com/marmos91/blocklist/pkg/blocklist"
	"github.com/marmos91/blocklist/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func init() {
	metrics.RegisterListMetricsConstructor(NewListMetrics)
}

// listMetrics is the Prometheus implementation of blocklist.Metrics.
type listMetrics struct {
	inserts            *prometheus.CounterVec
	removes            *prometheus.CounterVec
	compactions        prometheus.Counter
	compactionMoved    prometheus.Counter
	compactionFreed    prometheus.Counter
	compactionDuration prometheus.Histogram
	size               prometheus.Gauge
	blocks             prometheus.Gauge
}

// NewListMetrics registers the blocklist collectors on reg.
func NewListMetrics(reg prometheus.Registerer) blocklist.Metrics {
	factory := promauto.With(reg)

	return &listMetrics{
		inserts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blocklist_inserts_total",
				Help: "Total number of insertions by the path that satisfied them",
			},
			[]string{"path"}, // append, new_block, local, left_neighbour, ...
		),
		removes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "blocklist_removes_total",
				Help: "Total number of removals, labelled by whether a block was unlinked",
			},
			[]string{"unlinked"},
		),
		compactions: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "blocklist_compactions_total",
				Help: "Total number of compaction passes",
			},
		),
		compactionMoved: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "blocklist_compaction_moved_elements_total",
				Help: "Total number of elements moved between blocks by compaction",
			},
		),
		compactionFreed: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "blocklist_compaction_freed_blocks_total",
				Help: "Total number of blocks released by compaction",
			},
		),
		compactionDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name: "blocklist_compaction_duration_milliseconds",
				Help: "Duration of compaction passes in milliseconds",
				Buckets: []float64{
					0.01, // 10us - a handful of blocks
					0.1,  // 100us
					1,    // 1ms
					10,   // 10ms
					100,  // 100ms
					1000, // 1s - very large lists
				},
			},
		),
		size: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "blocklist_size",
				Help: "Number of elements held by the list",
			},
		),
		blocks: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "blocklist_blocks",
				Help: "Number of linked blocks",
			},
		),
	}
}

func (m *listMetrics) ObserveInsert(path blocklist.InsertPath) {
	if m == nil {
		return
	}
	m.inserts.WithLabelValues(string(path)).Inc()
}

func (m *listMetrics) ObserveRemove(unlinked bool) {
	if m == nil {
		return
	}
	m.removes.WithLabelValues(strconv.FormatBool(unlinked)).Inc()
}

func (m *listMetrics) ObserveCompaction(moved, freed int, duration time.Duration) {
	if m == nil {
		return
	}
	m.compactions.Inc()
	m.compactionMoved.Add(float64(moved))
	m.compactionFreed.Add(float64(freed))
	m.compactionDuration.Observe(duration.Seconds() * 1000)
}

func (m *listMetrics) RecordShape(size, blocks int) {
	if m == nil {
		return
	}
	m.size.Set(float64(size))
	m.blocks.Set(float64(blocks))
}
