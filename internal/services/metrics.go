package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PipelineMetrics records load-and-summarize outcomes for Prometheus
type PipelineMetrics struct {
	loadsTotal       prometheus.Counter
	rowsDroppedTotal prometheus.Counter
	duration         prometheus.Histogram
}

// NewPipelineMetrics registers the pipeline metrics on the given registerer
func NewPipelineMetrics(reg prometheus.Registerer) *PipelineMetrics {
	factory := promauto.With(reg)

	return &PipelineMetrics{
		loadsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "niftycli_pipeline_loads_total",
			Help: "Total number of source files loaded and summarized.",
		}),
		rowsDroppedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "niftycli_pipeline_rows_dropped_total",
			Help: "Total number of source rows dropped during normalization.",
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "niftycli_pipeline_duration_seconds",
			Help:    "Time to load and summarize one source file.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *PipelineMetrics) observe(dropped int, seconds float64) {
	m.loadsTotal.Inc()
	m.rowsDroppedTotal.Add(float64(dropped))
	m.duration.Observe(seconds)
}
