package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	EventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "objcunused_events_total",
		Help: "Total number of front-end events applied to an analysis context.",
	}, []string{"type"})

	EventsDroppedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "objcunused_events_dropped_total",
		Help: "Total number of front-end events dropped before reaching a registry.",
	}, []string{"reason"})

	PhaseDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "objcunused_phase_seconds",
		Help:    "Time spent in each analysis phase.",
		Buckets: prometheus.DefBuckets,
	}, []string{"phase"})

	DiagnosticsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "objcunused_diagnostics_total",
		Help: "Total number of unused-import diagnostics reported.",
	})

	RunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "objcunused_runs_total",
		Help: "Total number of analysis runs by outcome.",
	}, []string{"outcome"})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "objcunused_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})

	HistoryWriteErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "objcunused_history_write_errors_total",
		Help: "Total number of failed run-history writes.",
	})

	HistoryQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "objcunused_history_queue_depth",
		Help: "Number of finished runs waiting for the history writer.",
	})

	HistoryQueueDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "objcunused_history_queue_dropped_total",
		Help: "Total number of runs written inline because the history queue was full.",
	})
)

// WriteMetricsFile dumps the default registry in the text exposition format,
// for node-exporter style textfile collection after one-shot runs.
func WriteMetricsFile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
