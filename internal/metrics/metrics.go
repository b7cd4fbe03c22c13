// Package metrics Prometheus metrics for imports and exports
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ImportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "maintdash_imports_total",
			Help: "Workbook loads by outcome and source",
		},
		[]string{"source", "status"},
	)

	ImportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "maintdash_import_duration_seconds",
			Help:    "Time taken to parse and normalize a workbook",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"source"},
	)

	RowsNormalized = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "maintdash_rows_normalized_total",
			Help: "Sheet rows turned into maintenance records",
		},
	)

	RowsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "maintdash_rows_dropped_total",
			Help: "Sheet rows dropped for lack of an equipment value",
		},
	)

	ExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "maintdash_exports_total",
			Help: "Exports by format and outcome",
		},
		[]string{"format", "status"},
	)

	RecordsLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "maintdash_records_loaded",
			Help: "Records of the currently selected sheet",
		},
	)
)

// RecordImport records one finished load
func RecordImport(source, status string, duration time.Duration, kept, dropped int) {
	ImportsTotal.WithLabelValues(source, status).Inc()
	ImportDuration.WithLabelValues(source).Observe(duration.Seconds())
	if status != "imported" {
		return
	}
	RowsNormalized.Add(float64(kept))
	RowsDropped.Add(float64(dropped))
	RecordsLoaded.Set(float64(kept))
}

// RecordExport records one export attempt
func RecordExport(format, status string) {
	ExportsTotal.WithLabelValues(format, status).Inc()
}
