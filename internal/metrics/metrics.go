// Package metrics exposes Prometheus collectors for ticket ingestion and statistics snapshots.
//
// Usage:
//
//	metrics.RecordSnapshot("live", 12*time.Millisecond)
//	metrics.RecordLiveFetchFailure("tickets")
//	metrics.RecordTicketsIngested(250)
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SnapshotsTotal counts computed snapshots by provenance.
	SnapshotsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_stats_snapshots_total",
			Help: "Total number of statistics snapshots computed",
		},
		[]string{"source"},
	)

	// SnapshotDuration tracks how long a snapshot takes, including the data store reads.
	SnapshotDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ticket_stats_snapshot_duration_seconds",
			Help:    "Duration of statistics snapshot computation in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"source"},
	)

	// LiveFetchFailuresTotal counts failed reads against the data store by lookup.
	LiveFetchFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_stats_live_fetch_failures_total",
			Help: "Total number of failed data store reads while computing statistics",
		},
		[]string{"lookup"},
	)

	// RejectedRecordsTotal counts ticket records that failed validation.
	RejectedRecordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_records_rejected_total",
			Help: "Total number of ticket records rejected by validation",
		},
		[]string{"stage"},
	)

	// SupersededRequestsTotal counts snapshot requests discarded because a newer one arrived.
	SupersededRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ticket_stats_superseded_requests_total",
			Help: "Total number of snapshot requests superseded by a newer request of the same session",
		},
	)

	// TicketsIngestedTotal counts tickets written by the import pipeline.
	TicketsIngestedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_ingested_total",
			Help: "Total number of tickets inserted by the import pipeline",
		},
	)
)

// RecordSnapshot records a computed snapshot and its duration
func RecordSnapshot(source string, duration time.Duration) {
	SnapshotsTotal.WithLabelValues(source).Inc()
	SnapshotDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordLiveFetchFailure records a failed data store read
func RecordLiveFetchFailure(lookup string) {
	LiveFetchFailuresTotal.WithLabelValues(lookup).Inc()
}

// RecordRejected records ticket records rejected at a stage ("stats" or "consumer")
func RecordRejected(stage string, count int) {
	if count <= 0 {
		return
	}
	RejectedRecordsTotal.WithLabelValues(stage).Add(float64(count))
}

// RecordSuperseded records a discarded snapshot request
func RecordSuperseded() {
	SupersededRequestsTotal.Inc()
}

// RecordTicketsIngested records tickets written to storage
func RecordTicketsIngested(count int) {
	if count <= 0 {
		return
	}
	TicketsIngestedTotal.Add(float64(count))
}
