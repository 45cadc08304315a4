// Package metrics holds the prometheus collectors shared by the resolver,
// the prober and the error reporter.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "photoframe"

var (
	// ProbesTotal counts playability probes by outcome (playable, timeout, rejected, skipped, cancelled).
	ProbesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "probes_total",
			Help:      "Playability probes by outcome",
		},
		[]string{"outcome"},
	)

	ProbeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "probe_duration_seconds",
			Help:      "Time spent waiting for a playability verdict",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
	)

	// ResolutionsTotal counts completed resolutions by file type and resulting payload kind.
	ResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resolutions_total",
			Help:      "Resolved files by type and payload kind",
		},
		[]string{"file_type", "payload"},
	)

	// RetriesTotal counts Transcode-and-Retry attempts by result.
	RetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transcode_retries_total",
			Help:      "Transcode-and-Retry attempts by result",
		},
		[]string{"result"},
	)

	DiagnosticsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "diagnostics_total",
			Help:      "Diagnostics sent to the error reporter",
		},
		[]string{"context"},
	)
)
