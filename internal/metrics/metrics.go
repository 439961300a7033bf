// Package metrics exposes the engine's Prometheus collectors. All metrics
// register on the default registry and are served on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Merge outcome label values.
const (
	OutcomeApplied   = "applied"
	OutcomeConflicts = "conflicts"
	OutcomeError     = "error"
)

var (
	BranchCreates = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lingx_branch_creates_total",
		Help: "Branches created by copying a source branch.",
	})

	CopiedKeys = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lingx_branch_copied_keys",
		Help:    "Number of keys copied per branch creation.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	})

	DiffDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lingx_diff_duration_seconds",
		Help:    "Time spent computing a branch diff.",
		Buckets: prometheus.DefBuckets,
	})

	DiffConflicts = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lingx_diff_conflicts",
		Help:    "Conflicts detected per diff.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	})

	Merges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lingx_merges_total",
		Help: "Merge attempts by outcome.",
	}, []string{"outcome"})

	EventsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lingx_events_dropped_total",
		Help: "Activity events dropped because the queue was full.",
	})
)
