package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Upstream fetch metrics
var (
	// FetchesTotal tracks upstream fetches by resource and outcome
	FetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_fetches_total",
			Help: "Total upstream fetches by resource and status",
		},
		[]string{"resource", "status"},
	)

	// FetchDuration tracks upstream fetch latency in seconds
	FetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_fetch_duration_seconds",
			Help:    "Upstream fetch duration in seconds",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"resource"},
	)

	// FetchRetries tracks retry attempts against the upstream by resource
	FetchRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_fetch_retries_total",
			Help: "Total upstream fetch retry attempts by resource",
		},
		[]string{"resource"},
	)

	// BreakerState tracks the upstream circuit breaker state
	// (0=closed, 1=half-open, 2=open)
	BreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "upstream_breaker_state",
			Help: "Upstream circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)
)

// Store metrics
var (
	// SnapshotVersion tracks the entity store snapshot version
	SnapshotVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "entity_store_snapshot_version",
			Help: "Current entity store snapshot version",
		},
	)

	// CollectionSize tracks entity collection sizes by resource
	CollectionSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "entity_store_collection_size",
			Help: "Entity collection sizes by resource",
		},
		[]string{"resource"},
	)
)
