package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Feed metrics track digest generation
var (
	// FeedsGeneratedTotal counts feed generation runs by kind and outcome
	FeedsGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feeds_generated_total",
			Help: "Total number of feed generation runs",
		},
		[]string{"kind", "status"},
	)

	// FeedGenerationDuration measures time to generate one feed
	FeedGenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_generation_duration_seconds",
			Help:    "Time taken to generate a feed",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
		[]string{"kind"},
	)

	// FeedItems tracks item count of the most recent feed per kind
	FeedItems = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "feed_items",
			Help: "Number of items in the most recently generated feed",
		},
		[]string{"kind"},
	)

	// FeedSources tracks citation count of the most recent feed per kind
	FeedSources = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "feed_sources",
			Help: "Number of citation URLs in the most recently generated feed",
		},
		[]string{"kind"},
	)

	// FeedCacheHitsTotal counts cache hits and misses on feed reads
	FeedCacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_cache_hits_total",
			Help: "Total number of feed cache lookups",
		},
		[]string{"kind", "result"}, // result: hit, miss
	)
)

// Citation metrics track metadata resolution for grounding URLs
var (
	// CitationFetchAttemptsTotal counts citation metadata fetches by result
	CitationFetchAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "citation_fetch_attempts_total",
			Help: "Total number of citation metadata fetch attempts",
		},
		[]string{"result"}, // result: success, failure, skipped
	)

	// CitationFetchDuration measures time to resolve one citation URL
	CitationFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "citation_fetch_duration_seconds",
			Help:    "Time taken to fetch citation metadata",
			Buckets: []float64{0.1, 0.2, 0.4, 0.8, 1.6, 3.2, 6.4, 12.8},
		},
	)

	// CitationFetchSize measures fetched page size in bytes
	CitationFetchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "citation_fetch_size_bytes",
			Help: "Fetched citation page size in bytes",
			Buckets: []float64{
				100, 200, 400, 800, 1600, 3200, 6400, 12800,
				25600, 51200, 102400, 204800, 409600, 819200,
				1638400, 3276800, 6553600, 10485760, // up to 10MB
			},
		},
	)
)

// Database metrics track digest history performance
var (
	// DBQueryDuration measures database query duration
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)

	// DBConnectionsActive tracks active database connections
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	// DBConnectionsIdle tracks idle database connections
	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

// RecordOperationDuration records the duration of a named database operation
func RecordOperationDuration(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
