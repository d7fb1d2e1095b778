package metrics

import (
	"time"
)

// RecordFeedGenerated records the outcome of one feed generation run.
func RecordFeedGenerated(kind string, success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	FeedsGeneratedTotal.WithLabelValues(kind, status).Inc()
}

// RecordFeedGenerationDuration records how long one generation run took.
func RecordFeedGenerationDuration(kind string, duration time.Duration) {
	FeedGenerationDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// UpdateFeedItems records the item count of the feed that was just generated.
func UpdateFeedItems(kind string, count int) {
	FeedItems.WithLabelValues(kind).Set(float64(count))
}

// UpdateFeedSources records the citation count of the feed that was just
// generated.
func UpdateFeedSources(kind string, count int) {
	FeedSources.WithLabelValues(kind).Set(float64(count))
}

// RecordFeedCacheHit records whether a feed read was served from cache.
func RecordFeedCacheHit(kind string, hit bool) {
	result := "hit"
	if !hit {
		result = "miss"
	}
	FeedCacheHitsTotal.WithLabelValues(kind, result).Inc()
}

// RecordCitationFetchSuccess records a resolved citation URL with the time
// taken and the size of the fetched page in bytes.
func RecordCitationFetchSuccess(duration time.Duration, size int) {
	CitationFetchAttemptsTotal.WithLabelValues("success").Inc()
	CitationFetchDuration.Observe(duration.Seconds())
	CitationFetchSize.Observe(float64(size))
}

// RecordCitationFetchFailed records a citation URL that could not be resolved.
func RecordCitationFetchFailed(duration time.Duration) {
	CitationFetchAttemptsTotal.WithLabelValues("failure").Inc()
	CitationFetchDuration.Observe(duration.Seconds())
}

// RecordCitationFetchSkipped records a citation that was not fetched, for
// example because metadata enrichment is disabled or the URL failed
// validation.
func RecordCitationFetchSkipped() {
	CitationFetchAttemptsTotal.WithLabelValues("skipped").Inc()
}

// RecordDBQuery records the duration of a database query. Operation should
// describe the query (e.g. "insert_digest", "list_digests").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
