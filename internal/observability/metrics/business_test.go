package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordFeedGenerated(t *testing.T) {
	before := testutil.ToFloat64(FeedsGeneratedTotal.WithLabelValues("news", "success"))
	RecordFeedGenerated("news", true)
	after := testutil.ToFloat64(FeedsGeneratedTotal.WithLabelValues("news", "success"))
	assert.Equal(t, before+1, after)

	beforeFail := testutil.ToFloat64(FeedsGeneratedTotal.WithLabelValues("news", "failure"))
	RecordFeedGenerated("news", false)
	afterFail := testutil.ToFloat64(FeedsGeneratedTotal.WithLabelValues("news", "failure"))
	assert.Equal(t, beforeFail+1, afterFail)
}

func TestRecordFeedGenerationDuration(t *testing.T) {
	tests := []struct {
		name     string
		kind     string
		duration time.Duration
	}{
		{name: "fast run", kind: "news", duration: 2 * time.Second},
		{name: "slow run", kind: "improvements", duration: 90 * time.Second},
		{name: "zero duration", kind: "news", duration: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordFeedGenerationDuration(tt.kind, tt.duration)
			})
		})
	}
}

func TestUpdateFeedItems(t *testing.T) {
	UpdateFeedItems("improvements", 5)
	assert.Equal(t, 5.0, testutil.ToFloat64(FeedItems.WithLabelValues("improvements")))

	// Gauge tracks the latest run, not a running total
	UpdateFeedItems("improvements", 2)
	assert.Equal(t, 2.0, testutil.ToFloat64(FeedItems.WithLabelValues("improvements")))
}

func TestRecordFeedCacheHit(t *testing.T) {
	beforeHit := testutil.ToFloat64(FeedCacheHitsTotal.WithLabelValues("news", "hit"))
	beforeMiss := testutil.ToFloat64(FeedCacheHitsTotal.WithLabelValues("news", "miss"))

	RecordFeedCacheHit("news", true)
	RecordFeedCacheHit("news", false)

	assert.Equal(t, beforeHit+1, testutil.ToFloat64(FeedCacheHitsTotal.WithLabelValues("news", "hit")))
	assert.Equal(t, beforeMiss+1, testutil.ToFloat64(FeedCacheHitsTotal.WithLabelValues("news", "miss")))
}

func TestRecordCitationFetchOutcomes(t *testing.T) {
	beforeSuccess := testutil.ToFloat64(CitationFetchAttemptsTotal.WithLabelValues("success"))
	beforeFailure := testutil.ToFloat64(CitationFetchAttemptsTotal.WithLabelValues("failure"))
	beforeSkipped := testutil.ToFloat64(CitationFetchAttemptsTotal.WithLabelValues("skipped"))

	RecordCitationFetchSuccess(800*time.Millisecond, 32768)
	RecordCitationFetchFailed(3 * time.Second)
	RecordCitationFetchSkipped()

	assert.Equal(t, beforeSuccess+1, testutil.ToFloat64(CitationFetchAttemptsTotal.WithLabelValues("success")))
	assert.Equal(t, beforeFailure+1, testutil.ToFloat64(CitationFetchAttemptsTotal.WithLabelValues("failure")))
	assert.Equal(t, beforeSkipped+1, testutil.ToFloat64(CitationFetchAttemptsTotal.WithLabelValues("skipped")))
}

func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		duration  time.Duration
	}{
		{name: "insert", operation: "insert_digest", duration: 5 * time.Millisecond},
		{name: "list", operation: "list_digests", duration: 12 * time.Millisecond},
		{name: "empty operation", operation: "", duration: time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				RecordDBQuery(tt.operation, tt.duration)
			})
		})
	}
}

func TestUpdateDBConnectionStats(t *testing.T) {
	UpdateDBConnectionStats(7, 3)
	assert.Equal(t, 7.0, testutil.ToFloat64(DBConnectionsActive))
	assert.Equal(t, 3.0, testutil.ToFloat64(DBConnectionsIdle))
}

func TestRecordOperationDuration(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordOperationDuration("migrate", 250*time.Millisecond)
	})
}
