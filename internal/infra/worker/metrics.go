package worker

import (
	"foundry-catchup/internal/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// WorkerMetrics provides Prometheus metrics for the digest refresh worker.
// It embeds the shared ConfigMetrics (worker_config_* series) and adds
// refresh-run tracking:
//
//   - worker_refresh_runs_total: runs by status (success/failure)
//   - worker_refresh_duration_seconds: run duration histogram
//   - worker_digest_items_total: digest items produced across all runs, by kind
//   - worker_refresh_last_success_timestamp: Unix time of the last clean run
type WorkerMetrics struct {
	*config.ConfigMetrics

	RefreshRunsTotal            *prometheus.CounterVec
	RefreshDurationSeconds      prometheus.Histogram
	DigestItemsTotal            *prometheus.CounterVec
	RefreshLastSuccessTimestamp prometheus.Gauge
}

// NewWorkerMetrics creates the metric set. Registration happens via
// promauto, so construct it once per process.
func NewWorkerMetrics() *WorkerMetrics {
	return &WorkerMetrics{
		ConfigMetrics: config.NewConfigMetrics("worker"),

		RefreshRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_refresh_runs_total",
			Help: "Total number of digest refresh runs by status (success/failure)",
		}, []string{"status"}),

		RefreshDurationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_refresh_duration_seconds",
			Help:    "Duration of digest refresh runs in seconds",
			Buckets: []float64{1, 5, 30, 60, 300, 900, 1800}, // generation can take minutes
		}),

		DigestItemsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_digest_items_total",
			Help: "Total number of digest items produced across all refresh runs",
		}, []string{"kind"}),

		RefreshLastSuccessTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "worker_refresh_last_success_timestamp",
			Help: "Unix timestamp of the last successful digest refresh run",
		}),
	}
}

// RecordRefreshRun increments the run counter ("success" or "failure").
func (m *WorkerMetrics) RecordRefreshRun(status string) {
	m.RefreshRunsTotal.WithLabelValues(status).Inc()
}

// RecordRefreshDuration observes the duration of one refresh run in seconds.
func (m *WorkerMetrics) RecordRefreshDuration(seconds float64) {
	m.RefreshDurationSeconds.Observe(seconds)
}

// RecordDigestItems adds the item count of one generated digest.
func (m *WorkerMetrics) RecordDigestItems(kind string, count int) {
	m.DigestItemsTotal.WithLabelValues(kind).Add(float64(count))
}

// RecordLastSuccess records the current time as the last successful run.
func (m *WorkerMetrics) RecordLastSuccess() {
	m.RefreshLastSuccessTimestamp.SetToCurrentTime()
}
