package agent

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ScoutMetricsRecorder defines the interface for recording scout-run metrics.
// Abstracting the recorder keeps the provider adapters testable without a
// Prometheus registry and reusable across providers.
type ScoutMetricsRecorder interface {
	// RecordDuration records the time taken by one generation call.
	RecordDuration(provider string, duration time.Duration)

	// RecordCitations records how many citations one report yielded.
	RecordCitations(provider string, count int)

	// RecordFailure increments the failure counter for a provider.
	RecordFailure(provider string)
}

// PrometheusScoutMetrics implements ScoutMetricsRecorder using Prometheus metrics.
type PrometheusScoutMetrics struct {
	durationHistogram  *prometheus.HistogramVec
	citationsHistogram *prometheus.HistogramVec
	failureCounter     *prometheus.CounterVec
}

// NewPrometheusScoutMetrics creates the production metrics recorder.
// Registration is idempotent so multiple providers can share the recorder.
func NewPrometheusScoutMetrics() *PrometheusScoutMetrics {
	return &PrometheusScoutMetrics{
		durationHistogram: getOrCreateHistogramVec(prometheus.HistogramOpts{
			Name:    "scout_generation_duration_seconds",
			Help:    "Time taken by one scout generation call.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		citationsHistogram: getOrCreateHistogramVec(prometheus.HistogramOpts{
			Name:    "scout_citations_per_report",
			Help:    "Citations extracted from one scout report.",
			Buckets: []float64{0, 1, 2, 5, 10, 20},
		}, []string{"provider"}),
		failureCounter: getOrCreateCounterVec(prometheus.CounterOpts{
			Name: "scout_generation_failures_total",
			Help: "Failed scout generation calls.",
		}, []string{"provider"}),
	}
}

// RecordDuration records the time taken by one generation call.
func (m *PrometheusScoutMetrics) RecordDuration(provider string, duration time.Duration) {
	m.durationHistogram.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordCitations records how many citations one report yielded.
func (m *PrometheusScoutMetrics) RecordCitations(provider string, count int) {
	m.citationsHistogram.WithLabelValues(provider).Observe(float64(count))
}

// RecordFailure increments the failure counter for a provider.
func (m *PrometheusScoutMetrics) RecordFailure(provider string) {
	m.failureCounter.WithLabelValues(provider).Inc()
}

// NoopScoutMetrics is a recorder that discards everything. Used by the noop
// provider and in tests.
type NoopScoutMetrics struct{}

func (NoopScoutMetrics) RecordDuration(string, time.Duration) {}
func (NoopScoutMetrics) RecordCitations(string, int)          {}
func (NoopScoutMetrics) RecordFailure(string)                 {}

func getOrCreateHistogramVec(opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	h := prometheus.NewHistogramVec(opts, labels)
	if err := prometheus.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(*prometheus.HistogramVec)
		}
		return promauto.NewHistogramVec(opts, labels)
	}
	return h
}

func getOrCreateCounterVec(opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	c := prometheus.NewCounterVec(opts, labels)
	if err := prometheus.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(*prometheus.CounterVec)
		}
		return promauto.NewCounterVec(opts, labels)
	}
	return c
}
