// Package slo tracks service level objectives for the HTTP surface.
//
// A Tracker accumulates request outcomes in-process and periodically
// publishes availability and error-rate gauges so alerting can compare
// them against the targets below.
package slo

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SLO targets for the feed API.
const (
	// AvailabilitySLO is the target uptime percentage (99.9% = 43 minutes downtime per month)
	AvailabilitySLO = 99.9

	// LatencyP95SLO is the target 95th percentile latency in seconds
	LatencyP95SLO = 0.200

	// LatencyP99SLO is the target 99th percentile latency in seconds
	LatencyP99SLO = 0.500

	// ErrorRateSLO is the maximum acceptable error rate as a ratio
	ErrorRateSLO = 0.001
)

var (
	// SLOAvailability is the availability ratio over the last publish window,
	// calculated as (total_requests - 5xx_errors) / total_requests
	SLOAvailability = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_availability_ratio",
			Help: "Availability ratio (0-1) over the last window, target: 0.999",
		},
	)

	// SLOErrorRate is the 5xx ratio over the last publish window
	SLOErrorRate = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_error_rate_ratio",
			Help: "Error rate ratio (0-1) over the last window, target: 0.001",
		},
	)

	// SLOWindowRequests is the number of requests observed in the last window
	SLOWindowRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_window_requests",
			Help: "Requests observed in the last SLO window",
		},
	)
)

// Tracker accumulates request outcomes and publishes SLO gauges.
// Safe for concurrent use.
type Tracker struct {
	mu     sync.Mutex
	total  int64
	errors int64
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Record counts one request. Status codes >= 500 count against the SLO;
// 4xx responses are client faults and do not.
func (t *Tracker) Record(statusCode int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.total++
	if statusCode >= 500 {
		t.errors++
	}
}

// Publish computes and publishes the gauges for the current window, then
// resets the counters. A window with no traffic publishes full availability.
func (t *Tracker) Publish() {
	t.mu.Lock()
	total, errors := t.total, t.errors
	t.total, t.errors = 0, 0
	t.mu.Unlock()

	SLOWindowRequests.Set(float64(total))
	if total == 0 {
		SLOAvailability.Set(1)
		SLOErrorRate.Set(0)
		return
	}
	SLOAvailability.Set(float64(total-errors) / float64(total))
	SLOErrorRate.Set(float64(errors) / float64(total))
}

// Run publishes every interval until ctx is canceled. A final publish runs
// on shutdown so the last partial window is not lost.
func (t *Tracker) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.Publish()
			return
		case <-ticker.C:
			t.Publish()
		}
	}
}
