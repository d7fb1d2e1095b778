// Package metrics provides the Prometheus metrics registry and recording utilities.
//
// This package centralizes the domain metrics:
//   - Feed generation metrics (runs, duration, item counts, cache hits)
//   - Citation metadata fetch metrics (attempts, duration, size)
//   - Database query metrics
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "foundry-catchup/internal/observability/metrics"
//
//	func generate(kind string) {
//	    start := time.Now()
//	    // ... generate the feed ...
//	    metrics.RecordFeedGenerated(kind, true)
//	    metrics.RecordFeedGenerationDuration(kind, time.Since(start))
//	}
package metrics
