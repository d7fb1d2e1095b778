// Package observability provides production-grade observability infrastructure
// including structured logging, Prometheus metrics, and OpenTelemetry tracing.
//
// Subpackages:
//   - logging: structured logging utilities with slog
//   - metrics: Prometheus metrics registry and recorders
//   - slo: service level objective tracking for the HTTP surface
//   - tracing: OpenTelemetry tracing middleware
//
// Example usage:
//
//	import (
//	    "foundry-catchup/internal/observability/logging"
//	    "foundry-catchup/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("application started")
//
//	    metrics.RecordFeedGenerated("news", true)
//	}
package observability
