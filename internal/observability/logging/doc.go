// Package logging provides structured logging utilities with context propagation.
//
// It wraps the standard library's log/slog package with helpers shared by
// the API server and the refresh worker.
//
// Key features:
//   - JSON and text output formats
//   - Request ID propagation
//   - Feed-kind tagging for scout runs
//   - Configurable log levels via LOG_LEVEL
//
// Example usage:
//
//	import "foundry-catchup/internal/observability/logging"
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("application started", slog.String("version", "1.0"))
//	}
//
//	func handleRequest(ctx context.Context) {
//	    logger := logging.WithRequestID(ctx, slog.Default())
//	    logger.Info("processing request")
//	}
package logging
