// Package tracing provides OpenTelemetry tracing for the HTTP surface.
//
// The middleware extracts W3C trace context from incoming requests, creates
// a server span per request, and echoes the trace ID back to the client.
// Span export is configured by the process through the global otel tracer
// provider; without one configured, spans are no-ops.
//
// Example usage:
//
//	import "foundry-catchup/internal/observability/tracing"
//
//	mux := http.NewServeMux()
//	handler := tracing.Middleware(mux)
//
//	func resolveCitations(ctx context.Context) {
//	    ctx, span := tracing.GetTracer().Start(ctx, "resolve-citations")
//	    defer span.End()
//	}
package tracing
