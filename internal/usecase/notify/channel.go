// Package notify dispatches digest notifications across multiple delivery
// channels (Discord, Slack) with a bounded worker pool, per-channel circuit
// breakers, and Prometheus metrics.
package notify

import (
	"context"

	"foundry-catchup/internal/domain/entity"
)

// Channel represents a notification delivery channel. Each implementation
// handles its own rate limiting, retries, and error handling.
//
// Retry policy contract:
//   - Transient failures (5xx, network errors): retry with backoff (max 2 attempts)
//   - Rate limits (429): sleep for retry_after, then retry
//   - Client errors (4xx except 429): no retry
//
// All methods must be safe for concurrent use.
type Channel interface {
	// Name returns the channel identifier (lowercase, e.g. "discord").
	// Used for logging, metrics labels, and health check endpoints.
	Name() string

	// IsEnabled reports whether this channel is enabled via configuration.
	// Disabled channels are skipped during dispatch.
	IsEnabled() bool

	// Send delivers a digest notification to this channel. Implementations
	// must respect context cancellation and sanitize webhook URLs in errors.
	Send(ctx context.Context, digest *entity.Digest) error
}
