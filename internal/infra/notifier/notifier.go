// Package notifier delivers digest notifications to chat webhooks.
// It defines the Notifier interface which allows different delivery
// channels (Discord, Slack) to be used interchangeably, plus a no-op
// implementation for when notifications are disabled.
package notifier

import (
	"context"

	"foundry-catchup/internal/domain/entity"
)

// Notifier sends a notification summarizing a freshly generated digest.
// Implementations handle rate limiting, retries, and error logging internally.
type Notifier interface {
	// NotifyDigest announces a digest after a generation run completes.
	// The message should carry the feed kind, the item headlines with
	// links, and the provider that produced the run.
	//
	// Implementations should:
	//   - Generate a unique request ID for tracing
	//   - Apply rate limiting to respect webhook quotas
	//   - Retry transient failures, respecting context cancellation
	NotifyDigest(ctx context.Context, digest *entity.Digest) error
}
