package notify

import (
	"context"

	"foundry-catchup/internal/domain/entity"
	"foundry-catchup/internal/infra/notifier"
)

// SlackChannel adapts the infrastructure SlackNotifier to the Channel
// interface so it can participate in multi-channel dispatch.
type SlackChannel struct {
	notifier notifier.Notifier
	enabled  bool
}

// NewSlackChannel creates a Slack channel. When Slack notifications are
// disabled a NoOpNotifier is substituted so the Channel contract still holds.
func NewSlackChannel(config notifier.SlackConfig) *SlackChannel {
	var n notifier.Notifier
	if config.Enabled {
		n = notifier.NewSlackNotifier(config)
	} else {
		n = notifier.NewNoOpNotifier()
	}

	return &SlackChannel{
		notifier: n,
		enabled:  config.Enabled,
	}
}

// Name returns the channel identifier "slack".
func (c *SlackChannel) Name() string {
	return "slack"
}

// IsEnabled returns whether Slack notifications are enabled via configuration.
func (c *SlackChannel) IsEnabled() bool {
	return c.enabled
}

// Send validates the inputs and delegates to the underlying notifier, which
// handles rate limiting, retries, and request ID logging.
func (c *SlackChannel) Send(ctx context.Context, digest *entity.Digest) error {
	if !c.enabled {
		return ErrChannelDisabled
	}
	if digest == nil {
		return ErrInvalidDigest
	}

	return c.notifier.NotifyDigest(ctx, digest)
}
