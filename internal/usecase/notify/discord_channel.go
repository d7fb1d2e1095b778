package notify

import (
	"context"

	"foundry-catchup/internal/domain/entity"
	"foundry-catchup/internal/infra/notifier"
)

// DiscordChannel adapts the infrastructure DiscordNotifier to the Channel
// interface so it can participate in multi-channel dispatch.
type DiscordChannel struct {
	notifier notifier.Notifier
	enabled  bool
}

// NewDiscordChannel creates a Discord channel. When Discord notifications are
// disabled a NoOpNotifier is substituted so the Channel contract still holds.
func NewDiscordChannel(config notifier.DiscordConfig) *DiscordChannel {
	var n notifier.Notifier
	if config.Enabled {
		n = notifier.NewDiscordNotifier(config)
	} else {
		n = notifier.NewNoOpNotifier()
	}

	return &DiscordChannel{
		notifier: n,
		enabled:  config.Enabled,
	}
}

// Name returns the channel identifier "discord".
func (c *DiscordChannel) Name() string {
	return "discord"
}

// IsEnabled returns whether Discord notifications are enabled via configuration.
func (c *DiscordChannel) IsEnabled() bool {
	return c.enabled
}

// Send validates the inputs and delegates to the underlying notifier, which
// handles rate limiting, retries, and request ID logging.
func (c *DiscordChannel) Send(ctx context.Context, digest *entity.Digest) error {
	if !c.enabled {
		return ErrChannelDisabled
	}
	if digest == nil {
		return ErrInvalidDigest
	}

	return c.notifier.NotifyDigest(ctx, digest)
}
