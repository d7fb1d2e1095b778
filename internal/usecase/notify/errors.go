package notify

import "errors"

// Sentinel errors for notify use case operations.
var (
	// ErrChannelDisabled indicates that Send() was called on a disabled channel.
	ErrChannelDisabled = errors.New("channel is disabled")

	// ErrInvalidDigest indicates that the digest is nil or fails validation.
	ErrInvalidDigest = errors.New("invalid digest data")

	// ErrNotificationDropped indicates that a notification was dropped because
	// no worker slot became available in time. Non-critical, used for
	// observability.
	ErrNotificationDropped = errors.New("notification dropped due to pool saturation")

	// ErrCircuitBreakerOpen indicates that the circuit breaker is open for
	// this channel and sends are being rejected. It closes automatically
	// after the cooldown period.
	ErrCircuitBreakerOpen = errors.New("circuit breaker is open for this channel")
)
