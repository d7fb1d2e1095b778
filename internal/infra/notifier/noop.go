package notifier

import (
	"context"

	"foundry-catchup/internal/domain/entity"
)

// NoOpNotifier is a no-operation implementation of the Notifier interface.
// It is used when notifications are disabled to avoid nil checks in the
// worker code.
type NoOpNotifier struct{}

// NewNoOpNotifier creates a new NoOpNotifier instance.
func NewNoOpNotifier() *NoOpNotifier {
	return &NoOpNotifier{}
}

// NotifyDigest does nothing and returns nil immediately.
func (n *NoOpNotifier) NotifyDigest(ctx context.Context, digest *entity.Digest) error {
	return nil
}
