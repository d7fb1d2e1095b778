package repository

import (
	"context"

	"foundry-catchup/internal/domain/entity"
)

// DigestRepository persists generated feed digests so past runs can be
// inspected after the in-memory cache moves on. Implementations may be
// absent entirely; the feed service treats a nil repository as "no history".
type DigestRepository interface {
	// Create appends one digest. The digest's ID is set on success.
	Create(ctx context.Context, d *entity.Digest) error

	// ListRecent returns up to limit digests of the given kind, newest first.
	ListRecent(ctx context.Context, kind entity.FeedKind, limit int) ([]*entity.Digest, error)
}
