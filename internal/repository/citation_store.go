// Package repository defines the persistence interfaces used by the
// use case layer. Implementations live under internal/infra/adapter.
package repository

import (
	"context"

	"foundry-catchup/internal/domain/entity"
)

// CitationStore keeps the latest grounding citations observed per feed kind
// during the process lifetime. Replacing the set for a kind is atomic with
// respect to Latest.
type CitationStore interface {
	// Record replaces the stored citations for the given feed kind.
	Record(ctx context.Context, kind entity.FeedKind, urls []string) error

	// Latest returns the most recently recorded citations for the kind,
	// in recorded order. An unknown kind yields an empty slice.
	Latest(ctx context.Context, kind entity.FeedKind) ([]string, error)
}
