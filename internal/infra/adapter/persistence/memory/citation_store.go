// Package memory provides in-process persistence adapters. The citation
// store mirrors the original deployment's process-lifetime cache of the
// latest grounding sources.
package memory

import (
	"context"
	"sync"

	"foundry-catchup/internal/domain/entity"
)

// CitationStore is a mutex-guarded, in-memory implementation of
// repository.CitationStore. Safe for concurrent use by the API handlers and
// the refresh worker.
type CitationStore struct {
	mu     sync.RWMutex
	latest map[entity.FeedKind][]string
}

// NewCitationStore creates an empty citation store.
func NewCitationStore() *CitationStore {
	return &CitationStore{latest: make(map[entity.FeedKind][]string)}
}

// Record replaces the stored citations for the given feed kind.
func (s *CitationStore) Record(_ context.Context, kind entity.FeedKind, urls []string) error {
	cp := make([]string, len(urls))
	copy(cp, urls)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest[kind] = cp
	return nil
}

// Latest returns the most recently recorded citations for the kind.
func (s *CitationStore) Latest(_ context.Context, kind entity.FeedKind) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.latest[kind]
	cp := make([]string, len(stored))
	copy(cp, stored)
	return cp, nil
}
