// Package sources aggregates the citation URLs recorded by the news and
// improvements scouts into one deduplicated list.
package sources

import (
	"context"
	"fmt"
	"time"

	"foundry-catchup/internal/domain/entity"
	"foundry-catchup/internal/repository"
)

// Service merges the latest citations of both feeds. News citations come
// first, then improvements, with first-seen dedupe by URL.
type Service struct {
	Citations repository.CitationStore

	// Now is the clock, overridable in tests. Nil means time.Now.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// Aggregate returns the merged source list across both feed kinds.
func (s *Service) Aggregate(ctx context.Context) (*entity.SourcesResponse, error) {
	merged := make([]entity.Citation, 0, 40)
	for _, kind := range []entity.FeedKind{entity.FeedNews, entity.FeedImprovements} {
		urls, err := s.Citations.Latest(ctx, kind)
		if err != nil {
			return nil, fmt.Errorf("load %s citations: %w", kind, err)
		}
		for _, u := range urls {
			merged = append(merged, entity.Citation{URL: u, From: kind})
		}
	}

	deduped := entity.DedupeCitations(merged)
	return &entity.SourcesResponse{
		GeneratedAt: s.now(),
		Count:       len(deduped),
		Sources:     deduped,
	}, nil
}
