// Package feed implements the feed generation use case: run a scout agent,
// parse its block report into items, record the citations it surfaced, and
// serve the result with a process-lifetime cache per feed kind.
package feed

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"foundry-catchup/internal/domain/entity"
	"foundry-catchup/internal/infra/agent"
	"foundry-catchup/internal/observability/metrics"
	"foundry-catchup/internal/repository"
)

// Scout runs one scouting task. Satisfied by the provider adapters in
// internal/infra/agent.
type Scout interface {
	Scout(ctx context.Context, kind entity.FeedKind) (*agent.Report, error)
	Name() string
}

// Service generates and caches the news and improvements feeds.
type Service struct {
	// Scout produces the raw reports. Required.
	Scout Scout

	// Citations records the grounding URLs per generated feed. Required.
	Citations repository.CitationStore

	// Digests persists generation history. Optional; nil disables history.
	Digests repository.DigestRepository

	// MaxItems caps the entries kept per feed. Zero means 5.
	MaxItems int

	// CacheTTL is how long a generated feed is served without regeneration.
	// Zero disables caching and regenerates on every request.
	CacheTTL time.Duration

	// Now is the clock, overridable in tests. Nil means time.Now.
	Now func() time.Time

	mu    sync.Mutex
	cache map[entity.FeedKind]*entity.FeedResponse
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func (s *Service) maxItems() int {
	if s.MaxItems <= 0 {
		return 5
	}
	return s.MaxItems
}

// Get returns the feed for the given kind, serving the cached response while
// it is fresh. When generation fails and a previous response exists, the
// stale response is served instead of the error: a feed page degrading to
// yesterday's items beats an empty one.
func (s *Service) Get(ctx context.Context, kind entity.FeedKind) (*entity.FeedResponse, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFeed, kind)
	}

	if resp := s.cached(kind); resp != nil {
		metrics.RecordFeedCacheHit(string(kind), true)
		return resp, nil
	}
	metrics.RecordFeedCacheHit(string(kind), false)

	resp, err := s.Generate(ctx, kind)
	if err != nil {
		if stale := s.lastGood(kind); stale != nil {
			slog.Warn("serving stale feed after generation failure",
				slog.String("kind", string(kind)),
				slog.Time("generated_at", stale.GeneratedAt),
				slog.Any("error", err))
			return stale, nil
		}
		return nil, err
	}
	return resp, nil
}

// Generate runs the scout for the given kind unconditionally, updates the
// cache and citation store, and persists a digest when history is enabled.
func (s *Service) Generate(ctx context.Context, kind entity.FeedKind) (*entity.FeedResponse, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFeed, kind)
	}

	start := s.now()
	report, err := s.Scout.Scout(ctx, kind)
	if err != nil {
		metrics.RecordFeedGenerated(string(kind), false)
		return nil, fmt.Errorf("scout %s: %w", kind, err)
	}

	items := agent.ParseBlocks(report.Text)
	if len(items) > s.maxItems() {
		items = items[:s.maxItems()]
	}
	if items == nil {
		items = []entity.ContentItem{}
	}

	citations := agent.ExtractCitations(report)
	if citations == nil {
		citations = []string{}
	}
	if err := s.Citations.Record(ctx, kind, citations); err != nil {
		metrics.RecordFeedGenerated(string(kind), false)
		return nil, fmt.Errorf("record citations for %s: %w", kind, err)
	}

	resp := &entity.FeedResponse{
		GeneratedAt: s.now(),
		Count:       len(items),
		Items:       items,
		Sources:     citations,
	}
	s.store(kind, resp)
	s.persistDigest(ctx, kind, resp)

	metrics.RecordFeedGenerated(string(kind), true)
	metrics.RecordFeedGenerationDuration(string(kind), s.now().Sub(start))
	metrics.UpdateFeedItems(string(kind), len(items))
	metrics.UpdateFeedSources(string(kind), len(citations))

	slog.Info("feed generated",
		slog.String("kind", string(kind)),
		slog.String("provider", s.Scout.Name()),
		slog.Int("items", len(items)),
		slog.Int("citations", len(citations)))

	return resp, nil
}

// RefreshAll regenerates both feeds concurrently. The first failure cancels
// the sibling run and is returned.
func (s *Service) RefreshAll(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, kind := range []entity.FeedKind{entity.FeedNews, entity.FeedImprovements} {
		g.Go(func() error {
			_, err := s.Generate(ctx, kind)
			return err
		})
	}
	return g.Wait()
}

// persistDigest appends a history row. History failures are logged, not
// returned: the live feed must not depend on the database being up.
func (s *Service) persistDigest(ctx context.Context, kind entity.FeedKind, resp *entity.FeedResponse) {
	if s.Digests == nil {
		return
	}
	digest := &entity.Digest{
		Kind:        kind,
		Items:       resp.Items,
		Sources:     resp.Sources,
		Provider:    s.Scout.Name(),
		GeneratedAt: resp.GeneratedAt,
	}
	if err := s.Digests.Create(ctx, digest); err != nil {
		slog.Error("failed to persist digest",
			slog.String("kind", string(kind)),
			slog.Any("error", err))
	}
}

// cached returns the stored response while it is within the TTL.
func (s *Service) cached(kind entity.FeedKind) *entity.FeedResponse {
	if s.CacheTTL <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	resp := s.cache[kind]
	if resp == nil || s.now().Sub(resp.GeneratedAt) > s.CacheTTL {
		return nil
	}
	return resp
}

// lastGood returns the stored response regardless of age.
func (s *Service) lastGood(kind entity.FeedKind) *entity.FeedResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache[kind]
}

func (s *Service) store(kind entity.FeedKind, resp *entity.FeedResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cache == nil {
		s.cache = make(map[entity.FeedKind]*entity.FeedResponse)
	}
	s.cache[kind] = resp
}
