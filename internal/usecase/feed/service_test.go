package feed

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"foundry-catchup/internal/domain/entity"
	"foundry-catchup/internal/infra/agent"
)

type stubScout struct {
	report *agent.Report
	err    error
	calls  int
}

func (s *stubScout) Scout(ctx context.Context, kind entity.FeedKind) (*agent.Report, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.report, nil
}

func (s *stubScout) Name() string { return "stub" }

type stubCitationStore struct {
	recorded map[entity.FeedKind][]string
	err      error
}

func (s *stubCitationStore) Record(ctx context.Context, kind entity.FeedKind, urls []string) error {
	if s.err != nil {
		return s.err
	}
	if s.recorded == nil {
		s.recorded = make(map[entity.FeedKind][]string)
	}
	s.recorded[kind] = urls
	return nil
}

func (s *stubCitationStore) Latest(ctx context.Context, kind entity.FeedKind) ([]string, error) {
	return s.recorded[kind], nil
}

type stubDigestRepo struct {
	created []*entity.Digest
	err     error
}

func (s *stubDigestRepo) Create(ctx context.Context, d *entity.Digest) error {
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, d)
	return nil
}

func (s *stubDigestRepo) ListRecent(ctx context.Context, kind entity.FeedKind, limit int) ([]*entity.Digest, error) {
	return s.created, nil
}

const sampleReport = `Headline: Go 1.25 released
Summary: The Go team shipped 1.25.
Link: https://go.dev/blog/go1.25
---
Headline: New slog handler
Summary: Structured logging improvements.
Link: https://go.dev/blog/slog
Why it matters: Cleaner production logs.`

func TestGenerateBuildsResponse(t *testing.T) {
	scout := &stubScout{report: &agent.Report{
		Text:      sampleReport,
		Citations: []string{"https://go.dev/blog/go1.25"},
	}}
	store := &stubCitationStore{}
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	svc := &Service{
		Scout:     scout,
		Citations: store,
		Now:       func() time.Time { return now },
	}

	resp, err := svc.Generate(context.Background(), entity.FeedNews)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if resp.Count != 2 || len(resp.Items) != 2 {
		t.Errorf("Count = %d, len(Items) = %d, want 2", resp.Count, len(resp.Items))
	}
	if !resp.GeneratedAt.Equal(now) {
		t.Errorf("GeneratedAt = %v, want %v", resp.GeneratedAt, now)
	}
	if resp.Items[0].Headline != "Go 1.25 released" {
		t.Errorf("Items[0].Headline = %q", resp.Items[0].Headline)
	}
	wantSources := []string{"https://go.dev/blog/go1.25", "https://go.dev/blog/slog"}
	if diff := cmp.Diff(wantSources, resp.Sources); diff != "" {
		t.Errorf("Sources mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantSources, store.recorded[entity.FeedNews]); diff != "" {
		t.Errorf("recorded citations mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateCapsItems(t *testing.T) {
	var blocks []string
	for i := 0; i < 8; i++ {
		blocks = append(blocks, "Headline: item\nSummary: text")
	}
	scout := &stubScout{report: &agent.Report{Text: strings.Join(blocks, "\n---\n")}}

	svc := &Service{Scout: scout, Citations: &stubCitationStore{}, MaxItems: 3}

	resp, err := svc.Generate(context.Background(), entity.FeedNews)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if resp.Count != 3 {
		t.Errorf("Count = %d, want 3", resp.Count)
	}
}

func TestGenerateEmptyReportHasNonNilSlices(t *testing.T) {
	scout := &stubScout{report: &agent.Report{Text: ""}}
	svc := &Service{Scout: scout, Citations: &stubCitationStore{}}

	resp, err := svc.Generate(context.Background(), entity.FeedImprovements)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if resp.Items == nil || resp.Sources == nil {
		t.Error("Items and Sources must be non-nil for JSON encoding")
	}
	if resp.Count != 0 {
		t.Errorf("Count = %d, want 0", resp.Count)
	}
}

func TestGenerateUnknownKind(t *testing.T) {
	svc := &Service{Scout: &stubScout{}, Citations: &stubCitationStore{}}
	if _, err := svc.Generate(context.Background(), entity.FeedKind("weather")); !errors.Is(err, ErrUnknownFeed) {
		t.Errorf("error = %v, want ErrUnknownFeed", err)
	}
}

func TestGetUsesCacheWithinTTL(t *testing.T) {
	scout := &stubScout{report: &agent.Report{Text: sampleReport}}
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	svc := &Service{
		Scout:     scout,
		Citations: &stubCitationStore{},
		CacheTTL:  time.Hour,
		Now:       func() time.Time { return now },
	}

	if _, err := svc.Get(context.Background(), entity.FeedNews); err != nil {
		t.Fatalf("first Get() error = %v", err)
	}
	if _, err := svc.Get(context.Background(), entity.FeedNews); err != nil {
		t.Fatalf("second Get() error = %v", err)
	}
	if scout.calls != 1 {
		t.Errorf("scout calls = %d, want 1 (cached)", scout.calls)
	}

	now = now.Add(2 * time.Hour)
	if _, err := svc.Get(context.Background(), entity.FeedNews); err != nil {
		t.Fatalf("third Get() error = %v", err)
	}
	if scout.calls != 2 {
		t.Errorf("scout calls = %d, want 2 (expired)", scout.calls)
	}
}

func TestGetZeroTTLAlwaysRegenerates(t *testing.T) {
	scout := &stubScout{report: &agent.Report{Text: sampleReport}}
	svc := &Service{Scout: scout, Citations: &stubCitationStore{}}

	for i := 0; i < 3; i++ {
		if _, err := svc.Get(context.Background(), entity.FeedNews); err != nil {
			t.Fatalf("Get() #%d error = %v", i, err)
		}
	}
	if scout.calls != 3 {
		t.Errorf("scout calls = %d, want 3", scout.calls)
	}
}

func TestGetServesStaleOnFailure(t *testing.T) {
	scout := &stubScout{report: &agent.Report{Text: sampleReport}}
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	svc := &Service{
		Scout:     scout,
		Citations: &stubCitationStore{},
		CacheTTL:  time.Minute,
		Now:       func() time.Time { return now },
	}

	first, err := svc.Get(context.Background(), entity.FeedNews)
	if err != nil {
		t.Fatalf("first Get() error = %v", err)
	}

	now = now.Add(time.Hour)
	scout.err = errors.New("api quota exceeded")

	stale, err := svc.Get(context.Background(), entity.FeedNews)
	if err != nil {
		t.Fatalf("Get() after failure error = %v, want stale response", err)
	}
	if !stale.GeneratedAt.Equal(first.GeneratedAt) {
		t.Errorf("GeneratedAt = %v, want stale %v", stale.GeneratedAt, first.GeneratedAt)
	}
}

func TestGetFailsWithoutCache(t *testing.T) {
	scout := &stubScout{err: errors.New("boom")}
	svc := &Service{Scout: scout, Citations: &stubCitationStore{}}

	if _, err := svc.Get(context.Background(), entity.FeedNews); err == nil {
		t.Fatal("Get() error = nil, want scout failure")
	}
}

func TestGeneratePersistsDigest(t *testing.T) {
	scout := &stubScout{report: &agent.Report{Text: sampleReport}}
	digests := &stubDigestRepo{}
	svc := &Service{Scout: scout, Citations: &stubCitationStore{}, Digests: digests}

	if _, err := svc.Generate(context.Background(), entity.FeedNews); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(digests.created) != 1 {
		t.Fatalf("digests created = %d, want 1", len(digests.created))
	}
	d := digests.created[0]
	if d.Kind != entity.FeedNews || d.Provider != "stub" {
		t.Errorf("digest = {Kind: %s, Provider: %s}", d.Kind, d.Provider)
	}
}

func TestGenerateDigestFailureIsNotFatal(t *testing.T) {
	scout := &stubScout{report: &agent.Report{Text: sampleReport}}
	svc := &Service{
		Scout:     scout,
		Citations: &stubCitationStore{},
		Digests:   &stubDigestRepo{err: errors.New("db down")},
	}

	if _, err := svc.Generate(context.Background(), entity.FeedNews); err != nil {
		t.Errorf("Generate() error = %v, want digest failures swallowed", err)
	}
}

func TestRefreshAll(t *testing.T) {
	scout := &stubScout{report: &agent.Report{Text: sampleReport}}
	store := &stubCitationStore{}
	svc := &Service{Scout: scout, Citations: store}

	if err := svc.RefreshAll(context.Background()); err != nil {
		t.Fatalf("RefreshAll() error = %v", err)
	}
	if scout.calls != 2 {
		t.Errorf("scout calls = %d, want 2", scout.calls)
	}
	for _, kind := range []entity.FeedKind{entity.FeedNews, entity.FeedImprovements} {
		if _, ok := store.recorded[kind]; !ok {
			t.Errorf("no citations recorded for %s", kind)
		}
	}
}

func TestRefreshAllPropagatesError(t *testing.T) {
	scout := &stubScout{err: errors.New("provider down")}
	svc := &Service{Scout: scout, Citations: &stubCitationStore{}}

	if err := svc.RefreshAll(context.Background()); err == nil {
		t.Fatal("RefreshAll() error = nil, want provider failure")
	}
}
