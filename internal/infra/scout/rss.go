package scout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/sony/gobreaker"

	"foundry-catchup/internal/domain/entity"
	"foundry-catchup/internal/infra/agent"
	"foundry-catchup/internal/resilience/circuitbreaker"
	"foundry-catchup/internal/resilience/retry"
)

// maxSummaryLen bounds the summary text taken from a feed entry.
const maxSummaryLen = 280

// RSS synthesizes scout reports from RSS/Atom feeds using the gofeed
// library. It emits the same block format the AI providers produce, so the
// downstream parsing path is shared.
type RSS struct {
	client         *http.Client
	feeds          FeedConfig
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewRSS creates an RSS provider with the given HTTP client and feed list.
// It automatically configures circuit breaker and retry logic.
func NewRSS(client *http.Client, feeds FeedConfig) *RSS {
	return &RSS{
		client:         client,
		feeds:          feeds,
		circuitBreaker: circuitbreaker.New(circuitbreaker.ScoutFeedConfig()),
		retryConfig:    retry.ScoutFeedConfig(),
	}
}

// Name returns the provider name.
func (r *RSS) Name() string { return "rss" }

// entry is one feed item with its publish time, for cross-feed ordering.
type entry struct {
	title       string
	link        string
	summary     string
	publishedAt time.Time
}

// Scout fetches every configured feed for the kind and renders the newest
// entries as a block report. A feed that fails after retries is skipped; the
// scout fails only when every feed failed.
func (r *RSS) Scout(ctx context.Context, kind entity.FeedKind) (*agent.Report, error) {
	urls := r.feeds.URLs(kind)
	if len(urls) == 0 {
		return nil, fmt.Errorf("no feeds configured for kind %q", kind)
	}

	var entries []entry
	var failed int
	for _, feedURL := range urls {
		items, err := r.fetch(ctx, feedURL)
		if err != nil {
			failed++
			slog.Warn("scout feed fetch failed",
				slog.String("url", feedURL),
				slog.Any("error", err))
			continue
		}
		entries = append(entries, items...)
	}
	if failed == len(urls) {
		return nil, fmt.Errorf("all %d feeds failed for kind %q", len(urls), kind)
	}

	// 新しい順に並べる
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].publishedAt.After(entries[j].publishedAt)
	})

	return buildReport(entries), nil
}

// fetch retrieves one feed through the retry and circuit breaker wrappers.
func (r *RSS) fetch(ctx context.Context, feedURL string) ([]entry, error) {
	var entries []entry

	retryErr := retry.WithBackoff(ctx, r.retryConfig, func() error {
		cbResult, err := r.circuitBreaker.Execute(func() (interface{}, error) {
			return r.doFetch(ctx, feedURL)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("scout feed circuit breaker open, request rejected",
					slog.String("url", feedURL),
					slog.String("state", r.circuitBreaker.State().String()))
			}
			return err
		}
		entries = cbResult.([]entry)
		return nil
	})
	if retryErr != nil {
		return nil, retryErr
	}
	return entries, nil
}

// doFetch performs the actual feed fetch without retry or circuit breaker.
func (r *RSS) doFetch(ctx context.Context, feedURL string) ([]entry, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = "FoundryCatchupBot"
	fp.Client = r.client

	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]entry, 0, len(feed.Items))
	for _, it := range feed.Items {
		pubAt := time.Now()
		if it.PublishedParsed != nil {
			pubAt = *it.PublishedParsed
		}

		// Content優先、なければDescriptionを使用
		content := it.Content
		if content == "" {
			content = it.Description
		}

		entries = append(entries, entry{
			title:       it.Title,
			link:        it.Link,
			summary:     summarize(content),
			publishedAt: pubAt,
		})
	}
	return entries, nil
}

// buildReport renders entries in the provider block format: one block per
// entry, "---" separated, with citations carrying the entry links.
func buildReport(entries []entry) *agent.Report {
	var blocks []string
	var citations []string
	for _, e := range entries {
		var b strings.Builder
		fmt.Fprintf(&b, "Headline: %s\n", strings.TrimSpace(e.title))
		fmt.Fprintf(&b, "Summary: %s\n", e.summary)
		if e.link != "" {
			fmt.Fprintf(&b, "Link: %s\n", e.link)
			citations = append(citations, e.link)
		}
		blocks = append(blocks, b.String())
	}
	return &agent.Report{
		Text:      strings.Join(blocks, "\n---\n"),
		Citations: citations,
	}
}

var (
	tagPattern   = regexp.MustCompile(`<[^>]*>`)
	spacePattern = regexp.MustCompile(`\s+`)
)

// summarize strips markup from feed entry content and truncates it to a
// single short line.
func summarize(content string) string {
	s := tagPattern.ReplaceAllString(content, " ")
	s = spacePattern.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	if len(s) > maxSummaryLen {
		cut := s[:maxSummaryLen]
		if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
			cut = cut[:idx]
		}
		s = cut + "…"
	}
	return s
}
