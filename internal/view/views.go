package view

import (
	"context"

	"foundry-catchup/internal/domain/entity"
)

// Anchor labels for item links, per feed.
const (
	newsLinkLabel         = "Open article"
	improvementsLinkLabel = "Read documentation"
)

// LoadSources fills the aggregated sources container from /api/sources.
// Each entry renders as "[from] url".
func (l *Loader) LoadSources(ctx context.Context, agg *Container) error {
	return Load(ctx, l, "/api/sources", func(resp entity.SourcesResponse) {
		agg.Clear()
		for _, c := range resp.Sources {
			agg.Append(RenderSourceEntry(c))
		}
	}, agg)
}

// LoadNews fills the news item and source containers from /api/news.
func (l *Loader) LoadNews(ctx context.Context, items, sources *Container) error {
	return l.loadFeed(ctx, "/api/news", newsLinkLabel, items, sources)
}

// LoadImprovements fills the improvements item and source containers from
// /api/improvements. Items may carry a "Why it matters" block.
func (l *Loader) LoadImprovements(ctx context.Context, items, sources *Container) error {
	return l.loadFeed(ctx, "/api/improvements", improvementsLinkLabel, items, sources)
}

// loadFeed is the shared dual-region render for the news and improvements
// views: one container of content items, one flat container of source links,
// both in arrival order. A response missing items or sources renders the
// corresponding region empty.
func (l *Loader) loadFeed(ctx context.Context, endpoint, linkLabel string, items, sources *Container) error {
	return Load(ctx, l, endpoint, func(resp entity.FeedResponse) {
		items.Clear()
		for _, it := range resp.Items {
			items.Append(RenderContentItem(it, linkLabel))
		}
		sources.Clear()
		for _, u := range resp.Sources {
			sources.Append(RenderSourceLink(u))
		}
	}, items, sources)
}
