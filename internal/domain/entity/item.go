package entity

import "time"

// FeedKind identifies one of the generated feeds.
type FeedKind string

const (
	// FeedNews is the top-news feed produced by the news scout agent.
	FeedNews FeedKind = "news"

	// FeedImprovements is the technical-improvements feed produced by the
	// documentation analyst agent.
	FeedImprovements FeedKind = "improvements"
)

// Valid reports whether the kind names a known feed.
func (k FeedKind) Valid() bool {
	return k == FeedNews || k == FeedImprovements
}

// ContentItem is one entry of a generated feed. All fields are optional on
// the wire; rendering applies the documented defaults instead of failing.
type ContentItem struct {
	Headline string `json:"headline,omitempty"`
	Summary  string `json:"summary,omitempty"`
	Why      string `json:"why,omitempty"` // improvements feed only
	Link     string `json:"link,omitempty"`
	Source   string `json:"source,omitempty"`
}

// DisplayHeadline returns the headline, or "Untitled" when the item has none.
func (i ContentItem) DisplayHeadline() string {
	if i.Headline == "" {
		return "Untitled"
	}
	return i.Headline
}

// Empty reports whether the item carries no content at all.
// Empty items are dropped by the block parser rather than rendered.
func (i ContentItem) Empty() bool {
	return i == ContentItem{}
}

// FeedResponse is the payload served for the news and improvements feeds.
// Items and Sources keep arrival order; either may be empty.
type FeedResponse struct {
	GeneratedAt time.Time     `json:"generated_at"`
	Count       int           `json:"count"`
	Items       []ContentItem `json:"items"`
	Sources     []string      `json:"sources"`
}
