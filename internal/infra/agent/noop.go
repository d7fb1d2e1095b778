package agent

import (
	"context"

	"foundry-catchup/internal/domain/entity"
)

// NoOp is a scout that returns a fixed placeholder report without calling
// any API. This is useful for development and tests when no key is set.
type NoOp struct{}

// NewNoOp creates a new NoOp scout.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Name identifies the provider in logs, metrics and persisted digests.
func (n *NoOp) Name() string { return "noop" }

// Scout returns a single placeholder block so the feed pipeline and views
// have something to render during development.
func (n *NoOp) Scout(_ context.Context, kind entity.FeedKind) (*Report, error) {
	text := `Headline: Scout agent not configured
Summary: Set GOOGLE_API_KEY (or ANTHROPIC_API_KEY / OPENAI_API_KEY) to generate the ` + string(kind) + ` feed.
---`
	return &Report{Text: text}, nil
}
