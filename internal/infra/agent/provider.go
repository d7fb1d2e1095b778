// Package agent provides the grounded scout agents that generate the news
// and improvements feeds. It includes adapters for Gemini (Google),
// Claude (Anthropic) and OpenAI with reliability patterns, plus the block
// parser and citation extraction shared by all providers.
package agent

import (
	"context"

	"foundry-catchup/internal/domain/entity"
)

// Report is the raw outcome of one scouting run: the provider's text in the
// block format plus any citation URLs the provider surfaced alongside it.
type Report struct {
	// Text is the raw model output in Headline:/Summary:/Link: block format.
	Text string

	// Citations are grounding URLs reported by the provider itself, in
	// arrival order. The URL-regex fallback over Text is applied later.
	Citations []string
}

// Provider runs one scouting task against an AI backend.
type Provider interface {
	// Scout generates a report for the given feed kind.
	Scout(ctx context.Context, kind entity.FeedKind) (*Report, error)

	// Name identifies the provider in logs, metrics and persisted digests.
	Name() string
}
