package entity

import "time"

// Citation is one grounding source observed by an agent while generating a
// feed. From records which feed first reported the URL.
type Citation struct {
	URL  string   `json:"url"`
	From FeedKind `json:"from"`
}

// SourcesResponse is the payload served for the aggregated sources feed.
// Sources keep first-seen order across the contributing feeds.
type SourcesResponse struct {
	GeneratedAt time.Time  `json:"generated_at"`
	Count       int        `json:"count"`
	Sources     []Citation `json:"sources"`
}

// DedupeCitations removes duplicate URLs while preserving first-seen order
// and origin. The input is not modified.
func DedupeCitations(citations []Citation) []Citation {
	seen := make(map[string]struct{}, len(citations))
	out := make([]Citation, 0, len(citations))
	for _, c := range citations {
		if _, ok := seen[c.URL]; ok {
			continue
		}
		seen[c.URL] = struct{}{}
		out = append(out, c)
	}
	return out
}
