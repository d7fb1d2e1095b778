package entity

import "time"

// Digest is one persisted generation run of a feed. It records what the
// agent produced so past runs can be inspected after the in-memory cache
// has moved on.
type Digest struct {
	ID          int64
	Kind        FeedKind
	Items       []ContentItem
	Sources     []string
	Provider    string
	GeneratedAt time.Time
}

// Validate checks the digest fields before persistence.
func (d *Digest) Validate() error {
	if !d.Kind.Valid() {
		return &ValidationError{Field: "kind", Message: "must be a known feed kind"}
	}
	if d.Provider == "" {
		return &ValidationError{Field: "provider", Message: "is required"}
	}
	if d.GeneratedAt.IsZero() {
		return &ValidationError{Field: "generated_at", Message: "is required"}
	}
	return nil
}
