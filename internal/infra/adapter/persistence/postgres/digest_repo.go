package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"foundry-catchup/internal/domain/entity"
	"foundry-catchup/internal/observability/metrics"
	"foundry-catchup/internal/repository"
)

type DigestRepo struct{ db *sql.DB }

func NewDigestRepo(db *sql.DB) repository.DigestRepository {
	return &DigestRepo{db: db}
}

// Create appends one digest. Items and sources are stored as JSON columns;
// the generated feeds are small (≤10 items, ≤20 sources) so relational
// decomposition buys nothing here.
func (repo *DigestRepo) Create(ctx context.Context, d *entity.Digest) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("Create: %w", err)
	}

	itemsJSON, err := json.Marshal(d.Items)
	if err != nil {
		return fmt.Errorf("Create: marshal items: %w", err)
	}
	sourcesJSON, err := json.Marshal(d.Sources)
	if err != nil {
		return fmt.Errorf("Create: marshal sources: %w", err)
	}

	const query = `
INSERT INTO digests (kind, items, sources, provider, generated_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`
	start := time.Now()
	defer func() { metrics.RecordDBQuery("insert_digest", time.Since(start)) }()
	err = repo.db.QueryRowContext(ctx, query,
		string(d.Kind), itemsJSON, sourcesJSON, d.Provider, d.GeneratedAt,
	).Scan(&d.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

// ListRecent returns up to limit digests of the given kind, newest first.
func (repo *DigestRepo) ListRecent(ctx context.Context, kind entity.FeedKind, limit int) ([]*entity.Digest, error) {
	if limit <= 0 {
		limit = 10
	}

	const query = `
SELECT id, kind, items, sources, provider, generated_at
FROM digests
WHERE kind = $1
ORDER BY generated_at DESC, id DESC
LIMIT $2`
	start := time.Now()
	defer func() { metrics.RecordDBQuery("list_digests", time.Since(start)) }()
	rows, err := repo.db.QueryContext(ctx, query, string(kind), limit)
	if err != nil {
		return nil, fmt.Errorf("ListRecent: %w", err)
	}
	defer func() { _ = rows.Close() }()

	digests := make([]*entity.Digest, 0, limit)
	for rows.Next() {
		d, err := scanDigest(rows)
		if err != nil {
			return nil, fmt.Errorf("ListRecent: %w", err)
		}
		digests = append(digests, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListRecent: %w", err)
	}
	return digests, nil
}

func scanDigest(rows *sql.Rows) (*entity.Digest, error) {
	var (
		d           entity.Digest
		kind        string
		itemsJSON   []byte
		sourcesJSON []byte
	)
	if err := rows.Scan(&d.ID, &kind, &itemsJSON, &sourcesJSON, &d.Provider, &d.GeneratedAt); err != nil {
		return nil, err
	}
	d.Kind = entity.FeedKind(kind)

	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &d.Items); err != nil {
			return nil, fmt.Errorf("unmarshal items: %w", err)
		}
	}
	if len(sourcesJSON) > 0 {
		if err := json.Unmarshal(sourcesJSON, &d.Sources); err != nil {
			return nil, fmt.Errorf("unmarshal sources: %w", err)
		}
	}
	return &d, nil
}
