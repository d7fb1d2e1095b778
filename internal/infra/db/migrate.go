package db

import "database/sql"

// MigrateUp creates the digest history schema. Statements are idempotent so
// the API and worker can both run migrations at startup.
func MigrateUp(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS digests (
    id           SERIAL PRIMARY KEY,
    kind         VARCHAR(20) NOT NULL,
    items        JSONB NOT NULL DEFAULT '[]',
    sources      JSONB NOT NULL DEFAULT '[]',
    provider     VARCHAR(50) NOT NULL,
    generated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`); err != nil {
		return err
	}

	indexes := []string{
		// ListRecent filters by kind and orders by generated_at DESC
		`CREATE INDEX IF NOT EXISTS idx_digests_kind_generated_at ON digests(kind, generated_at DESC)`,
	}
	for _, idx := range indexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}

	// kind制約追加(既に存在する場合はエラーを無視)
	_, _ = db.Exec(`
DO $$
BEGIN
    IF NOT EXISTS (
        SELECT 1 FROM pg_constraint
        WHERE conname = 'chk_digest_kind'
    ) THEN
        ALTER TABLE digests ADD CONSTRAINT chk_digest_kind
        CHECK (kind IN ('news', 'improvements'));
    END IF;
END $$;
`)

	return nil
}

// MigrateDown rolls back the digest history schema.
// Use with caution: this will delete all persisted digests.
func MigrateDown(db *sql.DB) error {
	dropStatements := []string{
		`DROP INDEX IF EXISTS idx_digests_kind_generated_at`,
		`DROP TABLE IF EXISTS digests CASCADE`,
	}
	for _, stmt := range dropStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
