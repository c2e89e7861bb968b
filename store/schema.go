// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"fmt"
)

// SchemaVersion is the schema version this package writes.
const SchemaVersion = 2

// migrations[v] upgrades a database from version v-1 to v.
var migrations = []string{
	1: `
CREATE TABLE IF NOT EXISTS schema_version (
	version    INTEGER PRIMARY KEY,
	applied_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS analyses (
	id          TEXT PRIMARY KEY,
	created_at  TEXT NOT NULL,
	fingerprint TEXT NOT NULL,
	population  INTEGER NOT NULL,
	strategies  TEXT NOT NULL,
	beta        TEXT NOT NULL,
	payoffs     TEXT NOT NULL,
	transitions TEXT NOT NULL,
	ergodic     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_analyses_fingerprint ON analyses(fingerprint);
CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at);
`,
	// v1 rows keep fingerprints without solver settings, so they never match again.
	2: `
ALTER TABLE analyses ADD COLUMN names TEXT NOT NULL DEFAULT '[]';
ALTER TABLE analyses ADD COLUMN irreducible TEXT NOT NULL DEFAULT '[]';
ALTER TABLE analyses ADD COLUMN solver TEXT NOT NULL DEFAULT '{}';
`,
}

// InitSchema brings the database up to SchemaVersion and refuses databases
// written by a newer version of this package.
func InitSchema(ctx context.Context, db *sql.DB) error {
	current, err := getSchemaVersion(ctx, db)
	if err != nil {
		// schema_version missing: fresh database
		current = 0
	}
	if current > SchemaVersion {
		return fmt.Errorf("schema version %d is newer than supported %d: %w", current, SchemaVersion, ErrSchemaVersion)
	}
	for v := current + 1; v <= SchemaVersion; v++ {
		if err := migrate(ctx, db, v); err != nil {
			return fmt.Errorf("failed to migrate schema to version %d: %w", v, err)
		}
	}

	return nil
}

func getSchemaVersion(ctx context.Context, db *sql.DB) (int, error) {
	var version sql.NullInt64
	err := db.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_version`).Scan(&version)
	if err != nil {
		return 0, err
	}
	return int(version.Int64), nil
}

func migrate(ctx context.Context, db *sql.DB, version int) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, migrations[version]); err != nil {
		return fmt.Errorf("failed to apply migration: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_version (version, applied_at) VALUES (?, datetime('now'))`,
		version); err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}

	return tx.Commit()
}
