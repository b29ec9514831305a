// Package sqlite implements the ingestion audit log on an embedded SQLite
// database.
package sqlite

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS ingestions (
	id           TEXT PRIMARY KEY,
	external_id  TEXT NOT NULL,
	source_url   TEXT NOT NULL,
	document_id  INTEGER,
	is_new_entry INTEGER NOT NULL,
	failure      TEXT NOT NULL DEFAULT '',
	created_at   TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_ingestions_created_at ON ingestions (created_at);
`

// NewDB opens the audit database and applies the schema.
func NewDB(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	// modernc sqlite handles one writer at a time
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	return db, nil
}
