package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// SchemaSQL is the base schema for fresh installs.
//
// This is the SINGLE SOURCE OF TRUTH for the tables. Tests load it via
// GetSchemaSQL() instead of hardcoding CREATE TABLE statements, so any drift
// between repository code and schema fails immediately with "no such column".
//
// The foreign key from ai_analysis to poo_logs is declared but deliberately
// not cascading: deletes are issued as two explicit statements by the
// application, and an orphaned analysis row is a tolerated state, not
// corruption.
const SchemaSQL = `
CREATE TABLE IF NOT EXISTS dog_profile (
	id INTEGER PRIMARY KEY NOT NULL,
	name TEXT NOT NULL,
	breed TEXT,
	age REAL NOT NULL,
	weight REAL NOT NULL,
	created_at TEXT DEFAULT CURRENT_TIMESTAMP,
	updated_at TEXT DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS poo_logs (
	id TEXT PRIMARY KEY NOT NULL,
	consistency_score INTEGER NOT NULL,
	color TEXT NOT NULL,
	mucus_present INTEGER NOT NULL,
	blood_visible INTEGER NOT NULL,
	worms_visible INTEGER NOT NULL,
	notes TEXT,
	photo_uri TEXT,
	created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS ai_analysis (
	id TEXT PRIMARY KEY NOT NULL,
	poo_log_id TEXT NOT NULL,
	classification TEXT,
	health_score INTEGER,
	gut_health_summary TEXT,
	shape_analysis TEXT,
	texture_analysis TEXT,
	color_analysis TEXT,
	moisture_analysis TEXT,
	parasite_check_results TEXT,
	flags_and_observations TEXT,
	actionable_recommendations TEXT,
	vet_flag INTEGER,
	confidence_score REAL,
	analysed_at TEXT DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (poo_log_id) REFERENCES poo_logs (id)
);

CREATE INDEX IF NOT EXISTS idx_poo_logs_created ON poo_logs(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_ai_analysis_log ON ai_analysis(poo_log_id);
`

// EnsureSchema creates the tables if absent and applies additive migrations.
// Idempotent and safe against a database that already has everything.
//
// Schema evolution is append-only: a migration may only add a column. When
// the column already exists the resulting "duplicate column name" error is
// ignored; any other migration failure is fatal to startup and returned.
func EnsureSchema(conn *sql.DB) error {
	if _, err := conn.Exec(SchemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	for _, m := range additiveMigrations {
		if _, err := conn.Exec(m.SQL); err != nil {
			if isDuplicateColumn(err) {
				continue
			}
			return fmt.Errorf("migration %q failed: %w", m.Name, err)
		}
	}

	return nil
}

// isDuplicateColumn detects the SQLite error produced by ALTER TABLE ADD
// COLUMN when the column is already present.
func isDuplicateColumn(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate column name")
}

// GetSchemaSQL returns the authoritative schema for use by tests.
func GetSchemaSQL() string {
	return SchemaSQL
}
