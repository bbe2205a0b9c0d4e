// Package db owns the SQLite connection and the authoritative schema.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultPath returns the default database file location (~/.pawlog/pawlog.db).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".pawlog", "pawlog.db"), nil
}

// Open opens the database at path, creating the parent directory if needed,
// and ensures the schema is current. Safe to call on every process start.
func Open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Foreign key enforcement stays at SQLite's default (off). The
	// ai_analysis -> poo_logs reference is validated by the analysis
	// repository itself; deletes are two explicit statements and an orphaned
	// analysis row is a tolerated state the retention sweeper cleans up.

	if err := EnsureSchema(conn); err != nil {
		conn.Close()
		return nil, err
	}

	return conn, nil
}
