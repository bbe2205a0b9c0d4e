// Package sqlite_test contains integration tests for the SQLite repositories.
//
// All test setup goes through setupTestDB, which loads the authoritative
// schema from internal/db. DO NOT hardcode CREATE TABLE statements in test
// files; drift between test and production schema then fails immediately
// with "no such column".
package sqlite_test

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/pawlog/internal/db"
	"github.com/example/pawlog/internal/models"
)

// setupTestDB creates an in-memory database with the authoritative schema,
// matching production connections (foreign key enforcement at the engine's
// default, off).
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := db.EnsureSchema(testDB); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedLog inserts a test log created at the given time and returns its ID.
func seedLog(t *testing.T, conn *sql.DB, id string, createdAt time.Time) string {
	t.Helper()
	if id == "" {
		id = "log-001"
	}
	_, err := conn.Exec(
		"INSERT INTO poo_logs (id, consistency_score, color, mucus_present, blood_visible, worms_visible, created_at) VALUES (?, 3, 'normal_brown', 0, 0, 0, ?)",
		id, createdAt.UTC().Format("2006-01-02 15:04:05"),
	)
	if err != nil {
		t.Fatalf("failed to seed log: %v", err)
	}
	return id
}

// seedAnalysis inserts a minimal analysis row for a log and returns its ID.
func seedAnalysis(t *testing.T, conn *sql.DB, id, logID string) string {
	t.Helper()
	if id == "" {
		id = "an-001"
	}
	_, err := conn.Exec(
		"INSERT INTO ai_analysis (id, poo_log_id, classification, health_score, confidence_score) VALUES (?, ?, 'Healthy', 85, 0.95)",
		id, logID,
	)
	if err != nil {
		t.Fatalf("failed to seed analysis: %v", err)
	}
	return id
}

// testDraft returns a valid manual draft for use across tests.
func testDraft() models.LogDraft {
	return models.LogDraft{
		ConsistencyScore: 4,
		Color:            models.ColorNormalBrown,
		MucusPresent:     false,
		BloodVisible:     true,
		WormsVisible:     false,
		Notes:            "ate grass yesterday",
	}
}
