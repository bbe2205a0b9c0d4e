// Package secondary defines the secondary ports (driven adapters) for the
// application: persistence and the two remote collaborators.
package secondary

import (
	"context"
	"errors"
	"time"

	"github.com/example/pawlog/internal/models"
)

// Sentinel errors returned by repositories. Callers branch with errors.Is.
var (
	// ErrNotFound is returned by reads when no matching row exists. Reads
	// never return a partial record.
	ErrNotFound = errors.New("record not found")

	// ErrProfileExists is returned when inserting a profile while one already
	// exists. The store enforces the 0-or-1 invariant itself so the outcome
	// is deterministic regardless of caller checks.
	ErrProfileExists = errors.New("profile already exists")

	// ErrForeignKeyViolation is returned when an analysis references a log id
	// that does not exist. Given the orchestrator's write ordering this
	// indicates an upstream bug, but the store detects and reports it rather
	// than corrupting silently.
	ErrForeignKeyViolation = errors.New("foreign key violation")
)

// ProfileRepository persists the singleton dog profile.
type ProfileRepository interface {
	// Get returns the profile, or ErrNotFound when none exists.
	Get(ctx context.Context) (*models.DogProfile, error)

	// Create inserts the profile. Returns ErrProfileExists if a row is
	// already present.
	Create(ctx context.Context, p *models.DogProfile) (int64, error)

	// Update replaces the full record.
	Update(ctx context.Context, p *models.DogProfile) error

	// Delete removes the profile row. Deleting when none exists is not an
	// error.
	Delete(ctx context.Context) error
}

// LogRepository persists poo logs.
type LogRepository interface {
	// Create inserts a log. Inserting an id that already exists is treated
	// as "already saved" and succeeds without modifying the existing row, so
	// a retried save attempt cannot fail here.
	Create(ctx context.Context, log *models.PooLog) error

	// GetByID returns a log without its analysis, or ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.PooLog, error)

	// ListRecent returns the newest logs with their analysis attached where
	// one exists, ordered by creation time descending.
	ListRecent(ctx context.Context, limit int) ([]*models.PooLog, error)

	// UpdateManualFields updates the user-editable subset (consistency,
	// color, symptom flags, notes). ID, photo reference and creation time
	// are immutable. Returns ErrNotFound for an unknown id.
	UpdateManualFields(ctx context.Context, id string, d models.LogDraft) error

	// Delete removes a single log row. It does not touch the log's analysis;
	// callers issue both deletes.
	Delete(ctx context.Context, id string) error

	// PurgeOlderThan deletes every log created strictly before cutoff, and
	// for each its analysis if present. Dependents are deleted before
	// parents. Returns the number of logs purged; 0 is success.
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int, error)

	// CountAnalysedInMonth counts analysis rows whose parent log was created
	// in the given calendar month ("2006-01" key). Always recomputed from
	// persisted state.
	CountAnalysedInMonth(ctx context.Context, monthKey string) (int, error)

	// DeleteAll removes every log row (data wipe).
	DeleteAll(ctx context.Context) error
}

// AnalysisRepository persists AI analyses.
type AnalysisRepository interface {
	// Create inserts an analysis. The referenced log must already exist;
	// otherwise ErrForeignKeyViolation is returned and no row is written.
	Create(ctx context.Context, a *models.AIAnalysis) error

	// GetByLogID returns the analysis for a log, or ErrNotFound.
	GetByLogID(ctx context.Context, logID string) (*models.AIAnalysis, error)

	// DeleteByLogID removes the analysis for a log if present.
	DeleteByLogID(ctx context.Context, logID string) error

	// DeleteAll removes every analysis row (data wipe).
	DeleteAll(ctx context.Context) error
}
