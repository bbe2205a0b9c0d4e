package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/example/pawlog/internal/models"
	"github.com/example/pawlog/internal/ports/secondary"
)

// AnalysisRepository implements secondary.AnalysisRepository with SQLite.
type AnalysisRepository struct {
	db *sql.DB
}

// NewAnalysisRepository creates a new SQLite analysis repository.
func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Create persists a new analysis. The parent log must already exist; the
// store does not auto-create it. Because the engine does not enforce the
// declared foreign key, the parent check happens here, in the same
// transaction as the insert, so a dangling reference always maps to
// ErrForeignKeyViolation and leaves no row behind.
func (r *AnalysisRepository) Create(ctx context.Context, a *models.AIAnalysis) error {
	analysedAt := a.AnalysedAt
	if analysedAt.IsZero() {
		analysedAt = time.Now()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin analysis insert: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM poo_logs WHERE id = ?", a.PooLogID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check parent log: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("analysis references missing log %s: %w", a.PooLogID, secondary.ErrForeignKeyViolation)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO ai_analysis (id, poo_log_id, classification, health_score, gut_health_summary,
			shape_analysis, texture_analysis, color_analysis, moisture_analysis, parasite_check_results,
			flags_and_observations, actionable_recommendations, vet_flag, confidence_score, hydration_estimate, analysed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.PooLogID, a.Classification, a.HealthScore, a.GutHealthSummary,
		a.ShapeAnalysis, a.TextureAnalysis, a.ColorAnalysis, a.MoistureAnalysis, a.ParasiteCheckResults,
		a.FlagsAndObservations, a.ActionableRecommendations, a.VetFlag, a.ConfidenceScore, a.HydrationEstimate, formatTime(analysedAt),
	)
	if err != nil {
		// Second detection layer for connections that do run with
		// PRAGMA foreign_keys = ON.
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey {
			return fmt.Errorf("analysis references missing log %s: %w", a.PooLogID, secondary.ErrForeignKeyViolation)
		}
		return fmt.Errorf("failed to create analysis: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit analysis: %w", err)
	}

	return nil
}

// GetByLogID retrieves the analysis for a log.
func (r *AnalysisRepository) GetByLogID(ctx context.Context, logID string) (*models.AIAnalysis, error) {
	var (
		classification  sql.NullString
		healthScore     sql.NullInt64
		summary         sql.NullString
		shape           sql.NullString
		texture         sql.NullString
		colorAnalysis   sql.NullString
		moisture        sql.NullString
		parasite        sql.NullString
		flags           sql.NullString
		recommendations sql.NullString
		vetFlag         sql.NullBool
		confidence      sql.NullFloat64
		hydration       sql.NullString
		analysedAt      string
	)

	a := &models.AIAnalysis{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, poo_log_id, classification, health_score, gut_health_summary,
			shape_analysis, texture_analysis, color_analysis, moisture_analysis, parasite_check_results,
			flags_and_observations, actionable_recommendations, vet_flag, confidence_score, hydration_estimate, analysed_at
		 FROM ai_analysis WHERE poo_log_id = ?`, logID,
	).Scan(&a.ID, &a.PooLogID, &classification, &healthScore, &summary,
		&shape, &texture, &colorAnalysis, &moisture, &parasite,
		&flags, &recommendations, &vetFlag, &confidence, &hydration, &analysedAt)

	if err == sql.ErrNoRows {
		return nil, secondary.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	a.Classification = classification.String
	a.HealthScore = int(healthScore.Int64)
	a.GutHealthSummary = summary.String
	a.ShapeAnalysis = shape.String
	a.TextureAnalysis = texture.String
	a.ColorAnalysis = colorAnalysis.String
	a.MoistureAnalysis = moisture.String
	a.ParasiteCheckResults = parasite.String
	a.FlagsAndObservations = flags.String
	a.ActionableRecommendations = recommendations.String
	a.VetFlag = vetFlag.Bool
	a.ConfidenceScore = confidence.Float64
	a.HydrationEstimate = hydration.String
	a.AnalysedAt = parseTime(analysedAt)

	return a, nil
}

// DeleteByLogID removes the analysis for a log. No-op when none exists.
func (r *AnalysisRepository) DeleteByLogID(ctx context.Context, logID string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM ai_analysis WHERE poo_log_id = ?", logID); err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}
	return nil
}

// DeleteAll removes every analysis row.
func (r *AnalysisRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM ai_analysis"); err != nil {
		return fmt.Errorf("failed to delete analyses: %w", err)
	}
	return nil
}
