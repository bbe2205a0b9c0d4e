package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/example/pawlog/internal/models"
	"github.com/example/pawlog/internal/ports/secondary"
)

// LogRepository implements secondary.LogRepository with SQLite.
type LogRepository struct {
	db *sql.DB
}

// NewLogRepository creates a new SQLite log repository.
func NewLogRepository(db *sql.DB) *LogRepository {
	return &LogRepository{db: db}
}

// Create persists a new log. INSERT OR IGNORE makes the operation idempotent
// under identifier collision: a retried save attempt that reaches commit a
// second time leaves the original row untouched and succeeds.
func (r *LogRepository) Create(ctx context.Context, log *models.PooLog) error {
	var notes, photoURI sql.NullString
	if log.Notes != "" {
		notes = sql.NullString{String: log.Notes, Valid: true}
	}
	if log.PhotoURI != "" {
		photoURI = sql.NullString{String: log.PhotoURI, Valid: true}
	}

	createdAt := log.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO poo_logs (id, consistency_score, color, mucus_present, blood_visible, worms_visible, notes, photo_uri, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		log.ID, log.ConsistencyScore, string(log.Color), log.MucusPresent, log.BloodVisible, log.WormsVisible, notes, photoURI, formatTime(createdAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create log: %w", err)
	}

	return nil
}

const logColumns = "id, consistency_score, color, mucus_present, blood_visible, worms_visible, notes, photo_uri, created_at"

func scanLog(scan func(dest ...any) error) (*models.PooLog, error) {
	var (
		color     string
		notes     sql.NullString
		photoURI  sql.NullString
		createdAt string
	)

	log := &models.PooLog{}
	err := scan(&log.ID, &log.ConsistencyScore, &color, &log.MucusPresent, &log.BloodVisible, &log.WormsVisible, &notes, &photoURI, &createdAt)
	if err != nil {
		return nil, err
	}

	log.Color = models.StoolColor(color)
	log.Notes = notes.String
	log.PhotoURI = photoURI.String
	log.CreatedAt = parseTime(createdAt)
	return log, nil
}

// GetByID retrieves a log by its ID, without its analysis.
func (r *LogRepository) GetByID(ctx context.Context, id string) (*models.PooLog, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+logColumns+" FROM poo_logs WHERE id = ?", id,
	)

	log, err := scanLog(row.Scan)
	if err == sql.ErrNoRows {
		return nil, secondary.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get log: %w", err)
	}

	return log, nil
}

// ListRecent returns the newest logs, each with its analysis attached when
// one exists.
func (r *LogRepository) ListRecent(ctx context.Context, limit int) ([]*models.PooLog, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT l.id, l.consistency_score, l.color, l.mucus_present, l.blood_visible, l.worms_visible, l.notes, l.photo_uri, l.created_at,
		       a.id, a.classification, a.health_score, a.gut_health_summary,
		       a.shape_analysis, a.texture_analysis, a.color_analysis, a.moisture_analysis, a.parasite_check_results,
		       a.flags_and_observations, a.actionable_recommendations, a.vet_flag, a.confidence_score, a.hydration_estimate, a.analysed_at
		FROM poo_logs l
		LEFT JOIN ai_analysis a ON a.poo_log_id = l.id
		ORDER BY l.created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}
	defer rows.Close()

	var logs []*models.PooLog
	for rows.Next() {
		var (
			color     string
			notes     sql.NullString
			photoURI  sql.NullString
			createdAt string

			aID             sql.NullString
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
			analysedAt      sql.NullString
		)

		log := &models.PooLog{}
		err := rows.Scan(
			&log.ID, &log.ConsistencyScore, &color, &log.MucusPresent, &log.BloodVisible, &log.WormsVisible, &notes, &photoURI, &createdAt,
			&aID, &classification, &healthScore, &summary,
			&shape, &texture, &colorAnalysis, &moisture, &parasite,
			&flags, &recommendations, &vetFlag, &confidence, &hydration, &analysedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan log: %w", err)
		}

		log.Color = models.StoolColor(color)
		log.Notes = notes.String
		log.PhotoURI = photoURI.String
		log.CreatedAt = parseTime(createdAt)

		if aID.Valid {
			log.Analysis = &models.AIAnalysis{
				ID:                        aID.String,
				PooLogID:                  log.ID,
				Classification:            classification.String,
				HealthScore:               int(healthScore.Int64),
				GutHealthSummary:          summary.String,
				ShapeAnalysis:             shape.String,
				TextureAnalysis:           texture.String,
				ColorAnalysis:             colorAnalysis.String,
				MoistureAnalysis:          moisture.String,
				ParasiteCheckResults:      parasite.String,
				FlagsAndObservations:      flags.String,
				ActionableRecommendations: recommendations.String,
				VetFlag:                   vetFlag.Bool,
				ConfidenceScore:           confidence.Float64,
				HydrationEstimate:         hydration.String,
				AnalysedAt:                parseTime(analysedAt.String),
			}
		}

		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate logs: %w", err)
	}

	return logs, nil
}

// UpdateManualFields updates the user-editable subset of a log. The id,
// photo reference and creation timestamp never change after creation.
func (r *LogRepository) UpdateManualFields(ctx context.Context, id string, d models.LogDraft) error {
	var notes sql.NullString
	if d.Notes != "" {
		notes = sql.NullString{String: d.Notes, Valid: true}
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE poo_logs SET consistency_score = ?, color = ?, mucus_present = ?, blood_visible = ?, worms_visible = ?, notes = ? WHERE id = ?",
		d.ConsistencyScore, string(d.Color), d.MucusPresent, d.BloodVisible, d.WormsVisible, notes, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update log: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return secondary.ErrNotFound
	}

	return nil
}

// Delete removes a single log row. The log's analysis is a separate,
// explicit delete issued by the caller.
func (r *LogRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM poo_logs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete log: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return secondary.ErrNotFound
	}

	return nil
}

// PurgeOlderThan deletes every log created strictly before cutoff together
// with its analysis. The candidate id set is computed first, then dependents
// are deleted before parents so a crash mid-purge never leaves an analysis
// pointing at a missing log.
func (r *LogRepository) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin purge: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, "SELECT id FROM poo_logs WHERE created_at < ?", formatTime(cutoff))
	if err != nil {
		return 0, fmt.Errorf("failed to collect purge candidates: %w", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, fmt.Errorf("failed to scan purge candidate: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, fmt.Errorf("failed to iterate purge candidates: %w", err)
	}
	rows.Close()

	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM ai_analysis WHERE poo_log_id IN ("+placeholders+")", args...); err != nil {
		return 0, fmt.Errorf("failed to purge analyses: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM poo_logs WHERE id IN ("+placeholders+")", args...); err != nil {
		return 0, fmt.Errorf("failed to purge logs: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit purge: %w", err)
	}

	return len(ids), nil
}

// CountAnalysedInMonth counts analysis rows whose parent log was created in
// the given calendar month. Always a live join against persisted state, so
// deleting a log reduces future counts.
func (r *LogRepository) CountAnalysedInMonth(ctx context.Context, monthKey string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM ai_analysis a
		JOIN poo_logs l ON l.id = a.poo_log_id
		WHERE strftime('%Y-%m', l.created_at) = ?`, monthKey,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count monthly analyses: %w", err)
	}
	return count, nil
}

// DeleteAll removes every log row.
func (r *LogRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM poo_logs"); err != nil {
		return fmt.Errorf("failed to delete logs: %w", err)
	}
	return nil
}
