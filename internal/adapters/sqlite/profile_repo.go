package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/pawlog/internal/models"
	"github.com/example/pawlog/internal/ports/secondary"
)

// ProfileRepository implements secondary.ProfileRepository with SQLite.
type ProfileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new SQLite profile repository.
func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Get retrieves the singleton profile.
func (r *ProfileRepository) Get(ctx context.Context) (*models.DogProfile, error) {
	var (
		breed     sql.NullString
		createdAt string
		updatedAt string
	)

	p := &models.DogProfile{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, breed, age, weight, created_at, updated_at FROM dog_profile LIMIT 1",
	).Scan(&p.ID, &p.Name, &breed, &p.AgeYears, &p.WeightKg, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, secondary.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	p.Breed = breed.String
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)
	return p, nil
}

// Create inserts the profile. The 0-or-1 invariant is enforced here: a
// second insert fails with ErrProfileExists inside the same transaction that
// checks for an existing row, so the outcome is deterministic.
func (r *ProfileRepository) Create(ctx context.Context, p *models.DogProfile) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM dog_profile").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to check existing profile: %w", err)
	}
	if count > 0 {
		return 0, secondary.ErrProfileExists
	}

	var breed sql.NullString
	if p.Breed != "" {
		breed = sql.NullString{String: p.Breed, Valid: true}
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO dog_profile (name, breed, age, weight) VALUES (?, ?, ?, ?)",
		p.Name, breed, p.AgeYears, p.WeightKg,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create profile: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read profile id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit profile: %w", err)
	}

	return id, nil
}

// Update replaces the full record.
func (r *ProfileRepository) Update(ctx context.Context, p *models.DogProfile) error {
	var breed sql.NullString
	if p.Breed != "" {
		breed = sql.NullString{String: p.Breed, Valid: true}
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE dog_profile SET name = ?, breed = ?, age = ?, weight = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		p.Name, breed, p.AgeYears, p.WeightKg, p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return secondary.ErrNotFound
	}

	return nil
}

// Delete removes the profile row. No-op when none exists.
func (r *ProfileRepository) Delete(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM dog_profile"); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}
