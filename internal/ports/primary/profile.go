package primary

import (
	"context"

	"github.com/example/pawlog/internal/models"
)

// ProfileRequest carries the user-supplied profile fields.
type ProfileRequest struct {
	Name     string
	Breed    string
	AgeYears float64
	WeightKg float64
}

// ProfileService is the primary port for the singleton dog profile. The
// implementation keeps an in-memory copy loaded once at startup and updated
// on every mutating call.
type ProfileService interface {
	// Current returns the cached profile, or nil when none exists.
	Current() *models.DogProfile

	// Create inserts the profile during onboarding. Fails when one already
	// exists.
	Create(ctx context.Context, req ProfileRequest) (*models.DogProfile, error)

	// Update replaces the full record.
	Update(ctx context.Context, req ProfileRequest) (*models.DogProfile, error)

	// Clear removes the profile row.
	Clear(ctx context.Context) error
}

// RetentionService is the primary port for age-based purges and the explicit
// data wipe.
type RetentionService interface {
	// PurgeOlderThan deletes logs older than the given number of days along
	// with their analyses, returning the count of logs purged. 0 is success.
	PurgeOlderThan(ctx context.Context, days int) (int, error)

	// WipeAll deletes all logs, analyses and the profile.
	WipeAll(ctx context.Context) error
}
