package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/example/pawlog/internal/ports/secondary"
)

// RetentionServiceImpl implements primary.RetentionService.
type RetentionServiceImpl struct {
	logRepo      secondary.LogRepository
	analysisRepo secondary.AnalysisRepository
	profileRepo  secondary.ProfileRepository
	state        *ProfileState
	log          zerolog.Logger
	now          func() time.Time
}

// NewRetentionService creates a new RetentionService with injected
// dependencies.
func NewRetentionService(
	logRepo secondary.LogRepository,
	analysisRepo secondary.AnalysisRepository,
	profileRepo secondary.ProfileRepository,
	state *ProfileState,
	logger zerolog.Logger,
) *RetentionServiceImpl {
	return &RetentionServiceImpl{
		logRepo:      logRepo,
		analysisRepo: analysisRepo,
		profileRepo:  profileRepo,
		state:        state,
		log:          logger,
		now:          time.Now,
	}
}

// PurgeOlderThan deletes every log created more than the given number of
// days ago, with its analysis. Returns the count of purged logs; 0 means
// nothing was old enough, which is success.
func (s *RetentionServiceImpl) PurgeOlderThan(ctx context.Context, days int) (int, error) {
	if days < 0 {
		return 0, fmt.Errorf("retention days must not be negative, got %d", days)
	}

	cutoff := s.now().UTC().AddDate(0, 0, -days)
	purged, err := s.logRepo.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	s.log.Info().Int("purged", purged).Time("cutoff", cutoff).Msg("retention sweep complete")
	return purged, nil
}

// WipeAll removes every log, analysis and the profile: the explicit
// everything-gone data wipe. Dependents go first.
func (s *RetentionServiceImpl) WipeAll(ctx context.Context) error {
	if err := s.analysisRepo.DeleteAll(ctx); err != nil {
		return err
	}
	if err := s.logRepo.DeleteAll(ctx); err != nil {
		return err
	}
	if err := s.profileRepo.Delete(ctx); err != nil {
		return err
	}
	s.state.Set(nil)
	s.log.Info().Msg("all data wiped")
	return nil
}
