package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/example/pawlog/internal/core/stool"
	"github.com/example/pawlog/internal/models"
	"github.com/example/pawlog/internal/ports/primary"
	"github.com/example/pawlog/internal/ports/secondary"
)

// ProfileServiceImpl implements primary.ProfileService.
type ProfileServiceImpl struct {
	repo  secondary.ProfileRepository
	state *ProfileState
	log   zerolog.Logger
}

// NewProfileService creates a new ProfileService with injected dependencies.
func NewProfileService(repo secondary.ProfileRepository, state *ProfileState, logger zerolog.Logger) *ProfileServiceImpl {
	return &ProfileServiceImpl{repo: repo, state: state, log: logger}
}

// Load fills the state container from the store. Called once at process
// start, before any other profile operation.
func (s *ProfileServiceImpl) Load(ctx context.Context) error {
	p, err := s.repo.Get(ctx)
	if errors.Is(err, secondary.ErrNotFound) {
		s.state.Set(nil)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	s.state.Set(p)
	return nil
}

// Current returns the cached profile, or nil when none exists. Presence of a
// profile is the onboarding-vs-main signal for the UI layer.
func (s *ProfileServiceImpl) Current() *models.DogProfile {
	return s.state.Current()
}

// Create inserts the profile during onboarding.
func (s *ProfileServiceImpl) Create(ctx context.Context, req primary.ProfileRequest) (*models.DogProfile, error) {
	if err := stool.ValidateProfile(req.Name, req.AgeYears, req.WeightKg); err != nil {
		return nil, err
	}

	p := &models.DogProfile{
		Name:     req.Name,
		Breed:    req.Breed,
		AgeYears: req.AgeYears,
		WeightKg: req.WeightKg,
	}

	id, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	p.ID = id
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt

	s.state.Set(p)
	s.log.Info().Str("name", p.Name).Msg("profile created")
	return s.state.Current(), nil
}

// Update replaces the full record.
func (s *ProfileServiceImpl) Update(ctx context.Context, req primary.ProfileRequest) (*models.DogProfile, error) {
	if err := stool.ValidateProfile(req.Name, req.AgeYears, req.WeightKg); err != nil {
		return nil, err
	}

	current := s.state.Current()
	if current == nil {
		return nil, secondary.ErrNotFound
	}

	p := &models.DogProfile{
		ID:        current.ID,
		Name:      req.Name,
		Breed:     req.Breed,
		AgeYears:  req.AgeYears,
		WeightKg:  req.WeightKg,
		CreatedAt: current.CreatedAt,
		UpdatedAt: time.Now().UTC(),
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.state.Set(p)
	return s.state.Current(), nil
}

// Clear removes the profile row and empties the state container. Clearing
// when no profile exists is a no-op.
func (s *ProfileServiceImpl) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx); err != nil {
		return err
	}
	s.state.Set(nil)
	return nil
}
