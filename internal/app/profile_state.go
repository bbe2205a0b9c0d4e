// Package app implements the primary ports: services and the save
// orchestration.
package app

import (
	"sync"

	"github.com/example/pawlog/internal/models"
)

// ProfileState is the single in-memory holder of the current profile. It is
// loaded once at startup and updated on every mutating profile call, so the
// cached copy never drifts from the store.
type ProfileState struct {
	mu      sync.RWMutex
	current *models.DogProfile
}

// NewProfileState returns an empty state; call ProfileService.Load to fill it.
func NewProfileState() *ProfileState {
	return &ProfileState{}
}

// Current returns the cached profile, or nil when none exists.
func (s *ProfileState) Current() *models.DogProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	copy := *s.current
	return &copy
}

// Set replaces the cached profile. Pass nil after a clear.
func (s *ProfileState) Set(p *models.DogProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p == nil {
		s.current = nil
		return
	}
	copy := *p
	s.current = &copy
}
