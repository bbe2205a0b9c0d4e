package models

import "time"

// DogProfile is the singleton profile row. At most one profile exists at any
// time; its presence is what callers use to decide between onboarding and the
// main flow.
type DogProfile struct {
	ID        int64
	Name      string
	Breed     string
	AgeYears  float64
	WeightKg  float64
	CreatedAt time.Time
	UpdatedAt time.Time
}
