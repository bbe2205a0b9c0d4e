// Package stool contains the pure business rules for stool logging.
// This is part of the Functional Core - no I/O, only pure functions.
package stool

import (
	"fmt"
	"math"

	"github.com/example/pawlog/internal/models"
)

// ValidationError reports a rejected input field. Validation runs before any
// store access, so a failed validation never touches the database.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ValidateDraft checks the manual-observation fields of a log draft.
func ValidateDraft(d models.LogDraft) error {
	if d.ConsistencyScore < 1 || d.ConsistencyScore > 5 {
		return &ValidationError{Field: "consistency_score", Reason: fmt.Sprintf("must be 1-5, got %d", d.ConsistencyScore)}
	}
	if d.Color == "" {
		return &ValidationError{Field: "color", Reason: "must not be empty"}
	}
	return nil
}

// ValidateProfile checks the required profile fields.
func ValidateProfile(name string, ageYears, weightKg float64) error {
	if name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if ageYears < 0 {
		return &ValidationError{Field: "age", Reason: "must not be negative"}
	}
	if weightKg < 0 {
		return &ValidationError{Field: "weight", Reason: "must not be negative"}
	}
	return nil
}

// HealthScoreFromRaw derives the stored 0-100 health score from the
// analyzer's raw 0-10 score: round(raw * 10), clamped to [0, 100].
// Non-numeric raw values coerce to 0 - analyzer output is untrusted.
func HealthScoreFromRaw(raw float64) int {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0
	}
	score := int(math.Round(raw * 10))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// ClampConfidence forces a confidence score into [0, 1] before storage.
// Non-numeric values coerce to 0 rather than being rejected.
func ClampConfidence(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// NeedsRetake reports whether an analysis confidence falls below the
// configured threshold, diverting the save into the retake-or-accept flow.
func NeedsRetake(confidence, threshold float64) bool {
	return confidence < threshold
}
