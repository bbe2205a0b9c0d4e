package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// AIAnalysis is the stored form of an analysis. The five sub-analyses and the
// two lists are opaque serialized JSON; the store round-trips them
// byte-for-byte and never interprets them.
type AIAnalysis struct {
	ID                        string
	PooLogID                  string
	Classification            string
	HealthScore               int
	GutHealthSummary          string
	ShapeAnalysis             string
	TextureAnalysis           string
	ColorAnalysis             string
	MoistureAnalysis          string
	ParasiteCheckResults      string
	FlagsAndObservations      string
	ActionableRecommendations string
	VetFlag                   bool
	ConfidenceScore           float64
	HydrationEstimate         string
	AnalysedAt                time.Time
}

// TraitAnalysis is one structured sub-analysis as returned by the analyzer.
type TraitAnalysis struct {
	Description             string   `json:"description"`
	Signals                 []string `json:"signals,omitempty"`
	PossibleInterpretations []string `json:"possible_interpretations,omitempty"`
}

// ParasiteCheck is the parasite sub-analysis.
type ParasiteCheck struct {
	VisibleSigns string `json:"visible_signs"`
	Notes        string `json:"notes"`
}

// HydrationEstimate is the analyzer's moisture read as a percentage plus a
// short interpretation.
type HydrationEstimate struct {
	Percent        int    `json:"percent"`
	Interpretation string `json:"interpretation"`
}

// AnalysisResult is the structured payload returned by the remote analyzer.
// HealthScore is already derived (0-100) and ConfidenceScore already clamped
// to [0,1] by the time a result leaves the adapter.
type AnalysisResult struct {
	Classification            string            `json:"classification"`
	HealthScore               int               `json:"health_score"`
	GutHealthSummary          string            `json:"gut_health_summary"`
	Shape                     TraitAnalysis     `json:"shape"`
	Texture                   TraitAnalysis     `json:"texture"`
	Color                     TraitAnalysis     `json:"color"`
	Moisture                  TraitAnalysis     `json:"moisture"`
	ParasiteCheck             ParasiteCheck     `json:"parasite_check"`
	FlagsAndObservations      []string          `json:"flags_and_observations"`
	ActionableRecommendations []string          `json:"actionable_recommendations"`
	VetFlag                   bool              `json:"vet_flag"`
	ConfidenceScore           float64           `json:"confidence_score"`
	Hydration                 HydrationEstimate `json:"hydration_estimate"`
}

// ToRecord serializes the result into its stored form, attached to the given
// log. Every structured sub-field becomes JSON text.
func (r *AnalysisResult) ToRecord(id, logID string, analysedAt time.Time) (*AIAnalysis, error) {
	rec := &AIAnalysis{
		ID:               id,
		PooLogID:         logID,
		Classification:   r.Classification,
		HealthScore:      r.HealthScore,
		GutHealthSummary: r.GutHealthSummary,
		VetFlag:          r.VetFlag,
		ConfidenceScore:  r.ConfidenceScore,
		AnalysedAt:       analysedAt,
	}

	fields := []struct {
		dst *string
		src any
	}{
		{&rec.ShapeAnalysis, r.Shape},
		{&rec.TextureAnalysis, r.Texture},
		{&rec.ColorAnalysis, r.Color},
		{&rec.MoistureAnalysis, r.Moisture},
		{&rec.ParasiteCheckResults, r.ParasiteCheck},
		{&rec.FlagsAndObservations, r.FlagsAndObservations},
		{&rec.ActionableRecommendations, r.ActionableRecommendations},
		{&rec.HydrationEstimate, r.Hydration},
	}
	for _, f := range fields {
		b, err := json.Marshal(f.src)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize analysis field: %w", err)
		}
		*f.dst = string(b)
	}

	return rec, nil
}
