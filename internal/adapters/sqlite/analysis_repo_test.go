package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/pawlog/internal/adapters/sqlite"
	"github.com/example/pawlog/internal/models"
	"github.com/example/pawlog/internal/ports/secondary"
)

func TestAnalysisRepository_CreateAndGet(t *testing.T) {
	conn := setupTestDB(t)
	repo := sqlite.NewAnalysisRepository(conn)
	ctx := context.Background()

	seedLog(t, conn, "log-1", time.Now().UTC())

	a := &models.AIAnalysis{
		ID:                        "an-1",
		PooLogID:                  "log-1",
		Classification:            "Healthy, Well-Formed",
		HealthScore:               85,
		GutHealthSummary:          "Overall healthy digestion.",
		ShapeAnalysis:             `{"description":"log-shaped","signals":["segmented"]}`,
		TextureAnalysis:           `{"description":"smooth","possible_interpretations":["good hydration"]}`,
		ColorAnalysis:             `{"description":"chocolate brown","possible_interpretations":[]}`,
		MoistureAnalysis:          `{"description":"moist surface","signals":["normal"]}`,
		ParasiteCheckResults:      `{"visible_signs":"none","notes":"no worms visible"}`,
		FlagsAndObservations:      `["slightly soft edges"]`,
		ActionableRecommendations: `["maintain current diet","monitor for 48h"]`,
		VetFlag:                   false,
		ConfidenceScore:           0.93,
		HydrationEstimate:         `{"percent":72,"interpretation":"well hydrated"}`,
	}

	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.GetByLogID(ctx, "log-1")
	if err != nil {
		t.Fatalf("GetByLogID failed: %v", err)
	}

	// Every serialized sub-field must round-trip byte-for-byte.
	pairs := []struct {
		name, want, got string
	}{
		{"shape", a.ShapeAnalysis, got.ShapeAnalysis},
		{"texture", a.TextureAnalysis, got.TextureAnalysis},
		{"color", a.ColorAnalysis, got.ColorAnalysis},
		{"moisture", a.MoistureAnalysis, got.MoistureAnalysis},
		{"parasite_check", a.ParasiteCheckResults, got.ParasiteCheckResults},
		{"flags", a.FlagsAndObservations, got.FlagsAndObservations},
		{"recommendations", a.ActionableRecommendations, got.ActionableRecommendations},
		{"hydration", a.HydrationEstimate, got.HydrationEstimate},
	}
	for _, p := range pairs {
		if p.got != p.want {
			t.Errorf("%s did not round-trip:\n want %s\n got  %s", p.name, p.want, p.got)
		}
	}

	if got.Classification != a.Classification || got.HealthScore != 85 || got.ConfidenceScore != 0.93 {
		t.Errorf("scalar fields did not round-trip: %+v", got)
	}
	if got.VetFlag {
		t.Error("vet_flag should be false")
	}
}

func TestAnalysisRepository_Create_MissingLog(t *testing.T) {
	conn := setupTestDB(t)
	repo := sqlite.NewAnalysisRepository(conn)
	ctx := context.Background()

	a := &models.AIAnalysis{ID: "an-dangling", PooLogID: "no-such-log"}
	err := repo.Create(ctx, a)
	if !errors.Is(err, secondary.ErrForeignKeyViolation) {
		t.Fatalf("expected ErrForeignKeyViolation, got %v", err)
	}

	// The failed insert must leave no row behind.
	var count int
	if err := conn.QueryRow("SELECT COUNT(*) FROM ai_analysis").Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 analysis rows, got %d", count)
	}
}

func TestAnalysisRepository_GetByLogID_NotFound(t *testing.T) {
	conn := setupTestDB(t)
	repo := sqlite.NewAnalysisRepository(conn)

	_, err := repo.GetByLogID(context.Background(), "missing")
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAnalysisRepository_DeleteByLogID(t *testing.T) {
	conn := setupTestDB(t)
	repo := sqlite.NewAnalysisRepository(conn)
	ctx := context.Background()

	seedLog(t, conn, "log-1", time.Now().UTC())
	seedAnalysis(t, conn, "an-1", "log-1")

	if err := repo.DeleteByLogID(ctx, "log-1"); err != nil {
		t.Fatalf("DeleteByLogID failed: %v", err)
	}
	if _, err := repo.GetByLogID(ctx, "log-1"); !errors.Is(err, secondary.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	// Deleting when none exists is not an error.
	if err := repo.DeleteByLogID(ctx, "log-1"); err != nil {
		t.Fatalf("second DeleteByLogID failed: %v", err)
	}
}
