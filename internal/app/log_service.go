package app

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/example/pawlog/internal/core/stool"
	"github.com/example/pawlog/internal/models"
	"github.com/example/pawlog/internal/ports/primary"
	"github.com/example/pawlog/internal/ports/secondary"
)

// LogServiceImpl implements primary.LogService, including the save
// orchestration in save_orchestrator.go.
type LogServiceImpl struct {
	logRepo      secondary.LogRepository
	analysisRepo secondary.AnalysisRepository
	uploader     secondary.PhotoUploader
	analyzer     secondary.StoolAnalyzer
	meter        *CreditMeter
	threshold    float64
	log          zerolog.Logger

	// Injected for tests.
	now   func() time.Time
	newID func() string
}

// NewLogService creates a new LogService with injected dependencies.
func NewLogService(
	logRepo secondary.LogRepository,
	analysisRepo secondary.AnalysisRepository,
	uploader secondary.PhotoUploader,
	analyzer secondary.StoolAnalyzer,
	meter *CreditMeter,
	threshold float64,
	logger zerolog.Logger,
) *LogServiceImpl {
	return &LogServiceImpl{
		logRepo:      logRepo,
		analysisRepo: analysisRepo,
		uploader:     uploader,
		analyzer:     analyzer,
		meter:        meter,
		threshold:    threshold,
		log:          logger,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

// SaveManual persists a manual-only log. A pre-generated ID may be supplied;
// saving the same ID twice stores exactly one row.
func (s *LogServiceImpl) SaveManual(ctx context.Context, req primary.SaveManualRequest) (*models.PooLog, error) {
	if err := stool.ValidateDraft(req.Draft); err != nil {
		return nil, err
	}

	id := req.ID
	if id == "" {
		id = s.newID()
	}

	return s.commit(ctx, id, req.Draft, nil)
}

// ListRecent returns the newest logs, analysis attached where present.
func (s *LogServiceImpl) ListRecent(ctx context.Context, limit int) ([]*models.PooLog, error) {
	return s.logRepo.ListRecent(ctx, limit)
}

// GetDetail returns one log with its analysis attached when one exists.
func (s *LogServiceImpl) GetDetail(ctx context.Context, id string) (*models.PooLog, error) {
	log, err := s.logRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	analysis, err := s.analysisRepo.GetByLogID(ctx, id)
	if err == nil {
		log.Analysis = analysis
	} else if !errors.Is(err, secondary.ErrNotFound) {
		return nil, err
	}

	return log, nil
}

// EditManualFields updates the user-editable subset of a log. The stored
// analysis is never touched by an edit.
func (s *LogServiceImpl) EditManualFields(ctx context.Context, id string, d models.LogDraft) error {
	if err := stool.ValidateDraft(d); err != nil {
		return err
	}
	return s.logRepo.UpdateManualFields(ctx, id, d)
}

// DeleteLog removes a log and its analysis. Two explicit statements; the
// engine does not cascade.
func (s *LogServiceImpl) DeleteLog(ctx context.Context, id string) error {
	if err := s.logRepo.Delete(ctx, id); err != nil {
		return err
	}
	return s.analysisRepo.DeleteByLogID(ctx, id)
}

// MonthlyUsage reports the live credit count for the month containing now.
func (s *LogServiceImpl) MonthlyUsage(ctx context.Context, now time.Time) (primary.CreditUsage, error) {
	return s.meter.Usage(ctx, now)
}
