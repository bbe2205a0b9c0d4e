package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/pawlog/internal/core/stool"
	"github.com/example/pawlog/internal/models"
	"github.com/example/pawlog/internal/ports/primary"
	"github.com/example/pawlog/internal/ports/secondary"
)

// SaveWithAnalysis runs the full save pipeline:
//
//	quota check -> upload -> analyze -> confidence gate -> commit
//
// The steps are strictly sequential within one attempt. No row is written
// until the pipeline knows whether an analysis accompanies the log, so every
// terminal failure leaves the store without a partial log/analysis pair.
// Collaborator failures are never retried here; the user re-invokes the whole
// save, which generates a fresh identifier and therefore a fresh row.
func (s *LogServiceImpl) SaveWithAnalysis(ctx context.Context, draft models.LogDraft) (*primary.SaveResult, error) {
	if err := stool.ValidateDraft(draft); err != nil {
		return nil, err
	}

	// No photo means there is nothing to analyze; fall through to a plain
	// manual commit.
	if draft.PhotoURI == "" {
		log, err := s.commit(ctx, s.newID(), draft, nil)
		if err != nil {
			return nil, err
		}
		return &primary.SaveResult{Outcome: primary.OutcomeSaved, Log: log}, nil
	}

	allowed, usage := s.meter.Allow(ctx, s.now())
	if !allowed {
		// A decision point, not a failure: the caller may retry in
		// manual-only mode but we never fall back silently.
		return &primary.SaveResult{Outcome: primary.OutcomeQuotaExceeded, Usage: usage}, nil
	}

	logID := s.newID()

	publicRef, err := s.uploader.Upload(ctx, draft.PhotoURI)
	if err != nil {
		var uerr *secondary.UploadError
		if !errors.As(err, &uerr) {
			err = &secondary.UploadError{Message: err.Error(), Err: err}
		}
		return nil, err
	}

	result, err := s.analyzer.Analyze(ctx, publicRef, draft)
	if err != nil {
		var aerr *secondary.AnalysisError
		if !errors.As(err, &aerr) {
			err = &secondary.AnalysisError{Message: err.Error(), Err: err}
		}
		return nil, err
	}
	if result == nil {
		return nil, &secondary.AnalysisError{Message: "analyzer returned no result"}
	}

	// Analyzer output is untrusted; force the confidence into range before
	// any decision or storage.
	result.ConfidenceScore = stool.ClampConfidence(result.ConfidenceScore)

	if stool.NeedsRetake(result.ConfidenceScore, s.threshold) {
		s.log.Info().
			Float64("confidence", result.ConfidenceScore).
			Float64("threshold", s.threshold).
			Msg("analysis confidence below threshold, diverting to retake prompt")
		return &primary.SaveResult{
			Outcome: primary.OutcomeDiverted,
			Diversion: &primary.PendingSave{
				LogID:          logID,
				Draft:          draft,
				PublicPhotoURL: publicRef,
				Result:         result,
			},
		}, nil
	}

	log, err := s.commit(ctx, logID, draft, result)
	if err != nil {
		return nil, err
	}
	return &primary.SaveResult{Outcome: primary.OutcomeSaved, Log: log}, nil
}

// ResolveDiversion completes a diverted save. Retake discards the draft -
// nothing was ever written, so there is nothing to undo. Save-anyway
// re-enters the commit step with the carried low-confidence payload,
// persisting it verbatim.
func (s *LogServiceImpl) ResolveDiversion(ctx context.Context, pending *primary.PendingSave, action primary.DiversionAction) (*models.PooLog, error) {
	if pending == nil {
		return nil, fmt.Errorf("no pending save to resolve")
	}

	switch action {
	case primary.ActionRetake:
		s.log.Info().Str("log_id", pending.LogID).Msg("diversion abandoned, draft discarded")
		return nil, nil
	case primary.ActionSaveAnyway:
		return s.commit(ctx, pending.LogID, pending.Draft, pending.Result)
	default:
		return nil, fmt.Errorf("unknown diversion action %q", action)
	}
}

// commit is the durable step: the log row goes in first (idempotent under a
// retried identifier), then the analysis referencing it. A failed analysis
// insert is logged and swallowed - the log is already durable, and losing the
// primary record over a secondary-feature failure is the wrong tradeoff.
func (s *LogServiceImpl) commit(ctx context.Context, logID string, draft models.LogDraft, result *models.AnalysisResult) (*models.PooLog, error) {
	log := &models.PooLog{
		ID:               logID,
		ConsistencyScore: draft.ConsistencyScore,
		Color:            draft.Color,
		MucusPresent:     draft.MucusPresent,
		BloodVisible:     draft.BloodVisible,
		WormsVisible:     draft.WormsVisible,
		Notes:            draft.Notes,
		PhotoURI:         draft.PhotoURI,
		CreatedAt:        s.now(),
	}

	if err := s.logRepo.Create(ctx, log); err != nil {
		return nil, err
	}

	stored, err := s.logRepo.GetByID(ctx, logID)
	if err != nil {
		return nil, err
	}

	if result != nil {
		record, err := result.ToRecord(s.newID(), logID, s.now())
		if err == nil {
			err = s.analysisRepo.Create(ctx, record)
		}
		if err != nil {
			s.log.Warn().Err(err).Str("log_id", logID).Msg("analysis not saved, log kept without it")
		} else {
			stored.Analysis = record
		}
	}

	return stored, nil
}
