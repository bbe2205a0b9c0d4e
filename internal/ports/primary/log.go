// Package primary defines the primary ports exposed to the UI layer.
package primary

import (
	"context"
	"time"

	"github.com/example/pawlog/internal/models"
)

// SaveOutcome is the terminal state of a save attempt that did not fail.
type SaveOutcome string

const (
	// OutcomeSaved means the log (and analysis, when one was produced) is
	// durable.
	OutcomeSaved SaveOutcome = "saved"
	// OutcomeDiverted means analysis confidence fell below the threshold;
	// nothing is persisted until the diversion is resolved.
	OutcomeDiverted SaveOutcome = "diverted"
	// OutcomeQuotaExceeded means the monthly credit limit is reached. Not a
	// failure: the caller may retry in manual-only mode.
	OutcomeQuotaExceeded SaveOutcome = "quota_exceeded"
)

// DiversionAction is the user's decision on a diverted save.
type DiversionAction string

const (
	ActionRetake     DiversionAction = "retake"
	ActionSaveAnyway DiversionAction = "save_anyway"
)

// CreditUsage is the live monthly credit count against the configured limit.
type CreditUsage struct {
	Used  int
	Limit int
}

// PendingSave carries everything a diverted attempt needs to commit later:
// the pre-generated log id, the draft, and the low-confidence analysis
// payload. No row exists while a PendingSave is outstanding, so abandoning it
// has zero persisted side effects.
type PendingSave struct {
	LogID          string
	Draft          models.LogDraft
	PublicPhotoURL string
	Result         *models.AnalysisResult
}

// SaveResult is the outcome of SaveWithAnalysis. Exactly one of Log,
// Diversion or Usage is meaningful depending on Outcome.
type SaveResult struct {
	Outcome   SaveOutcome
	Log       *models.PooLog
	Diversion *PendingSave
	Usage     CreditUsage
}

// SaveManualRequest creates a log without analysis. ID is optional; when
// empty a fresh identifier is generated. Passing the same pre-generated ID
// twice results in exactly one stored row.
type SaveManualRequest struct {
	ID    string
	Draft models.LogDraft
}

// LogService is the primary port for log operations.
type LogService interface {
	// SaveManual persists a manual-only log.
	SaveManual(ctx context.Context, req SaveManualRequest) (*models.PooLog, error)

	// SaveWithAnalysis runs the full pipeline: quota check, photo upload,
	// remote analysis, confidence gate, durable commit. Collaborator
	// failures surface as errors with nothing persisted.
	SaveWithAnalysis(ctx context.Context, draft models.LogDraft) (*SaveResult, error)

	// ResolveDiversion completes or discards a diverted save. Retake
	// discards the draft and returns nil; save-anyway commits the carried
	// payload and returns the stored log.
	ResolveDiversion(ctx context.Context, pending *PendingSave, action DiversionAction) (*models.PooLog, error)

	// ListRecent returns the newest logs, analysis attached where present.
	ListRecent(ctx context.Context, limit int) ([]*models.PooLog, error)

	// GetDetail returns one log with its analysis attached when one exists.
	GetDetail(ctx context.Context, id string) (*models.PooLog, error)

	// EditManualFields updates the user-editable subset of a log.
	EditManualFields(ctx context.Context, id string, d models.LogDraft) error

	// DeleteLog removes a log and its analysis (two explicit deletes,
	// dependent first).
	DeleteLog(ctx context.Context, id string) error

	// MonthlyUsage reports the live credit count for the month containing
	// now.
	MonthlyUsage(ctx context.Context, now time.Time) (CreditUsage, error)
}
