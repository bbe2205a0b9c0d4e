package secondary

import (
	"context"
	"fmt"

	"github.com/example/pawlog/internal/models"
)

// UploadError wraps a photo upload failure. Terminal for the current save
// attempt; the whole operation may be retried by the user.
type UploadError struct {
	Message string
	Err     error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("photo upload failed: %s", e.Message)
}

func (e *UploadError) Unwrap() error { return e.Err }

// AnalysisError wraps a remote analysis failure, carrying the collaborator's
// message text verbatim.
type AnalysisError struct {
	Message string
	Err     error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis failed: %s", e.Message)
}

func (e *AnalysisError) Unwrap() error { return e.Err }

// PhotoUploader pushes a local photo to remote object storage and returns a
// publicly reachable reference for the analyzer.
type PhotoUploader interface {
	Upload(ctx context.Context, localRef string) (publicRef string, err error)
}

// StoolAnalyzer runs the remote AI analysis over an uploaded photo plus the
// user's manual inputs. Implementations return *AnalysisError for any
// network, protocol or result-shape failure; they never retry internally.
type StoolAnalyzer interface {
	Analyze(ctx context.Context, photoURL string, draft models.LogDraft) (*models.AnalysisResult, error)
}
