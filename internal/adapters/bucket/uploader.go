package bucket

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/example/pawlog/internal/ports/secondary"
)

// Ensure Uploader implements the interface
var _ secondary.PhotoUploader = (*Uploader)(nil)

// Uploader pushes local photo files to the remote object store and hands back
// the public URL the analyzer fetches them from. Uploads are not retried here;
// a failed upload fails the whole save attempt.
type Uploader struct {
	client  *resty.Client
	baseURL string
	bucket  string
	log     zerolog.Logger

	// Injected for tests.
	newName func() string
}

// NewUploader creates an uploader against the given storage endpoint. The
// token is attached as a bearer credential on every request.
func NewUploader(baseURL, bucketName, token string, logger zerolog.Logger) *Uploader {
	client := resty.New().
		SetTimeout(30 * time.Second).
		SetAuthToken(token)

	return &Uploader{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		bucket:  bucketName,
		log:     logger,
		newName: uuid.NewString,
	}
}

// Upload reads the local file, stores it under a fresh object name and
// returns the public URL. All failures come back as *secondary.UploadError.
func (u *Uploader) Upload(ctx context.Context, localRef string) (string, error) {
	data, err := os.ReadFile(localRef)
	if err != nil {
		return "", &secondary.UploadError{
			Message: fmt.Sprintf("cannot read photo %s", localRef),
			Err:     err,
		}
	}

	ext := strings.ToLower(filepath.Ext(localRef))
	if ext == "" {
		ext = ".jpg"
	}
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "image/jpeg"
	}
	objectName := u.newName() + ext

	resp, err := u.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetBody(data).
		Post(fmt.Sprintf("%s/object/%s/%s", u.baseURL, u.bucket, objectName))
	if err != nil {
		return "", &secondary.UploadError{Message: err.Error(), Err: err}
	}
	if resp.IsError() {
		return "", &secondary.UploadError{
			Message: fmt.Sprintf("storage returned %d: %s", resp.StatusCode(), resp.String()),
		}
	}

	publicURL := fmt.Sprintf("%s/object/public/%s/%s", u.baseURL, u.bucket, objectName)
	u.log.Debug().Str("object", objectName).Msg("photo uploaded")
	return publicURL, nil
}
