package bucket

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/pawlog/internal/ports/secondary"
)

func writeTempPhoto(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestUploader_Upload(t *testing.T) {
	photo := writeTempPhoto(t, "stool.jpg", []byte("jpegbytes"))

	var gotPath, gotAuth, gotType string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	u := NewUploader(srv.URL, "poo-photos", "secret-token", zerolog.Nop())
	u.newName = func() string { return "fixed-name" }

	publicURL, err := u.Upload(context.Background(), photo)
	require.NoError(t, err)

	assert.Equal(t, srv.URL+"/object/public/poo-photos/fixed-name.jpg", publicURL)
	assert.Equal(t, "/object/poo-photos/fixed-name.jpg", gotPath)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "image/jpeg", gotType)
	assert.Equal(t, []byte("jpegbytes"), gotBody)
}

func TestUploader_Upload_MissingFile(t *testing.T) {
	u := NewUploader("http://localhost:1", "poo-photos", "tok", zerolog.Nop())

	_, err := u.Upload(context.Background(), filepath.Join(t.TempDir(), "nope.jpg"))
	require.Error(t, err)

	var uerr *secondary.UploadError
	assert.True(t, errors.As(err, &uerr), "expected *secondary.UploadError, got %T", err)
}

func TestUploader_Upload_RemoteRejects(t *testing.T) {
	photo := writeTempPhoto(t, "stool.png", []byte("pngbytes"))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("bucket policy denies write"))
	}))
	defer srv.Close()

	u := NewUploader(srv.URL, "poo-photos", "bad-token", zerolog.Nop())

	_, err := u.Upload(context.Background(), photo)
	require.Error(t, err)

	var uerr *secondary.UploadError
	require.True(t, errors.As(err, &uerr))
	assert.Contains(t, uerr.Message, "403")
}
