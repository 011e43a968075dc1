package uploads

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSink_StoresUnderUniqueNames(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewLocalSink(dir, "uploads/", 1024)
	require.NoError(t, err)

	first, err := sink.Store(context.Background(), strings.NewReader(jpegBytes))
	require.NoError(t, err)
	second, err := sink.Store(context.Background(), strings.NewReader(pdfBytes))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(first, "/uploads/"))
	assert.True(t, strings.HasSuffix(first, ".jpg"))
	assert.True(t, strings.HasSuffix(second, ".pdf"))
	assert.NotEqual(t, first, second)

	content, err := os.ReadFile(filepath.Join(dir, filepath.Base(first)))
	require.NoError(t, err)
	assert.Equal(t, jpegBytes, string(content))
}

func TestLocalSink_RejectsOversizedAndEmpty(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewLocalSink(dir, "/uploads", 16)
	require.NoError(t, err)

	_, err = sink.Store(context.Background(), strings.NewReader(pngBytes+"0123456789"))
	assert.ErrorIs(t, err, ErrFileTooLarge)

	_, err = sink.Store(context.Background(), strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyFile)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocalSink_RejectsContentOutsideAllowList(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewLocalSink(dir, "/uploads", 1024)
	require.NoError(t, err)

	for name, body := range map[string]string{
		"svg":          svgBytes,
		"html":         "<!DOCTYPE html><html><script>alert(1)</script></html>",
		"plain text":   "jpeg-bytes",
		"zip archive":  "PK\x03\x04rest-of-archive",
		"octet stream": "\x00\x01\x02\x03",
	} {
		_, err := sink.Store(context.Background(), strings.NewReader(body))
		assert.ErrorIs(t, err, ErrUnsupportedType, name)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocalSink_HandlerServesFilesWithoutListing(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewLocalSink(dir, "/uploads", 1024)
	require.NoError(t, err)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	stored, err := sink.Store(context.Background(), strings.NewReader(pngBytes))
	require.NoError(t, err)

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"stored file", stored, http.StatusOK},
		{"root listing", "/uploads/", http.StatusNotFound},
		{"nested directory", "/uploads/nested/", http.StatusNotFound},
		{"missing file", "/uploads/missing.png", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			sink.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus != http.StatusOK {
				assert.NotContains(t, rec.Body.String(), filepath.Base(stored))
			}
		})
	}
}

func TestNew_SelectsDriver(t *testing.T) {
	sink, err := New(Options{Driver: DriverLocal, Dir: t.TempDir(), PublicPrefix: "/files"})
	require.NoError(t, err)
	assert.IsType(t, &LocalSink{}, sink)

	_, err = New(Options{Driver: DriverCloudinary})
	assert.ErrorIs(t, err, ErrStoreFailed)

	_, err = New(Options{Driver: "ftp"})
	assert.ErrorIs(t, err, ErrUnknownDriver)
}
