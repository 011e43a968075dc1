package handlers

import (
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
)

// multipartMemory is kept in memory while parsing; larger parts spill to temp files.
const multipartMemory = 8 << 20

// ParseMultipart limits the body to maxBytes and parses the multipart form.
func ParseMultipart(w http.ResponseWriter, r *http.Request, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return fmt.Errorf("multipart form: %w", err)
	}
	return nil
}

// FormFiles returns the file parts stored under field.
func FormFiles(r *http.Request, field string) []*multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	return r.MultipartForm.File[field]
}

// PartContentType returns the declared content type of a part, falling back
// to the file extension.
func PartContentType(fh *multipart.FileHeader) string {
	if ct := fh.Header.Get("Content-Type"); ct != "" && ct != "application/octet-stream" {
		return ct
	}
	if ct := mime.TypeByExtension(filepath.Ext(fh.Filename)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
