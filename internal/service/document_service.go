package service

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	appErrors "github.com/vakildesk/vakildesk-api/pkg/errors"
)

// DocumentService turns review uploads into plain text. Conversion of PDF,
// DOCX and scanned images (with OCR fallback) is delegated to an external
// converter outside this repository; only plain text is accepted here, and
// everything else is rejected before any partial text can be produced.
type DocumentService struct {
	maxSize int64
}

// NewDocumentService constructs the service.
func NewDocumentService(maxSize int64) *DocumentService {
	if maxSize <= 0 {
		maxSize = 5 * 1024 * 1024
	}
	return &DocumentService{maxSize: maxSize}
}

var plainTextExtensions = map[string]struct{}{
	".txt": {},
	".md":  {},
}

// ExtractText reads plain text from the upload, enforcing the size limit.
func (s *DocumentService) ExtractText(filename, contentType string, r io.Reader) (string, error) {
	if !s.isPlainText(filename, contentType) {
		return "", appErrors.Clone(appErrors.ErrUnsupportedFile,
			fmt.Sprintf("%q is not a plain-text file; convert PDF, DOCX or scanned documents to text before uploading", filename))
	}

	payload, err := io.ReadAll(io.LimitReader(r, s.maxSize+1))
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read uploaded file")
	}
	if int64(len(payload)) > s.maxSize {
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("file exceeds %d bytes limit", s.maxSize))
	}

	text := strings.TrimSpace(string(payload))
	if text == "" {
		return "", appErrors.Clone(appErrors.ErrValidation, "uploaded file contains no text")
	}
	return text, nil
}

func (s *DocumentService) isPlainText(filename, contentType string) bool {
	if strings.HasPrefix(strings.ToLower(contentType), "text/") {
		return true
	}
	ext := strings.ToLower(filepath.Ext(filename))
	_, ok := plainTextExtensions[ext]
	return ok
}
