package service

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vakildesk/vakildesk-api/internal/dto"
	appErrors "github.com/vakildesk/vakildesk-api/pkg/errors"
	"github.com/vakildesk/vakildesk-api/pkg/export"
)

type pdfRenderer interface {
	Render(doc export.Document) ([]byte, error)
}

// DraftService renders generated draft text into downloadable documents.
type DraftService struct {
	storage   fileStorage
	signer    urlSigner
	pdf       pdfRenderer
	logger    *zap.Logger
	apiPrefix string
}

// NewDraftService constructs the service.
func NewDraftService(storage fileStorage, signer urlSigner, pdf pdfRenderer, apiPrefix string, logger *zap.Logger) *DraftService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if apiPrefix == "" {
		apiPrefix = "/api/v1"
	}
	return &DraftService{storage: storage, signer: signer, pdf: pdf, logger: logger, apiPrefix: apiPrefix}
}

// Export renders draft text as a PDF, stores it, and returns both the bytes
// and a signed download URL.
func (s *DraftService) Export(text string) (*dto.ExportDraftResponse, []byte, error) {
	doc := export.FromPlainText(text)
	if len(doc.Paragraphs) == 0 {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "draft text is empty")
	}

	payload, err := s.pdf.Render(doc)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render draft document")
	}

	id := uuid.NewString()
	filename := fmt.Sprintf("draft-%s.pdf", id)
	relPath := path.Join("drafts", filename)
	if _, err := s.storage.Save(relPath, payload); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store draft document")
	}

	token, expiresAt, err := s.signer.Generate(id, relPath)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download URL")
	}

	return &dto.ExportDraftResponse{
		Filename:    filename,
		DownloadURL: fmt.Sprintf("%s/files/%s", strings.TrimRight(s.apiPrefix, "/"), token),
		ExpiresAt:   expiresAt.UTC().Format(time.RFC3339),
	}, payload, nil
}
