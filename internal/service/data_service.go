package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vakildesk/vakildesk-api/internal/dto"
	"github.com/vakildesk/vakildesk-api/internal/models"
	appErrors "github.com/vakildesk/vakildesk-api/pkg/errors"
)

type caseCollection interface {
	List() []models.Case
	ReplaceAll(ctx context.Context, cases []models.Case) (int, bool, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type urlSigner interface {
	Generate(id, relPath string) (string, time.Time, error)
	Parse(token string, allowExpired bool) (id, relPath string, expiresAt time.Time, err error)
}

// DataService implements the data-management surface: whole-collection
// export to a date-stamped JSON backup and destructive bulk import.
type DataService struct {
	cases     caseCollection
	storage   fileStorage
	signer    urlSigner
	logger    *zap.Logger
	apiPrefix string
	now       func() time.Time
}

// NewDataService constructs the service.
func NewDataService(cases caseCollection, storage fileStorage, signer urlSigner, apiPrefix string, logger *zap.Logger) *DataService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if apiPrefix == "" {
		apiPrefix = "/api/v1"
	}
	return &DataService{
		cases:     cases,
		storage:   storage,
		signer:    signer,
		logger:    logger,
		apiPrefix: apiPrefix,
		now:       time.Now,
	}
}

// ExportPayload serializes the full collection, named with the current date.
func (s *DataService) ExportPayload() (string, []byte, error) {
	collection := s.cases.List()
	payload, err := json.MarshalIndent(collection, "", "  ")
	if err != nil {
		return "", nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to serialize case collection")
	}
	filename := fmt.Sprintf("vakildesk-backup-%s.json", s.now().UTC().Format("2006-01-02"))
	return filename, payload, nil
}

// ExportStored writes the backup to storage and returns a signed download URL.
func (s *DataService) ExportStored(ctx context.Context) (*dto.ExportInfo, error) {
	filename, payload, err := s.ExportPayload()
	if err != nil {
		return nil, err
	}

	relPath := path.Join("backups", filename)
	if _, err := s.storage.Save(relPath, payload); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store backup file")
	}

	token, expiresAt, err := s.signer.Generate(uuid.NewString(), relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download URL")
	}

	return &dto.ExportInfo{
		Filename:    filename,
		DownloadURL: fmt.Sprintf("%s/files/%s", strings.TrimRight(s.apiPrefix, "/"), token),
		ExpiresAt:   expiresAt.UTC().Format(time.RFC3339),
	}, nil
}

// OpenByToken validates a signed token and opens the referenced file.
func (s *DataService) OpenByToken(token string) (*os.File, string, error) {
	_, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrUnauthorized, "download link is invalid or expired")
	}
	file, err := s.storage.Open(relPath)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "exported file no longer available")
	}
	return file, path.Base(relPath), nil
}

// Import parses a backup payload and replaces the whole collection. The
// payload must be a JSON sequence of cases; anything else is rejected before
// any destructive change. Nothing is replaced without explicit confirmation.
func (s *DataService) Import(ctx context.Context, payload []byte, confirmed bool) (*dto.ImportResult, error) {
	if !confirmed {
		return nil, appErrors.Clone(appErrors.ErrValidation, "import requires explicit confirmation; the existing collection will be replaced")
	}

	trimmed := bytes.TrimLeft(payload, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, appErrors.Clone(appErrors.ErrMalformedImport, "import file is empty")
	}
	if trimmed[0] != '[' {
		return nil, appErrors.Clone(appErrors.ErrMalformedImport, "import payload must be a sequence of cases, not a single object")
	}

	var cases []models.Case
	if err := json.Unmarshal(payload, &cases); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrMalformedImport.Code, appErrors.ErrMalformedImport.Status, "import payload could not be parsed as a case collection")
	}
	if cases == nil {
		cases = []models.Case{}
	}
	if len(cases) > 0 && cases[0].ID == "" {
		return nil, appErrors.Clone(appErrors.ErrMalformedImport, "imported cases are missing identifiers")
	}

	count, persisted, err := s.cases.ReplaceAll(ctx, cases)
	if err != nil {
		return nil, err
	}
	return &dto.ImportResult{Imported: count, Persisted: persisted}, nil
}

// CleanupExpired removes stored exports older than the TTL. Run from the
// background queue.
func (s *DataService) CleanupExpired(ttl time.Duration) (int, error) {
	deleted, err := s.storage.CleanupOlderThan(ttl)
	if err != nil {
		return len(deleted), err
	}
	if len(deleted) > 0 {
		s.logger.Info("expired export files removed", zap.Int("count", len(deleted)))
	}
	return len(deleted), nil
}
