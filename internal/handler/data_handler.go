package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vakildesk/vakildesk-api/internal/dto"
	appErrors "github.com/vakildesk/vakildesk-api/pkg/errors"
	"github.com/vakildesk/vakildesk-api/pkg/response"
)

type dataService interface {
	ExportPayload() (string, []byte, error)
	ExportStored(ctx context.Context) (*dto.ExportInfo, error)
	OpenByToken(token string) (*os.File, string, error)
	Import(ctx context.Context, payload []byte, confirmed bool) (*dto.ImportResult, error)
}

// DataHandler serves the data-management surface: full-collection backup
// export and destructive bulk import.
type DataHandler struct {
	service       dataService
	maxImportSize int64
}

// NewDataHandler constructs the handler.
func NewDataHandler(svc dataService, maxImportSize int64) *DataHandler {
	if maxImportSize <= 0 {
		maxImportSize = 10 * 1024 * 1024
	}
	return &DataHandler{service: svc, maxImportSize: maxImportSize}
}

// Export godoc
// @Summary Download the full case collection as a JSON backup
// @Tags Data
// @Produce application/json
// @Success 200 {file} binary
// @Router /data/export [get]
func (h *DataHandler) Export(c *gin.Context) {
	filename, payload, err := h.service.ExportPayload()
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/json", payload)
}

// ExportStored godoc
// @Summary Store a backup and return a signed download URL
// @Tags Data
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /data/export [post]
func (h *DataHandler) ExportStored(c *gin.Context) {
	info, err := h.service.ExportStored(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, info)
}

// Import godoc
// @Summary Replace the whole case collection from a backup file
// @Description Destructive. Requires the confirm form field set to true; the payload must be a JSON array of cases.
// @Tags Data
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Backup JSON"
// @Param confirm formData boolean true "Explicit confirmation"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /data/import [post]
func (h *DataHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file is required"))
		return
	}
	if fileHeader.Size > h.maxImportSize {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("import file exceeds %d bytes limit", h.maxImportSize)))
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open file"))
		return
	}
	defer src.Close()

	payload, err := io.ReadAll(io.LimitReader(src, h.maxImportSize+1))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read file"))
		return
	}

	confirmed := strings.EqualFold(strings.TrimSpace(c.PostForm("confirm")), "true")
	result, err := h.service.Import(c.Request.Context(), payload, confirmed)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Download godoc
// @Summary Download a stored file via signed token
// @Tags Data
// @Produce octet-stream
// @Param token path string true "Signed token"
// @Success 200 {file} binary
// @Failure 401 {object} response.Envelope
// @Router /files/{token} [get]
func (h *DataHandler) Download(c *gin.Context) {
	file, filename, err := h.service.OpenByToken(c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close() //nolint:errcheck

	info, err := file.Stat()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to stat file"))
		return
	}

	contentType := "application/octet-stream"
	switch {
	case strings.HasSuffix(filename, ".json"):
		contentType = "application/json"
	case strings.HasSuffix(filename, ".pdf"):
		contentType = "application/pdf"
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Cache-Control", "no-store")
	c.DataFromReader(http.StatusOK, info.Size(), contentType, file, nil)
}
