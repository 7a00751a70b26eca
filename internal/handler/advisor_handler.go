package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vakildesk/vakildesk-api/internal/dto"
	"github.com/vakildesk/vakildesk-api/internal/models"
	appErrors "github.com/vakildesk/vakildesk-api/pkg/errors"
	"github.com/vakildesk/vakildesk-api/pkg/response"
)

type advisorService interface {
	PredictStage(ctx context.Context, c models.Case) (string, bool)
	GenerateDraft(ctx context.Context, instructions string) (string, error)
	ReviewDocument(ctx context.Context, documentText string, onChunk func(string)) models.DocumentAnalysis
	ChatAdvice(ctx context.Context, history []models.ChatMessage, onChunk func(string)) (string, error)
}

type caseReader interface {
	Get(id string) (*models.Case, error)
}

type documentExtractor interface {
	ExtractText(filename, contentType string, r io.Reader) (string, error)
}

type draftExporter interface {
	Export(text string) (*dto.ExportDraftResponse, []byte, error)
}

// AdvisorHandler exposes the AI-assisted operations: stage prediction,
// drafting, document review, and chat advice. Review and chat stream their
// replies as server-sent events.
type AdvisorHandler struct {
	advisor   advisorService
	cases     caseReader
	documents documentExtractor
	drafts    draftExporter
}

// NewAdvisorHandler constructs the handler.
func NewAdvisorHandler(advisor advisorService, cases caseReader, documents documentExtractor, drafts draftExporter) *AdvisorHandler {
	return &AdvisorHandler{advisor: advisor, cases: cases, documents: documents, drafts: drafts}
}

// PredictStage godoc
// @Summary Suggest the next procedural stage for a case
// @Tags Advisor
// @Produce json
// @Param id path string true "Case ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /cases/{id}/predict-stage [post]
func (h *AdvisorHandler) PredictStage(c *gin.Context) {
	item, err := h.cases.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	stage, cached := h.advisor.PredictStage(c.Request.Context(), *item)
	response.JSON(c, http.StatusOK, dto.PredictStageResponse{Stage: stage, Cached: cached}, nil)
}

// Draft godoc
// @Summary Generate a draft document from instructions
// @Tags Advisor
// @Accept json
// @Produce json
// @Param payload body dto.DraftRequest true "Drafting instructions"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /drafts [post]
func (h *AdvisorHandler) Draft(c *gin.Context) {
	var req dto.DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "drafting instructions are required"))
		return
	}

	text, err := h.advisor.GenerateDraft(c.Request.Context(), req.Instructions)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.DraftResponse{Text: text}, nil)
}

// ExportDraft godoc
// @Summary Render draft text to a downloadable PDF
// @Tags Advisor
// @Accept json
// @Produce json
// @Param payload body dto.ExportDraftRequest true "Draft text"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /drafts/export [post]
func (h *AdvisorHandler) ExportDraft(c *gin.Context) {
	var req dto.ExportDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "draft text is required"))
		return
	}

	info, _, err := h.drafts.Export(req.Text)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, info)
}

// Review godoc
// @Summary Review an uploaded document
// @Description Streams the review as server-sent events; the final event carries the structured analysis.
// @Tags Advisor
// @Accept multipart/form-data
// @Produce text/event-stream
// @Param file formData file true "Plain-text document"
// @Success 200 {string} string "event stream"
// @Failure 400 {object} response.Envelope
// @Router /reviews [post]
func (h *AdvisorHandler) Review(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file is required"))
		return
	}
	src, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open file"))
		return
	}
	defer src.Close()

	text, err := h.documents.ExtractText(fileHeader.Filename, fileHeader.Header.Get("Content-Type"), src)
	if err != nil {
		response.Error(c, err)
		return
	}

	beginEventStream(c)
	analysis := h.advisor.ReviewDocument(c.Request.Context(), text, func(chunk string) {
		c.SSEvent("chunk", chunk)
		c.Writer.Flush()
	})
	c.SSEvent("analysis", analysis)
	c.Writer.Flush()
}

// Chat godoc
// @Summary Chat with the advisor
// @Description Streams the reply as server-sent events.
// @Tags Advisor
// @Accept json
// @Produce text/event-stream
// @Param payload body dto.ChatRequest true "Dialogue history, oldest first"
// @Success 200 {string} string "event stream"
// @Failure 400 {object} response.Envelope
// @Router /chat [post]
func (h *AdvisorHandler) Chat(c *gin.Context) {
	var req dto.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "at least one message is required"))
		return
	}

	beginEventStream(c)
	full, _ := h.advisor.ChatAdvice(c.Request.Context(), req.Messages, func(chunk string) {
		c.SSEvent("chunk", chunk)
		c.Writer.Flush()
	})
	c.SSEvent("done", gin.H{"length": len(full)})
	c.Writer.Flush()
}

func beginEventStream(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-store")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Writer.Flush()
}
