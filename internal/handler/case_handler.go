package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vakildesk/vakildesk-api/internal/dto"
	"github.com/vakildesk/vakildesk-api/internal/models"
	appErrors "github.com/vakildesk/vakildesk-api/pkg/errors"
	"github.com/vakildesk/vakildesk-api/pkg/response"
)

type caseService interface {
	Upsert(ctx context.Context, c models.Case) (models.Case, bool, error)
	Get(id string) (*models.Case, error)
	Search(filter dto.SearchFilter) []models.Case
	Calendar() models.CalendarIndex
	CalendarOn(date string) []models.Case
	Counters() models.CaseCounters
}

// CaseHandler exposes the case repository over HTTP.
type CaseHandler struct {
	service caseService
}

// NewCaseHandler constructs the handler.
func NewCaseHandler(svc caseService) *CaseHandler {
	return &CaseHandler{service: svc}
}

// List godoc
// @Summary Search and list cases
// @Description Free-text search across title, case number, court, case type and side, with a status filter. Results sort by next hearing date, most distant first.
// @Tags Cases
// @Produce json
// @Param q query string false "Search query"
// @Param status query string false "Status filter (Pending, Decided, All)"
// @Success 200 {object} response.Envelope
// @Router /cases [get]
func (h *CaseHandler) List(c *gin.Context) {
	filter := dto.SearchFilter{
		Query:  strings.TrimSpace(c.Query("q")),
		Status: strings.TrimSpace(c.Query("status")),
	}
	cases := h.service.Search(filter)
	response.JSON(c, http.StatusOK, cases, map[string]interface{}{"total": len(cases)})
}

// Create godoc
// @Summary Register a new case
// @Tags Cases
// @Accept json
// @Produce json
// @Param payload body dto.SaveCaseRequest true "Case payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /cases [post]
func (h *CaseHandler) Create(c *gin.Context) {
	var req dto.SaveCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid case payload"))
		return
	}

	saved, persisted, err := h.service.Upsert(c.Request.Context(), req.ToModel(""))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, saved, map[string]interface{}{"persisted": persisted})
}

// Update godoc
// @Summary Replace a case record
// @Description Replaces the whole record for the given id; there are no partial updates.
// @Tags Cases
// @Accept json
// @Produce json
// @Param id path string true "Case ID"
// @Param payload body dto.SaveCaseRequest true "Case payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /cases/{id} [put]
func (h *CaseHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.service.Get(id); err != nil {
		response.Error(c, err)
		return
	}

	var req dto.SaveCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid case payload"))
		return
	}

	saved, persisted, err := h.service.Upsert(c.Request.Context(), req.ToModel(id))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, saved, map[string]interface{}{"persisted": persisted})
}

// Get godoc
// @Summary Get one case
// @Tags Cases
// @Produce json
// @Param id path string true "Case ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /cases/{id} [get]
func (h *CaseHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Summary godoc
// @Summary Case totals for the dashboard
// @Tags Cases
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /cases/summary [get]
func (h *CaseHandler) Summary(c *gin.Context) {
	response.JSON(c, http.StatusOK, dto.SummaryResponse{Counters: h.service.Counters()}, nil)
}

// Calendar godoc
// @Summary Hearing calendar index
// @Description Pending cases grouped by next hearing date.
// @Tags Calendar
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /calendar [get]
func (h *CaseHandler) Calendar(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Calendar(), nil)
}

// CalendarOn godoc
// @Summary Cases listed on one date
// @Tags Calendar
// @Produce json
// @Param date path string true "ISO date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /calendar/{date} [get]
func (h *CaseHandler) CalendarOn(c *gin.Context) {
	cases := h.service.CalendarOn(c.Param("date"))
	response.JSON(c, http.StatusOK, cases, map[string]interface{}{"total": len(cases)})
}
