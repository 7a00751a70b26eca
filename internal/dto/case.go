package dto

import (
	"github.com/vakildesk/vakildesk-api/internal/models"
)

// SaveCaseRequest carries a full case record. Edits always replace the whole
// record; there are no partial-field patches.
type SaveCaseRequest struct {
	Title      string `json:"title" binding:"required"`
	CaseNumber string `json:"caseNumber" binding:"required"`
	FilingYear string `json:"filingYear"`
	Nature     string `json:"nature" binding:"required,oneof=Civil Criminal"`
	CaseType   string `json:"caseType"`
	Side       string `json:"side"`
	Court      string `json:"court"`

	FIRNumber     string `json:"firNumber"`
	PoliceStation string `json:"policeStation"`
	Offence       string `json:"offence"`

	Stage     string                `json:"stage"`
	DiaryNote string                `json:"diaryNote"`
	NextDate  string                `json:"nextDate" binding:"omitempty,datetime=2006-01-02"`
	Status    string                `json:"status" binding:"required,oneof=Pending Decided"`
	History   []models.HistoryEntry `json:"history"`
}

// ToModel converts the request into a Case with the provided identifier.
func (r SaveCaseRequest) ToModel(id string) models.Case {
	history := r.History
	if history == nil {
		history = []models.HistoryEntry{}
	}
	return models.Case{
		ID:            id,
		Title:         r.Title,
		CaseNumber:    r.CaseNumber,
		FilingYear:    r.FilingYear,
		Nature:        models.CaseNature(r.Nature),
		CaseType:      r.CaseType,
		Side:          r.Side,
		Court:         r.Court,
		FIRNumber:     r.FIRNumber,
		PoliceStation: r.PoliceStation,
		Offence:       r.Offence,
		Stage:         r.Stage,
		DiaryNote:     r.DiaryNote,
		NextDate:      r.NextDate,
		Status:        models.CaseStatus(r.Status),
		History:       history,
	}
}

// SearchFilter captures the free-text search surface.
type SearchFilter struct {
	Query  string
	Status string
}

// SummaryResponse bundles counters for the dashboard shortcuts.
type SummaryResponse struct {
	Counters models.CaseCounters `json:"counters"`
}
