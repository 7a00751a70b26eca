package dto

import "github.com/vakildesk/vakildesk-api/internal/models"

// PredictStageResponse returns the suggested next procedural stage.
type PredictStageResponse struct {
	Stage  string `json:"stage"`
	Cached bool   `json:"cached"`
}

// DraftRequest asks the advisor to generate a document from instructions.
type DraftRequest struct {
	Instructions string `json:"instructions" binding:"required"`
}

// DraftResponse carries the generated document text.
type DraftResponse struct {
	Text string `json:"text"`
}

// ChatRequest carries the running mentorship dialogue, oldest first.
type ChatRequest struct {
	Messages []models.ChatMessage `json:"messages" binding:"required,min=1,dive"`
}

// ExportDraftRequest renders draft text into a downloadable document.
type ExportDraftRequest struct {
	Text string `json:"text" binding:"required"`
}

// ExportDraftResponse points at the stored rendering.
type ExportDraftResponse struct {
	Filename    string `json:"filename"`
	DownloadURL string `json:"downloadUrl"`
	ExpiresAt   string `json:"expiresAt"`
}
