package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vakildesk/vakildesk-api/internal/gateway"
	"github.com/vakildesk/vakildesk-api/internal/models"
)

// Fixed degradation messages. Advisor failures never break the rest of the
// application; they surface as these values instead.
const (
	SentinelNoAPIKey         = "API Key not configured."
	SentinelPredictionFailed = "Unable to predict stage."
)

// Most recent history entries included in a stage-prediction prompt.
const predictionHistoryDepth = 3

type modelClient interface {
	Configured() bool
	Generate(ctx context.Context, messages []gateway.Message) (string, error)
	Stream(ctx context.Context, messages []gateway.Message) (<-chan string, error)
}

// AdvisorService wraps the generative-model gateway with the case-management
// prompts: stage prediction, drafting, document review, and chat advice.
type AdvisorService struct {
	client   modelClient
	cache    *CacheService
	logger   *zap.Logger
	cacheTTL time.Duration
}

// NewAdvisorService constructs the service.
func NewAdvisorService(client modelClient, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *AdvisorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 6 * time.Hour
	}
	return &AdvisorService{client: client, cache: cache, logger: logger, cacheTTL: cacheTTL}
}

// PredictStage suggests the next procedural stage from the case snapshot and
// its most recent history. Failures return a fixed sentinel, never an error.
// Successful predictions are cached until the case history grows.
func (s *AdvisorService) PredictStage(ctx context.Context, c models.Case) (string, bool) {
	if !s.client.Configured() {
		return SentinelNoAPIKey, false
	}

	cacheKey := fmt.Sprintf("advisor:stage:%s:%d", c.ID, len(c.History))
	var cached string
	if s.cache != nil {
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit && cached != "" {
			return cached, true
		}
	}

	prediction, err := s.client.Generate(ctx, []gateway.Message{{Role: "user", Text: stagePrompt(c)}})
	if err != nil {
		s.logger.Warn("stage prediction failed", zap.String("case_id", c.ID), zap.Error(err))
		return SentinelPredictionFailed, false
	}
	prediction = firstLine(prediction)
	if prediction == "" {
		return SentinelPredictionFailed, false
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKey, prediction, s.cacheTTL)
	}
	return prediction, false
}

// GenerateDraft produces document text from drafting instructions.
func (s *AdvisorService) GenerateDraft(ctx context.Context, instructions string) (string, error) {
	if !s.client.Configured() {
		return SentinelNoAPIKey, nil
	}
	text, err := s.client.Generate(ctx, []gateway.Message{{Role: "user", Text: draftPrompt(instructions)}})
	if err != nil {
		s.logger.Warn("draft generation failed", zap.Error(err))
		return SentinelNoAPIKey, nil
	}
	return text, nil
}

// ReviewDocument streams a structured review of the document text. Each raw
// chunk is forwarded to onChunk as it arrives; once the stream completes the
// accumulated text is scanned for the structured analysis object. A response
// with no parseable object yields an analysis-shaped error value.
func (s *AdvisorService) ReviewDocument(ctx context.Context, documentText string, onChunk func(string)) models.DocumentAnalysis {
	if !s.client.Configured() {
		return models.AnalysisError(SentinelNoAPIKey)
	}

	chunks, err := s.client.Stream(ctx, []gateway.Message{{Role: "user", Text: reviewPrompt(documentText)}})
	if err != nil {
		s.logger.Warn("document review failed", zap.Error(err))
		return models.AnalysisError(SentinelNoAPIKey)
	}

	var accumulated strings.Builder
	for chunk := range chunks {
		accumulated.WriteString(chunk)
		if onChunk != nil {
			onChunk(chunk)
		}
	}

	analysis, err := parseAnalysis(accumulated.String())
	if err != nil {
		return models.AnalysisError("The review response did not contain a readable analysis: " + err.Error())
	}
	return analysis
}

// ChatAdvice streams a mentorship reply to the running dialogue. Chunks are
// forwarded to onChunk; the full accumulated text is returned. Whatever
// arrived before an interruption is preserved.
func (s *AdvisorService) ChatAdvice(ctx context.Context, history []models.ChatMessage, onChunk func(string)) (string, error) {
	if !s.client.Configured() {
		if onChunk != nil {
			onChunk(SentinelNoAPIKey)
		}
		return SentinelNoAPIKey, nil
	}

	messages := make([]gateway.Message, 0, len(history)+1)
	messages = append(messages, gateway.Message{Role: "user", Text: chatSystemPrompt})
	for _, m := range history {
		role := m.Role
		if role != "user" && role != "model" {
			role = "user"
		}
		messages = append(messages, gateway.Message{Role: role, Text: m.Text})
	}

	chunks, err := s.client.Stream(ctx, messages)
	if err != nil {
		s.logger.Warn("chat advice failed", zap.Error(err))
		if onChunk != nil {
			onChunk(SentinelNoAPIKey)
		}
		return SentinelNoAPIKey, nil
	}

	var accumulated strings.Builder
	for chunk := range chunks {
		accumulated.WriteString(chunk)
		if onChunk != nil {
			onChunk(chunk)
		}
	}
	return accumulated.String(), nil
}

const chatSystemPrompt = "You are a senior advocate mentoring a junior colleague. " +
	"Give practical, strategic litigation advice in plain language. " +
	"Stay within Indian court procedure unless told otherwise."

func stagePrompt(c models.Case) string {
	var sb strings.Builder
	sb.WriteString("Suggest the next procedural stage for this matter. ")
	sb.WriteString("Reply with the stage name only, e.g. \"Framing of Issues\".\n\n")
	fmt.Fprintf(&sb, "Title: %s\nCase number: %s\nNature: %s\nCourt: %s\nCurrent stage: %s\nStatus: %s\n",
		c.Title, c.CaseNumber, c.Nature, c.Court, c.Stage, c.Status)
	if c.Nature == models.NatureCriminal && c.Offence != "" {
		fmt.Fprintf(&sb, "Offence: %s\n", c.Offence)
	}

	history := c.History
	if len(history) > predictionHistoryDepth {
		history = history[:predictionHistoryDepth]
	}
	if len(history) > 0 {
		sb.WriteString("\nRecent proceedings, newest first:\n")
		for _, entry := range history {
			fmt.Fprintf(&sb, "- %s (%s): %s\n", entry.Date, entry.Stage, entry.Proceedings)
		}
	}
	return sb.String()
}

func draftPrompt(instructions string) string {
	return "Draft a formal legal document per the following instructions. " +
		"Produce only the document text, ready for filing, with a heading line " +
		"and well separated paragraphs.\n\n" + instructions
}

func reviewPrompt(documentText string) string {
	return "Review the following legal document. After your commentary, include a JSON object " +
		`with exactly these string fields: "summary", "parties", "dates", "clauses", "risks", "suggestions".` +
		"\n\n---\n" + documentText
}

// parseAnalysis locates the outermost JSON object in the accumulated stream
// text and decodes it. Streams wrap the object in prose and code fences, so
// scan between the first '{' and the last '}'.
func parseAnalysis(text string) (models.DocumentAnalysis, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return models.DocumentAnalysis{}, fmt.Errorf("no JSON object found")
	}

	var analysis models.DocumentAnalysis
	if err := json.Unmarshal([]byte(text[start:end+1]), &analysis); err != nil {
		return models.DocumentAnalysis{}, fmt.Errorf("decode analysis: %w", err)
	}
	if analysis == (models.DocumentAnalysis{}) {
		return models.DocumentAnalysis{}, fmt.Errorf("analysis object is empty")
	}
	return analysis, nil
}

func firstLine(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(strings.Trim(text, "\"*`"))
}
