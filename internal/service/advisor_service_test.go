package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vakildesk/vakildesk-api/internal/gateway"
	"github.com/vakildesk/vakildesk-api/internal/models"
)

type modelClientStub struct {
	configured   bool
	generateResp string
	generateErr  error
	streamChunks []string
	streamErr    error
	lastMessages []gateway.Message
}

func (s *modelClientStub) Configured() bool {
	return s.configured
}

func (s *modelClientStub) Generate(ctx context.Context, messages []gateway.Message) (string, error) {
	s.lastMessages = messages
	return s.generateResp, s.generateErr
}

func (s *modelClientStub) Stream(ctx context.Context, messages []gateway.Message) (<-chan string, error) {
	s.lastMessages = messages
	if s.streamErr != nil {
		return nil, s.streamErr
	}
	out := make(chan string)
	go func() {
		defer close(out)
		for _, chunk := range s.streamChunks {
			out <- chunk
		}
	}()
	return out, nil
}

func TestPredictStageWithoutKeyReturnsSentinel(t *testing.T) {
	svc := NewAdvisorService(&modelClientStub{configured: false}, nil, 0, nil)
	stage, cached := svc.PredictStage(context.Background(), models.Case{ID: "c1"})
	assert.Equal(t, SentinelNoAPIKey, stage)
	assert.False(t, cached)
}

func TestPredictStageReturnsFirstLine(t *testing.T) {
	client := &modelClientStub{configured: true, generateResp: "Framing of Issues\nBecause the written statement is on record."}
	svc := NewAdvisorService(client, nil, 0, nil)

	stage, cached := svc.PredictStage(context.Background(), models.Case{ID: "c1", Title: "Smith v. Jones"})
	assert.Equal(t, "Framing of Issues", stage)
	assert.False(t, cached)
}

func TestPredictStagePromptIncludesRecentHistoryOnly(t *testing.T) {
	client := &modelClientStub{configured: true, generateResp: "Evidence"}
	svc := NewAdvisorService(client, nil, 0, nil)

	c := models.Case{ID: "c1", History: []models.HistoryEntry{
		{Date: "2024-05-01", Proceedings: "newest"},
		{Date: "2024-04-01", Proceedings: "second"},
		{Date: "2024-03-01", Proceedings: "third"},
		{Date: "2024-02-01", Proceedings: "too old"},
	}}
	svc.PredictStage(context.Background(), c)

	require.Len(t, client.lastMessages, 1)
	prompt := client.lastMessages[0].Text
	assert.Contains(t, prompt, "newest")
	assert.Contains(t, prompt, "third")
	assert.NotContains(t, prompt, "too old")
}

func TestPredictStageFailureReturnsSentinel(t *testing.T) {
	client := &modelClientStub{configured: true, generateErr: errors.New("timeout")}
	svc := NewAdvisorService(client, nil, 0, nil)

	stage, _ := svc.PredictStage(context.Background(), models.Case{ID: "c1"})
	assert.Equal(t, SentinelPredictionFailed, stage)
}

func TestGenerateDraftWithoutKeyReturnsSentinel(t *testing.T) {
	svc := NewAdvisorService(&modelClientStub{configured: false}, nil, 0, nil)
	text, err := svc.GenerateDraft(context.Background(), "draft a bail application")
	require.NoError(t, err)
	assert.Equal(t, SentinelNoAPIKey, text)
}

func TestReviewDocumentParsesStructuredAnalysis(t *testing.T) {
	client := &modelClientStub{configured: true, streamChunks: []string{
		"Here is my review.\n```json\n",
		`{"summary":"A lease deed","parties":"Lessor and lessee","dates":"2024-01-01",`,
		`"clauses":"Rent, lock-in","risks":"No exit clause","suggestions":"Add arbitration"}`,
		"\n```",
	}}
	svc := NewAdvisorService(client, nil, 0, nil)

	var streamed strings.Builder
	analysis := svc.ReviewDocument(context.Background(), "LEASE DEED ...", func(chunk string) {
		streamed.WriteString(chunk)
	})

	assert.Empty(t, analysis.Error)
	assert.Equal(t, "A lease deed", analysis.Summary)
	assert.Equal(t, "Add arbitration", analysis.Suggestions)
	assert.Contains(t, streamed.String(), "Here is my review.")
}

func TestReviewDocumentUnparseableYieldsAnalysisShapedError(t *testing.T) {
	client := &modelClientStub{configured: true, streamChunks: []string{"I could not produce the requested structure."}}
	svc := NewAdvisorService(client, nil, 0, nil)

	analysis := svc.ReviewDocument(context.Background(), "text", nil)
	assert.NotEmpty(t, analysis.Error)
	assert.Empty(t, analysis.Summary)
}

func TestReviewDocumentWithoutKey(t *testing.T) {
	svc := NewAdvisorService(&modelClientStub{configured: false}, nil, 0, nil)
	analysis := svc.ReviewDocument(context.Background(), "text", nil)
	assert.Equal(t, SentinelNoAPIKey, analysis.Error)
}

func TestChatAdviceAccumulatesStream(t *testing.T) {
	client := &modelClientStub{configured: true, streamChunks: []string{"File for ", "interim relief."}}
	svc := NewAdvisorService(client, nil, 0, nil)

	var chunks []string
	full, err := svc.ChatAdvice(context.Background(), []models.ChatMessage{{Role: "user", Text: "What next?"}}, func(chunk string) {
		chunks = append(chunks, chunk)
	})
	require.NoError(t, err)
	assert.Equal(t, "File for interim relief.", full)
	assert.Len(t, chunks, 2)
}

func TestChatAdviceWithoutKeyEmitsSentinel(t *testing.T) {
	svc := NewAdvisorService(&modelClientStub{configured: false}, nil, 0, nil)

	var chunks []string
	full, err := svc.ChatAdvice(context.Background(), nil, func(chunk string) {
		chunks = append(chunks, chunk)
	})
	require.NoError(t, err)
	assert.Equal(t, SentinelNoAPIKey, full)
	require.Len(t, chunks, 1)
	assert.Equal(t, SentinelNoAPIKey, chunks[0])
}

func TestChatAdviceNormalizesRoles(t *testing.T) {
	client := &modelClientStub{configured: true, streamChunks: []string{"ok"}}
	svc := NewAdvisorService(client, nil, 0, nil)

	_, err := svc.ChatAdvice(context.Background(), []models.ChatMessage{
		{Role: "assistant", Text: "previous reply"},
		{Role: "model", Text: "kept"},
	}, nil)
	require.NoError(t, err)

	require.Len(t, client.lastMessages, 3)
	assert.Equal(t, "user", client.lastMessages[1].Role)
	assert.Equal(t, "model", client.lastMessages[2].Role)
}
