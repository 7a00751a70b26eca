package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vakildesk/vakildesk-api/internal/dto"
	"github.com/vakildesk/vakildesk-api/internal/models"
	appErrors "github.com/vakildesk/vakildesk-api/pkg/errors"
)

type fakeAdvisorSrv struct {
	stage       string
	cached      bool
	draft       string
	analysis    models.DocumentAnalysis
	chunks      []string
	chatReply   string
	lastCase    models.Case
	lastHistory []models.ChatMessage
}

func (f *fakeAdvisorSrv) PredictStage(_ context.Context, c models.Case) (string, bool) {
	f.lastCase = c
	return f.stage, f.cached
}

func (f *fakeAdvisorSrv) GenerateDraft(context.Context, string) (string, error) {
	return f.draft, nil
}

func (f *fakeAdvisorSrv) ReviewDocument(_ context.Context, _ string, onChunk func(string)) models.DocumentAnalysis {
	for _, chunk := range f.chunks {
		if onChunk != nil {
			onChunk(chunk)
		}
	}
	return f.analysis
}

func (f *fakeAdvisorSrv) ChatAdvice(_ context.Context, history []models.ChatMessage, onChunk func(string)) (string, error) {
	f.lastHistory = history
	for _, chunk := range f.chunks {
		if onChunk != nil {
			onChunk(chunk)
		}
	}
	return f.chatReply, nil
}

type fakeCaseReader struct {
	cases map[string]models.Case
}

func (f *fakeCaseReader) Get(id string) (*models.Case, error) {
	c, ok := f.cases[id]
	if !ok {
		return nil, appErrors.ErrNotFound
	}
	return &c, nil
}

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) ExtractText(string, string, io.Reader) (string, error) {
	return f.text, f.err
}

type fakeDraftExporter struct {
	info *dto.ExportDraftResponse
	err  error
}

func (f *fakeDraftExporter) Export(string) (*dto.ExportDraftResponse, []byte, error) {
	return f.info, nil, f.err
}

func multipartUpload(t *testing.T, field, filename, contentType, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestAdvisorHandlerPredictStage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeAdvisorSrv{stage: "Framing of Issues", cached: true}
	cases := &fakeCaseReader{cases: map[string]models.Case{"c1": {ID: "c1", Title: "Smith v. Jones"}}}
	handler := NewAdvisorHandler(srv, cases, nil, nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/cases/c1/predict-stage", nil)
	c.Params = gin.Params{{Key: "id", Value: "c1"}}

	handler.PredictStage(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Framing of Issues")
	assert.Contains(t, rec.Body.String(), `"cached":true`)
	assert.Equal(t, "c1", srv.lastCase.ID)
}

func TestAdvisorHandlerPredictStageUnknownCase(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAdvisorHandler(&fakeAdvisorSrv{}, &fakeCaseReader{cases: map[string]models.Case{}}, nil, nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/cases/missing/predict-stage", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.PredictStage(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdvisorHandlerDraft(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAdvisorHandler(&fakeAdvisorSrv{draft: "IN THE COURT OF ..."}, nil, nil, nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/drafts", strings.NewReader(`{"instructions":"bail application"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Draft(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "IN THE COURT OF")
}

func TestAdvisorHandlerDraftRequiresInstructions(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAdvisorHandler(&fakeAdvisorSrv{}, nil, nil, nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/drafts", strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Draft(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdvisorHandlerExportDraft(t *testing.T) {
	gin.SetMode(gin.TestMode)
	exporter := &fakeDraftExporter{info: &dto.ExportDraftResponse{Filename: "draft-1.pdf", DownloadURL: "/api/v1/files/tok"}}
	handler := NewAdvisorHandler(&fakeAdvisorSrv{}, nil, nil, exporter)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/drafts/export", strings.NewReader(`{"text":"Para one.\n\nPara two."}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.ExportDraft(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "draft-1.pdf")
}

func TestAdvisorHandlerReviewStreamsEvents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeAdvisorSrv{
		chunks:   []string{"Reading the deed. ", "Looks standard."},
		analysis: models.DocumentAnalysis{Summary: "A lease deed"},
	}
	handler := NewAdvisorHandler(srv, nil, &fakeExtractor{text: "LEASE DEED"}, nil)

	body, contentType := multipartUpload(t, "file", "deed.txt", "text/plain", "LEASE DEED ...")
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/reviews", body)
	c.Request.Header.Set("Content-Type", contentType)

	handler.Review(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/event-stream")
	out := rec.Body.String()
	assert.Contains(t, out, "event:chunk")
	assert.Contains(t, out, "Reading the deed.")
	assert.Contains(t, out, "event:analysis")
	assert.Contains(t, out, "A lease deed")
}

func TestAdvisorHandlerReviewRejectsUnsupportedUpload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	extractor := &fakeExtractor{err: appErrors.Clone(appErrors.ErrUnsupportedFile, "not plain text")}
	handler := NewAdvisorHandler(&fakeAdvisorSrv{}, nil, extractor, nil)

	body, contentType := multipartUpload(t, "file", "scan.pdf", "application/pdf", "%PDF")
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/reviews", body)
	c.Request.Header.Set("Content-Type", contentType)

	handler.Review(c)

	assert.Equal(t, appErrors.ErrUnsupportedFile.Status, rec.Code)
	assert.NotContains(t, rec.Header().Get("Content-Type"), "text/event-stream")
}

func TestAdvisorHandlerChatStreams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeAdvisorSrv{chunks: []string{"File for ", "interim relief."}, chatReply: "File for interim relief."}
	handler := NewAdvisorHandler(srv, nil, nil, nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	payload := `{"messages":[{"role":"user","text":"What next?"}]}`
	c.Request = httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Chat(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	out := rec.Body.String()
	assert.Contains(t, out, "event:chunk")
	assert.Contains(t, out, "interim relief.")
	assert.Contains(t, out, "event:done")
	require.Len(t, srv.lastHistory, 1)
}

func TestAdvisorHandlerChatRequiresMessages(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAdvisorHandler(&fakeAdvisorSrv{}, nil, nil, nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"messages":[]}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Chat(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
