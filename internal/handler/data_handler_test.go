package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vakildesk/vakildesk-api/internal/dto"
	appErrors "github.com/vakildesk/vakildesk-api/pkg/errors"
)

type fakeDataSrv struct {
	exportName    string
	exportPayload []byte
	importResult  *dto.ImportResult
	importErr     error
	lastPayload   []byte
	lastConfirmed bool
	downloadPath  string
}

func (f *fakeDataSrv) ExportPayload() (string, []byte, error) {
	return f.exportName, f.exportPayload, nil
}

func (f *fakeDataSrv) ExportStored(context.Context) (*dto.ExportInfo, error) {
	return &dto.ExportInfo{Filename: f.exportName, DownloadURL: "/api/v1/files/tok"}, nil
}

func (f *fakeDataSrv) OpenByToken(token string) (*os.File, string, error) {
	if token != "good" {
		return nil, "", appErrors.ErrUnauthorized
	}
	file, err := os.Open(f.downloadPath)
	return file, filepath.Base(f.downloadPath), err
}

func (f *fakeDataSrv) Import(_ context.Context, payload []byte, confirmed bool) (*dto.ImportResult, error) {
	f.lastPayload = payload
	f.lastConfirmed = confirmed
	return f.importResult, f.importErr
}

func multipartImport(t *testing.T, content, confirm string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "backup.json")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	if confirm != "" {
		require.NoError(t, writer.WriteField("confirm", confirm))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestDataHandlerExportAttachment(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewDataHandler(&fakeDataSrv{
		exportName:    "vakildesk-backup-2024-06-01.json",
		exportPayload: []byte(`[{"id":"c1"}]`),
	}, 0)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/data/export", nil)

	handler.Export(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "vakildesk-backup-2024-06-01.json")
	assert.Equal(t, `[{"id":"c1"}]`, rec.Body.String())
}

func TestDataHandlerImportForwardsConfirmation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeDataSrv{importResult: &dto.ImportResult{Imported: 1, Persisted: true}}
	handler := NewDataHandler(srv, 0)

	body, contentType := multipartImport(t, `[{"id":"c1"}]`, "true")
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/data/import", body)
	c.Request.Header.Set("Content-Type", contentType)

	handler.Import(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, srv.lastConfirmed)
	assert.Equal(t, `[{"id":"c1"}]`, string(srv.lastPayload))
}

func TestDataHandlerImportWithoutConfirm(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeDataSrv{importErr: appErrors.Clone(appErrors.ErrValidation, "import requires explicit confirmation")}
	handler := NewDataHandler(srv, 0)

	body, contentType := multipartImport(t, `[]`, "")
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/data/import", body)
	c.Request.Header.Set("Content-Type", contentType)

	handler.Import(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, srv.lastConfirmed)
}

func TestDataHandlerImportMissingFile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewDataHandler(&fakeDataSrv{}, 0)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/data/import", nil)

	handler.Import(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDataHandlerDownload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	path := filepath.Join(t.TempDir(), "vakildesk-backup-2024-06-01.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o600))
	handler := NewDataHandler(&fakeDataSrv{downloadPath: path}, 0)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/files/good", nil)
	c.Params = gin.Params{{Key: "token", Value: "good"}}

	handler.Download(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "vakildesk-backup-2024-06-01.json")
}

func TestDataHandlerDownloadBadToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewDataHandler(&fakeDataSrv{}, 0)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/files/bad", nil)
	c.Params = gin.Params{{Key: "token", Value: "bad"}}

	handler.Download(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
