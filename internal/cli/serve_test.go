package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uploadRequest builds a multipart POST /report request from name/content pairs.
func uploadRequest(t *testing.T, files map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for name, content := range files {
		part, err := mw.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = io.WriteString(part, content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/report", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestServe_Health(t *testing.T) {
	router := newRouter(testConfig())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestServe_FullReport(t *testing.T) {
	router := newRouter(testConfig())

	req := uploadRequest(t, map[string]string{"StreamingHistory0.json": testHistory})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var report fullReportJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.NotEmpty(t, report.ReportID)
	assert.Equal(t, 3, report.UniqueTracks)
	assert.Equal(t, 2, report.UniqueArtists)
	assert.Len(t, report.Hourly, 24)
	require.Len(t, report.Weekly, 7)
	assert.Equal(t, "Monday", report.Weekly[0].Day)
	assert.NotEmpty(t, report.TopTracks)
	assert.NotEmpty(t, report.Monthly)
}

func TestServe_MalformedUpload(t *testing.T) {
	router := newRouter(testConfig())

	req := uploadRequest(t, map[string]string{"StreamingHistory0.json": `{broken`})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var out errorJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Contains(t, out.Error, "StreamingHistory0.json")
	assert.NotEmpty(t, out.Hint)
}

func TestServe_NoPrimaryFiles(t *testing.T) {
	router := newRouter(testConfig())

	req := uploadRequest(t, map[string]string{"Wrapped2024.json": `{"minutes": 5}`})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServe_NotMultipart(t *testing.T) {
	router := newRouter(testConfig())

	req := httptest.NewRequest(http.MethodPost, "/report", bytes.NewBufferString("plain body"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServe_OversizedUpload(t *testing.T) {
	cfg := testConfig()
	cfg.Limits.MaxTotalBytes = 10
	router := newRouter(cfg)

	req := uploadRequest(t, map[string]string{"StreamingHistory0.json": testHistory})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestServe_MethodNotAllowed(t *testing.T) {
	router := newRouter(testConfig())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/report", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
