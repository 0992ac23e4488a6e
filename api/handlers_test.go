package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdf_toolkit/config"
	"pdf_toolkit/internal/logging"
	"pdf_toolkit/internal/testutil"
	"pdf_toolkit/pdf"
)

type upload struct {
	name string
	data []byte
}

func newTestRouter(t *testing.T) (*gin.Engine, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.TempDir = t.TempDir()

	r := gin.New()
	NewServer(cfg, logging.Discard()).SetupRoutes(r)
	return r, cfg
}

func postForm(t *testing.T, r http.Handler, path string, fields map[string]string, files ...upload) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		part, err := w.CreateFormFile("pdf", f.name)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

// responsePageCount stores a PDF response body and counts its pages.
func responsePageCount(t *testing.T, rec *httptest.ResponseRecorder) int {
	t.Helper()

	path := filepath.Join(t.TempDir(), "response.pdf")
	require.NoError(t, os.WriteFile(path, rec.Body.Bytes(), 0644))
	doc, err := pdf.OpenDocument(path)
	require.NoError(t, err)
	return doc.PageCount
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestInspect(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := postForm(t, r, "/api/pdf/inspect", map[string]string{"pages": "2 even,x"},
		upload{"report.pdf", testutil.BuildPDF(6, 100)})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		TotalPages int           `json:"total_pages"`
		Pages      []int         `json:"pages"`
		Warnings   []pdf.Warning `json:"warnings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 6, resp.TotalPages)
	assert.Empty(t, resp.Pages)
	assert.Len(t, resp.Warnings, 2)
}

func TestRemovePages(t *testing.T) {
	r, cfg := newTestRouter(t)
	rec := postForm(t, r, "/api/pdf/remove-pages", map[string]string{"pages": "odd"},
		upload{"report.pdf", testutil.BuildPDF(5, 100)})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "report_edited.pdf")
	assert.Equal(t, "2", rec.Header().Get("X-Page-Count"))
	assert.Equal(t, 2, responsePageCount(t, rec))

	entries, err := os.ReadDir(cfg.TempDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temp files must be cleaned up")
}

func TestRemoveAllPagesRejected(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := postForm(t, r, "/api/pdf/remove-pages", map[string]string{"pages": "1-3"},
		upload{"report.pdf", testutil.BuildPDF(3, 100)})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestExtractPages(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := postForm(t, r, "/api/pdf/extract-pages", map[string]string{"pages": "all"},
		upload{"scan.pdf", testutil.BuildPDF(4, 100)})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "scan_extracted.pdf")
	assert.Equal(t, 4, responsePageCount(t, rec))

	rec = postForm(t, r, "/api/pdf/extract-pages", map[string]string{"pages": "9"},
		upload{"scan.pdf", testutil.BuildPDF(4, 100)})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPagesRequired(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := postForm(t, r, "/api/pdf/remove-pages", nil, upload{"a.pdf", testutil.BuildPDF(1, 100)})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRejectsNonPDFUpload(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := postForm(t, r, "/api/pdf/extract-pages", map[string]string{"pages": "1"},
		upload{"a.pdf", []byte("hello")})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "header does not match")
}

func TestMerge(t *testing.T) {
	r, cfg := newTestRouter(t)
	rec := postForm(t, r, "/api/pdf/merge", nil,
		upload{"part10.pdf", testutil.BuildPDF(3, 200)},
		upload{"part2.pdf", testutil.BuildPDF(2, 100)},
	)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), cfg.MergeOutputName)
	assert.Equal(t, "5", rec.Header().Get("X-Page-Count"))
	assert.Equal(t, 5, responsePageCount(t, rec))
}

func TestMergeWithoutFiles(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := postForm(t, r, "/api/pdf/merge", map[string]string{"x": "y"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "_etc_passwd.pdf", sanitizeFilename("../etc/passwd.pdf"))
	assert.Equal(t, "document.pdf", sanitizeFilename("  "))
	assert.Equal(t, "a_b.pdf", sanitizeFilename(`a\b.pdf`))
}
