package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diyaj1210/AI-Resume-Optimiser/internal/extractor"
	"github.com/diyaj1210/AI-Resume-Optimiser/internal/optimizer"
	"github.com/diyaj1210/AI-Resume-Optimiser/internal/service"
	"github.com/diyaj1210/AI-Resume-Optimiser/internal/testdocs"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func model(fail error) optimizer.Generator {
	return optimizer.GeneratorFunc(func(_ context.Context, prompt string) (string, error) {
		switch {
		case strings.Contains(prompt, "Extract the most important keywords"):
			return "Python, Docker, AWS", nil
		case fail != nil:
			return "", fail
		case strings.Contains(prompt, "Create an optimized version"):
			return "JANE DOE\nPython | Docker | AWS", nil
		default:
			return "Added Python, Docker and AWS keywords.", nil
		}
	})
}

func newTestRouter(gen optimizer.Generator, maxUpload int64) *gin.Engine {
	svc := service.New(extractor.New(), optimizer.New(gen))
	return NewRouter(svc, Options{Version: "test", MaxUploadBytes: maxUpload})
}

func multipartRequest(t *testing.T, target, filename string, data []byte, jobDescription string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if filename != "" {
		fw, err := w.CreateFormFile("resume", filename)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.WriteField("job_description", jobDescription))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestOptimizeJSON(t *testing.T) {
	router := newTestRouter(model(nil), 1<<20)
	pdfData := testdocs.PDF("Jane Doe", "Software Engineer")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, multipartRequest(t, "/api/optimize", "jane.pdf", pdfData, "Python Developer, Docker, AWS required."))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp OptimizeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "JANE DOE\nPython | Docker | AWS", resp.OptimizedResume)
	assert.Equal(t, "Added Python, Docker and AWS keywords.", resp.Explanation)
	assert.Equal(t, "optimized_resume_jane.txt", resp.DownloadName)
	assert.Equal(t, int64(len(pdfData)), resp.SourceSizeBytes)
}

func TestOptimizeTextDownload(t *testing.T) {
	router := newTestRouter(model(nil), 1<<20)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, multipartRequest(t, "/api/optimize?format=txt", "Jane Resume.docx", testdocs.DOCX("Jane Doe"), "Go engineer"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "optimized_resume_Jane Resume.txt")
	assert.Equal(t, "JANE DOE\nPython | Docker | AWS", rec.Body.String())
}

func TestOptimizeErrors(t *testing.T) {
	tests := []struct {
		name       string
		gen        optimizer.Generator
		filename   string
		data       []byte
		jd         string
		wantStatus int
		wantError  string
	}{
		{
			name: "missing file", gen: model(nil), jd: "Go engineer",
			wantStatus: http.StatusBadRequest, wantError: "Please upload a resume and provide a job description.",
		},
		{
			name: "missing job description", gen: model(nil), filename: "cv.pdf", data: testdocs.PDF("Jane"),
			wantStatus: http.StatusBadRequest, wantError: "Please upload a resume and provide a job description.",
		},
		{
			name: "unsupported format", gen: model(nil), filename: "cv.txt", data: []byte("Jane Doe"), jd: "Go engineer",
			wantStatus: http.StatusBadRequest, wantError: "Unsupported file format. Please use PDF or DOCX.",
		},
		{
			name: "corrupt pdf", gen: model(nil), filename: "cv.pdf", data: []byte("%PDF-garbage"), jd: "Go engineer",
			wantStatus: http.StatusUnprocessableEntity, wantError: "Failed to parse resume. Please check the file format.",
		},
		{
			name: "blank document", gen: model(nil), filename: "cv.docx", data: testdocs.DOCX(""), jd: "Go engineer",
			wantStatus: http.StatusUnprocessableEntity, wantError: "No text content found in the file.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newTestRouter(tt.gen, 1<<20).ServeHTTP(rec, multipartRequest(t, "/api/optimize", tt.filename, tt.data, tt.jd))

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantError, resp.Error)
			assert.Equal(t, tt.wantStatus, resp.Code)
			assert.Empty(t, resp.OptimizedResume)
		})
	}
}

func TestOptimizeGenerationFailure(t *testing.T) {
	router := newTestRouter(model(errors.New("rate limited")), 1<<20)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, multipartRequest(t, "/api/optimize", "cv.docx", testdocs.DOCX("Jane Doe"), "Go engineer"))
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "rate limited")
	assert.Equal(t, resp.OptimizedResume, resp.Explanation)
	assert.Contains(t, resp.OptimizedResume, "rate limited")
}

func TestOptimizeTooLarge(t *testing.T) {
	router := newTestRouter(model(nil), 64)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, multipartRequest(t, "/api/optimize", "cv.pdf", testdocs.PDF("Jane Doe", "Engineer"), "Go engineer"))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestHealthAndSample(t *testing.T) {
	router := newTestRouter(model(nil), 1<<20)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var health HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "test", health.Version)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sample-job-description", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var sample SampleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sample))
	assert.Equal(t, service.SampleJobDescription, sample.JobDescription)
}
