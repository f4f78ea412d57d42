package server

import (
	"errors"
	"io"
	"log"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/diyaj1210/AI-Resume-Optimiser/internal/extractor"
	"github.com/diyaj1210/AI-Resume-Optimiser/internal/optimizer"
	"github.com/diyaj1210/AI-Resume-Optimiser/internal/service"
)

// multipart framing and the job description ride on top of the file itself
const formOverhead = 1 << 20

type Handler struct {
	runner    Runner
	maxUpload int64
	version   string
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Version:   h.version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) SampleJobDescription(c *gin.Context) {
	c.JSON(http.StatusOK, SampleResponse{JobDescription: service.SampleJobDescription})
}

// Optimize accepts a multipart form with a "resume" file and a
// "job_description" field. With ?format=txt the optimized resume is returned
// as a plain-text attachment instead of JSON.
func (h *Handler) Optimize(c *gin.Context) {
	if h.maxUpload > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload+formOverhead)
	}

	header, err := c.FormFile("resume")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.fail(c, http.StatusRequestEntityTooLarge, "Resume file is too large", err)
			return
		}
		if !errors.Is(err, http.ErrMissingFile) {
			h.fail(c, http.StatusBadRequest, "Invalid upload", err)
			return
		}
		h.fail(c, http.StatusBadRequest, service.Message(service.ErrMissingInput), err)
		return
	}
	if h.maxUpload > 0 && header.Size > h.maxUpload {
		h.fail(c, http.StatusRequestEntityTooLarge, "Resume file is too large", nil)
		return
	}

	file, err := header.Open()
	if err != nil {
		h.fail(c, http.StatusBadRequest, "Failed to read resume file", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.fail(c, http.StatusBadRequest, "Failed to read resume file", err)
		return
	}
	jobDescription := c.PostForm("job_description")
	log.Printf("[OptimizeHandler] Received resume: %s (%d bytes)", header.Filename, len(data))

	outcome, err := h.runner.Run(c.Request.Context(), service.Upload{Filename: header.Filename, Data: data}, jobDescription)
	if err != nil {
		log.Printf("[OptimizeHandler] optimization of %s failed: %v", header.Filename, err)
		status := statusFor(err)
		resp := ErrorResponse{Error: service.Message(err), Code: status, Details: err.Error()}
		if outcome != nil {
			resp.OptimizedResume = outcome.Result.OptimizedText
			resp.Explanation = outcome.Result.ExplanationText
		}
		c.JSON(status, resp)
		return
	}

	if strings.EqualFold(c.Query("format"), "txt") {
		c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": outcome.DownloadName}))
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(outcome.Result.OptimizedText))
		return
	}

	c.JSON(http.StatusOK, OptimizeResponse{
		OptimizedResume: outcome.Result.OptimizedText,
		Explanation:     outcome.Result.ExplanationText,
		DownloadName:    outcome.DownloadName,
		SourceSizeBytes: outcome.SizeBytes,
	})
}

func (h *Handler) fail(c *gin.Context, status int, msg string, err error) {
	resp := ErrorResponse{Error: msg, Code: status}
	if err != nil {
		resp.Details = err.Error()
	}
	c.JSON(status, resp)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrMissingInput), errors.Is(err, extractor.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, extractor.ErrEmptyContent), errors.Is(err, extractor.ErrParseFailure):
		return http.StatusUnprocessableEntity
	case errors.Is(err, optimizer.ErrGenerationFailure):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
