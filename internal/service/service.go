// Package service runs one resume optimization: it stages the upload in a
// temp file, extracts its text and sends it through the prompt pipeline.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/diyaj1210/AI-Resume-Optimiser/internal/extractor"
	"github.com/diyaj1210/AI-Resume-Optimiser/internal/optimizer"
)

var ErrMissingInput = errors.New("resume file and job description are required")

// Upload is a resume file as received from the user.
type Upload struct {
	Filename string
	Data     []byte
}

// Outcome is what a successful run hands back for display and download.
type Outcome struct {
	Result       optimizer.Result
	DownloadName string
	SizeBytes    int64
}

// Optimizer is the part of optimizer.Pipeline the service needs.
type Optimizer interface {
	Optimize(ctx context.Context, rawText, jobDescription string) (*optimizer.Result, error)
}

type Service struct {
	extractor *extractor.Extractor
	optimizer Optimizer
	tempDir   string
}

func New(ext *extractor.Extractor, opt Optimizer) *Service {
	return &Service{extractor: ext, optimizer: opt}
}

// WithTempDir sets where uploads are staged. Empty means os.TempDir.
func (s *Service) WithTempDir(dir string) *Service {
	s.tempDir = dir
	return s
}

// Run optimizes one upload against a job description. The staged temp file is
// removed before Run returns, whatever the outcome.
//
// When the pipeline fails the returned Outcome still carries the failure text
// in both result fields, alongside the error.
func (s *Service) Run(ctx context.Context, upload Upload, jobDescription string) (*Outcome, error) {
	if len(upload.Data) == 0 || strings.TrimSpace(jobDescription) == "" {
		return nil, ErrMissingInput
	}

	ext := filepath.Ext(upload.Filename)
	if !extractor.IsSupportedFormat(ext) {
		return nil, fmt.Errorf("%w: %q", extractor.ErrUnsupportedFormat, ext)
	}

	path, err := s.stage(upload.Data, ext)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("[Service] failed to remove temp file %s: %v", path, err)
		}
	}()

	doc, err := s.extractor.Extract(path, ext)
	if err != nil {
		return nil, err
	}

	res, err := s.optimizer.Optimize(ctx, doc.RawText, jobDescription)
	if res == nil {
		return nil, err
	}
	out := &Outcome{
		Result:       *res,
		DownloadName: DownloadName(upload.Filename),
		SizeBytes:    doc.SizeBytes,
	}
	return out, err
}

func (s *Service) stage(data []byte, ext string) (string, error) {
	tmp, err := os.CreateTemp(s.tempDir, "resume-*"+ext)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	path := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}
	return path, nil
}

// DownloadName is the file name offered for the optimized resume:
// optimized_resume_<name up to its first dot>.txt.
func DownloadName(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	if i := strings.Index(base, "."); i >= 0 {
		base = base[:i]
	}
	if base == "" || base == "/" {
		base = "resume"
	}
	return "optimized_resume_" + base + ".txt"
}
