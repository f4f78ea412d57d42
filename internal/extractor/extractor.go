// Package extractor turns uploaded resume documents (PDF, Word) into plain text.
package extractor

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format, please use PDF or DOCX")
	ErrEmptyContent      = errors.New("no text content found in the file")
	ErrParseFailure      = errors.New("failed to parse document")
)

// ParseError wraps the underlying library failure for a document. It matches
// ErrParseFailure with errors.Is.
type ParseError struct {
	Path   string
	Format string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s %s: %v", e.Format, e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParseFailure }

// ParsedDocument is the text of one uploaded file.
type ParsedDocument struct {
	RawText    string
	SourcePath string
	SizeBytes  int64
}

type reader func(path string) (string, error)

// Extractor extracts text from resume files based on their declared extension.
type Extractor struct {
	readers map[string]reader
}

// New creates an extractor for pdf, docx and doc files.
func New() *Extractor {
	return &Extractor{
		readers: map[string]reader{
			"pdf":  readPDF,
			"docx": readDOCX,
			"doc":  readDOCX,
		},
	}
}

// NormalizeExt lower-cases an extension and drops its leading dot.
func NormalizeExt(ext string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
}

// IsSupportedFormat reports whether ext (with or without the dot) can be extracted.
func IsSupportedFormat(ext string) bool {
	switch NormalizeExt(ext) {
	case "pdf", "docx", "doc":
		return true
	}
	return false
}

// Extract reads the file at path as the format named by ext.
//
// A nil document is always paired with an error matching one of
// ErrUnsupportedFormat, ErrEmptyContent or ErrParseFailure. Unsupported
// formats are rejected before the file is opened.
func (e *Extractor) Extract(path, ext string) (*ParsedDocument, error) {
	format := NormalizeExt(ext)
	read, ok := e.readers[format]
	if !ok {
		log.Printf("[Extractor] rejected %s: unsupported extension %q", path, ext)
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	text, err := read(path)
	if err != nil {
		log.Printf("[Extractor] error parsing resume %s: %v", path, err)
		return nil, &ParseError{Path: path, Format: format, Err: err}
	}

	if strings.TrimSpace(text) == "" {
		log.Printf("[Extractor] no text content in %s", path)
		return nil, fmt.Errorf("%w: %s", ErrEmptyContent, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		log.Printf("[Extractor] error reading size of %s: %v", path, err)
		return nil, &ParseError{Path: path, Format: format, Err: err}
	}

	return &ParsedDocument{
		RawText:    text,
		SourcePath: path,
		SizeBytes:  info.Size(),
	}, nil
}
