package extractor

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// readPDF returns every page's text in order, each followed by a newline.
func readPDF(path string) (text string, err error) {
	// the pdf package panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("failed to read pdf: %v", r)
		}
	}()

	f, pdfReader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	numPages := pdfReader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := pdfReader.Page(i)
		if !page.V.IsNull() {
			pageText, err := page.GetPlainText(nil)
			if err != nil {
				return "", fmt.Errorf("failed to read pdf page %d: %w", i, err)
			}
			textBuilder.WriteString(pageText)
		}
		textBuilder.WriteString("\n")
	}
	return textBuilder.String(), nil
}
