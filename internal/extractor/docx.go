package extractor

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

// readDOCX returns the text of every w:p paragraph in document order, each
// followed by a newline.
func readDOCX(path string) (string, error) {
	doc, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to open docx: %w", err)
	}
	defer doc.Close()

	return paragraphText(doc.Editable().GetContent())
}

// paragraphText walks word/document.xml. Paragraphs nested inside another
// paragraph (text boxes) are folded into the outer one. mc:Fallback content
// repeats its mc:Choice sibling and is skipped.
func paragraphText(documentXML string) (string, error) {
	dec := xml.NewDecoder(strings.NewReader(documentXML))

	var (
		out     strings.Builder
		para    strings.Builder
		depth   int
		inText  bool
		inTabs  bool
		sawBody bool
		skip    int
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse document.xml: %w", err)
		}

		if skip > 0 {
			switch t := tok.(type) {
			case xml.StartElement:
				if t.Name.Local == "Fallback" {
					skip++
				}
			case xml.EndElement:
				if t.Name.Local == "Fallback" {
					skip--
				}
			}
			continue
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "Fallback":
				skip++
			case "body":
				sawBody = true
			case "p":
				depth++
			case "t":
				inText = depth > 0
			case "tabs":
				inTabs = true
			case "tab":
				if depth > 0 && !inTabs {
					para.WriteByte('\t')
				}
			case "br", "cr":
				if depth > 0 {
					para.WriteByte('\n')
				}
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "tabs":
				inTabs = false
			case "p":
				if depth == 0 {
					continue
				}
				depth--
				if depth == 0 {
					out.WriteString(para.String())
					out.WriteByte('\n')
					para.Reset()
				}
			}
		case xml.CharData:
			if inText {
				para.Write(t)
			}
		}
	}

	if !sawBody {
		return "", errors.New("document.xml has no body")
	}
	return out.String(), nil
}
