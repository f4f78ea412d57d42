package extractor

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diyaj1210/AI-Resume-Optimiser/internal/testdocs"
)

// pagesOf reads each page with the pdf package directly, so the expectation
// does not depend on how the library lays out glyphs.
func pagesOf(t *testing.T, path string) []string {
	t.Helper()
	f, r, err := pdf.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var out []string
	for i := 1; i <= r.NumPage(); i++ {
		text, err := r.Page(i).GetPlainText(nil)
		require.NoError(t, err)
		out = append(out, text)
	}
	return out
}

func TestExtractPDF(t *testing.T) {
	path := testdocs.WriteFile(t, "resume.pdf", testdocs.PDF("Jane Doe", "Software Engineer"))

	doc, err := New().Extract(path, "pdf")
	require.NoError(t, err)

	pages := pagesOf(t, path)
	require.Len(t, pages, 2)
	assert.Equal(t, pages[0]+"\n"+pages[1]+"\n", doc.RawText)
	assert.Contains(t, doc.RawText, "Jane Doe")
	assert.Less(t, strings.Index(doc.RawText, "Jane Doe"), strings.Index(doc.RawText, "Software Engineer"))
	assert.True(t, strings.HasSuffix(doc.RawText, "\n"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, info.Size(), doc.SizeBytes)
	assert.Equal(t, path, doc.SourcePath)
}

func TestExtractDOCX(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		data []byte
		want string
	}{
		{
			name: "paragraphs in order",
			ext:  "docx",
			data: testdocs.DOCX("Jane Doe", "Software Engineer", "Python & Go"),
			want: "Jane Doe\nSoftware Engineer\nPython & Go\n",
		},
		{
			name: "runs joined and blank paragraph kept",
			ext:  ".DOCX",
			data: testdocs.DOCXBody(`<w:p><w:r><w:t>Jane</w:t></w:r><w:r><w:t xml:space="preserve"> Doe</w:t></w:r></w:p>` +
				`<w:p/>` +
				`<w:p><w:r><w:t>Skills:</w:t><w:tab/><w:t>Go</w:t></w:r></w:p>`),
			want: "Jane Doe\n\nSkills:\tGo\n",
		},
		{
			name: "doc extension read as word package",
			ext:  "doc",
			data: testdocs.DOCX("Summary"),
			want: "Summary\n",
		},
		{
			name: "table cells are paragraphs",
			ext:  "docx",
			data: testdocs.DOCXBody(`<w:tbl><w:tr><w:tc><w:p><w:r><w:t>Go</w:t></w:r></w:p></w:tc>` +
				`<w:tc><w:p><w:r><w:t>5 years</w:t></w:r></w:p></w:tc></w:tr></w:tbl>`),
			want: "Go\n5 years\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testdocs.WriteFile(t, "resume.docx", tt.data)

			doc, err := New().Extract(path, tt.ext)
			require.NoError(t, err)
			assert.Equal(t, tt.want, doc.RawText)
			assert.Equal(t, int64(len(tt.data)), doc.SizeBytes)
		})
	}
}

func TestExtractUnsupportedDoesNotOpen(t *testing.T) {
	// the path does not exist: an open attempt would surface as a parse failure
	path := filepath.Join(t.TempDir(), "missing.txt")

	doc, err := New().Extract(path, ".txt")
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.NotErrorIs(t, err, ErrParseFailure)
}

func TestExtractEmptyContent(t *testing.T) {
	tests := []struct {
		name string
		file string
		ext  string
		data []byte
	}{
		{name: "whitespace docx", file: "blank.docx", ext: "docx", data: testdocs.DOCX("   ", "\t")},
		{name: "whitespace pdf", file: "blank.pdf", ext: "pdf", data: testdocs.PDF(" ")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testdocs.WriteFile(t, tt.file, tt.data)

			doc, err := New().Extract(path, tt.ext)
			assert.Nil(t, doc)
			assert.ErrorIs(t, err, ErrEmptyContent)
		})
	}
}

func TestExtractCorruptInput(t *testing.T) {
	tests := []struct {
		name string
		file string
		ext  string
		data []byte
	}{
		{name: "garbage pdf", file: "bad.pdf", ext: "pdf", data: []byte("this is not a pdf")},
		{name: "truncated pdf", file: "cut.pdf", ext: "pdf", data: testdocs.PDF("Jane Doe")[:40]},
		{name: "garbage docx", file: "bad.docx", ext: "docx", data: []byte("PK\x03\x04 broken")},
		{name: "legacy binary doc", file: "old.doc", ext: "doc", data: []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testdocs.WriteFile(t, tt.file, tt.data)

			var (
				doc *ParsedDocument
				err error
			)
			require.NotPanics(t, func() { doc, err = New().Extract(path, tt.ext) })
			assert.Nil(t, doc)
			assert.ErrorIs(t, err, ErrParseFailure)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, path, perr.Path)
			assert.Equal(t, tt.ext, perr.Format)
		})
	}
}

func TestExtractMissingFile(t *testing.T) {
	doc, err := New().Extract(filepath.Join(t.TempDir(), "gone.pdf"), "pdf")
	assert.Nil(t, doc)
	assert.ErrorIs(t, err, ErrParseFailure)
}

func TestIsSupportedFormat(t *testing.T) {
	for ext, want := range map[string]bool{
		"pdf": true, ".PDF": true, "docx": true, ".doc": true,
		"txt": false, "": false, ".odt": false,
	} {
		assert.Equal(t, want, IsSupportedFormat(ext), ext)
	}
}

func TestParagraphTextRequiresBody(t *testing.T) {
	_, err := paragraphText(`<w:document xmlns:w="urn:w"></w:document>`)
	assert.Error(t, err)

	_, err = paragraphText(`<w:document><w:body><w:p>`)
	assert.Error(t, err)
}

func TestParagraphTextSkipsFallback(t *testing.T) {
	const doc = `<w:document xmlns:w="urn:w" xmlns:mc="urn:mc"><w:body>` +
		`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>` +
		`<w:p><w:r><mc:AlternateContent>` +
		`<mc:Choice Requires="wps"><w:txbxContent><w:p><w:r><w:t>Go Engineer</w:t></w:r></w:p></w:txbxContent></mc:Choice>` +
		`<mc:Fallback><w:pict><w:txbxContent><w:p><w:r><w:t>Go Engineer</w:t></w:r></w:p></w:txbxContent></w:pict></mc:Fallback>` +
		`</mc:AlternateContent></w:r></w:p>` +
		`<w:p><w:r><w:t>Berlin</w:t></w:r></w:p>` +
		`</w:body></w:document>`

	got, err := paragraphText(doc)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nGo Engineer\nBerlin\n", got)
}
