// Package office turns the two supported office families (Word .docx,
// Excel .xlsx) into print-oriented HTML and renders that HTML into the
// paginated output format through a headless Chromium.
//
// Conversion aims for readable, approximately paginated output, not
// layout fidelity: paragraphs, headings, explicit page breaks, tables and
// sheet grids survive; everything else is dropped.
package office

import (
	"archive/zip"
	"bytes"
	"fmt"
	"html"
	"strings"
)

// pageCSS styles the generated document for print. Chromium honors
// @page when PreferCSSPageSize is off and the print call supplies the
// paper size, so the two must agree with the rasterizer configuration.
const pageCSS = `
body { font: 11pt/1.5 serif; color: #111; }
h1 { font-size: 18pt; margin: 0 0 .6em; }
h2 { font-size: 15pt; margin: 1em 0 .5em; }
h3, h4, h5, h6 { font-size: 12pt; margin: .8em 0 .4em; }
p { margin: 0 0 .55em; }
table { border-collapse: collapse; width: 100%; margin: 0 0 1em; }
td, th { border: 1px solid #999; padding: 3px 6px; font-size: 9pt; vertical-align: top; }
.page-break { page-break-after: always; }
`

// wrapHTML builds the full document around a rendered body.
func wrapHTML(title, body string) string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html><html><head><meta charset=\"utf-8\"><title>")
	sb.WriteString(html.EscapeString(title))
	sb.WriteString("</title><style>")
	sb.WriteString(pageCSS)
	sb.WriteString("</style></head><body>")
	sb.WriteString(body)
	sb.WriteString("</body></html>")
	return sb.String()
}

// openArchivePart locates one file inside an OPC container (both office
// families are zip archives) and returns its contents.
func openArchivePart(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, fmt.Errorf("open %s: %w", name, err)
			}
			defer rc.Close()
			var buf bytes.Buffer
			if _, err := buf.ReadFrom(rc); err != nil {
				return nil, fmt.Errorf("read %s: %w", name, err)
			}
			return buf.Bytes(), nil
		}
	}
	return nil, fmt.Errorf("%s not found in archive", name)
}

// newArchiveReader opens the raw bytes as an OPC zip container.
func newArchiveReader(data []byte) (*zip.Reader, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	return r, nil
}
