package office

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"html"
	"sort"
	"strconv"
	"strings"
)

// Rendering caps: a sheet larger than this is truncated rather than
// ballooning the paginated output.
const (
	xlsxMaxRows = 500
	xlsxMaxCols = 64
)

// XlsxHTML converts an .xlsx buffer into print HTML, one table per
// worksheet with the sheet name as its heading and a page break between
// sheets. Values only; formulas surface as their cached results.
func XlsxHTML(data []byte) (string, error) {
	r, err := newArchiveReader(data)
	if err != nil {
		return "", err
	}

	shared, err := xlsxSharedStrings(r)
	if err != nil {
		return "", err
	}
	names := xlsxSheetNames(r)

	// Worksheet parts follow the xl/worksheets/sheetN.xml layout every
	// mainstream producer emits; order by N and pair names by position.
	var parts []string
	for _, f := range r.File {
		if strings.HasPrefix(f.Name, "xl/worksheets/sheet") && strings.HasSuffix(f.Name, ".xml") {
			parts = append(parts, f.Name)
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("workbook has no worksheets")
	}
	sort.Slice(parts, func(i, j int) bool { return xlsxSheetNumber(parts[i]) < xlsxSheetNumber(parts[j]) })

	var sb strings.Builder
	title := "Hoja de cálculo"
	if len(names) > 0 {
		title = names[0]
	}

	for i, part := range parts {
		content, err := openArchivePart(r, part)
		if err != nil {
			return "", err
		}
		name := fmt.Sprintf("Hoja %d", i+1)
		if i < len(names) {
			name = names[i]
		}
		if i > 0 {
			sb.WriteString(`<div class="page-break"></div>`)
		}
		sb.WriteString("<h2>")
		sb.WriteString(html.EscapeString(name))
		sb.WriteString("</h2>")
		if err := xlsxSheetTable(&sb, content, shared); err != nil {
			return "", fmt.Errorf("%s: %w", part, err)
		}
	}
	return wrapHTML(title, sb.String()), nil
}

func xlsxSheetNumber(part string) int {
	s := strings.TrimSuffix(strings.TrimPrefix(part, "xl/worksheets/sheet"), ".xml")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 1 << 30
	}
	return n
}

// xlsxSheetNames reads the workbook's sheet names in declaration order.
func xlsxSheetNames(r *zip.Reader) []string {
	data, err := openArchivePart(r, "xl/workbook.xml")
	if err != nil {
		return nil
	}
	decoder := xml.NewDecoder(bytes.NewReader(data))
	var names []string
	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		if t, ok := tok.(xml.StartElement); ok && t.Name.Local == "sheet" {
			for _, attr := range t.Attr {
				if attr.Name.Local == "name" {
					names = append(names, attr.Value)
				}
			}
		}
	}
	return names
}

// xlsxSharedStrings loads the shared string table, concatenating rich-text
// runs within each entry. A workbook without one is fine.
func xlsxSharedStrings(r *zip.Reader) ([]string, error) {
	data, err := openArchivePart(r, "xl/sharedStrings.xml")
	if err != nil {
		return nil, nil
	}

	decoder := xml.NewDecoder(bytes.NewReader(data))
	var shared []string
	var current strings.Builder
	inEntry := false
	inText := false

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "si":
				inEntry = true
				current.Reset()
			case "t":
				inText = inEntry
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "si":
				if inEntry {
					shared = append(shared, current.String())
					inEntry = false
				}
			}
		}
	}
	return shared, nil
}

// xlsxSheetTable renders one worksheet's cell grid as an HTML table,
// keeping column positions by padding the gaps the sparse format leaves.
func xlsxSheetTable(sb *strings.Builder, content []byte, shared []string) error {
	decoder := xml.NewDecoder(bytes.NewReader(content))

	sb.WriteString("<table>")
	rows := 0
	truncated := false

	var cells []string
	var value strings.Builder
	cellType := ""
	cellCol := 0
	inValue := false
	inRow := false

	flushCell := func() {
		text := value.String()
		value.Reset()
		switch cellType {
		case "s":
			if idx, err := strconv.Atoi(strings.TrimSpace(text)); err == nil && idx >= 0 && idx < len(shared) {
				text = shared[idx]
			}
		case "b":
			if strings.TrimSpace(text) == "1" {
				text = "TRUE"
			} else {
				text = "FALSE"
			}
		}
		for len(cells) < cellCol && len(cells) < xlsxMaxCols {
			cells = append(cells, "")
		}
		if len(cells) < xlsxMaxCols {
			cells = append(cells, text)
		}
	}

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "row":
				inRow = true
				cells = cells[:0]
			case "c":
				if !inRow {
					continue
				}
				cellType = ""
				cellCol = len(cells)
				for _, attr := range t.Attr {
					switch attr.Name.Local {
					case "t":
						cellType = attr.Value
					case "r":
						cellCol = xlsxColumnIndex(attr.Value)
					}
				}
			case "v", "t":
				inValue = inRow
			}
		case xml.CharData:
			if inValue {
				value.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "v", "t":
				if inValue {
					inValue = false
				}
			case "c":
				if inRow {
					flushCell()
				}
			case "row":
				inRow = false
				if rows >= xlsxMaxRows {
					truncated = true
					continue
				}
				rows++
				sb.WriteString("<tr>")
				for _, c := range cells {
					sb.WriteString("<td>")
					sb.WriteString(html.EscapeString(c))
					sb.WriteString("</td>")
				}
				sb.WriteString("</tr>")
			}
		}
	}

	sb.WriteString("</table>")
	if truncated {
		sb.WriteString("<p>…</p>")
	}
	return nil
}

// xlsxColumnIndex converts a cell reference like "C7" to its 0-based
// column index.
func xlsxColumnIndex(ref string) int {
	col := 0
	for _, r := range ref {
		if r < 'A' || r > 'Z' {
			break
		}
		col = col*26 + int(r-'A') + 1
	}
	if col == 0 {
		return 0
	}
	return col - 1
}
