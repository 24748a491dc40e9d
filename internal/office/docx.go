package office

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"html"
	"strings"
)

// DocxHTML converts a .docx buffer into print HTML by walking
// word/document.xml. Paragraphs, heading styles, explicit page breaks and
// simple tables are preserved; run formatting is not.
func DocxHTML(data []byte) (string, error) {
	r, err := newArchiveReader(data)
	if err != nil {
		return "", err
	}
	doc, err := openArchivePart(r, "word/document.xml")
	if err != nil {
		return "", err
	}

	body, title, err := docxBody(doc)
	if err != nil {
		return "", err
	}
	if title == "" {
		title = "Documento"
	}
	return wrapHTML(title, body), nil
}

// docxBody walks the WordprocessingML token stream. Tables nest
// paragraphs inside cells, so paragraph text is routed into the current
// cell while a w:tbl is open and into the body otherwise.
func docxBody(doc []byte) (body, title string, err error) {
	decoder := xml.NewDecoder(bytes.NewReader(doc))

	var sb strings.Builder
	var paragraph strings.Builder
	var cell strings.Builder
	var row []string

	inParagraph := false
	inTable := false
	inCell := false
	pendingBreak := false
	paragraphStyle := ""

	flushParagraph := func() {
		text := strings.TrimSpace(paragraph.String())
		paragraph.Reset()
		if inCell {
			if cell.Len() > 0 && text != "" {
				cell.WriteByte(' ')
			}
			cell.WriteString(text)
			return
		}
		if text != "" {
			if level := docxHeadingLevel(paragraphStyle); level > 0 {
				if title == "" {
					title = text
				}
				fmt.Fprintf(&sb, "<h%d>%s</h%d>", level, html.EscapeString(text), level)
			} else {
				sb.WriteString("<p>")
				sb.WriteString(html.EscapeString(text))
				sb.WriteString("</p>")
			}
		}
		if pendingBreak {
			sb.WriteString(`<div class="page-break"></div>`)
			pendingBreak = false
		}
	}

	for {
		tok, terr := decoder.Token()
		if terr != nil {
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tbl":
				inTable = true
				sb.WriteString("<table>")
			case "tr":
				if inTable {
					row = row[:0]
				}
			case "tc":
				if inTable {
					inCell = true
					cell.Reset()
				}
			case "p":
				inParagraph = true
				paragraph.Reset()
				paragraphStyle = ""
			case "pStyle":
				if inParagraph {
					for _, attr := range t.Attr {
						if attr.Name.Local == "val" {
							paragraphStyle = attr.Value
						}
					}
				}
			case "br":
				for _, attr := range t.Attr {
					if attr.Name.Local == "type" && attr.Value == "page" {
						pendingBreak = true
					}
				}
			case "tab":
				if inParagraph {
					paragraph.WriteByte(' ')
				}
			}

		case xml.CharData:
			if inParagraph {
				paragraph.Write(t)
			}

		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				if inParagraph {
					inParagraph = false
					flushParagraph()
				}
			case "tc":
				if inCell {
					inCell = false
					row = append(row, cell.String())
				}
			case "tr":
				if inTable {
					sb.WriteString("<tr>")
					for _, c := range row {
						sb.WriteString("<td>")
						sb.WriteString(html.EscapeString(c))
						sb.WriteString("</td>")
					}
					sb.WriteString("</tr>")
				}
			case "tbl":
				if inTable {
					inTable = false
					sb.WriteString("</table>")
				}
			}
		}
	}

	if sb.Len() == 0 {
		return "", "", fmt.Errorf("document has no readable content")
	}
	return sb.String(), title, nil
}

// docxHeadingLevel maps a paragraph style name to a heading level,
// 0 for body text. Handles localized style prefixes the same way the
// common Word locales emit them.
func docxHeadingLevel(style string) int {
	lower := strings.ToLower(style)
	if lower == "title" {
		return 1
	}
	if lower == "subtitle" {
		return 2
	}
	for _, prefix := range []string{"heading", "titre", "titulo", "título"} {
		if strings.HasPrefix(lower, prefix) {
			rest := lower[len(prefix):]
			if len(rest) == 1 && rest[0] >= '1' && rest[0] <= '6' {
				return int(rest[0] - '0')
			}
		}
	}
	return 0
}
