package parser

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/nguyenthenguyen/docx"
)

// htmlFallbackThreshold triggers the richer HTML-derived extraction when the
// raw pass yields almost nothing (e.g. heavily styled documents).
const htmlFallbackThreshold = 100

// extractDOCX extracts raw text from the document body. If the raw pass yields
// under htmlFallbackThreshold characters, the text is re-derived from an HTML
// rendering of the body so lists and paragraph breaks survive.
func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", newParseError(CodeDOCXParseFailed, "empty DOCX payload", "re-save and upload the document again")
	}
	reader, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", newParseError(CodeDOCXParseFailed, "could not open DOCX: "+err.Error(),
			"the file may be corrupt; re-save it from your word processor")
	}
	defer reader.Close()

	raw := reader.Editable().GetContent()

	text := docxCharData(raw)
	if utf8.RuneCountInString(strings.TrimSpace(text)) >= htmlFallbackThreshold {
		return text, nil
	}

	richer, err := docxTextViaHTML(raw)
	if err == nil && utf8.RuneCountInString(strings.TrimSpace(richer)) > utf8.RuneCountInString(strings.TrimSpace(text)) {
		return richer, nil
	}
	return text, nil
}

// docxCharData walks the document XML and collects character data, inserting
// newlines at paragraph and break boundaries.
func docxCharData(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var b strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return b.String()
		}
		switch t := tok.(type) {
		case xml.CharData:
			b.WriteString(string(t))
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if b.Len() > 0 {
					b.WriteString("\n")
				}
			}
		case xml.StartElement:
			if t.Name.Local == "tab" {
				b.WriteString(" ")
			}
		}
	}
	return strings.TrimSpace(b.String())
}

// docxTextViaHTML converts the body XML into a small HTML document and walks
// it with goquery, mapping lists, bold/italic runs, and paragraph breaks to
// plain-text equivalents.
func docxTextViaHTML(raw string) (string, error) {
	html := docxXMLToHTML(raw)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	doc.Find("body").Children().Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return
		}
		if goquery.NodeName(sel) == "li" {
			b.WriteString("- ")
		}
		b.WriteString(text)
		b.WriteString("\n")
	})
	return strings.TrimSpace(b.String()), nil
}

// docxXMLToHTML maps the WordprocessingML constructs we care about onto
// minimal HTML: paragraphs, list items, and emphasis runs.
func docxXMLToHTML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var b strings.Builder
	b.WriteString("<html><body>")

	inParagraph := false
	paragraphIsList := false
	var paragraph strings.Builder
	bold := false
	italic := false

	flush := func() {
		if !inParagraph {
			return
		}
		content := strings.TrimSpace(paragraph.String())
		if content != "" {
			if paragraphIsList {
				b.WriteString("<li>" + content + "</li>")
			} else {
				b.WriteString("<p>" + content + "</p>")
			}
		}
		paragraph.Reset()
		inParagraph = false
		paragraphIsList = false
	}

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				flush()
				inParagraph = true
			case "numPr":
				paragraphIsList = true
			case "b":
				bold = true
			case "i":
				italic = true
			case "br":
				paragraph.WriteString("<br/>")
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "p":
				flush()
			case "r":
				bold = false
				italic = false
			}
		case xml.CharData:
			text := string(t)
			if text == "" {
				continue
			}
			var esc bytes.Buffer
			xml.EscapeText(&esc, []byte(text))
			text = esc.String()
			if bold {
				text = "<b>" + text + "</b>"
			}
			if italic {
				text = "<i>" + text + "</i>"
			}
			if inParagraph {
				paragraph.WriteString(text)
			}
		}
	}
	flush()
	b.WriteString("</body></html>")
	return b.String()
}
