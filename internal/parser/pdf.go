package parser

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// lineTolerance groups text fragments whose baselines are within this many
// PDF units into the same visual line.
const lineTolerance = 2.0

// extractPDF pulls text items per page and reorders them by vertical then
// horizontal position so multi-column layouts read top-to-bottom. Pages that
// fail individually are flagged inline instead of aborting the document.
func extractPDF(data []byte) (string, int, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, newParseError(CodePDFParseFailed, "could not open PDF: "+err.Error(),
			"the file may be corrupt or password-protected; re-export it without protection")
	}

	total := reader.NumPage()
	var b strings.Builder
	for i := 1; i <= total; i++ {
		if i > 1 {
			b.WriteString("\n\n")
		}
		b.WriteString(fmt.Sprintf("--- page %d ---\n", i))

		text, pageErr := pdfPageText(reader, i)
		if pageErr != nil {
			b.WriteString(fmt.Sprintf("[page %d unreadable: %s]", i, pageErr))
			continue
		}
		b.WriteString(text)
	}

	out := b.String()
	if strings.TrimSpace(stripPageMarkers(out)) == "" {
		return "", total, newParseError(CodePDFParseFailed, "PDF contains no extractable text",
			"this looks like an image-based PDF; run OCR or retype the content")
	}
	return out, total, nil
}

func pdfPageText(reader *pdf.Reader, pageNum int) (text string, err error) {
	// The content stream decoder panics on some malformed pages.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("content decode: %v", r)
		}
	}()

	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return "", fmt.Errorf("empty page object")
	}

	content := page.Content()
	items := append([]pdf.Text(nil), content.Text...)

	// PDF Y grows upward, so higher Y means earlier in reading order.
	sort.SliceStable(items, func(i, j int) bool {
		if diff := items[i].Y - items[j].Y; diff > lineTolerance || diff < -lineTolerance {
			return items[i].Y > items[j].Y
		}
		return items[i].X < items[j].X
	})

	var b strings.Builder
	lastY := 0.0
	lastEndedWithSpace := false
	for i, item := range items {
		if i > 0 {
			if lastY-item.Y > lineTolerance {
				b.WriteString("\n")
			} else if !lastEndedWithSpace && !strings.HasPrefix(item.S, " ") {
				b.WriteString(" ")
			}
		}
		b.WriteString(item.S)
		lastY = item.Y
		lastEndedWithSpace = strings.HasSuffix(item.S, " ")
	}
	return b.String(), nil
}

func stripPageMarkers(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(line, "--- page ") && strings.HasSuffix(line, " ---") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
