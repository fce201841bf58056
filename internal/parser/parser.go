package parser

import (
	"archive/zip"
	"bytes"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const (
	mimePDF  = "application/pdf"
	mimeDOC  = "application/msword"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeTXT  = "text/plain"

	// MaxFileBytes is the hard upload ceiling.
	MaxFileBytes = 10 << 20
	// minCleanedChars rejects documents that cleaned down to nothing useful.
	minCleanedChars = 50
)

// Metadata describes the parsed document.
type Metadata struct {
	PageCount        int    `json:"pageCount,omitempty"`
	WordCount        int    `json:"wordCount"`
	CharacterCount   int    `json:"characterCount"`
	FileSizeBytes    int64  `json:"fileSizeBytes"`
	FileName         string `json:"fileName"`
	DeclaredMimeType string `json:"declaredMimeType"`
	ParseMethod      string `json:"parseMethod"`
}

// ParsedDocument is the normalized output of Parse. It is immutable after creation.
type ParsedDocument struct {
	Text     string            `json:"text"`
	Metadata Metadata          `json:"metadata"`
	Sections map[string]string `json:"sections,omitempty"`
}

// Parse converts raw file bytes into normalized plain text plus metadata and
// best-effort section segmentation. Dispatch is by MIME type first, file
// extension second.
func Parse(data []byte, fileName, mimeHint string) (ParsedDocument, error) {
	if int64(len(data)) > MaxFileBytes {
		return ParsedDocument{}, newParseError(CodeFileTooLarge, "file exceeds the 10MB limit", "compress the document or export a smaller version")
	}

	method := detectMethod(data, fileName, mimeHint)

	var (
		text      string
		pageCount int
		err       error
	)
	switch method {
	case "pdf":
		text, pageCount, err = extractPDF(data)
	case "docx":
		text, err = extractDOCX(data)
	case "doc", "txt":
		text = string(bytes.ToValidUTF8(data, []byte("")))
	default:
		return ParsedDocument{}, newParseError(CodeUnsupportedFormat, "unsupported file format: "+method, "upload a PDF, DOCX, or plain-text file")
	}
	if err != nil {
		return ParsedDocument{}, err
	}

	cleaned := CleanText(text)
	if utf8.RuneCountInString(cleaned) < minCleanedChars {
		return ParsedDocument{}, newParseError(CodeInsufficientContent, "document contains too little readable text",
			"the file may be image-based or password-protected; convert it to text or retype the content")
	}

	marked := MarkSectionHeaders(cleaned)
	doc := ParsedDocument{
		Text: marked,
		Metadata: Metadata{
			PageCount:        pageCount,
			WordCount:        len(strings.Fields(cleaned)),
			CharacterCount:   utf8.RuneCountInString(cleaned),
			FileSizeBytes:    int64(len(data)),
			FileName:         fileName,
			DeclaredMimeType: mimeHint,
			ParseMethod:      method,
		},
		Sections: SplitSections(marked),
	}
	return doc, nil
}

// detectMethod resolves the parse method from the declared MIME type, falling
// back to zip sniffing and the file extension.
func detectMethod(data []byte, fileName, mimeHint string) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeHint, ";")[0]))
	switch clean {
	case mimePDF:
		return "pdf"
	case mimeDOCX:
		return "docx"
	case mimeDOC:
		return "doc"
	case mimeTXT, "text/markdown":
		return "txt"
	case "application/zip", "application/octet-stream", "":
		// fall through to content and extension checks
	default:
		if strings.HasPrefix(clean, "text/") {
			return "txt"
		}
		return "unknown"
	}

	if bytes.HasPrefix(data, []byte("%PDF-")) {
		return "pdf"
	}
	if isDOCXArchive(data) {
		return "docx"
	}

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return "pdf"
	case ".docx":
		return "docx"
	case ".doc":
		return "doc"
	case ".txt", ".text", ".md":
		return "txt"
	}
	return "unknown"
}

func isDOCXArchive(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return false
	}
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
			return true
		}
	}
	return false
}
