package documents

import "time"

// Document is an uploaded CV owned by a user, together with what parsing and
// validation made of it. Raw bytes and extracted text live in object storage;
// the row holds the keys.
type Document struct {
	ID               string
	UserID           string
	FileName         string
	MimeType         string
	SizeBytes        int64
	StorageProvider  string
	StorageKey       string
	ExtractedTextKey string

	ParseMethod          string
	PageCount            int
	WordCount            int
	IsValid              bool
	ValidationConfidence int
	ValidationReasons    []string

	CreatedAt time.Time
}
