package documents

import (
	"bytes"
	"context"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"gradmatch-backend/internal/parser"
	"gradmatch-backend/internal/shared/storage/object"
	"gradmatch-backend/internal/validation"
)

// Service contains business logic for documents.
type Service struct {
	Store object.ObjectStore
	Repo  DocumentsRepo
}

// UploadResult bundles the stored document with the full parse output, which
// the HTTP layer returns but never persists in the row.
type UploadResult struct {
	Document   Document
	Parsed     parser.ParsedDocument
	Validation validation.Result
}

// Upload parses and validates the file, stores the raw bytes plus the
// extracted text, and records the document. Parse failures are returned as
// *parser.ParseError so the handler can map them onto status codes.
func (s *Service) Upload(ctx context.Context, userID, fileName, mimeHint string, data []byte) (UploadResult, error) {
	if fileName == "" || len(data) == 0 {
		return UploadResult{}, ErrInvalidInput
	}

	parsed, err := parser.Parse(data, fileName, mimeHint)
	if err != nil {
		return UploadResult{}, err
	}
	result := validation.Validate(parsed.Text)

	storageKey, size, mimeType, err := s.Store.Save(ctx, userID, fileName, bytes.NewReader(data))
	if err != nil {
		return UploadResult{}, err
	}
	textKey, _, _, err := s.Store.Save(ctx, userID, fileName+".extracted.txt", strings.NewReader(parsed.Text))
	if err != nil {
		return UploadResult{}, err
	}

	doc := Document{
		ID:                   uuid.NewString(),
		UserID:               userID,
		FileName:             fileName,
		MimeType:             mimeType,
		SizeBytes:            size,
		StorageKey:           storageKey,
		ExtractedTextKey:     textKey,
		ParseMethod:          parsed.Metadata.ParseMethod,
		PageCount:            parsed.Metadata.PageCount,
		WordCount:            parsed.Metadata.WordCount,
		IsValid:              result.IsValid,
		ValidationConfidence: result.Confidence,
		ValidationReasons:    result.Reasons,
		CreatedAt:            time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		return UploadResult{}, err
	}

	return UploadResult{Document: doc, Parsed: parsed, Validation: result}, nil
}

// Get returns a document scoped to its owner.
func (s *Service) Get(ctx context.Context, userID, documentID string) (Document, error) {
	if userID == "" || documentID == "" {
		return Document{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, documentID)
}

// List returns a user's documents, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Document, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// ExtractedText loads the stored extracted text for downstream matching.
func (s *Service) ExtractedText(ctx context.Context, doc Document) (string, error) {
	if doc.ExtractedTextKey == "" {
		return "", ErrNotFound
	}
	rc, err := s.Store.Open(ctx, doc.ExtractedTextKey)
	if err != nil {
		return "", err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
