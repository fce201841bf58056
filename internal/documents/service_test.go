package documents

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gradmatch-backend/internal/parser"
	"gradmatch-backend/internal/shared/storage/object/local"
)

func TestUploadStoresExtractedText(t *testing.T) {
	svc := &Service{
		Store: local.New(t.TempDir()),
		Repo:  NewMemoryRepo(),
	}

	result, err := svc.Upload(context.Background(), "guest:u1", "cv.txt", "text/plain", []byte(sampleCV))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if result.Document.WordCount == 0 {
		t.Fatal("expected a non-zero word count")
	}

	text, err := svc.ExtractedText(context.Background(), result.Document)
	if err != nil {
		t.Fatalf("extracted text: %v", err)
	}
	if !strings.Contains(text, "Acme Corp") {
		t.Fatalf("extracted text missing content: %q", text)
	}
}

func TestUploadSurfacesParseErrors(t *testing.T) {
	svc := &Service{
		Store: local.New(t.TempDir()),
		Repo:  NewMemoryRepo(),
	}

	_, err := svc.Upload(context.Background(), "guest:u1", "cv.exe", "application/x-executable", []byte(strings.Repeat("x", 100)))
	var parseErr *parser.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected a parse error, got %v", err)
	}
	if parseErr.Code != parser.CodeUnsupportedFormat {
		t.Fatalf("code = %q, want %q", parseErr.Code, parser.CodeUnsupportedFormat)
	}
}

func TestExtractedTextMissingKey(t *testing.T) {
	svc := &Service{Store: local.New(t.TempDir()), Repo: NewMemoryRepo()}
	if _, err := svc.ExtractedText(context.Background(), Document{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
