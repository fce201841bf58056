package documents

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"gradmatch-backend/internal/shared/server/middleware"
	"gradmatch-backend/internal/shared/storage/object/local"
)

const sampleCV = `Jane Doe
jane@example.edu | 555-0100

EDUCATION:
Master of Science, Computer Science, State University, 2021-2023, GPA 3.9

EXPERIENCE:
Software Engineer, Acme Corp, Jun 2023 - present
- Developed data pipelines in Python and SQL
- Led a team of 4 engineers

SKILLS:
Python, Java, SQL, AWS, Docker
`

func setupDocumentsRouter(t *testing.T) (*gin.Engine, *MemoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := NewMemoryRepo()
	svc := &Service{
		Store: local.New(t.TempDir()),
		Repo:  repo,
	}
	handler := NewHandler(svc, 10<<20)

	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(middleware.Identity())
	handler.RegisterRoutes(api)
	return router, repo
}

func uploadRequest(t *testing.T, fileName, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-Guest-Id", "test-guest")
	return req
}

func TestUploadParsesAndValidates(t *testing.T) {
	router, repo := setupDocumentsRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, uploadRequest(t, "cv.txt", sampleCV))

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created DocumentResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.DocumentID == "" {
		t.Fatal("expected documentId")
	}
	if created.ParseMethod != "txt" {
		t.Fatalf("parseMethod = %q, want txt", created.ParseMethod)
	}
	if !created.Validation.IsValid {
		t.Fatalf("expected a valid CV, got %+v", created.Validation)
	}

	stored, err := repo.GetByID(context.Background(), "guest:test-guest", created.DocumentID)
	if err != nil {
		t.Fatalf("stored document missing: %v", err)
	}
	if stored.ExtractedTextKey == "" {
		t.Fatal("extracted text not stored")
	}
}

func TestUploadRejectsUnsupportedFormat(t *testing.T) {
	router, _ := setupDocumentsRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, uploadRequest(t, "cv.xlsx", strings.Repeat("x", 200)))

	if resp.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d", resp.Code)
	}
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Error.Code != "UNSUPPORTED_FORMAT" {
		t.Fatalf("code = %q, want UNSUPPORTED_FORMAT", body.Error.Code)
	}
}

func TestUploadRejectsTinyDocument(t *testing.T) {
	router, _ := setupDocumentsRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, uploadRequest(t, "cv.txt", "too short"))

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "INSUFFICIENT_CONTENT") {
		t.Fatalf("expected INSUFFICIENT_CONTENT, got %s", resp.Body.String())
	}
}

func TestGetDocumentScopedToOwner(t *testing.T) {
	router, repo := setupDocumentsRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, uploadRequest(t, "cv.txt", sampleCV))
	var created DocumentResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/api/v1/documents/"+created.DocumentID, nil)
	req2.Header.Set("X-Guest-Id", "someone-else")
	resp2 := httptest.NewRecorder()
	router.ServeHTTP(resp2, req2)
	if resp2.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign document, got %d", resp2.Code)
	}

	if _, err := repo.GetByID(context.Background(), "guest:test-guest", created.DocumentID); err != nil {
		t.Fatalf("owner lookup failed: %v", err)
	}
}
