package profile

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"gradmatch-backend/internal/shared/server/middleware"
)

func setupProfileRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	handler := &Handler{Svc: &Service{Repo: NewMemoryRepo()}}
	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(middleware.Identity())
	handler.RegisterRoutes(api)
	return router
}

func doProfileRequest(router *gin.Engine, method, guestID, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, "/api/v1/profile", reader)
	req.Header.Set("X-Guest-Id", guestID)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestPutThenGetProfile(t *testing.T) {
	router := setupProfileRouter(t)

	payload := `{
		"gpa": 3.7,
		"testScores": {"gre": 325, " toefl ": 108},
		"researchInterests": ["machine learning", " NLP "],
		"targetDegree": "MS in Computer Science",
		"preferences": {"countries": ["USA", "Canada"], "maxTuition": 60000}
	}`
	resp := doProfileRequest(router, http.MethodPut, "g1", payload)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = doProfileRequest(router, http.MethodGet, "g1", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 on get, got %d", resp.Code)
	}

	var got ProfileResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Profile.GPA == nil || *got.Profile.GPA != 3.7 {
		t.Fatalf("gpa = %v, want 3.7", got.Profile.GPA)
	}
	if _, ok := got.Profile.TestScores["GRE"]; !ok {
		t.Fatalf("score names not normalized: %v", got.Profile.TestScores)
	}
	if _, ok := got.Profile.TestScores["TOEFL"]; !ok {
		t.Fatalf("score names not trimmed: %v", got.Profile.TestScores)
	}
	if len(got.Profile.ResearchInterests) != 2 || got.Profile.ResearchInterests[1] != "NLP" {
		t.Fatalf("interests not trimmed: %v", got.Profile.ResearchInterests)
	}
	if got.UpdatedAt.IsZero() {
		t.Fatal("expected updatedAt to be set")
	}
}

func TestGetProfileNotFound(t *testing.T) {
	router := setupProfileRouter(t)

	resp := doProfileRequest(router, http.MethodGet, "nobody", "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestPutProfileValidation(t *testing.T) {
	router := setupProfileRouter(t)

	cases := []struct {
		name string
		body string
	}{
		{"gpa out of range", `{"gpa": 9.5}`},
		{"negative score", `{"testScores": {"GRE": -10}}`},
		{"negative tuition", `{"preferences": {"maxTuition": -1}}`},
		{"admission rate above one", `{"preferences": {"minAdmissionRate": 1.5}}`},
		{"malformed json", `{"gpa": `},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doProfileRequest(router, http.MethodPut, "g2", tc.body)
			if resp.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", resp.Code, resp.Body.String())
			}
		})
	}
}

func TestProfilesScopedPerUser(t *testing.T) {
	router := setupProfileRouter(t)

	resp := doProfileRequest(router, http.MethodPut, "alice", `{"gpa": 3.2}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	resp = doProfileRequest(router, http.MethodGet, "bob", "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for another user, got %d", resp.Code)
	}
}
