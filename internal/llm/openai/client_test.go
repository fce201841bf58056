package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"gradmatch-backend/internal/llm"
)

func TestRecommendSendsPromptAndReturnsRawText(t *testing.T) {
	oldURL := apiURL
	t.Cleanup(func() { apiURL = oldURL })

	var bodyMu sync.Mutex
	var lastBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var payload map[string]any
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		bodyMu.Lock()
		lastBody = payload
		bodyMu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"[{\"universityName\":\"X\"}]"}}]}`))
	}))
	defer server.Close()
	apiURL = server.URL

	client, err := NewClient("test-key", "gpt-4o-mini")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	got, err := client.Recommend(context.Background(), llm.RecommendInput{
		CandidateSummary: "GPA 3.8, interests: robotics",
		ProgramCatalog:   "1. MS Robotics at Test U",
	})
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if !strings.Contains(got, `"universityName"`) {
		t.Fatalf("raw text not returned: %q", got)
	}

	bodyMu.Lock()
	defer bodyMu.Unlock()
	if lastBody["model"] != "gpt-4o-mini" {
		t.Fatalf("model = %v", lastBody["model"])
	}
	messages, ok := lastBody["messages"].([]any)
	if !ok || len(messages) != 2 {
		t.Fatalf("messages = %v", lastBody["messages"])
	}
	user := messages[1].(map[string]any)
	if content, _ := user["content"].(string); !strings.Contains(content, "robotics") {
		t.Fatalf("user prompt missing candidate summary: %q", content)
	}
	if temp, ok := lastBody["temperature"].(float64); !ok || temp != 0 {
		t.Fatalf("temperature = %v, want 0", lastBody["temperature"])
	}
}

func TestRecommendSurfacesAPIError(t *testing.T) {
	oldURL := apiURL
	t.Cleanup(func() { apiURL = oldURL })

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited","type":"rate_limit"}}`))
	}))
	defer server.Close()
	apiURL = server.URL

	client, err := NewClient("test-key", "gpt-4o-mini")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := client.Recommend(context.Background(), llm.RecommendInput{}); err == nil {
		t.Fatal("expected error from API error payload")
	}
}

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient("", "gpt-4o-mini"); err == nil {
		t.Fatal("expected error for missing api key")
	}
	if _, err := NewClient("key", " "); err == nil {
		t.Fatal("expected error for missing model")
	}
}
