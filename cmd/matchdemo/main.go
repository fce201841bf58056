package main

// Run a full matching pass against the seeded catalog without a server:
//   go run ./cmd/matchdemo -cv ./testdata/cv.pdf

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gradmatch-backend/internal/catalog"
	"gradmatch-backend/internal/llm"
	"gradmatch-backend/internal/llm/gemini"
	"gradmatch-backend/internal/llm/openai"
	"gradmatch-backend/internal/orchestrator"
	"gradmatch-backend/internal/parser"
	"gradmatch-backend/internal/profile"
	"gradmatch-backend/internal/shared/config"
)

func main() {
	cfg := config.Load()

	cvPath := flag.String("cv", "", "Path to CV file (pdf, docx or txt)")
	provider := flag.String("provider", cfg.LLMProvider, "LLM provider (openai, gemini, none)")
	model := flag.String("model", cfg.LLMModel, "LLM model")
	outPath := flag.String("out", "", "Path to write match results JSON (optional)")
	flag.Parse()

	if strings.TrimSpace(*cvPath) == "" {
		fmt.Fprintln(os.Stderr, "usage: matchdemo -cv <path> [-provider openai|gemini|none] [-out results.json]")
		os.Exit(2)
	}

	data, err := os.ReadFile(*cvPath)
	if err != nil {
		fatal("read cv: %v", err)
	}

	doc, err := parser.Parse(data, filepath.Base(*cvPath), "")
	if err != nil {
		fatal("parse cv: %v", err)
	}
	cv := profile.ExtractFromDocument(doc)
	candidate := profile.Enhance(profile.CandidateProfile{}, &cv, nil)

	ctx := context.Background()
	client := buildClient(ctx, *provider, *model)

	repo := catalog.NewSeededMemoryRepo()
	snap, err := repo.Snapshot(ctx)
	if err != nil {
		fatal("catalog snapshot: %v", err)
	}

	orch := orchestrator.New(client, cfg.AITimeout)
	result, err := orch.Run(ctx, candidate, snap, orchestrator.NewSessionCache())
	if err != nil {
		fatal("match run: %v", err)
	}

	fmt.Printf("source=%s ai_state=%s results=%d\n", result.Source, result.AIState, len(result.Matches))
	if result.AIError != "" {
		fmt.Printf("ai_error=%s\n", result.AIError)
	}
	for i, m := range result.Matches {
		fmt.Printf("%2d. %-40s %-30s score=%.3f confidence=%.2f\n",
			i+1, m.UniversityName, m.ProgramName, m.OverallScore, m.Confidence)
	}

	if strings.TrimSpace(*outPath) != "" {
		payload, err := json.MarshalIndent(result.Matches, "", "  ")
		if err != nil {
			fatal("encode results: %v", err)
		}
		if err := os.WriteFile(*outPath, payload, 0o644); err != nil {
			fatal("write results: %v", err)
		}
		fmt.Printf("wrote %s\n", *outPath)
	}
}

func buildClient(ctx context.Context, provider, model string) llm.Client {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "openai":
		apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
		if apiKey == "" {
			fmt.Fprintln(os.Stderr, "OPENAI_API_KEY not set, running deterministic fallback only")
			return nil
		}
		client, err := openai.NewClient(apiKey, model)
		if err != nil {
			fatal("openai client: %v", err)
		}
		return client
	case "gemini":
		apiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
		if apiKey == "" {
			fmt.Fprintln(os.Stderr, "GEMINI_API_KEY not set, running deterministic fallback only")
			return nil
		}
		client, err := gemini.NewClient(ctx, apiKey, model)
		if err != nil {
			fatal("gemini client: %v", err)
		}
		return client
	default:
		return nil
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
