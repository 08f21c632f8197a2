package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cosar-tools/cosar/internal/model"
)

func TestNarrator_AttachesSummary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(ollamaResponse{
			Model:    "llama3.1",
			Response: "One extension stands out.",
			Done:     true,
		})
	}))
	defer server.Close()

	narrator, err := NewNarrator(Config{Provider: "ollama", BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("NewNarrator failed: %v", err)
	}

	report := &model.SelectionReport{
		Source:      "test.apx",
		Semantics:   "grounded",
		Measure:     "S",
		Aggregation: "sum",
		Candidates: []model.RankedExtension{
			{Arguments: []string{"a", "c"}, Vector: []float64{1, 0, 1}, Key: []float64{2}},
		},
		Best: [][]string{{"a", "c"}},
	}

	narration := narrator.NarrateSelection(context.Background(), report, []string{"a", "b", "c"})
	if narration.Error != "" {
		t.Fatalf("Unexpected narration error: %s", narration.Error)
	}
	if narration.Summary != "One extension stands out." {
		t.Errorf("Summary = %q", narration.Summary)
	}
	if narration.Provider != "ollama" {
		t.Errorf("Provider = %q, want ollama", narration.Provider)
	}
}

func TestNarrator_RecordsFailureWithoutError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	narrator, err := NewNarrator(Config{Provider: "ollama", BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("NewNarrator failed: %v", err)
	}

	report := &model.PruneReport{Source: "test.apx", Semantics: "grounded"}
	narration := narrator.NarratePrune(context.Background(), report, []string{"a"})
	if narration == nil || narration.Error == "" {
		t.Errorf("Provider failure must be recorded on the narration, got %+v", narration)
	}
}

func TestNarrator_SkipsGenerationWhenUnreachable(t *testing.T) {
	var generated bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/generate" {
			generated = true
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	narrator, err := NewNarrator(Config{Provider: "ollama", BaseURL: server.URL, Timeout: 5})
	if err != nil {
		t.Fatalf("NewNarrator failed: %v", err)
	}

	report := &model.PruneReport{Source: "test.apx", Semantics: "grounded"}
	narration := narrator.NarratePrune(context.Background(), report, []string{"a"})
	if narration.Error == "" {
		t.Errorf("Unreachable provider must be recorded on the narration")
	}
	if generated {
		t.Errorf("Generation must not be attempted when the provider is unreachable")
	}
}

func TestNewNarrator_DisabledByEmptyProvider(t *testing.T) {
	narrator, err := NewNarrator(Config{})
	if err != nil {
		t.Fatalf("NewNarrator failed: %v", err)
	}
	if narrator != nil {
		t.Errorf("Empty provider must disable narration")
	}
}
