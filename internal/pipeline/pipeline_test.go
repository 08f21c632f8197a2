package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/cosar-tools/cosar/internal/model"
)

const scenarioAPX = `arg(a).
arg(b).
arg(c).
att(a, b).
att(b, c).
vot(v1, a, 1).
vot(v2, b, -1).
vot(v3, c, 1).
`

func testConfig(t *testing.T) *model.Config {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	return cfg
}

func writeScenario(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.apx")
	if err := os.WriteFile(path, []byte(scenarioAPX), 0o644); err != nil {
		t.Fatalf("write scenario: %v", err)
	}
	return path
}

func TestNewPipeline_RejectsBadTokens(t *testing.T) {
	cfg := testConfig(t)
	cfg.Analysis.Semantics = "bogus"
	if _, err := NewPipeline(cfg); err == nil {
		t.Errorf("Expected error for bad semantics token")
	}

	cfg = testConfig(t)
	cfg.Analysis.Measure = "Z"
	if _, err := NewPipeline(cfg); err == nil {
		t.Errorf("Expected error for bad measure token")
	}

	cfg = testConfig(t)
	cfg.Analysis.Aggregation = "median"
	if _, err := NewPipeline(cfg); err == nil {
		t.Errorf("Expected error for bad aggregation token")
	}
}

func TestPrune_Scenario(t *testing.T) {
	p, err := NewPipeline(testConfig(t))
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}

	outcome, err := p.Prune(context.Background(), writeScenario(t))
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}

	rep := outcome.Report
	if len(rep.Kept) != 1 || rep.Kept[0] != (model.Attack{Attacker: "a", Target: "b"}) {
		t.Errorf("Kept = %v, want [(a, b)]", rep.Kept)
	}
	if len(rep.Removed) != 1 || rep.Removed[0] != (model.Attack{Attacker: "b", Target: "c"}) {
		t.Errorf("Removed = %v, want [(b, c)]", rep.Removed)
	}

	wantScores := []model.ArgumentScore{
		{Argument: "a", Score: 1},
		{Argument: "b", Score: -1},
		{Argument: "c", Score: 1},
	}
	if !reflect.DeepEqual(rep.Scores, wantScores) {
		t.Errorf("Scores = %v, want %v", rep.Scores, wantScores)
	}

	// grounded extension of the pruned framework a -> b: {a, c}
	if len(rep.Extensions) != 1 || !reflect.DeepEqual(rep.Extensions[0], []string{"a", "c"}) {
		t.Errorf("Extensions = %v, want [[a c]]", rep.Extensions)
	}

	if got := outcome.Pruned.Attacks(); len(got) != 1 {
		t.Errorf("Pruned framework attacks = %v, want one", got)
	}
}

func TestSelect_ScenarioGroundedSupportedSum(t *testing.T) {
	cfg := testConfig(t)
	cfg.Analysis.Semantics = "grounded"
	cfg.Analysis.Measure = "S"
	cfg.Analysis.Aggregation = "sum"

	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}

	report, err := p.Select(context.Background(), writeScenario(t))
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	if len(report.Candidates) != 1 {
		t.Fatalf("Grounded must yield one candidate, got %d", len(report.Candidates))
	}
	c := report.Candidates[0]
	if !reflect.DeepEqual(c.Arguments, []string{"a", "c"}) {
		t.Errorf("Extension = %v, want [a c]", c.Arguments)
	}
	if !reflect.DeepEqual(c.Vector, []float64{1, 0, 1}) {
		t.Errorf("Vector = %v, want [1 0 1]", c.Vector)
	}
	if !reflect.DeepEqual(c.Key, []float64{2}) {
		t.Errorf("Key = %v, want [2]", c.Key)
	}
	if len(report.Best) != 1 || !reflect.DeepEqual(report.Best[0], []string{"a", "c"}) {
		t.Errorf("Best = %v, want [[a c]]", report.Best)
	}
}

func TestSelect_NoStableExtensionsIsNotAnError(t *testing.T) {
	cfg := testConfig(t)
	cfg.Analysis.Semantics = "stable"

	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}

	cycle := "arg(a).\narg(b).\narg(c).\natt(a, b).\natt(b, c).\natt(c, a).\n"
	path := filepath.Join(t.TempDir(), "cycle.apx")
	if err := os.WriteFile(path, []byte(cycle), 0o644); err != nil {
		t.Fatalf("write cycle: %v", err)
	}

	report, err := p.Select(context.Background(), path)
	if err != nil {
		t.Fatalf("Zero extensions must not fail: %v", err)
	}
	if len(report.Candidates) != 0 || len(report.Best) != 0 {
		t.Errorf("Expected empty result, got %v / %v", report.Candidates, report.Best)
	}
}

func TestSelect_CachedReportMatchesFresh(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cache.Enabled = true
	cfg.Cache.Dir = t.TempDir()
	cfg.Analysis.Semantics = "preferred"
	cfg.Analysis.Measure = "S"

	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}

	path := writeScenario(t)
	ctx := context.Background()

	fresh, err := p.Select(ctx, path)
	if err != nil {
		t.Fatalf("First select failed: %v", err)
	}
	cached, err := p.Select(ctx, path)
	if err != nil {
		t.Fatalf("Second select failed: %v", err)
	}

	if !reflect.DeepEqual(fresh.Candidates, cached.Candidates) {
		t.Errorf("Cached candidates diverge:\n%v\n%v", fresh.Candidates, cached.Candidates)
	}
	if !reflect.DeepEqual(fresh.Best, cached.Best) {
		t.Errorf("Cached best diverges:\n%v\n%v", fresh.Best, cached.Best)
	}
}

func TestSelect_ParseErrorsPropagate(t *testing.T) {
	p, err := NewPipeline(testConfig(t))
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "bad.apx")
	if err := os.WriteFile(path, []byte("arg(a).\natt(a, ghost).\n"), 0o644); err != nil {
		t.Fatalf("write bad file: %v", err)
	}

	if _, err := p.Select(context.Background(), path); err == nil {
		t.Errorf("Undeclared reference must fail the analysis")
	}
}
