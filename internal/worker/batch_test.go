package worker

import (
	"context"
	"fmt"
	"testing"

	"github.com/cosar-tools/cosar/internal/model"
)

type fakeAnalyzer struct {
	failOn string
}

func (a *fakeAnalyzer) Select(ctx context.Context, path string) (*model.SelectionReport, error) {
	if path == a.failOn {
		return nil, fmt.Errorf("boom")
	}
	return &model.SelectionReport{Source: path}, nil
}

func TestBatchProcessor_RunSortsByPath(t *testing.T) {
	b := NewBatchProcessor(&fakeAnalyzer{}, 4)

	paths := []string{"c.apx", "a.apx", "b.apx"}
	results := b.Run(context.Background(), paths)

	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
	for i, want := range []string{"a.apx", "b.apx", "c.apx"} {
		if results[i].Path != want {
			t.Errorf("results[%d].Path = %s, want %s", i, results[i].Path, want)
		}
		if results[i].Err != nil {
			t.Errorf("Unexpected error for %s: %v", want, results[i].Err)
		}
		if results[i].Report == nil || results[i].Report.Source != want {
			t.Errorf("Report missing or mislabeled for %s", want)
		}
	}
}

func TestBatchProcessor_SurfacesPerFileErrors(t *testing.T) {
	b := NewBatchProcessor(&fakeAnalyzer{failOn: "bad.apx"}, 2)

	results := b.Run(context.Background(), []string{"good.apx", "bad.apx"})
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}

	for _, r := range results {
		switch r.Path {
		case "bad.apx":
			if r.GetError() == nil {
				t.Errorf("bad.apx must carry its error")
			}
		case "good.apx":
			if r.GetError() != nil {
				t.Errorf("good.apx must succeed, got %v", r.GetError())
			}
		}
	}
}
