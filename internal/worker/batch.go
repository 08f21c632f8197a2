package worker

import (
	"context"
	"sort"

	"github.com/cosar-tools/cosar/internal/model"
)

// Analyzer runs a CSS selection over one apx file.
type Analyzer interface {
	Select(ctx context.Context, path string) (*model.SelectionReport, error)
}

// SelectJob analyzes a single file.
type SelectJob struct {
	Path     string
	Analyzer Analyzer
}

// Execute runs the selection.
func (j *SelectJob) Execute(ctx context.Context) Result {
	report, err := j.Analyzer.Select(ctx, j.Path)
	return &SelectResult{Path: j.Path, Report: report, Err: err}
}

// SelectResult is the outcome of one file's analysis.
type SelectResult struct {
	Path   string
	Report *model.SelectionReport
	Err    error
}

// GetError returns the analysis error, if any.
func (r *SelectResult) GetError() error {
	return r.Err
}

// BatchProcessor analyzes many apx files concurrently.
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
}

// NewBatchProcessor creates a processor with the given concurrency.
func NewBatchProcessor(analyzer Analyzer, concurrency int) *BatchProcessor {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &BatchProcessor{analyzer: analyzer, concurrency: concurrency}
}

// Run analyzes every path and returns the results sorted by path, so
// batch output is deterministic regardless of worker scheduling.
func (b *BatchProcessor) Run(ctx context.Context, paths []string) []*SelectResult {
	pool := NewPool(b.concurrency)
	pool.Start()

	for _, path := range paths {
		if ctx.Err() != nil {
			pool.Shutdown()
			break
		}
		pool.Submit(&SelectJob{Path: path, Analyzer: b.analyzer})
	}

	raw := pool.Wait()
	results := make([]*SelectResult, 0, len(raw))
	for _, r := range raw {
		if sr, ok := r.(*SelectResult); ok {
			results = append(results, sr)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	return results
}
