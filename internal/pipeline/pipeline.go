// Package pipeline wires the analysis stages together: parse an apx
// file, run COSAR pruning or CSS extension selection, and optionally
// attach cached results and LLM narration.
package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cosar-tools/cosar/internal/apx"
	"github.com/cosar-tools/cosar/internal/cache"
	"github.com/cosar-tools/cosar/internal/llm"
	"github.com/cosar-tools/cosar/internal/model"
	"github.com/cosar-tools/cosar/internal/prune"
	"github.com/cosar-tools/cosar/internal/rank"
	"github.com/cosar-tools/cosar/internal/semantics"
	"github.com/cosar-tools/cosar/internal/worker"
)

// Pipeline runs complete analyses over apx files. Analysis tokens are
// validated once at construction; an invalid token fails fast before any
// file is touched.
type Pipeline struct {
	config *model.Config

	kind        semantics.Kind
	measure     rank.Measure
	aggregation rank.Aggregation

	cache    cache.Cache
	narrator *llm.Narrator
	limiter  *worker.Limiter
}

// NewPipeline validates the configuration and builds a pipeline.
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	kind, err := semantics.ParseKind(cfg.Analysis.Semantics)
	if err != nil {
		return nil, err
	}
	measure, err := rank.ParseMeasure(cfg.Analysis.Measure)
	if err != nil {
		return nil, err
	}
	aggregation, err := rank.ParseAggregation(cfg.Analysis.Aggregation)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		config:      cfg,
		kind:        kind,
		measure:     measure,
		aggregation: aggregation,
	}

	if cfg.Cache.Enabled {
		p.cache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	narrator, err := llm.NewNarrator(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return nil, fmt.Errorf("configure narration: %w", err)
	}
	if narrator != nil {
		p.narrator = narrator
		p.limiter = worker.NewLimiter(cfg.Concurrency.LLMPerSecond, cfg.Concurrency.LLMBurst)
	}

	return p, nil
}

// PruneOutcome bundles a COSAR report with the pruned framework, so the
// caller decides whether to serialize it back to apx.
type PruneOutcome struct {
	Report *model.PruneReport
	Pruned *model.Framework
}

// Prune runs COSAR over one apx file and enumerates the extensions of
// the pruned framework under the configured semantics.
func (p *Pipeline) Prune(ctx context.Context, path string) (*PruneOutcome, error) {
	f, err := apx.ReadFile(path)
	if err != nil {
		return nil, err
	}

	result, err := prune.Run(f)
	if err != nil {
		return nil, fmt.Errorf("prune %s: %w", path, err)
	}

	exts, err := semantics.Extensions(result.Pruned, p.kind)
	if err != nil {
		return nil, fmt.Errorf("enumerate %s extensions: %w", p.kind, err)
	}

	report := &model.PruneReport{
		Source:     filepath.Base(path),
		Semantics:  string(p.kind),
		RunAt:      time.Now().UTC(),
		Kept:       result.Kept,
		Removed:    result.Removed,
		Extensions: extensionNames(exts, f),
	}
	for i, arg := range f.Arguments() {
		report.Scores = append(report.Scores, model.ArgumentScore{Argument: arg, Score: result.Scores[i]})
	}

	if p.narrator != nil {
		if err := p.throttleNarration(ctx); err != nil {
			return nil, fmt.Errorf("narration limiter: %w", err)
		}
		p.verbosef("narrating %s via %s\n", path, p.narrator.Provider().Name())
		report.LLM = p.narrator.NarratePrune(ctx, report, f.Arguments())
	}

	return &PruneOutcome{Report: report, Pruned: result.Pruned}, nil
}

// Select runs a CSS selection over one apx file: enumerate extensions
// under the configured semantics, measure each against the votes and rank
// them. Results are cached by input bytes and analysis tokens; narration
// is generated after the analysis and is never cached.
func (p *Pipeline) Select(ctx context.Context, path string) (*model.SelectionReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read apx file: %w", err)
	}

	var report *model.SelectionReport
	key := cache.Key(data, string(p.kind), string(p.measure), string(p.aggregation))
	if p.cache != nil {
		if cached, found := p.cache.Get(key); found {
			var r model.SelectionReport
			if json.Unmarshal(cached, &r) == nil {
				p.verbosef("cache hit for %s\n", path)
				report = &r
			}
		}
	}

	f, err := apx.Parse(bytes.NewReader(data), path)
	if err != nil {
		return nil, err
	}

	if report == nil {
		report, err = p.analyze(f, filepath.Base(path))
		if err != nil {
			return nil, err
		}
		if p.cache != nil {
			if encoded, err := json.Marshal(report); err == nil {
				_ = p.cache.Set(key, encoded, 0)
			}
		}
	}

	if p.narrator != nil {
		if err := p.throttleNarration(ctx); err != nil {
			return nil, fmt.Errorf("narration limiter: %w", err)
		}
		p.verbosef("narrating %s via %s\n", path, p.narrator.Provider().Name())
		report.LLM = p.narrator.NarrateSelection(ctx, report, f.Arguments())
	}

	return report, nil
}

// throttleNarration consumes a limiter slot, blocking only once the
// burst is exhausted.
func (p *Pipeline) throttleNarration(ctx context.Context) error {
	if p.limiter.Allow() {
		return nil
	}
	p.verbosef("narration rate limit reached, waiting\n")
	return p.limiter.Wait(ctx)
}

func (p *Pipeline) analyze(f *model.Framework, source string) (*model.SelectionReport, error) {
	exts, err := semantics.Extensions(f, p.kind)
	if err != nil {
		return nil, fmt.Errorf("enumerate %s extensions: %w", p.kind, err)
	}

	ranked := rank.Rank(f, exts, p.measure, p.aggregation)

	report := &model.SelectionReport{
		Source:      source,
		Semantics:   string(p.kind),
		Measure:     string(p.measure),
		Aggregation: string(p.aggregation),
		RunAt:       time.Now().UTC(),
		Best:        [][]string{},
	}
	for _, r := range ranked {
		report.Candidates = append(report.Candidates, model.RankedExtension{
			Arguments: r.Extension.Names(f),
			Vector:    r.Vector,
			Key:       r.Key,
		})
	}
	for _, r := range rank.Best(ranked) {
		report.Best = append(report.Best, r.Extension.Names(f))
	}
	return report, nil
}

func (p *Pipeline) verbosef(format string, args ...interface{}) {
	if p.config.Output.Verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

func extensionNames(exts []model.Extension, f *model.Framework) [][]string {
	names := make([][]string, 0, len(exts))
	for _, e := range exts {
		names = append(names, e.Names(f))
	}
	return names
}
