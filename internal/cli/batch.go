package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cosar-tools/cosar/internal/pipeline"
	"github.com/cosar-tools/cosar/internal/worker"
	"github.com/spf13/cobra"
)

var (
	batchSemantics   string
	batchMeasure     string
	batchAggregation string
	batchWorkers     int
	batchNoCache     bool
	batchJSONDir     string
	batchLLM         string
	batchLLMModel    string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file-or-dir>...",
	Short: "Run CSS selection over many apx files concurrently",
	Long: `Batch analyzes every given apx file (directories are expanded to the
.apx files they contain) with a worker pool and prints one summary line
per file. Narration requests, when enabled, are rate limited across the
whole batch.

Example:
  cosar batch data/
  cosar batch data/as_01.apx data/as_02.apx --workers 8
  cosar batch data/ --semantics PR --measure S --agg leximax --json-dir out/`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&batchSemantics, "semantics", "", "semantics (grounded, complete, preferred, stable)")
	batchCmd.Flags().StringVar(&batchMeasure, "measure", "", "satisfaction measure (S, D, U)")
	batchCmd.Flags().StringVar(&batchAggregation, "agg", "", "aggregation (sum, min, leximax, leximin)")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "worker pool size (default from config)")
	batchCmd.Flags().BoolVar(&batchNoCache, "no-cache", false, "disable the report cache")
	batchCmd.Flags().StringVar(&batchJSONDir, "json-dir", "", "write one JSON report per file into this directory")
	batchCmd.Flags().StringVar(&batchLLM, "llm", "", "narration provider (openai, ollama)")
	batchCmd.Flags().StringVar(&batchLLMModel, "llm-model", "", "narration model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg := buildConfig()
	if batchSemantics != "" {
		cfg.Analysis.Semantics = batchSemantics
	}
	if batchMeasure != "" {
		cfg.Analysis.Measure = batchMeasure
	}
	if batchAggregation != "" {
		cfg.Analysis.Aggregation = batchAggregation
	}
	if batchWorkers > 0 {
		cfg.Concurrency.BatchWorkers = batchWorkers
	}
	if batchNoCache {
		cfg.Cache.Enabled = false
	}
	if batchLLM != "" {
		if err := applyLLMFlags(cfg, batchLLM, batchLLMModel); err != nil {
			return err
		}
	}

	paths, err := collectApxPaths(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no .apx files found in %s", strings.Join(args, ", "))
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	if batchJSONDir != "" {
		if err := os.MkdirAll(batchJSONDir, 0o755); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}

	processor := worker.NewBatchProcessor(p, cfg.Concurrency.BatchWorkers)
	results := processor.Run(ctx, paths)

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Printf("FAIL %s: %v\n", r.Path, r.Err)
			continue
		}
		fmt.Printf("ok   %s: %d extension(s), best %s\n",
			r.Path, len(r.Report.Candidates), bestSummary(r.Report.Best))

		if batchJSONDir != "" {
			base := strings.TrimSuffix(filepath.Base(r.Path), ".apx")
			out := filepath.Join(batchJSONDir, base+".json")
			if err := pipeline.WriteJSON(out, r.Report); err != nil {
				return err
			}
		}
	}

	fmt.Printf("\n%d analyzed, %d failed\n", len(results), failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d analyses failed", failed, len(results))
	}
	return nil
}

// collectApxPaths expands directories into the .apx files they contain.
func collectApxPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("read directory %s: %w", arg, err)
		}
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), ".apx") {
				paths = append(paths, filepath.Join(arg, e.Name()))
			}
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func bestSummary(best [][]string) string {
	if len(best) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(best))
	for _, e := range best {
		parts = append(parts, "{"+strings.Join(e, ",")+"}")
	}
	return strings.Join(parts, " ")
}
