package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/cosar-tools/cosar/internal/apx"
	"github.com/cosar-tools/cosar/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	selectSemantics   string
	selectMeasure     string
	selectAggregation string
	selectShowInput   bool
	selectNoCache     bool
	selectOutJSON     string
	selectOutMD       string
	selectNoFooter    bool
	selectLLM         string
	selectLLMModel    string
)

// selectCmd represents the select (CSS) command
var selectCmd = &cobra.Command{
	Use:   "select <file.apx>",
	Short: "Run CSS: rank extensions against voter opinion",
	Long: `Select enumerates the extensions of an apx framework under the chosen
semantics, measures each against the votes and ranks them, surfacing
every extension tied for the best key.

Semantics: grounded, complete, preferred, stable (GR/CO/PR/ST)
Measures:  S (supported), D (disputed), U (untouched)
Aggregations: sum, min, leximax, leximin

An empty result under stable semantics means no stable extension
exists; that is a valid outcome, not an error.

Example:
  cosar select data/as_03.apx
  cosar select data/as_03.apx --semantics PR --measure S --agg leximin
  cosar select data/as_03.apx --json report.json --md report.md`,
	Args: cobra.ExactArgs(1),
	RunE: runSelect,
}

func init() {
	rootCmd.AddCommand(selectCmd)

	selectCmd.Flags().StringVar(&selectSemantics, "semantics", "", "semantics (grounded, complete, preferred, stable)")
	selectCmd.Flags().StringVar(&selectMeasure, "measure", "", "satisfaction measure (S, D, U)")
	selectCmd.Flags().StringVar(&selectAggregation, "agg", "", "aggregation (sum, min, leximax, leximin)")
	selectCmd.Flags().BoolVar(&selectShowInput, "show-input", false, "display the parsed framework before selection")
	selectCmd.Flags().BoolVar(&selectNoCache, "no-cache", false, "disable the report cache (force recomputation)")
	selectCmd.Flags().StringVar(&selectOutJSON, "json", "", "output JSON report path (optional)")
	selectCmd.Flags().StringVar(&selectOutMD, "md", "", "output Markdown report path (optional)")
	selectCmd.Flags().BoolVar(&selectNoFooter, "no-footer", false, "disable footer in Markdown reports")
	selectCmd.Flags().StringVar(&selectLLM, "llm", "", "narration provider (openai, ollama)")
	selectCmd.Flags().StringVar(&selectLLMModel, "llm-model", "", "narration model name")
}

func runSelect(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx := context.Background()

	cfg := buildConfig()
	if selectSemantics != "" {
		cfg.Analysis.Semantics = selectSemantics
	}
	if selectMeasure != "" {
		cfg.Analysis.Measure = selectMeasure
	}
	if selectAggregation != "" {
		cfg.Analysis.Aggregation = selectAggregation
	}
	if selectNoCache {
		cfg.Cache.Enabled = false
	}
	if selectLLM != "" {
		if err := applyLLMFlags(cfg, selectLLM, selectLLMModel); err != nil {
			return err
		}
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}
	renderer := pipeline.NewRenderer(!selectNoFooter)

	if selectShowInput {
		f, err := apx.ReadFile(path)
		if err != nil {
			return err
		}
		fmt.Println("Input argumentation framework:")
		renderer.FrameworkText(os.Stdout, f)
		fmt.Println()
	}

	report, err := p.Select(ctx, path)
	if err != nil {
		return err
	}

	renderer.SelectionText(os.Stdout, report)

	if selectOutJSON != "" {
		if err := pipeline.WriteJSON(selectOutJSON, report); err != nil {
			return err
		}
	}
	if selectOutMD != "" {
		if err := os.WriteFile(selectOutMD, []byte(renderer.SelectionMarkdown(report)), 0o644); err != nil {
			return fmt.Errorf("write markdown report: %w", err)
		}
	}
	return nil
}
