package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cosar-tools/cosar/internal/apx"
	"github.com/cosar-tools/cosar/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	pruneSemantics string
	pruneOut       string
	pruneShowInput bool
	pruneNoWrite   bool
	pruneOutJSON   string
	pruneOutMD     string
	pruneLLM       string
	pruneLLMModel  string
)

// pruneCmd represents the prune (COSAR) command
var pruneCmd = &cobra.Command{
	Use:   "prune <file.apx>",
	Short: "Run COSAR: discard vote-dominated attacks",
	Long: `Prune runs the COSAR analysis on an apx file: every attack whose
attacker scores strictly below its target on net votes is discarded as
non-credible. Ties keep the attack. Arguments are never removed.

The pruned framework is written next to the input as
<name>_result.apx unless --no-write is given, and its extensions under
the chosen semantics are reported.

Example:
  cosar prune data/as_03.apx
  cosar prune data/as_03.apx --semantics ST --show-input
  cosar prune data/as_03.apx --no-write --json report.json`,
	Args: cobra.ExactArgs(1),
	RunE: runPrune,
}

func init() {
	rootCmd.AddCommand(pruneCmd)

	pruneCmd.Flags().StringVar(&pruneSemantics, "semantics", "", "semantics for the pruned framework (grounded, complete, preferred, stable)")
	pruneCmd.Flags().StringVar(&pruneOut, "out", "", "output apx path (default: <results_dir>/<name>_result.apx next to the input)")
	pruneCmd.Flags().BoolVar(&pruneShowInput, "show-input", false, "display the parsed framework before pruning")
	pruneCmd.Flags().BoolVar(&pruneNoWrite, "no-write", false, "do not write the pruned framework to an apx file")
	pruneCmd.Flags().StringVar(&pruneOutJSON, "json", "", "output JSON report path (optional)")
	pruneCmd.Flags().StringVar(&pruneOutMD, "md", "", "output Markdown report path (optional)")
	pruneCmd.Flags().StringVar(&pruneLLM, "llm", "", "narration provider (openai, ollama)")
	pruneCmd.Flags().StringVar(&pruneLLMModel, "llm-model", "", "narration model name")
}

func runPrune(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx := context.Background()

	cfg := buildConfig()
	if pruneSemantics != "" {
		cfg.Analysis.Semantics = pruneSemantics
	}
	if pruneLLM != "" {
		if err := applyLLMFlags(cfg, pruneLLM, pruneLLMModel); err != nil {
			return err
		}
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}
	renderer := pipeline.NewRenderer(true)

	if pruneShowInput {
		f, err := apx.ReadFile(path)
		if err != nil {
			return err
		}
		fmt.Println("Input argumentation framework:")
		renderer.FrameworkText(os.Stdout, f)
		fmt.Println()
	}

	outcome, err := p.Prune(ctx, path)
	if err != nil {
		return err
	}

	renderer.PruneText(os.Stdout, outcome.Report)

	if pruneOutJSON != "" {
		if err := pipeline.WriteJSON(pruneOutJSON, outcome.Report); err != nil {
			return err
		}
	}
	if pruneOutMD != "" {
		if err := os.WriteFile(pruneOutMD, []byte(renderer.PruneMarkdown(outcome.Report)), 0o644); err != nil {
			return fmt.Errorf("write markdown report: %w", err)
		}
	}

	if pruneNoWrite {
		fmt.Println("\nResult file creation skipped (--no-write).")
		return nil
	}

	outPath := pruneOut
	if outPath == "" {
		resultsDir := cfg.Output.ResultsDir
		if !filepath.IsAbs(resultsDir) {
			resultsDir = filepath.Join(filepath.Dir(path), resultsDir)
		}
		if err := os.MkdirAll(resultsDir, 0o755); err != nil {
			return fmt.Errorf("create results directory: %w", err)
		}
		base := strings.TrimSuffix(filepath.Base(path), ".apx")
		outPath = filepath.Join(resultsDir, base+"_result.apx")
	}
	if err := apx.WriteFile(outPath, outcome.Pruned); err != nil {
		return err
	}
	fmt.Printf("\nPruned framework written to %s\n", outPath)
	return nil
}
