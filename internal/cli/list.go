package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cosar-tools/cosar/internal/apx"
	"github.com/cosar-tools/cosar/internal/pipeline"
	"github.com/spf13/cobra"
)

var listShow string

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list <dir>",
	Short: "List the apx files in a directory",
	Long: `List prints the .apx files found in a directory, and optionally the
parsed content of one of them.

Example:
  cosar list data/
  cosar list data/ --show as_03.apx`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listShow, "show", "", "display the parsed content of this file")
}

func runList(cmd *cobra.Command, args []string) error {
	paths, err := collectApxPaths(args)
	if err != nil {
		return err
	}

	if len(paths) == 0 {
		fmt.Println("No .apx files found.")
		return nil
	}

	fmt.Println("Available apx files:")
	for i, path := range paths {
		fmt.Printf("  %d. %s\n", i+1, path)
	}

	if listShow == "" {
		return nil
	}

	target := ""
	for _, path := range paths {
		if path == listShow || filepath.Base(path) == listShow {
			target = path
			break
		}
	}
	if target == "" {
		return fmt.Errorf("file not found in %s: %s", args[0], listShow)
	}

	f, err := apx.ReadFile(target)
	if err != nil {
		return err
	}
	fmt.Printf("\nParsed content of %s:\n", target)
	pipeline.NewRenderer(false).FrameworkText(os.Stdout, f)
	return nil
}
