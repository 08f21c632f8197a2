package apx

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/cosar-tools/cosar/internal/model"
)

// Write serializes a framework back to apx records: one arg record per
// argument in global order, then one att record per attack. Votes are not
// re-emitted; a pruned framework is a statement about structure, not about
// the opinions that produced it.
func Write(w io.Writer, f *model.Framework) error {
	bw := bufio.NewWriter(w)
	for _, arg := range f.Arguments() {
		if _, err := fmt.Fprintf(bw, "arg(%s).\n", arg); err != nil {
			return fmt.Errorf("write arg record: %w", err)
		}
	}
	for _, att := range f.Attacks() {
		if _, err := fmt.Fprintf(bw, "att(%s, %s).\n", att.Attacker, att.Target); err != nil {
			return fmt.Errorf("write att record: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush apx output: %w", err)
	}
	return nil
}

// WriteFile writes a framework to path, creating or truncating it.
func WriteFile(path string, f *model.Framework) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create apx file: %w", err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close apx file: %w", closeErr)
		}
	}()

	return Write(out, f)
}
