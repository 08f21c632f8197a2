package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cosar-tools/cosar/internal/model"
	"github.com/cosar-tools/cosar/internal/semantics"
)

// Renderer turns reports into text and Markdown.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer. The footer is a provenance line on
// Markdown reports.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// FrameworkText prints a parsed framework in record form.
func (r *Renderer) FrameworkText(w io.Writer, f *model.Framework) {
	fmt.Fprintf(w, "Arguments (%d):\n", f.Len())
	for _, arg := range f.Arguments() {
		fmt.Fprintf(w, "  %s\n", arg)
	}
	attacks := f.Attacks()
	fmt.Fprintf(w, "Attacks (%d):\n", len(attacks))
	for _, att := range attacks {
		fmt.Fprintf(w, "  %s -> %s\n", att.Attacker, att.Target)
	}
	votes := f.Votes()
	fmt.Fprintf(w, "Votes (%d):\n", len(votes))
	for _, v := range votes {
		fmt.Fprintf(w, "  %s on %s: %+d\n", v.Voter, v.Target, v.Value)
	}
}

// PruneText prints a COSAR report.
func (r *Renderer) PruneText(w io.Writer, rep *model.PruneReport) {
	fmt.Fprintf(w, "COSAR result for %s\n\n", rep.Source)
	fmt.Fprintf(w, "Argument scores:\n")
	for _, s := range rep.Scores {
		fmt.Fprintf(w, "  %s: %g\n", s.Argument, s.Score)
	}
	fmt.Fprintf(w, "\nSurviving attacks (%d):\n", len(rep.Kept))
	for _, att := range rep.Kept {
		fmt.Fprintf(w, "  %s -> %s\n", att.Attacker, att.Target)
	}
	fmt.Fprintf(w, "Pruned attacks (%d):\n", len(rep.Removed))
	for _, att := range rep.Removed {
		fmt.Fprintf(w, "  %s -> %s\n", att.Attacker, att.Target)
	}
	fmt.Fprintf(w, "\nExtensions of the pruned framework (%s):\n", semantics.Kind(rep.Semantics).Display())
	writeExtensions(w, rep.Extensions)
	writeNarration(w, rep.LLM)
}

// SelectionText prints a CSS report.
func (r *Renderer) SelectionText(w io.Writer, rep *model.SelectionReport) {
	fmt.Fprintf(w, "CSS result for %s (semantics=%s measure=%s aggregation=%s)\n\n",
		rep.Source, rep.Semantics, rep.Measure, rep.Aggregation)

	if len(rep.Candidates) == 0 {
		fmt.Fprintf(w, "No extensions exist under %s semantics.\n", rep.Semantics)
		writeNarration(w, rep.LLM)
		return
	}

	fmt.Fprintf(w, "Ranked extensions:\n")
	for i, c := range rep.Candidates {
		fmt.Fprintf(w, "  %d. {%s}  key=%v\n", i+1, strings.Join(c.Arguments, ", "), c.Key)
	}
	fmt.Fprintf(w, "\nBest (%d tied):\n", len(rep.Best))
	writeExtensions(w, rep.Best)
	writeNarration(w, rep.LLM)
}

// SelectionMarkdown renders a CSS report as Markdown.
func (r *Renderer) SelectionMarkdown(rep *model.SelectionReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# CSS report: %s\n\n", rep.Source)
	fmt.Fprintf(&b, "- Semantics: %s\n- Measure: %s\n- Aggregation: %s\n- Run at: %s\n\n",
		rep.Semantics, rep.Measure, rep.Aggregation, rep.RunAt.Format("2006-01-02 15:04:05 UTC"))

	if len(rep.Candidates) == 0 {
		b.WriteString("No extensions exist under this semantics.\n")
	} else {
		b.WriteString("| Rank | Extension | Key |\n|------|-----------|-----|\n")
		for i, c := range rep.Candidates {
			fmt.Fprintf(&b, "| %d | {%s} | %v |\n", i+1, strings.Join(c.Arguments, ", "), c.Key)
		}
		b.WriteString("\n**Best:** ")
		parts := make([]string, 0, len(rep.Best))
		for _, e := range rep.Best {
			parts = append(parts, "{"+strings.Join(e, ", ")+"}")
		}
		b.WriteString(strings.Join(parts, ", "))
		b.WriteString("\n")
	}

	if rep.LLM != nil && rep.LLM.Summary != "" {
		fmt.Fprintf(&b, "\n## Narration (%s)\n\n%s\n", rep.LLM.Provider, rep.LLM.Summary)
	}
	if r.includeFooter {
		b.WriteString("\n---\nGenerated by cosar. Rankings reflect votes and structure, not truth.\n")
	}
	return b.String()
}

// PruneMarkdown renders a COSAR report as Markdown.
func (r *Renderer) PruneMarkdown(rep *model.PruneReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# COSAR report: %s\n\n", rep.Source)
	fmt.Fprintf(&b, "- Semantics: %s\n- Run at: %s\n\n", rep.Semantics, rep.RunAt.Format("2006-01-02 15:04:05 UTC"))

	b.WriteString("| Argument | Score |\n|----------|-------|\n")
	for _, s := range rep.Scores {
		fmt.Fprintf(&b, "| %s | %g |\n", s.Argument, s.Score)
	}

	b.WriteString("\n## Surviving attacks\n\n")
	for _, att := range rep.Kept {
		fmt.Fprintf(&b, "- %s -> %s\n", att.Attacker, att.Target)
	}
	b.WriteString("\n## Pruned attacks\n\n")
	for _, att := range rep.Removed {
		fmt.Fprintf(&b, "- %s -> %s\n", att.Attacker, att.Target)
	}

	b.WriteString("\n## Extensions of the pruned framework\n\n")
	if len(rep.Extensions) == 0 {
		b.WriteString("none\n")
	}
	for _, e := range rep.Extensions {
		fmt.Fprintf(&b, "- {%s}\n", strings.Join(e, ", "))
	}

	if rep.LLM != nil && rep.LLM.Summary != "" {
		fmt.Fprintf(&b, "\n## Narration (%s)\n\n%s\n", rep.LLM.Provider, rep.LLM.Summary)
	}
	if r.includeFooter {
		b.WriteString("\n---\nGenerated by cosar. Pruning reflects votes and structure, not truth.\n")
	}
	return b.String()
}

// WriteJSON writes a report as indented JSON.
func WriteJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func writeExtensions(w io.Writer, exts [][]string) {
	if len(exts) == 0 {
		fmt.Fprintf(w, "  none\n")
		return
	}
	for _, e := range exts {
		fmt.Fprintf(w, "  {%s}\n", strings.Join(e, ", "))
	}
}

func writeNarration(w io.Writer, n *model.Narration) {
	if n == nil {
		return
	}
	if n.Error != "" {
		fmt.Fprintf(w, "\nNarration unavailable (%s): %s\n", n.Provider, n.Error)
		return
	}
	fmt.Fprintf(w, "\nNarration (%s):\n%s\n", n.Provider, n.Summary)
}
