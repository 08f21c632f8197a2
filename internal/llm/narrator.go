package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cosar-tools/cosar/internal/model"
)

// Narrator attaches provider commentary to finished reports. A narration
// failure is recorded on the report and never fails the analysis.
type Narrator struct {
	provider Provider
	config   Config
}

// NewNarrator creates a narrator, or (nil, nil) when narration is
// disabled by configuration.
func NewNarrator(config Config) (*Narrator, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, nil
	}
	return &Narrator{provider: provider, config: config}, nil
}

// Provider returns the backing provider.
func (n *Narrator) Provider() Provider {
	return n.provider
}

// NarrateSelection generates commentary for a CSS selection report.
func (n *Narrator) NarrateSelection(ctx context.Context, report *model.SelectionReport, arguments []string) *model.Narration {
	return n.narrate(ctx, selectionDigest(report), arguments)
}

// NarratePrune generates commentary for a COSAR prune report.
func (n *Narrator) NarratePrune(ctx context.Context, report *model.PruneReport, arguments []string) *model.Narration {
	return n.narrate(ctx, pruneDigest(report), arguments)
}

func (n *Narrator) narrate(ctx context.Context, digest string, arguments []string) *model.Narration {
	narration := &model.Narration{
		Provider:    n.provider.Name(),
		Model:       n.config.Model,
		GeneratedAt: time.Now().UTC(),
	}

	if !n.provider.IsAvailable(ctx) {
		narration.Error = fmt.Sprintf("%s provider not reachable", n.provider.Name())
		return narration
	}

	resp, err := n.provider.Narrate(ctx, NarrateRequest{
		Digest:    digest,
		Arguments: arguments,
		Model:     n.config.Model,
		MaxTokens: n.config.MaxTokens,
	})
	if err != nil {
		narration.Error = err.Error()
		return narration
	}

	narration.Summary = resp.Summary
	narration.Model = resp.Model
	narration.TokensUsed = resp.TokensUsed
	return narration
}

func pruneDigest(r *model.PruneReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "COSAR pruning of %s (%s semantics on the pruned framework).\n", r.Source, r.Semantics)
	fmt.Fprintf(&b, "Argument scores:\n")
	for _, s := range r.Scores {
		fmt.Fprintf(&b, "  %s: %g\n", s.Argument, s.Score)
	}
	fmt.Fprintf(&b, "Attacks kept: %s\n", attackList(r.Kept))
	fmt.Fprintf(&b, "Attacks removed as non-credible: %s\n", attackList(r.Removed))
	fmt.Fprintf(&b, "Extensions of the pruned framework: %s\n", extensionList(r.Extensions))
	return b.String()
}

func selectionDigest(r *model.SelectionReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CSS selection for %s: semantics %s, measure %s, aggregation %s.\n",
		r.Source, r.Semantics, r.Measure, r.Aggregation)
	if len(r.Candidates) == 0 {
		b.WriteString("No extensions exist under this semantics.\n")
		return b.String()
	}
	fmt.Fprintf(&b, "Ranked extensions (best first):\n")
	for i, c := range r.Candidates {
		fmt.Fprintf(&b, "  %d. {%s} key=%v\n", i+1, strings.Join(c.Arguments, ", "), c.Key)
	}
	fmt.Fprintf(&b, "Best: %s\n", extensionList(r.Best))
	return b.String()
}

func attackList(atts []model.Attack) string {
	if len(atts) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(atts))
	for _, a := range atts {
		parts = append(parts, fmt.Sprintf("(%s, %s)", a.Attacker, a.Target))
	}
	return strings.Join(parts, " ")
}

func extensionList(exts [][]string) string {
	if len(exts) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(exts))
	for _, e := range exts {
		parts = append(parts, "{"+strings.Join(e, ", ")+"}")
	}
	return strings.Join(parts, " ")
}
