// Package prune implements COSAR attack pruning: attacks whose attacker
// is judged weaker than its target by the aggregated votes are discarded
// as non-credible.
package prune

import (
	"github.com/cosar-tools/cosar/internal/model"
	"github.com/cosar-tools/cosar/internal/score"
)

// Result separates the attacks that survived pruning from those removed.
type Result struct {
	Pruned  *model.Framework
	Kept    []model.Attack
	Removed []model.Attack
	Scores  []float64 // net votes in global argument order
}

// Run prunes every attack whose attacker scores strictly below its target.
// Ties keep the attack: an attack is only discarded when the evidence
// against the attacker is unambiguous. Arguments are never removed, so
// isolated arguments are a legal outcome. The returned framework shares
// its argument and vote collections with the input.
func Run(f *model.Framework) (Result, error) {
	scores := score.All(f)

	var kept, removed []model.Attack
	for _, att := range f.Attacks() {
		src, _ := f.Index(att.Attacker)
		dst, _ := f.Index(att.Target)
		if scores[src] >= scores[dst] {
			kept = append(kept, att)
		} else {
			removed = append(removed, att)
		}
	}

	pruned, err := f.WithAttacks(kept)
	if err != nil {
		return Result{}, err
	}
	return Result{Pruned: pruned, Kept: kept, Removed: removed, Scores: scores}, nil
}
