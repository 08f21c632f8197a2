package prune

import (
	"testing"

	"github.com/cosar-tools/cosar/internal/model"
)

func mustFramework(t *testing.T, args []string, attacks []model.Attack, votes []model.Vote) *model.Framework {
	t.Helper()
	f, err := model.NewFramework(args, attacks, votes)
	if err != nil {
		t.Fatalf("NewFramework failed: %v", err)
	}
	return f
}

// The canonical scenario: score(a)=1, score(b)=-1, score(c)=1. The attack
// (a,b) survives since 1 >= -1; the attack (b,c) is pruned since -1 < 1.
func TestRun_CanonicalScenario(t *testing.T) {
	f := mustFramework(t,
		[]string{"a", "b", "c"},
		[]model.Attack{{Attacker: "a", Target: "b"}, {Attacker: "b", Target: "c"}},
		[]model.Vote{
			{Voter: "v1", Target: "a", Value: 1},
			{Voter: "v2", Target: "b", Value: -1},
			{Voter: "v3", Target: "c", Value: 1},
		},
	)

	result, err := Run(f)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(result.Kept) != 1 || result.Kept[0] != (model.Attack{Attacker: "a", Target: "b"}) {
		t.Errorf("Kept = %v, want [(a, b)]", result.Kept)
	}
	if len(result.Removed) != 1 || result.Removed[0] != (model.Attack{Attacker: "b", Target: "c"}) {
		t.Errorf("Removed = %v, want [(b, c)]", result.Removed)
	}
	if got := result.Pruned.Attacks(); len(got) != 1 {
		t.Errorf("Pruned framework attacks = %v, want one", got)
	}
}

func TestRun_TieKeepsAttack(t *testing.T) {
	f := mustFramework(t,
		[]string{"a", "b"},
		[]model.Attack{{Attacker: "a", Target: "b"}},
		[]model.Vote{
			{Voter: "v1", Target: "a", Value: 1},
			{Voter: "v2", Target: "b", Value: 1},
		},
	)

	result, err := Run(f)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(result.Kept) != 1 {
		t.Errorf("Equal scores must keep the attack, kept %v", result.Kept)
	}
}

func TestRun_ArgumentsNeverRemoved(t *testing.T) {
	f := mustFramework(t,
		[]string{"a", "b"},
		[]model.Attack{{Attacker: "a", Target: "b"}},
		[]model.Vote{
			{Voter: "v1", Target: "a", Value: -1},
			{Voter: "v2", Target: "b", Value: 1},
		},
	)

	result, err := Run(f)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(result.Pruned.Attacks()) != 0 {
		t.Errorf("Expected all attacks pruned, got %v", result.Pruned.Attacks())
	}
	// isolated arguments are legal output
	if result.Pruned.Len() != 2 {
		t.Errorf("Arguments must survive pruning, got %d", result.Pruned.Len())
	}
}

// Pruning never adds attacks, and every survivor passes the score test.
func TestRun_Monotonicity(t *testing.T) {
	f := mustFramework(t,
		[]string{"a", "b", "c", "d"},
		[]model.Attack{
			{Attacker: "a", Target: "b"},
			{Attacker: "b", Target: "c"},
			{Attacker: "c", Target: "d"},
			{Attacker: "d", Target: "a"},
		},
		[]model.Vote{
			{Voter: "v1", Target: "a", Value: 1},
			{Voter: "v2", Target: "c", Value: -1},
			{Voter: "v3", Target: "d", Value: 1},
		},
	)

	result, err := Run(f)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(result.Kept)+len(result.Removed) != 4 {
		t.Errorf("Kept + Removed must cover the input attacks")
	}

	original := make(map[model.Attack]bool)
	for _, att := range f.Attacks() {
		original[att] = true
	}
	for _, att := range result.Kept {
		if !original[att] {
			t.Errorf("Pruning invented attack %v", att)
		}
		src, _ := f.Index(att.Attacker)
		dst, _ := f.Index(att.Target)
		if result.Scores[src] < result.Scores[dst] {
			t.Errorf("Attack %v survived with attacker score %g < target score %g",
				att, result.Scores[src], result.Scores[dst])
		}
	}
}
