package score

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

func TestNet_SumsVoteValues(t *testing.T) {
	f := mustFramework(t, []string{"a", "b"}, nil, []model.Vote{
		{Voter: "v1", Target: "a", Value: 1},
		{Voter: "v2", Target: "a", Value: 1},
		{Voter: "v3", Target: "a", Value: -1},
		{Voter: "v4", Target: "a", Value: 0},
		{Voter: "v1", Target: "b", Value: -1},
	})

	if got := Net(f, "a"); got != 1 {
		t.Errorf("Net(a) = %g, want 1", got)
	}
	if got := Net(f, "b"); got != -1 {
		t.Errorf("Net(b) = %g, want -1", got)
	}
}

func TestNet_UnvotedArgumentScoresZero(t *testing.T) {
	f := mustFramework(t, []string{"a", "b"}, nil, []model.Vote{
		{Voter: "v1", Target: "a", Value: 1},
	})
	if got := Net(f, "b"); got != 0 {
		t.Errorf("Net(b) = %g, want 0", got)
	}
}

func TestAll_MatchesNetInGlobalOrder(t *testing.T) {
	f := mustFramework(t, []string{"a", "b", "c"}, nil, []model.Vote{
		{Voter: "v1", Target: "a", Value: 1},
		{Voter: "v2", Target: "b", Value: -1},
		{Voter: "v3", Target: "c", Value: 1},
	})

	scores := All(f)
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	for i, arg := range f.Arguments() {
		if scores[i] != Net(f, arg) {
			t.Errorf("All[%d] = %g, Net(%s) = %g; must agree", i, scores[i], arg, Net(f, arg))
		}
	}
}
