package apx

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/cosar-tools/cosar/internal/model"
)

const sampleAPX = `arg(a).
arg(b).
arg(c).

att(a, b).
att(b, c).
vot(v1, a, 1).
vot(v2, b, -1).
vot(v3, c, 1).
`

func TestParse_Sample(t *testing.T) {
	f, err := Parse(strings.NewReader(sampleAPX), "sample.apx")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if f.Len() != 3 {
		t.Errorf("Expected 3 arguments, got %d", f.Len())
	}
	if len(f.Attacks()) != 2 {
		t.Errorf("Expected 2 attacks, got %d", len(f.Attacks()))
	}
	if len(f.Votes()) != 3 {
		t.Errorf("Expected 3 votes, got %d", len(f.Votes()))
	}

	atts := f.Attacks()
	if atts[0] != (model.Attack{Attacker: "a", Target: "b"}) {
		t.Errorf("First attack = %v, want (a, b)", atts[0])
	}
}

func TestParse_LastVotePerVoterWins(t *testing.T) {
	input := `arg(a).
vot(v1, a, 1).
vot(v1, a, -1).
vot(v2, a, 1).
`
	f, err := Parse(strings.NewReader(input), "votes.apx")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	votes := f.Votes()
	if len(votes) != 2 {
		t.Fatalf("Expected 2 votes after dedup, got %d", len(votes))
	}
	if votes[0].Voter != "v1" || votes[0].Value != -1 {
		t.Errorf("v1's later vote should win, got %+v", votes[0])
	}
}

func TestParse_UnknownRecordKind(t *testing.T) {
	_, err := Parse(strings.NewReader("arg(a).\nfoo(a).\n"), "bad.apx")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected ParseError, got %v", err)
	}
	if parseErr.Line != 2 {
		t.Errorf("Expected error on line 2, got %d", parseErr.Line)
	}
}

func TestParse_InvalidVoteValue(t *testing.T) {
	_, err := Parse(strings.NewReader("arg(a).\nvot(v1, a, 7).\n"), "bad.apx")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected ParseError, got %v", err)
	}
	if !strings.Contains(parseErr.Msg, "invalid vote value") {
		t.Errorf("Unexpected message: %s", parseErr.Msg)
	}
}

func TestParse_MalformedAttack(t *testing.T) {
	for _, line := range []string{"att(a).", "att(a, b, c).", "att(, b)."} {
		_, err := Parse(strings.NewReader("arg(a).\narg(b).\n"+line+"\n"), "bad.apx")
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Errorf("%q: expected ParseError, got %v", line, err)
		}
	}
}

func TestParse_UndeclaredReference(t *testing.T) {
	_, err := Parse(strings.NewReader("arg(a).\natt(a, ghost).\n"), "bad.apx")
	var unknownErr *model.UnknownArgumentError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("Expected UnknownArgumentError, got %v", err)
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	f, err := Parse(strings.NewReader(sampleAPX), "sample.apx")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, f); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"arg(a).", "arg(b).", "arg(c).", "att(a, b).", "att(b, c)."} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q:\n%s", want, out)
		}
	}
	// votes are not re-emitted
	if strings.Contains(out, "vot(") {
		t.Errorf("Votes must not be serialized:\n%s", out)
	}

	reparsed, err := Parse(strings.NewReader(out), "roundtrip.apx")
	if err != nil {
		t.Fatalf("Reparse failed: %v", err)
	}
	if reparsed.Len() != 3 || len(reparsed.Attacks()) != 2 {
		t.Errorf("Round trip lost structure: %d args, %d attacks", reparsed.Len(), len(reparsed.Attacks()))
	}
}
