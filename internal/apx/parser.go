// Package apx reads and writes the line-oriented apx record format:
//
//	arg(a).
//	att(a, b).
//	vot(v1, a, 1).
//
// Vote values are -1, 0 or 1. A voter's later vote on the same argument
// replaces the earlier one.
package apx

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cosar-tools/cosar/internal/model"
)

// ParseError reports a malformed record with its location.
type ParseError struct {
	Source string
	Line   int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Source, e.Line, e.Msg)
}

// ReadFile parses an apx file into a validated framework.
func ReadFile(path string) (*model.Framework, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open apx file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Parse(f, path)
}

// Parse reads apx records from r. The source name is used in error
// messages only.
func Parse(r io.Reader, source string) (*model.Framework, error) {
	var (
		args    []string
		attacks []model.Attack
		votes   []model.Vote
	)
	// last vote per (voter, argument) pair wins
	voteIdx := make(map[[2]string]int)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "arg"):
			arg, err := parseArg(line, source, lineNo)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)

		case strings.HasPrefix(line, "att"):
			att, err := parseAtt(line, source, lineNo)
			if err != nil {
				return nil, err
			}
			attacks = append(attacks, att)

		case strings.HasPrefix(line, "vot"):
			vote, err := parseVote(line, source, lineNo)
			if err != nil {
				return nil, err
			}
			key := [2]string{vote.Voter, vote.Target}
			if i, seen := voteIdx[key]; seen {
				votes[i] = vote
			} else {
				voteIdx[key] = len(votes)
				votes = append(votes, vote)
			}

		default:
			return nil, &ParseError{Source: source, Line: lineNo,
				Msg: fmt.Sprintf("unrecognized record %q (want arg, att or vot)", line)}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read apx input: %w", err)
	}

	fw, err := model.NewFramework(args, attacks, votes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return fw, nil
}

// inner returns the content between the first '(' and the last ')'.
func inner(line string) (string, bool) {
	open := strings.Index(line, "(")
	closing := strings.LastIndex(line, ")")
	if open < 0 || closing < open {
		return "", false
	}
	return line[open+1 : closing], true
}

func parseArg(line, source string, lineNo int) (string, error) {
	content, ok := inner(line)
	if !ok || strings.TrimSpace(content) == "" {
		return "", &ParseError{Source: source, Line: lineNo,
			Msg: fmt.Sprintf("malformed record %q (want arg(<id>).)", line)}
	}
	return strings.TrimSpace(content), nil
}

func parseAtt(line, source string, lineNo int) (model.Attack, error) {
	content, ok := inner(line)
	if !ok {
		return model.Attack{}, &ParseError{Source: source, Line: lineNo,
			Msg: fmt.Sprintf("malformed record %q (want att(<id>, <id>).)", line)}
	}
	parts := strings.Split(content, ",")
	if len(parts) != 2 {
		return model.Attack{}, &ParseError{Source: source, Line: lineNo,
			Msg: fmt.Sprintf("malformed record %q (want att(<id>, <id>).)", line)}
	}
	att := model.Attack{
		Attacker: strings.TrimSpace(parts[0]),
		Target:   strings.TrimSpace(parts[1]),
	}
	if att.Attacker == "" || att.Target == "" {
		return model.Attack{}, &ParseError{Source: source, Line: lineNo,
			Msg: fmt.Sprintf("malformed record %q (empty argument id)", line)}
	}
	return att, nil
}

func parseVote(line, source string, lineNo int) (model.Vote, error) {
	content, ok := inner(line)
	if !ok {
		return model.Vote{}, &ParseError{Source: source, Line: lineNo,
			Msg: fmt.Sprintf("malformed record %q (want vot(<voter>, <id>, <value>).)", line)}
	}
	parts := strings.Split(content, ",")
	if len(parts) != 3 {
		return model.Vote{}, &ParseError{Source: source, Line: lineNo,
			Msg: fmt.Sprintf("malformed record %q (want vot(<voter>, <id>, <value>).)", line)}
	}
	voter := strings.TrimSpace(parts[0])
	target := strings.TrimSpace(parts[1])
	valueStr := strings.TrimSpace(parts[2])

	var value int
	switch valueStr {
	case "-1":
		value = -1
	case "0":
		value = 0
	case "1":
		value = 1
	default:
		return model.Vote{}, &ParseError{Source: source, Line: lineNo,
			Msg: fmt.Sprintf("invalid vote value %q (want -1, 0 or 1)", valueStr)}
	}
	if voter == "" || target == "" {
		return model.Vote{}, &ParseError{Source: source, Line: lineNo,
			Msg: fmt.Sprintf("malformed record %q (empty voter or argument id)", line)}
	}
	return model.Vote{Voter: voter, Target: target, Value: value}, nil
}
