package model

import "fmt"

// UnknownArgumentError reports an attack or vote referencing an argument
// that was never declared.
type UnknownArgumentError struct {
	Argument string
	Context  string // "attack" or "vote"
}

func (e *UnknownArgumentError) Error() string {
	return fmt.Sprintf("unknown argument %q referenced by %s", e.Argument, e.Context)
}

// DuplicateArgumentError reports an argument declared more than once.
type DuplicateArgumentError struct {
	Argument string
}

func (e *DuplicateArgumentError) Error() string {
	return fmt.Sprintf("argument %q declared more than once", e.Argument)
}

// DuplicateAttackError reports a repeated attack between the same ordered
// pair of arguments.
type DuplicateAttackError struct {
	Attack Attack
}

func (e *DuplicateAttackError) Error() string {
	return fmt.Sprintf("duplicate attack (%s, %s)", e.Attack.Attacker, e.Attack.Target)
}

// InvalidVoteError reports a vote value outside {-1, 0, 1}.
type InvalidVoteError struct {
	Voter  string
	Target string
	Value  int
}

func (e *InvalidVoteError) Error() string {
	return fmt.Sprintf("invalid vote value %d from %q on %q (want -1, 0 or 1)", e.Value, e.Voter, e.Target)
}

// InvalidConfigError reports an unrecognized semantics, measure or
// aggregation token. It fails fast: no partial computation happens.
type InvalidConfigError struct {
	Field string
	Value string
	Want  string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid %s %q (want one of %s)", e.Field, e.Value, e.Want)
}
