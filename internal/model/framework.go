package model

// Attack is a directed edge from Attacker to Target.
type Attack struct {
	Attacker string `json:"attacker"`
	Target   string `json:"target"`
}

// Vote records one voter's opinion on one argument.
// Value is -1 (against), 0 (neutral) or 1 (in favor).
type Vote struct {
	Voter  string `json:"voter"`
	Target string `json:"target"`
	Value  int    `json:"value"`
}

// Framework is an immutable argumentation framework: a set of arguments,
// the attacks between them and the votes cast on them. The argument order
// is fixed at construction time (declaration order) and is the global
// ordering used for satisfaction vectors.
//
// Build one with NewFramework; never mutate the slices it hands out.
type Framework struct {
	args    []string
	index   map[string]int
	attacks []Attack
	votes   []Vote

	// adjacency by argument index
	attackersOf [][]int // attackersOf[i] = indexes of arguments attacking i
	targetsOf   [][]int // targetsOf[i] = indexes of arguments attacked by i
}

// NewFramework validates and builds a framework. Attacks and votes must
// only reference declared arguments; duplicate argument declarations and
// duplicate attacks between the same ordered pair are rejected.
func NewFramework(args []string, attacks []Attack, votes []Vote) (*Framework, error) {
	f := &Framework{
		args:        append([]string(nil), args...),
		index:       make(map[string]int, len(args)),
		attacks:     append([]Attack(nil), attacks...),
		votes:       append([]Vote(nil), votes...),
		attackersOf: make([][]int, len(args)),
		targetsOf:   make([][]int, len(args)),
	}

	for i, arg := range f.args {
		if _, dup := f.index[arg]; dup {
			return nil, &DuplicateArgumentError{Argument: arg}
		}
		f.index[arg] = i
	}

	seen := make(map[Attack]bool, len(attacks))
	for _, att := range f.attacks {
		src, ok := f.index[att.Attacker]
		if !ok {
			return nil, &UnknownArgumentError{Argument: att.Attacker, Context: "attack"}
		}
		dst, ok := f.index[att.Target]
		if !ok {
			return nil, &UnknownArgumentError{Argument: att.Target, Context: "attack"}
		}
		if seen[att] {
			return nil, &DuplicateAttackError{Attack: att}
		}
		seen[att] = true
		f.targetsOf[src] = append(f.targetsOf[src], dst)
		f.attackersOf[dst] = append(f.attackersOf[dst], src)
	}

	for _, v := range f.votes {
		if _, ok := f.index[v.Target]; !ok {
			return nil, &UnknownArgumentError{Argument: v.Target, Context: "vote"}
		}
		if v.Value < -1 || v.Value > 1 {
			return nil, &InvalidVoteError{Voter: v.Voter, Target: v.Target, Value: v.Value}
		}
	}

	return f, nil
}

// WithAttacks returns a new framework over the same arguments and votes
// with a different attack set. The argument and vote collections are
// shared with the receiver; both frameworks stay immutable.
func (f *Framework) WithAttacks(attacks []Attack) (*Framework, error) {
	nf := &Framework{
		args:        f.args,
		index:       f.index,
		attacks:     append([]Attack(nil), attacks...),
		votes:       f.votes,
		attackersOf: make([][]int, len(f.args)),
		targetsOf:   make([][]int, len(f.args)),
	}

	seen := make(map[Attack]bool, len(attacks))
	for _, att := range nf.attacks {
		src, ok := nf.index[att.Attacker]
		if !ok {
			return nil, &UnknownArgumentError{Argument: att.Attacker, Context: "attack"}
		}
		dst, ok := nf.index[att.Target]
		if !ok {
			return nil, &UnknownArgumentError{Argument: att.Target, Context: "attack"}
		}
		if seen[att] {
			return nil, &DuplicateAttackError{Attack: att}
		}
		seen[att] = true
		nf.targetsOf[src] = append(nf.targetsOf[src], dst)
		nf.attackersOf[dst] = append(nf.attackersOf[dst], src)
	}
	return nf, nil
}

// Len returns the number of arguments.
func (f *Framework) Len() int { return len(f.args) }

// Arguments returns the arguments in global order.
func (f *Framework) Arguments() []string {
	return append([]string(nil), f.args...)
}

// Argument returns the argument at index i in the global order.
func (f *Framework) Argument(i int) string { return f.args[i] }

// Index returns the global index of an argument.
func (f *Framework) Index(arg string) (int, bool) {
	i, ok := f.index[arg]
	return i, ok
}

// Attacks returns the attack set.
func (f *Framework) Attacks() []Attack {
	return append([]Attack(nil), f.attacks...)
}

// Votes returns the vote records.
func (f *Framework) Votes() []Vote {
	return append([]Vote(nil), f.votes...)
}

// AttackersOf returns the indexes of arguments attacking argument i.
func (f *Framework) AttackersOf(i int) []int { return f.attackersOf[i] }

// TargetsOf returns the indexes of arguments attacked by argument i.
func (f *Framework) TargetsOf(i int) []int { return f.targetsOf[i] }

// Extension is a set of jointly acceptable arguments, held as sorted
// global indexes into the framework it was computed for.
type Extension []int

// Contains reports whether argument index i is a member.
func (e Extension) Contains(i int) bool {
	for _, m := range e {
		if m == i {
			return true
		}
	}
	return false
}

// Names resolves the extension to argument names in global order.
func (e Extension) Names(f *Framework) []string {
	names := make([]string, 0, len(e))
	for _, i := range e {
		names = append(names, f.Argument(i))
	}
	return names
}
