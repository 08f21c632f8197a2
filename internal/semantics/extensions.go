// Package semantics enumerates the extensions of an argumentation
// framework under the standard acceptability semantics: grounded,
// complete, preferred and stable.
package semantics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cosar-tools/cosar/internal/model"
)

// Kind selects an acceptability semantics.
type Kind string

const (
	Grounded  Kind = "grounded"
	Complete  Kind = "complete"
	Preferred Kind = "preferred"
	Stable    Kind = "stable"
)

// ParseKind resolves a semantics token, accepting both the long form and
// the two-letter display form (GR/CO/PR/ST), case-insensitively.
func ParseKind(token string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "grounded", "gr":
		return Grounded, nil
	case "complete", "co":
		return Complete, nil
	case "preferred", "pr":
		return Preferred, nil
	case "stable", "st":
		return Stable, nil
	default:
		return "", &model.InvalidConfigError{
			Field: "semantics",
			Value: token,
			Want:  "grounded, complete, preferred, stable (GR/CO/PR/ST)",
		}
	}
}

// Display returns the conventional two-letter form.
func (k Kind) Display() string {
	switch k {
	case Grounded:
		return "GR"
	case Complete:
		return "CO"
	case Preferred:
		return "PR"
	case Stable:
		return "ST"
	}
	return strings.ToUpper(string(k))
}

// maxSearchArguments bounds the subset search. Complete, preferred and
// stable enumeration walk the conflict-free subsets of the argument set,
// which is exponential; the bitmask candidate representation holds one
// bit per argument.
const maxSearchArguments = 64

// TooManyArgumentsError reports a framework too large for subset search.
// Grounded semantics has no such limit.
type TooManyArgumentsError struct {
	Count int
}

func (e *TooManyArgumentsError) Error() string {
	return fmt.Sprintf("%d arguments exceed the subset-search limit of %d (grounded semantics has no limit)",
		e.Count, maxSearchArguments)
}

// Extensions computes all extensions of f under the given semantics.
// Grounded always yields exactly one extension. Stable may legitimately
// yield none; an empty result is a reportable outcome, not an error.
// Extension order is deterministic for identical input.
func Extensions(f *model.Framework, kind Kind) ([]model.Extension, error) {
	switch kind {
	case Grounded:
		return []model.Extension{GroundedExtension(f)}, nil
	case Complete, Preferred, Stable:
	default:
		return nil, &model.InvalidConfigError{
			Field: "semantics",
			Value: string(kind),
			Want:  "grounded, complete, preferred, stable",
		}
	}

	n := f.Len()
	if n > maxSearchArguments {
		return nil, &TooManyArgumentsError{Count: n}
	}

	s := newSearch(f)
	var masks []uint64
	switch kind {
	case Complete:
		masks = s.enumerate(s.isComplete)
	case Preferred:
		masks = maximal(s.enumerate(s.isComplete))
	case Stable:
		masks = s.enumerate(s.isStable)
	}

	exts := make([]model.Extension, 0, len(masks))
	for _, m := range masks {
		exts = append(exts, maskToExtension(m, n))
	}
	return exts, nil
}

// GroundedExtension computes the least fixpoint of the characteristic
// function: start empty, repeatedly add every argument defended by the
// current set. Linear-ish in graph size, no combinatorial search, and
// therefore not subject to the argument-count limit.
func GroundedExtension(f *model.Framework) model.Extension {
	n := f.Len()
	in := make([]bool, n)

	for {
		// attacked[i] = some member of the current set attacks i
		attacked := make([]bool, n)
		for i := 0; i < n; i++ {
			if !in[i] {
				continue
			}
			for _, t := range f.TargetsOf(i) {
				attacked[t] = true
			}
		}

		changed := false
		for i := 0; i < n; i++ {
			if in[i] {
				continue
			}
			defended := true
			for _, a := range f.AttackersOf(i) {
				if !attacked[a] {
					defended = false
					break
				}
			}
			if defended {
				in[i] = true
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	ext := model.Extension{}
	for i := 0; i < n; i++ {
		if in[i] {
			ext = append(ext, i)
		}
	}
	return ext
}

// search holds the bitmask adjacency used by the subset walk.
type search struct {
	n        int
	attacks  []uint64 // attacks[i] = set of arguments i attacks (self included on self-attack)
	attacked []uint64 // attacked[i] = set of arguments attacking i
	full     uint64
}

func newSearch(f *model.Framework) *search {
	n := f.Len()
	s := &search{
		n:        n,
		attacks:  make([]uint64, n),
		attacked: make([]uint64, n),
	}
	for i := 0; i < n; i++ {
		for _, t := range f.TargetsOf(i) {
			s.attacks[i] |= 1 << uint(t)
			s.attacked[t] |= 1 << uint(i)
		}
	}
	if n == 64 {
		s.full = ^uint64(0)
	} else {
		s.full = (1 << uint(n)) - 1
	}
	return s
}

// enumerate walks the conflict-free subsets depth first, pruning any
// branch as soon as including an argument would introduce a conflict,
// and collects the masks accepted by pred. Exclusion is explored before
// inclusion, which fixes the discovery order.
func (s *search) enumerate(pred func(uint64) bool) []uint64 {
	var found []uint64
	var walk func(i int, mask uint64)
	walk = func(i int, mask uint64) {
		if i == s.n {
			if pred(mask) {
				found = append(found, mask)
			}
			return
		}
		walk(i+1, mask)

		bit := uint64(1) << uint(i)
		// conflict-free inclusion: nothing in the set attacks i, and i
		// attacks neither the set nor itself
		if s.attacked[i]&mask == 0 && s.attacks[i]&(mask|bit) == 0 {
			walk(i+1, mask|bit)
		}
	}
	walk(0, 0)
	return found
}

// reach returns the set of arguments attacked by members of mask.
func (s *search) reach(mask uint64) uint64 {
	var r uint64
	for rest := mask; rest != 0; rest &= rest - 1 {
		i := trailingIndex(rest)
		r |= s.attacks[i]
	}
	return r
}

// isComplete holds for a conflict-free mask that equals its own defended
// set: every member is defended (admissibility) and every defended
// argument is a member (closure under defense).
func (s *search) isComplete(mask uint64) bool {
	reach := s.reach(mask)
	for i := 0; i < s.n; i++ {
		defended := s.attacked[i]&^reach == 0
		if mask&(1<<uint(i)) != 0 {
			if !defended {
				return false
			}
			continue
		}
		if defended {
			// a defended outsider: the set is not closed under defense
			return false
		}
	}
	return true
}

// isStable holds for a conflict-free mask that attacks every argument
// outside it.
func (s *search) isStable(mask uint64) bool {
	return mask|s.reach(mask) == s.full
}

// maximal keeps the masks not strictly contained in another mask of the
// list, preserving discovery order.
func maximal(masks []uint64) []uint64 {
	var out []uint64
	for i, m := range masks {
		dominated := false
		for j, other := range masks {
			if i == j {
				continue
			}
			if m != other && m&^other == 0 {
				dominated = true
				break
			}
		}
		if !dominated {
			out = append(out, m)
		}
	}
	return out
}

func maskToExtension(mask uint64, n int) model.Extension {
	ext := model.Extension{}
	for i := 0; i < n; i++ {
		if mask&(1<<uint(i)) != 0 {
			ext = append(ext, i)
		}
	}
	sort.Ints(ext)
	return ext
}

func trailingIndex(v uint64) int {
	i := 0
	for v&1 == 0 {
		v >>= 1
		i++
	}
	return i
}
