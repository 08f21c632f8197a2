package rank

import (
	"sort"
	"strings"

	"github.com/cosar-tools/cosar/internal/model"
)

// Aggregation selects an aggregation function over satisfaction vectors.
type Aggregation string

const (
	Sum     Aggregation = "sum"
	Min     Aggregation = "min"
	Leximax Aggregation = "leximax"
	Leximin Aggregation = "leximin"
)

// ParseAggregation resolves an aggregation token.
func ParseAggregation(token string) (Aggregation, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "sum":
		return Sum, nil
	case "min":
		return Min, nil
	case "leximax":
		return Leximax, nil
	case "leximin":
		return Leximin, nil
	default:
		return "", &model.InvalidConfigError{
			Field: "aggregation",
			Value: token,
			Want:  "sum, min, leximax, leximin",
		}
	}
}

// Key reduces a satisfaction vector to a comparable key. Sum and min
// produce a single-entry key; leximax and leximin produce the vector
// sorted descending respectively ascending, compared lexicographically.
// Higher keys are better under every aggregation.
func Key(vec []float64, agg Aggregation) []float64 {
	switch agg {
	case Sum:
		var total float64
		for _, v := range vec {
			total += v
		}
		return []float64{total}

	case Min:
		if len(vec) == 0 {
			return []float64{0}
		}
		lowest := vec[0]
		for _, v := range vec[1:] {
			if v < lowest {
				lowest = v
			}
		}
		return []float64{lowest}

	case Leximax:
		key := append([]float64(nil), vec...)
		sort.Sort(sort.Reverse(sort.Float64Slice(key)))
		return key

	case Leximin:
		key := append([]float64(nil), vec...)
		sort.Float64s(key)
		return key
	}
	return nil
}

// CompareKeys orders two keys lexicographically: the first point of
// difference decides. Keys produced by the same aggregation over the same
// framework always have equal length.
func CompareKeys(a, b []float64) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		switch {
		case a[i] > b[i]:
			return 1
		case a[i] < b[i]:
			return -1
		}
	}
	switch {
	case len(a) > len(b):
		return 1
	case len(a) < len(b):
		return -1
	}
	return 0
}

// Ranked is one extension with its vector and key, in ranked position.
type Ranked struct {
	Extension model.Extension
	Vector    []float64
	Key       []float64
}

// Rank measures every extension and orders them best first. Extensions
// with equal keys keep their discovery order, so output is deterministic
// across runs on identical input. An empty input yields an empty ranking;
// zero extensions is a valid result, not a failure.
func Rank(f *model.Framework, exts []model.Extension, m Measure, agg Aggregation) []Ranked {
	ranked := make([]Ranked, 0, len(exts))
	for _, ext := range exts {
		vec := Vector(f, ext, m)
		ranked = append(ranked, Ranked{
			Extension: ext,
			Vector:    vec,
			Key:       Key(vec, agg),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return CompareKeys(ranked[i].Key, ranked[j].Key) > 0
	})
	return ranked
}

// Best returns the prefix of a ranking tied for the best key. Ties are
// surfaced, never broken arbitrarily.
func Best(ranked []Ranked) []Ranked {
	if len(ranked) == 0 {
		return nil
	}
	best := []Ranked{ranked[0]}
	for _, r := range ranked[1:] {
		if CompareKeys(r.Key, ranked[0].Key) != 0 {
			break
		}
		best = append(best, r)
	}
	return best
}
