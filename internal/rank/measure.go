// Package rank scores extensions against voter opinion and selects the
// best ones: a satisfaction measure turns an extension into a per-argument
// vector, and an aggregation function reduces vectors to comparable keys.
package rank

import (
	"strings"

	"github.com/cosar-tools/cosar/internal/model"
	"github.com/cosar-tools/cosar/internal/score"
)

// Measure selects a satisfaction measure.
type Measure string

const (
	// Supported rewards included high-score arguments.
	Supported Measure = "S"
	// Disputed penalizes excluded arguments the extension actively
	// suppresses, scaled by their vote strength.
	Disputed Measure = "D"
	// Untouched credits arguments the extension neither contains nor
	// attacks.
	Untouched Measure = "U"
)

// ParseMeasure resolves a measure token.
func ParseMeasure(token string) (Measure, error) {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "S":
		return Supported, nil
	case "D":
		return Disputed, nil
	case "U":
		return Untouched, nil
	default:
		return "", &model.InvalidConfigError{Field: "measure", Value: token, Want: "S, D, U"}
	}
}

// Vector computes the satisfaction vector of an extension: one entry per
// argument in the framework's global order, regardless of extension
// membership, so vectors of different-sized extensions compare directly.
// Exactly one rule applies per argument:
//
//	S: score(a) if a is a member, else 0
//	D: -score(a) if a is attacked by a member but is not one, else 0
//	U: score(a) if a is neither a member nor attacked by one, else 0
func Vector(f *model.Framework, ext model.Extension, m Measure) []float64 {
	n := f.Len()
	scores := score.All(f)

	in := make([]bool, n)
	for _, i := range ext {
		in[i] = true
	}
	attacked := make([]bool, n)
	for _, i := range ext {
		for _, t := range f.TargetsOf(i) {
			attacked[t] = true
		}
	}

	vec := make([]float64, n)
	for i := 0; i < n; i++ {
		switch m {
		case Supported:
			if in[i] {
				vec[i] = scores[i]
			}
		case Disputed:
			if attacked[i] && !in[i] {
				vec[i] = -scores[i]
			}
		case Untouched:
			if !in[i] && !attacked[i] {
				vec[i] = scores[i]
			}
		}
	}
	return vec
}
