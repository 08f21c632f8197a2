// Package score aggregates voter opinion into per-argument scores. It is
// the only channel through which votes reach pruning and satisfaction
// measurement, so both analyses read the same evidence the same way.
package score

import "github.com/cosar-tools/cosar/internal/model"

// Net returns the net vote for one argument: the sum of vote values
// targeting it. Unvoted arguments score 0. Pure and total over any
// framework.
func Net(f *model.Framework, arg string) float64 {
	var sum float64
	for _, v := range f.Votes() {
		if v.Target == arg {
			sum += float64(v.Value)
		}
	}
	return sum
}

// All returns the net vote for every argument, indexed by the framework's
// global argument order.
func All(f *model.Framework) []float64 {
	scores := make([]float64, f.Len())
	for _, v := range f.Votes() {
		if i, ok := f.Index(v.Target); ok {
			scores[i] += float64(v.Value)
		}
	}
	return scores
}
