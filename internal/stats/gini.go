// Package stats implements the scalar statistics behind the lot features:
// the Gini inequality coefficient and normalized Shannon entropy over
// orientation histograms.
package stats

import (
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Gini returns the Gini coefficient of a distribution of nonnegative
// values: 0 for perfect equality, approaching 1 for maximal inequality.
// Collections with fewer than two elements, or summing to zero, score 0.
//
// Uses the discrete mean-absolute-difference formulation
//
//	gini = sum_i (2*rank_i - n - 1) * x_i / (n * sum(x))
//
// over the ascending-sorted values. Negative inputs are outside the
// domain and are not defended against.
func Gini(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	total := floats.Sum(values)
	if total == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := float64(len(sorted))
	var acc float64
	for i, v := range sorted {
		acc += (2*float64(i+1) - n - 1) * v
	}
	return acc / (n * total)
}
