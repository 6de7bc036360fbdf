package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Mean returns the arithmetic mean of xs, or 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

// Entropy is the Shannon entropy of dist with log base len(dist), so a
// uniform distribution scores 1. Zero entries contribute nothing. Bounds of
// a credal set need not sum to 1, so the result can exceed 1.
func Entropy(dist []float64) float64 {
	if len(dist) < 2 {
		return 0
	}
	return stat.Entropy(dist) / math.Log(float64(len(dist)))
}

// Flatten concatenates the rows of a matrix.
func Flatten(rows [][]int) []int {
	var n int
	for _, r := range rows {
		n += len(r)
	}
	out := make([]int, 0, n)
	for _, r := range rows {
		out = append(out, r...)
	}
	return out
}
