// Package distance provides the squared-L2 kernels used by the clustering
// strategies. Clustering assignment only compares distances, so the squared
// form is used everywhere and square roots are taken only where a caller
// needs a true norm.
package distance

import (
	"math"

	"github.com/hupe1980/lloyd/matrix"
)

// SquaredL2 returns the squared Euclidean distance between two vectors.
// Assumes vectors are the same length (caller's responsibility).
func SquaredL2(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// L2 returns the Euclidean distance between two vectors.
func L2(a, b []float64) float64 {
	return math.Sqrt(SquaredL2(a, b))
}

// Nearest returns the index of the center nearest to p and the squared
// distance to it. Ties resolve to the lowest index.
func Nearest(centers *matrix.Dense, p []float64) (int, float64) {
	best := 0
	bestDist := SquaredL2(p, centers.Row(0))
	for c := 1; c < centers.Rows(); c++ {
		if d := SquaredL2(p, centers.Row(c)); d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best, bestDist
}

// NearestTwo returns the indices and squared distances of the nearest and
// second-nearest centers to p. Ties resolve to the lowest index. With a
// single center the second index is -1 and its distance +Inf.
func NearestTwo(centers *matrix.Dense, p []float64) (first int, firstDist float64, second int, secondDist float64) {
	first, firstDist = 0, SquaredL2(p, centers.Row(0))
	second, secondDist = -1, math.Inf(1)
	for c := 1; c < centers.Rows(); c++ {
		d := SquaredL2(p, centers.Row(c))
		switch {
		case d < firstDist:
			second, secondDist = first, firstDist
			first, firstDist = c, d
		case d < secondDist:
			second, secondDist = c, d
		}
	}
	return first, firstDist, second, secondDist
}
