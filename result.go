package lloyd

import (
	"github.com/hupe1980/lloyd/distance"
	"github.com/hupe1980/lloyd/matrix"
)

// Result holds the outcome of a clustering run.
type Result struct {
	// Output is the input augmented with a trailing label column (N×(D+1)),
	// or a single label column (N×1) under WithLabelsOnly. Under WithInPlace
	// it aliases the caller's input matrix.
	Output *matrix.Dense

	// Centroids is the final center matrix. It has the requested number of
	// rows unless WithKillEmptyClusters removed clusters during the run.
	Centroids *matrix.Dense

	// Labels maps each input point to its cluster index.
	Labels []int

	// Iterations is the number of Lloyd iterations actually performed.
	Iterations int

	// ReachedMaxIterations is true when the run stopped at the iteration cap
	// rather than at the convergence tolerance. It does not indicate an
	// error; the result is valid either way.
	ReachedMaxIterations bool
}

// Assign returns the index of the centroid nearest to point. This classifies
// new points against a finished run without re-clustering.
func (r *Result) Assign(point []float64) int {
	idx, _ := distance.Nearest(r.Centroids, point)
	return idx
}
