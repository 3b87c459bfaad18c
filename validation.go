package lloyd

import (
	"math"

	"github.com/hupe1980/lloyd/matrix"
)

// validate checks the whole configuration against the input before any
// clustering work starts. Every problem surfaces as a *ConfigError; a run
// that fails validation has performed no computation.
func (km *KMeans) validate(data *matrix.Dense) error {
	if data == nil || data.Rows() == 0 {
		return configError("input", "input required")
	}
	n := data.Rows()

	if km.clusters < 1 {
		return configError("clusters", "must be at least 1, got %d", km.clusters)
	}
	if km.clusters > n {
		return configError("clusters", "cannot exceed the number of points: %d > %d", km.clusters, n)
	}

	switch km.opts.algorithm {
	case AlgorithmNaive, AlgorithmElkan, AlgorithmHamerly, AlgorithmDualTree, AlgorithmDualTreeCoverTree:
	default:
		return configError("algorithm", "unknown algorithm %q", km.opts.algorithm)
	}

	if km.opts.maxIterations < 0 {
		return configError("max_iterations", "must be non-negative, got %d", km.opts.maxIterations)
	}
	if km.opts.tolerance < 0 {
		return configError("tolerance", "must be non-negative, got %g", km.opts.tolerance)
	}

	if km.opts.allowEmpty && km.opts.killEmpty {
		return configError("kill_empty_clusters", "mutually exclusive with allow_empty_clusters")
	}
	if km.opts.inPlace && km.opts.labelsOnly {
		return configError("in_place", "mutually exclusive with labels_only: in-place output is the augmented input matrix")
	}

	if km.opts.refinedStart {
		if km.opts.percentage <= 0 || km.opts.percentage > 1 {
			return configError("percentage", "must lie in (0, 1], got %g", km.opts.percentage)
		}
		if km.opts.initialCentroids != nil {
			return configError("initial_centroids", "mutually exclusive with refined_start")
		}
	}

	if ic := km.opts.initialCentroids; ic != nil {
		rows, cols := ic.Dims()
		if rows != km.clusters || cols != data.Cols() {
			return configError("initial_centroids", "must be %dx%d, got %dx%d", km.clusters, data.Cols(), rows, cols)
		}
		if !finite(ic) {
			return configError("initial_centroids", "contains non-finite values")
		}
	}

	if !finite(data) {
		return configError("input", "contains non-finite values")
	}
	return nil
}

func finite(m *matrix.Dense) bool {
	for i := 0; i < m.Rows(); i++ {
		for _, v := range m.Row(i) {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}
