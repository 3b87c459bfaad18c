package lloyd

import (
	"context"
	"math/rand"

	"github.com/hupe1980/lloyd/matrix"
	"github.com/hupe1980/lloyd/strategy"
)

// KMeans is a configured clustering engine. It is cheap to construct and
// carries no state between runs; every Cluster call owns its scratch data
// exclusively and discards it on return.
type KMeans struct {
	clusters int
	opts     options
}

// New creates a KMeans engine that partitions input points into clusters
// groups. The configuration is validated when Cluster is called, so an
// invalid cluster count surfaces as a ConfigError rather than a panic.
func New(clusters int, optFns ...Option) *KMeans {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &KMeans{
		clusters: clusters,
		opts:     opts,
	}
}

// Cluster partitions the rows of data into k groups, minimizing the
// within-group squared distance to the group's centroid. data must not be
// mutated during the call; it is only written to under WithInPlace, after
// the run completes.
//
// The run iterates until the centroid-shift norm drops to the configured
// tolerance or the iteration cap is hit; hitting the cap is reported via
// Result.ReachedMaxIterations, not as an error. All configuration problems
// are detected up front and returned as *ConfigError before any clustering
// work happens.
func (km *KMeans) Cluster(ctx context.Context, data *matrix.Dense) (*Result, error) {
	if err := km.validate(data); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(km.opts.seed)) // nolint gosec

	centers, err := km.initialCenters(ctx, rng, data)
	if err != nil {
		return nil, err
	}

	strat, err := strategy.New(string(km.opts.algorithm), data, strategy.Options{
		Parallelism: km.opts.parallelism,
		LeafSize:    km.opts.leafSize,
	})
	if err != nil {
		// validate already vetted the algorithm name.
		return nil, configErrorCause("algorithm", "unsupported algorithm", err)
	}
	policy := newEmptyClusterPolicy(km.opts)

	assignments := make([]int, data.Rows())
	counts := make([]int, centers.Rows())

	iterations := 0
	reachedMax := false
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		shift, err := strat.Iterate(ctx, centers, assignments, counts)
		if err != nil {
			return nil, err
		}
		iterations++

		empty := 0
		for _, c := range counts {
			if c == 0 {
				empty++
			}
		}
		mutated := false
		if empty > 0 {
			var bump float64
			counts, bump, mutated = policy.Handle(data, centers, assignments, counts)
			if mutated {
				// Centers changed outside the strategy; cached bounds are
				// stale now.
				strat.Invalidate()
			}
			shift += bump
		}
		km.opts.logger.LogIteration(ctx, iterations, shift, empty)

		if shift <= km.opts.tolerance && !mutated {
			break
		}
		if km.opts.maxIterations > 0 && iterations >= km.opts.maxIterations {
			reachedMax = true
			break
		}
	}
	km.opts.logger.LogRun(ctx, iterations, centers.Rows(), !reachedMax)

	return km.assemble(data, centers, assignments, iterations, reachedMax), nil
}

func (km *KMeans) initialCenters(ctx context.Context, rng *rand.Rand, data *matrix.Dense) (*matrix.Dense, error) {
	switch {
	case km.opts.initialCentroids != nil:
		return km.opts.initialCentroids.Clone(), nil
	case km.opts.refinedStart:
		return km.refinedStart(ctx, rng, data)
	default:
		return randomCenters(rng, data, km.clusters), nil
	}
}

func (km *KMeans) assemble(data, centers *matrix.Dense, assignments []int, iterations int, reachedMax bool) *Result {
	labels := make([]float64, len(assignments))
	for i, a := range assignments {
		labels[i] = float64(a)
	}

	var output *matrix.Dense
	switch {
	case km.opts.labelsOnly:
		output = matrix.NewDenseData(len(labels), 1, labels)
	case km.opts.inPlace:
		data.AppendColumn(labels)
		output = data
	default:
		output = data.Clone()
		output.AppendColumn(labels)
	}

	return &Result{
		Output:               output,
		Centroids:            centers,
		Labels:               assignments,
		Iterations:           iterations,
		ReachedMaxIterations: reachedMax,
	}
}
