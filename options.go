package lloyd

import (
	"time"

	"github.com/hupe1980/lloyd/matrix"
	"github.com/hupe1980/lloyd/strategy"
)

// Algorithm selects the Lloyd-step implementation. All algorithms produce
// identical clustering results for identical inputs and starting centers;
// they differ only in wall-clock cost.
type Algorithm string

// Supported algorithms.
const (
	AlgorithmNaive             Algorithm = strategy.Naive
	AlgorithmElkan             Algorithm = strategy.Elkan
	AlgorithmHamerly           Algorithm = strategy.Hamerly
	AlgorithmDualTree          Algorithm = strategy.DualTree
	AlgorithmDualTreeCoverTree Algorithm = strategy.DualTreeCoverTree
)

const (
	// DefaultMaxIterations caps a run that never reaches the convergence
	// tolerance. Use WithMaxIterations(0) to run until convergence.
	DefaultMaxIterations = 1000

	// DefaultTolerance is the centroid-shift norm below which a run is
	// considered converged. WithTolerance(0) demands exactly stable centers.
	DefaultTolerance = 1e-6

	// DefaultSamplings is the number of refined-start sub-samples.
	DefaultSamplings = 100
)

type options struct {
	algorithm        Algorithm
	maxIterations    int
	tolerance        float64
	initialCentroids *matrix.Dense
	refinedStart     bool
	percentage       float64
	samplings        int
	allowEmpty       bool
	killEmpty        bool
	labelsOnly       bool
	inPlace          bool
	seed             int64
	parallelism      int
	leafSize         int
	logger           *Logger
}

func defaultOptions() options {
	return options{
		algorithm:     AlgorithmNaive,
		maxIterations: DefaultMaxIterations,
		tolerance:     DefaultTolerance,
		samplings:     DefaultSamplings,
		seed:          time.Now().UnixNano(),
		logger:        NoopLogger(),
	}
}

// Option configures a KMeans instance.
type Option func(*options)

// WithAlgorithm selects the update algorithm. Defaults to AlgorithmNaive.
func WithAlgorithm(a Algorithm) Option {
	return func(o *options) {
		o.algorithm = a
	}
}

// WithMaxIterations caps the number of Lloyd iterations. Zero means no cap:
// the run ends only when the centroid shift drops to the tolerance.
// Negative values are rejected at run time.
func WithMaxIterations(max int) Option {
	return func(o *options) {
		o.maxIterations = max
	}
}

// WithTolerance sets the centroid-shift norm below which the run is
// considered converged. Zero demands exactly stable centers.
func WithTolerance(tol float64) Option {
	return func(o *options) {
		o.tolerance = tol
	}
}

// WithInitialCentroids supplies the starting centers, bypassing the
// initializer. The matrix must be clusters×D for D-dimensional input.
// It is cloned before the run, so the caller's copy is never mutated.
func WithInitialCentroids(centroids *matrix.Dense) Option {
	return func(o *options) {
		o.initialCentroids = centroids
	}
}

// WithRefinedStart enables refined-start initialization: samplings random
// sub-samples of ceil(percentage×N) points (at least the cluster count) are
// each clustered to convergence with the naive algorithm, and the pooled
// sub-centers are clustered once more to produce the starting centers.
// percentage must lie in (0, 1]. Pass samplings <= 0 for DefaultSamplings.
func WithRefinedStart(percentage float64, samplings int) Option {
	return func(o *options) {
		o.refinedStart = true
		o.percentage = percentage
		if samplings <= 0 {
			samplings = DefaultSamplings
		}
		o.samplings = samplings
	}
}

// WithAllowEmptyClusters keeps clusters that lose all their points: the
// center stays where it is and the cluster count never changes.
// Mutually exclusive with WithKillEmptyClusters.
func WithAllowEmptyClusters() Option {
	return func(o *options) {
		o.allowEmpty = true
	}
}

// WithKillEmptyClusters removes clusters that lose all their points,
// renumbering the remaining clusters contiguously. The resulting centroid
// matrix can have fewer rows than the requested cluster count.
// Mutually exclusive with WithAllowEmptyClusters.
func WithKillEmptyClusters() Option {
	return func(o *options) {
		o.killEmpty = true
	}
}

// WithLabelsOnly shapes the output as a single label column (N×1) instead of
// the input augmented with a trailing label column (N×(D+1)). The centroid
// matrix is unaffected.
func WithLabelsOnly() Option {
	return func(o *options) {
		o.labelsOnly = true
	}
}

// WithInPlace augments the caller's input matrix in place with the trailing
// label column instead of allocating a separate output matrix.
// Mutually exclusive with WithLabelsOnly.
func WithInPlace() Option {
	return func(o *options) {
		o.inPlace = true
	}
}

// WithSeed makes initialization deterministic. Runs with the same data,
// configuration and seed produce identical results. Defaults to a
// time-derived seed.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithParallelism sets the number of point chunks processed concurrently
// inside each iteration. Values below 1 mean GOMAXPROCS; 1 forces the
// sequential path. Results are reproducible for a fixed parallelism.
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}

// WithLeafSize sets the kd-tree leaf size used by AlgorithmDualTree.
// Values below 1 mean the tree package default.
func WithLeafSize(n int) Option {
	return func(o *options) {
		o.leafSize = n
	}
}

// WithLogger configures structured logging for the run.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}
