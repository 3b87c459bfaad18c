// Package lloyd provides a batch k-means clustering engine for Go.
//
// The engine partitions N points in D dimensions into a fixed number of
// clusters, minimizing within-cluster squared distance to the cluster
// centroid. Five update algorithms are available (naive, elkan, hamerly,
// dualtree and dualtree-covertree) that produce identical clustering
// results for identical inputs and starting centers; they differ only in
// how aggressively they prune exact distance computations:
//
//   - AlgorithmNaive: exhaustive point×center scan, the reference
//   - AlgorithmElkan: per point-center triangle-inequality bounds
//   - AlgorithmHamerly: two bounds per point, cheaper bookkeeping
//   - AlgorithmDualTree: simultaneous kd-tree traversal over points and centers
//   - AlgorithmDualTreeCoverTree: the same traversal over cover trees
//
// # Quick Start
//
// Cluster a point matrix into 3 groups:
//
//	data := matrix.NewDenseData(n, d, values) // row-major points
//	km := lloyd.New(3,
//	    lloyd.WithAlgorithm(lloyd.AlgorithmElkan),
//	    lloyd.WithSeed(42), // deterministic runs
//	)
//	result, err := km.Cluster(ctx, data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Labels)           // cluster index per point
//	fmt.Println(result.Centroids.Row(0)) // first centroid
//
// # Initialization
//
// Starting centers come from a uniform random sample without replacement,
// from the caller via WithInitialCentroids, or from refined start
// (WithRefinedStart): multiple random sub-samples are clustered
// independently and the pooled sub-centers are clustered again, trading
// extra computation for robustness against bad random draws.
//
// # Empty clusters
//
// A cluster that loses all its points is, by default, relocated to the point
// farthest from its own centroid, so no output cluster is ever empty.
// WithAllowEmptyClusters keeps empty clusters where they are;
// WithKillEmptyClusters removes them, shrinking the centroid matrix.
//
// # Output shape
//
// Result.Output is the input augmented with a trailing label column
// (N×(D+1)), or a single label column under WithLabelsOnly. WithInPlace
// augments the caller's input matrix instead of allocating a copy. The
// centroid matrix is C×D in every mode.
package lloyd
