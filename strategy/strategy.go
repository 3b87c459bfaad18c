// Package strategy implements the Lloyd-step family: five interchangeable
// algorithms that perform one assign-then-update iteration of k-means. All
// variants produce identical assignments and centers for identical inputs;
// they differ only in how much exact distance computation they avoid.
//
// Every variant resolves nearest-center ties to the lowest center index and
// recomputes centroids through one shared accumulation helper, so their
// floating-point results match bit for bit.
package strategy

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/hupe1980/lloyd/distance"
	"github.com/hupe1980/lloyd/matrix"
)

// Supported strategy names.
const (
	Naive             = "naive"
	Elkan             = "elkan"
	Hamerly           = "hamerly"
	DualTree          = "dualtree"
	DualTreeCoverTree = "dualtree-covertree"
)

// Names returns the supported strategy names.
func Names() []string {
	return []string{Naive, Elkan, Hamerly, DualTree, DualTreeCoverTree}
}

// Strategy performs one Lloyd iteration: it writes the nearest-center index
// of every point into assignments, recomputes centers in place as the mean
// of their assigned points (centers with no points keep their position), and
// fills counts with the per-center point totals. The returned shift is the
// Euclidean norm of the concatenated center displacements; a zero shift
// means the centers are stable.
//
// Strategies that cache distance bounds tie their validity to the centers
// they last produced. Invalidate must be called whenever centers are mutated
// outside Iterate (empty-cluster handling, cluster removal); the next
// Iterate then re-primes from exact distances instead of trusting stale
// bounds.
type Strategy interface {
	Iterate(ctx context.Context, centers *matrix.Dense, assignments []int, counts []int) (shift float64, err error)
	Invalidate()
}

// Options configures strategy construction.
type Options struct {
	// Parallelism is the number of point chunks processed concurrently.
	// Values below 1 mean GOMAXPROCS. Chunk boundaries and merge order are
	// deterministic, so a given parallelism always reproduces the same
	// floating-point results.
	Parallelism int
	// LeafSize is the kd-tree leaf size for the dualtree strategy.
	// Values below 1 mean tree.DefaultLeafSize.
	LeafSize int
}

func (o Options) parallelism() int {
	if o.Parallelism < 1 {
		return runtime.GOMAXPROCS(0)
	}
	return o.Parallelism
}

// New creates the named strategy over data. The strategy holds a reference
// to data for its lifetime; data must not be mutated while the strategy is
// in use.
func New(name string, data *matrix.Dense, opts Options) (Strategy, error) {
	switch name {
	case Naive, "":
		return &naive{data: data, opts: opts}, nil
	case Elkan:
		return &elkan{data: data, opts: opts}, nil
	case Hamerly:
		return &hamerly{data: data, opts: opts}, nil
	case DualTree:
		return newDualTreeKD(data, opts), nil
	case DualTreeCoverTree:
		return newDualTreeCover(data, opts), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
}

// parallelFor runs body over [0,n) split into deterministic contiguous
// chunks, one goroutine per chunk. With a single chunk it runs inline.
func parallelFor(ctx context.Context, n, parallelism int, body func(start, end int) error) error {
	chunks := parallelism
	if chunks > n {
		chunks = n
	}
	if chunks <= 1 {
		return body(0, n)
	}
	size := (n + chunks - 1) / chunks

	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < n; start += size {
		end := start + size
		if end > n {
			end = n
		}
		start, end := start, end
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return body(start, end)
		})
	}
	return g.Wait()
}

// recomputeCentroids replaces centers with the mean of their assigned points
// and fills counts. Accumulation runs over the same deterministic chunks as
// parallelFor, and the per-chunk partial sums merge in chunk order, so the
// result depends only on (data, assignments, parallelism). Centers with no
// assigned points are left unchanged. It returns the per-center displacement
// and the overall shift norm sqrt(sum of squared displacements).
func recomputeCentroids(ctx context.Context, data *matrix.Dense, centers *matrix.Dense, assignments []int, counts []int, parallelism int) (moves []float64, shift float64, err error) {
	n := data.Rows()
	d := data.Cols()
	k := centers.Rows()

	chunks := parallelism
	if chunks > n {
		chunks = n
	}
	if chunks < 1 {
		chunks = 1
	}
	size := (n + chunks - 1) / chunks
	numChunks := (n + size - 1) / size

	sums := make([][]float64, numChunks)
	chunkCounts := make([][]int, numChunks)

	g, gctx := errgroup.WithContext(ctx)
	for c := 0; c < numChunks; c++ {
		start := c * size
		end := start + size
		if end > n {
			end = n
		}
		sums[c] = make([]float64, k*d)
		chunkCounts[c] = make([]int, k)
		sum, cnt := sums[c], chunkCounts[c]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for i := start; i < end; i++ {
				a := assignments[i]
				floats.Add(sum[a*d:(a+1)*d], data.Row(i))
				cnt[a]++
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	// Merge partial sums in chunk order.
	total := sums[0]
	for i := range counts {
		counts[i] = chunkCounts[0][i]
	}
	for c := 1; c < numChunks; c++ {
		floats.Add(total, sums[c])
		for i := range counts {
			counts[i] += chunkCounts[c][i]
		}
	}

	old := centers.Clone()
	moves = make([]float64, k)
	var shiftSq float64
	for c := 0; c < k; c++ {
		if counts[c] > 0 {
			row := centers.Row(c)
			copy(row, total[c*d:(c+1)*d])
			floats.Scale(1/float64(counts[c]), row)
		}
		moves[c] = distance.L2(old.Row(c), centers.Row(c))
		shiftSq += moves[c] * moves[c]
	}
	return moves, math.Sqrt(shiftSq), nil
}

// halfCenterDistances fills cc with half the pairwise center distances and s
// with half the distance from each center to its nearest other center. Both
// are the quantities the triangle-inequality pruning rules compare against.
func halfCenterDistances(centers *matrix.Dense, cc [][]float64, s []float64) {
	k := centers.Rows()
	for i := 0; i < k; i++ {
		s[i] = math.Inf(1)
	}
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			half := distance.L2(centers.Row(i), centers.Row(j)) / 2
			cc[i][j] = half
			cc[j][i] = half
			if half < s[i] {
				s[i] = half
			}
			if half < s[j] {
				s[j] = half
			}
		}
	}
}
