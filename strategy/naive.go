package strategy

import (
	"context"

	"github.com/hupe1980/lloyd/distance"
	"github.com/hupe1980/lloyd/matrix"
)

// naive is the reference strategy: an exact scan of every point against
// every center. The other strategies are validated against it.
type naive struct {
	data *matrix.Dense
	opts Options
}

func (s *naive) Iterate(ctx context.Context, centers *matrix.Dense, assignments []int, counts []int) (float64, error) {
	err := parallelFor(ctx, s.data.Rows(), s.opts.parallelism(), func(start, end int) error {
		for i := start; i < end; i++ {
			assignments[i], _ = distance.Nearest(centers, s.data.Row(i))
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	_, shift, err := recomputeCentroids(ctx, s.data, centers, assignments, counts, s.opts.parallelism())
	return shift, err
}

// Invalidate is a no-op: the naive strategy caches nothing between steps.
func (s *naive) Invalidate() {}
