package strategy

import (
	"context"
	"math"

	"github.com/hupe1980/lloyd/distance"
	"github.com/hupe1980/lloyd/matrix"
)

// hamerly keeps only two bounds per point: an upper bound on the distance to
// the assigned center and a single lower bound on the distance to every
// other center (seeded from the second-nearest). Cheaper bookkeeping than
// elkan, less selective pruning.
//
// Ref paper: https://epubs.siam.org/doi/10.1137/1.9781611972801.12
type hamerly struct {
	data *matrix.Dense
	opts Options

	primed bool
	k      int
	upper  []float64
	lower  []float64

	cc [][]float64
	s  []float64
}

func (h *hamerly) Iterate(ctx context.Context, centers *matrix.Dense, assignments []int, counts []int) (float64, error) {
	n := h.data.Rows()
	k := centers.Rows()

	if !h.primed || h.k != k {
		h.alloc(n, k)
		err := parallelFor(ctx, n, h.opts.parallelism(), func(start, end int) error {
			for i := start; i < end; i++ {
				h.prime(centers, assignments, i)
			}
			return nil
		})
		if err != nil {
			return 0, err
		}
	} else {
		halfCenterDistances(centers, h.cc, h.s)
		err := parallelFor(ctx, n, h.opts.parallelism(), func(start, end int) error {
			for i := start; i < end; i++ {
				h.assign(centers, assignments, i)
			}
			return nil
		})
		if err != nil {
			return 0, err
		}
	}

	moves, shift, err := recomputeCentroids(ctx, h.data, centers, assignments, counts, h.opts.parallelism())
	if err != nil {
		return 0, err
	}

	// The single lower bound covers all non-assigned centers, so it must
	// retreat by the largest displacement any center made.
	var maxMove float64
	for _, m := range moves {
		maxMove = math.Max(maxMove, m)
	}
	err = parallelFor(ctx, n, h.opts.parallelism(), func(start, end int) error {
		for i := start; i < end; i++ {
			h.upper[i] += moves[assignments[i]]
			h.lower[i] = math.Max(h.lower[i]-maxMove, 0)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	h.primed = true
	return shift, nil
}

// Invalidate discards the cached bounds; the next Iterate re-primes from
// exact distances.
func (h *hamerly) Invalidate() { h.primed = false }

func (h *hamerly) alloc(n, k int) {
	h.k = k
	if len(h.upper) != n {
		h.upper = make([]float64, n)
		h.lower = make([]float64, n)
	}
	h.cc = make([][]float64, k)
	for i := range h.cc {
		h.cc[i] = make([]float64, k)
	}
	h.s = make([]float64, k)
}

// prime assigns point i from an exact scan and seeds its bounds with the
// distances to the nearest and second-nearest centers.
func (h *hamerly) prime(centers *matrix.Dense, assignments []int, i int) {
	first, d1, _, d2 := distance.NearestTwo(centers, h.data.Row(i))
	assignments[i] = first
	h.upper[i] = math.Sqrt(d1)
	h.lower[i] = math.Sqrt(d2)
}

// assign applies Hamerly's pruning rule to point i: the point keeps its
// center when the upper bound is below both the lower bound and half the
// distance to the nearest other center; otherwise the upper bound is
// tightened and, only if the test still fails, the point is rescanned.
func (h *hamerly) assign(centers *matrix.Dense, assignments []int, i int) {
	a := assignments[i]
	z := math.Max(h.lower[i], h.s[a])
	if h.upper[i] <= z {
		return
	}

	row := h.data.Row(i)
	h.upper[i] = distance.L2(row, centers.Row(a))
	if h.upper[i] <= z {
		return
	}

	h.prime(centers, assignments, i)
}
