package strategy

import (
	"context"
	"math"

	"github.com/hupe1980/lloyd/distance"
	"github.com/hupe1980/lloyd/matrix"
)

// elkan prunes exact distance computations with Elkan's triangle-inequality
// bounds: one upper bound per point (distance to its assigned center) and
// one lower bound per point-center pair, both carried across iterations and
// shifted by the per-center displacement after every step.
//
// Ref paper: https://cdn.aaai.org/ICML/2003/ICML03-022.pdf
type elkan struct {
	data *matrix.Dense
	opts Options

	primed bool
	k      int
	upper  []float64
	lower  [][]float64

	// scratch reused across iterations
	cc [][]float64
	s  []float64
}

func (e *elkan) Iterate(ctx context.Context, centers *matrix.Dense, assignments []int, counts []int) (float64, error) {
	n := e.data.Rows()
	k := centers.Rows()

	if !e.primed || e.k != k {
		// Bounds are missing or sized for a different center set; fall back
		// to an exact pass that re-primes them.
		e.alloc(n, k)
		err := parallelFor(ctx, n, e.opts.parallelism(), func(start, end int) error {
			for i := start; i < end; i++ {
				e.prime(centers, assignments, i)
			}
			return nil
		})
		if err != nil {
			return 0, err
		}
	} else {
		halfCenterDistances(centers, e.cc, e.s)
		err := parallelFor(ctx, n, e.opts.parallelism(), func(start, end int) error {
			for i := start; i < end; i++ {
				e.assign(centers, assignments, i)
			}
			return nil
		})
		if err != nil {
			return 0, err
		}
	}

	moves, shift, err := recomputeCentroids(ctx, e.data, centers, assignments, counts, e.opts.parallelism())
	if err != nil {
		return 0, err
	}

	// Centers moved: shift every bound by the corresponding displacement.
	err = parallelFor(ctx, n, e.opts.parallelism(), func(start, end int) error {
		for i := start; i < end; i++ {
			e.upper[i] += moves[assignments[i]]
			lower := e.lower[i]
			for c := range lower {
				lower[c] = math.Max(lower[c]-moves[c], 0)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	e.primed = true
	return shift, nil
}

// Invalidate discards the cached bounds; the next Iterate re-primes from
// exact distances.
func (e *elkan) Invalidate() { e.primed = false }

func (e *elkan) alloc(n, k int) {
	e.k = k
	if len(e.upper) != n {
		e.upper = make([]float64, n)
		e.lower = make([][]float64, n)
	}
	for i := range e.lower {
		if len(e.lower[i]) != k {
			e.lower[i] = make([]float64, k)
		}
	}
	e.cc = make([][]float64, k)
	for i := range e.cc {
		e.cc[i] = make([]float64, k)
	}
	e.s = make([]float64, k)
}

// prime assigns point i by exact distances to every center and seeds its
// bounds from them.
func (e *elkan) prime(centers *matrix.Dense, assignments []int, i int) {
	row := e.data.Row(i)
	best := 0
	bestDist := distance.L2(row, centers.Row(0))
	e.lower[i][0] = bestDist
	for c := 1; c < centers.Rows(); c++ {
		d := distance.L2(row, centers.Row(c))
		e.lower[i][c] = d
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	assignments[i] = best
	e.upper[i] = bestDist
}

// assign applies Elkan's pruning rules to point i: skip the point entirely
// when its upper bound cannot reach the nearest other center, tighten the
// upper bound at most once, and compute an exact distance to a rival center
// only when both its lower bound and the half inter-center distance fail to
// rule it out.
func (e *elkan) assign(centers *matrix.Dense, assignments []int, i int) {
	a := assignments[i]
	u := e.upper[i]
	if u <= e.s[a] {
		return
	}

	row := e.data.Row(i)
	lower := e.lower[i]
	tight := false
	for c := 0; c < centers.Rows(); c++ {
		if c == a || u <= lower[c] || u <= e.cc[a][c] {
			continue
		}
		if !tight {
			u = distance.L2(row, centers.Row(a))
			lower[a] = u
			e.upper[i] = u
			tight = true
			if u <= lower[c] || u <= e.cc[a][c] {
				continue
			}
		}
		d := distance.L2(row, centers.Row(c))
		lower[c] = d
		if d < u {
			a, u = c, d
			e.upper[i] = u
		}
	}
	assignments[i] = a
}
