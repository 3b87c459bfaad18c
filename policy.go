package lloyd

import (
	"github.com/hupe1980/lloyd/distance"
	"github.com/hupe1980/lloyd/matrix"
)

// emptyClusterPolicy decides what happens to clusters that end an iteration
// with zero assigned points. Exactly one policy is active per run.
type emptyClusterPolicy interface {
	// Handle repairs the empty clusters. It returns the (possibly shrunk)
	// counts slice, a shift adjustment to keep the run from converging on a
	// state it just changed, and whether centers were mutated outside the
	// update strategy, in which case cached strategy bounds are stale.
	Handle(data *matrix.Dense, centers *matrix.Dense, assignments []int, counts []int) (newCounts []int, shiftBump float64, mutated bool)
}

func newEmptyClusterPolicy(o options) emptyClusterPolicy {
	switch {
	case o.allowEmpty:
		return allowEmptyPolicy{}
	case o.killEmpty:
		return killEmptyPolicy{}
	default:
		return reinitializePolicy{}
	}
}

// allowEmptyPolicy leaves empty clusters alone: the center keeps its
// position and the cluster count never changes.
type allowEmptyPolicy struct{}

func (allowEmptyPolicy) Handle(_ *matrix.Dense, _ *matrix.Dense, _ []int, counts []int) ([]int, float64, bool) {
	return counts, 0, false
}

// reinitializePolicy relocates each empty center to the point currently
// farthest from its own center, stealing that point into the empty cluster.
// No output cluster is ever empty under this policy.
type reinitializePolicy struct{}

func (reinitializePolicy) Handle(data *matrix.Dense, centers *matrix.Dense, assignments []int, counts []int) ([]int, float64, bool) {
	var bump float64
	for c := range counts {
		if counts[c] != 0 {
			continue
		}
		// Farthest point from its assigned center, skipping clusters that
		// would become empty themselves by donating their last point.
		donor := -1
		donorDist := -1.0
		for i, a := range assignments {
			if counts[a] <= 1 {
				continue
			}
			if d := distance.SquaredL2(data.Row(i), centers.Row(a)); d > donorDist {
				donor, donorDist = i, d
			}
		}
		if donor < 0 {
			continue
		}

		bump += distance.L2(centers.Row(c), data.Row(donor))
		counts[assignments[donor]]--
		assignments[donor] = c
		counts[c] = 1
		centers.SetRow(c, data.Row(donor))
	}
	return counts, bump, bump > 0
}

// killEmptyPolicy removes empty clusters entirely, renumbering the remaining
// clusters contiguously. The cluster count decreases for all later steps.
type killEmptyPolicy struct{}

func (killEmptyPolicy) Handle(_ *matrix.Dense, centers *matrix.Dense, assignments []int, counts []int) ([]int, float64, bool) {
	removed := false
	for c := len(counts) - 1; c >= 0; c-- {
		if counts[c] != 0 {
			continue
		}
		centers.RemoveRow(c)
		counts = append(counts[:c], counts[c+1:]...)
		for i, a := range assignments {
			if a > c {
				assignments[i] = a - 1
			}
		}
		removed = true
	}
	return counts, 0, removed
}
