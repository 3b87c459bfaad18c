package strategy

import (
	"context"
	"math"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/lloyd/distance"
	"github.com/hupe1980/lloyd/matrix"
	"github.com/hupe1980/lloyd/tree"
)

// dualTree accelerates the assignment step with a simultaneous traversal of
// two spatial trees: a static tree over the points and a per-iteration tree
// over the centers. A (point-node, center-node) pair is pruned when the
// minimum distance between their regions exceeds the point-node's best
// upper bound, so whole subtrees of centers are discarded at once. When a
// point-node is left with a single candidate center its entire subtree is
// assigned without any further distance computation.
//
// Pruning is conservative only, so assignments are identical to the naive
// strategy's.
type dualTree struct {
	data  *matrix.Dense
	opts  Options
	build func(*matrix.Dense) tree.Node

	points tree.Node
}

func newDualTreeKD(data *matrix.Dense, opts Options) *dualTree {
	return &dualTree{
		data: data,
		opts: opts,
		build: func(m *matrix.Dense) tree.Node {
			return tree.NewKDTree(m, opts.LeafSize)
		},
	}
}

func newDualTreeCover(data *matrix.Dense, opts Options) *dualTree {
	return &dualTree{
		data: data,
		opts: opts,
		build: func(m *matrix.Dense) tree.Node {
			return tree.NewCoverTree(m, tree.DefaultBase)
		},
	}
}

func (s *dualTree) Iterate(ctx context.Context, centers *matrix.Dense, assignments []int, counts []int) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s.points == nil {
		// The point tree is static; the data is immutable for the run.
		s.points = s.build(s.data)
	}
	centerTree := s.build(centers)

	all := roaring.New()
	all.AddRange(0, uint64(centers.Rows()))
	s.assignNode(s.points, centerTree, all, centers, assignments)

	_, shift, err := recomputeCentroids(ctx, s.data, centers, assignments, counts, s.opts.parallelism())
	return shift, err
}

// Invalidate is a no-op: the center tree is rebuilt every iteration and the
// point tree depends only on the immutable data.
func (s *dualTree) Invalidate() {}

// assignNode assigns every point under pn, narrowing the candidate center
// set cand via the center tree before descending.
func (s *dualTree) assignNode(pn tree.Node, centerRoot tree.Node, cand *roaring.Bitmap, centers *matrix.Dense, assignments []int) {
	filtered := filterCenters(pn.Bound(), centerRoot, cand, centers)

	if filtered.GetCardinality() == 1 {
		assignSubtree(pn, int(filtered.Minimum()), assignments)
		return
	}

	for _, p := range pn.Points() {
		assignments[p] = nearestCandidate(s.data.Row(p), filtered, centers)
	}
	for _, child := range pn.Children() {
		s.assignNode(child, centerRoot, filtered, centers, assignments)
	}
}

type centerCandidate struct {
	idx uint32
	lo  float64
}

// filterCenters traverses the center tree against the point-node bound pb
// and returns the centers that could still be nearest to some point under
// pb. upper only shrinks during the walk, so a candidate collected early is
// re-checked against the final bound before it survives.
func filterCenters(pb tree.Bound, centerRoot tree.Node, cand *roaring.Bitmap, centers *matrix.Dense) *roaring.Bitmap {
	upper := math.Inf(1)
	var collected []centerCandidate

	var walk func(cn tree.Node)
	walk = func(cn tree.Node) {
		if pb.MinDist(cn.Bound()) > upper {
			return
		}
		if hi := pb.MaxDist(cn.Bound()); hi < upper {
			upper = hi
		}
		for _, c := range cn.Points() {
			if !cand.Contains(uint32(c)) {
				continue
			}
			center := centers.Row(c)
			if hi := pb.MaxDistPoint(center); hi < upper {
				upper = hi
			}
			if lo := pb.MinDistPoint(center); lo <= upper {
				collected = append(collected, centerCandidate{idx: uint32(c), lo: lo})
			}
		}
		for _, child := range cn.Children() {
			walk(child)
		}
	}
	walk(centerRoot)

	out := roaring.New()
	for _, c := range collected {
		if c.lo <= upper {
			out.Add(c.idx)
		}
	}
	return out
}

// nearestCandidate scans the candidate centers in ascending index order, so
// ties resolve to the lowest index exactly like an exhaustive scan.
func nearestCandidate(point []float64, cand *roaring.Bitmap, centers *matrix.Dense) int {
	best := -1
	bestDist := math.Inf(1)
	it := cand.Iterator()
	for it.HasNext() {
		c := int(it.Next())
		if d := distance.SquaredL2(point, centers.Row(c)); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func assignSubtree(pn tree.Node, center int, assignments []int) {
	for _, p := range pn.Points() {
		assignments[p] = center
	}
	for _, child := range pn.Children() {
		assignSubtree(child, center, assignments)
	}
}
