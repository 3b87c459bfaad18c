// Package tree provides static space-partitioning trees over point matrices:
// a kd-tree with axis-aligned rectangle bounds and a cover tree with ball
// bounds. Both expose the same Node interface so tree-accelerated clustering
// can traverse either kind, relying only on conservative min/max distance
// bounds between node regions.
package tree

import (
	"math"

	"github.com/hupe1980/lloyd/distance"
	"github.com/hupe1980/lloyd/matrix"
)

// Bound is a closed region of space enclosing the points of a subtree.
// All distances are true (non-squared) Euclidean distances. Bounds are
// conservative: MinDist never overestimates and MaxDist never underestimates
// the distance between any pair of enclosed points.
type Bound interface {
	// MinDist returns a lower bound on the distance between any point in
	// this region and any point in other.
	MinDist(other Bound) float64
	// MaxDist returns an upper bound on the distance between any point in
	// this region and any point in other.
	MaxDist(other Bound) float64
	// MinDistPoint returns a lower bound on the distance from any point in
	// this region to p.
	MinDistPoint(p []float64) float64
	// MaxDistPoint returns an upper bound on the distance from any point in
	// this region to p.
	MaxDistPoint(p []float64) float64
}

// Node is a node of a spatial tree. Leaf kd-nodes hold a slice of point
// indices; cover-tree nodes hold their own point at every level.
type Node interface {
	// Bound returns the region enclosing every point of the subtree.
	Bound() Bound
	// Children returns the child nodes; empty for leaves.
	Children() []Node
	// Points returns the indices of points held directly at this node
	// (excluding points held by descendants).
	Points() []int
}

// RectBound is an axis-aligned hyperrectangle.
type RectBound struct {
	Min, Max []float64
}

// MinDistPoint implements Bound.
func (b *RectBound) MinDistPoint(p []float64) float64 {
	var sum float64
	for i := range p {
		var gap float64
		switch {
		case p[i] < b.Min[i]:
			gap = b.Min[i] - p[i]
		case p[i] > b.Max[i]:
			gap = p[i] - b.Max[i]
		}
		sum += gap * gap
	}
	return math.Sqrt(sum)
}

// MaxDistPoint implements Bound.
func (b *RectBound) MaxDistPoint(p []float64) float64 {
	var sum float64
	for i := range p {
		gap := math.Max(math.Abs(p[i]-b.Min[i]), math.Abs(p[i]-b.Max[i]))
		sum += gap * gap
	}
	return math.Sqrt(sum)
}

// MinDist implements Bound.
func (b *RectBound) MinDist(other Bound) float64 {
	switch o := other.(type) {
	case *RectBound:
		var sum float64
		for i := range b.Min {
			var gap float64
			switch {
			case o.Max[i] < b.Min[i]:
				gap = b.Min[i] - o.Max[i]
			case o.Min[i] > b.Max[i]:
				gap = o.Min[i] - b.Max[i]
			}
			sum += gap * gap
		}
		return math.Sqrt(sum)
	case *BallBound:
		return math.Max(0, b.MinDistPoint(o.Center)-o.Radius)
	default:
		panic("tree: unsupported bound type")
	}
}

// MaxDist implements Bound.
func (b *RectBound) MaxDist(other Bound) float64 {
	switch o := other.(type) {
	case *RectBound:
		var sum float64
		for i := range b.Min {
			gap := math.Max(o.Max[i]-b.Min[i], b.Max[i]-o.Min[i])
			sum += gap * gap
		}
		return math.Sqrt(sum)
	case *BallBound:
		return b.MaxDistPoint(o.Center) + o.Radius
	default:
		panic("tree: unsupported bound type")
	}
}

// BallBound is a ball around a center point.
type BallBound struct {
	Center []float64
	Radius float64
}

// MinDistPoint implements Bound.
func (b *BallBound) MinDistPoint(p []float64) float64 {
	return math.Max(0, distance.L2(b.Center, p)-b.Radius)
}

// MaxDistPoint implements Bound.
func (b *BallBound) MaxDistPoint(p []float64) float64 {
	return distance.L2(b.Center, p) + b.Radius
}

// MinDist implements Bound.
func (b *BallBound) MinDist(other Bound) float64 {
	switch o := other.(type) {
	case *BallBound:
		return math.Max(0, distance.L2(b.Center, o.Center)-b.Radius-o.Radius)
	case *RectBound:
		return math.Max(0, o.MinDistPoint(b.Center)-b.Radius)
	default:
		panic("tree: unsupported bound type")
	}
}

// MaxDist implements Bound.
func (b *BallBound) MaxDist(other Bound) float64 {
	switch o := other.(type) {
	case *BallBound:
		return distance.L2(b.Center, o.Center) + b.Radius + o.Radius
	case *RectBound:
		return o.MaxDistPoint(b.Center) + b.Radius
	default:
		panic("tree: unsupported bound type")
	}
}

// rectFromRows computes the tight bounding rectangle of the given rows.
func rectFromRows(data *matrix.Dense, rows []int) *RectBound {
	cols := data.Cols()
	b := &RectBound{
		Min: make([]float64, cols),
		Max: make([]float64, cols),
	}
	for j := 0; j < cols; j++ {
		b.Min[j] = math.Inf(1)
		b.Max[j] = math.Inf(-1)
	}
	for _, r := range rows {
		row := data.Row(r)
		for j, v := range row {
			if v < b.Min[j] {
				b.Min[j] = v
			}
			if v > b.Max[j] {
				b.Max[j] = v
			}
		}
	}
	return b
}
