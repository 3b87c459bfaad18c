package tree

import (
	"math"

	"github.com/hupe1980/lloyd/distance"
	"github.com/hupe1980/lloyd/matrix"
)

// DefaultBase is the expansion constant of the cover tree: a node at level l
// covers points within base^l of its own point.
const DefaultBase = 2.0

type coverNode struct {
	data     *matrix.Dense
	point    int
	level    int
	radius   float64
	children []*coverNode
}

func (n *coverNode) Bound() Bound {
	return &BallBound{Center: n.data.Row(n.point), Radius: n.radius}
}

func (n *coverNode) Children() []Node {
	children := make([]Node, len(n.children))
	for i, c := range n.children {
		children[i] = c
	}
	return children
}

func (n *coverNode) Points() []int { return []int{n.point} }

// NewCoverTree builds a cover tree over every row of data. Every node owns
// one point; children of a level-l node sit at level l-1 within base^l of
// the parent point. Queries rely only on the per-node radius, an upper bound
// on the distance from the node's point to any descendant.
func NewCoverTree(data *matrix.Dense, base float64) Node {
	if base <= 1 {
		base = DefaultBase
	}
	root := &coverNode{data: data, point: 0, level: 0}
	for i := 1; i < data.Rows(); i++ {
		d := distance.L2(data.Row(root.point), data.Row(i))
		for d > math.Pow(base, float64(root.level)) {
			root.level++
		}
		root.insert(i, base)
	}
	root.computeRadius()
	return root
}

// insert attaches point p below n. The caller guarantees p lies within n's
// cover radius base^level.
func (n *coverNode) insert(p int, base float64) {
	for _, c := range n.children {
		d := distance.L2(n.data.Row(c.point), n.data.Row(p))
		if d <= math.Pow(base, float64(c.level)) {
			c.insert(p, base)
			return
		}
	}
	n.children = append(n.children, &coverNode{data: n.data, point: p, level: n.level - 1})
}

// computeRadius sets radius to an upper bound on the distance from n's point
// to any descendant point: max over children of (distance to child + child
// radius). Conservative, so bound-based pruning stays safe.
func (n *coverNode) computeRadius() float64 {
	n.radius = 0
	for _, c := range n.children {
		r := distance.L2(n.data.Row(n.point), n.data.Row(c.point)) + c.computeRadius()
		if r > n.radius {
			n.radius = r
		}
	}
	return n.radius
}
