package tree

import "github.com/hupe1980/lloyd/matrix"

// DefaultLeafSize is the kd-tree leaf size used when the caller passes a
// non-positive value.
const DefaultLeafSize = 20

type kdNode struct {
	bound    *RectBound
	children []Node
	points   []int
}

func (n *kdNode) Bound() Bound     { return n.bound }
func (n *kdNode) Children() []Node { return n.children }
func (n *kdNode) Points() []int    { return n.points }

// NewKDTree builds a kd-tree over every row of data using median splits on
// the widest dimension. The tree is static: it holds row indices into data
// and is only valid while data is unchanged.
func NewKDTree(data *matrix.Dense, leafSize int) Node {
	if leafSize <= 0 {
		leafSize = DefaultLeafSize
	}
	idx := make([]int, data.Rows())
	for i := range idx {
		idx[i] = i
	}
	return buildKD(data, idx, leafSize)
}

func buildKD(data *matrix.Dense, idx []int, leafSize int) *kdNode {
	bound := rectFromRows(data, idx)
	if len(idx) <= leafSize {
		return &kdNode{bound: bound, points: idx}
	}

	// Split on the widest dimension at the median.
	dim := 0
	width := bound.Max[0] - bound.Min[0]
	for j := 1; j < data.Cols(); j++ {
		if w := bound.Max[j] - bound.Min[j]; w > width {
			dim = j
			width = w
		}
	}
	if width == 0 {
		// All points coincide; splitting cannot make progress.
		return &kdNode{bound: bound, points: idx}
	}

	mid := len(idx) / 2
	selectNth(data, idx, dim, mid)

	return &kdNode{
		bound: bound,
		children: []Node{
			buildKD(data, idx[:mid], leafSize),
			buildKD(data, idx[mid:], leafSize),
		},
	}
}

// selectNth partially sorts idx so that idx[n] holds the element with the
// n-th smallest coordinate in dimension dim (quickselect).
func selectNth(data *matrix.Dense, idx []int, dim, n int) {
	lo, hi := 0, len(idx)-1
	for lo < hi {
		pivot := data.At(idx[(lo+hi)/2], dim)
		i, j := lo, hi
		for i <= j {
			for data.At(idx[i], dim) < pivot {
				i++
			}
			for data.At(idx[j], dim) > pivot {
				j--
			}
			if i <= j {
				idx[i], idx[j] = idx[j], idx[i]
				i++
				j--
			}
		}
		switch {
		case n <= j:
			hi = j
		case n >= i:
			lo = i
		default:
			return
		}
	}
}
