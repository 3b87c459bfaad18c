package tree

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lloyd/distance"
	"github.com/hupe1980/lloyd/matrix"
	"github.com/hupe1980/lloyd/testutil"
)

func collectPoints(n Node, out map[int]bool) {
	for _, p := range n.Points() {
		out[p] = true
	}
	for _, c := range n.Children() {
		collectPoints(c, out)
	}
}

// checkBounds verifies that every node's bound encloses all points of its
// subtree, within the Bound contract (MinDistPoint 0 for contained points,
// MaxDistPoint at least the true distance).
func checkBounds(t *testing.T, data *matrix.Dense, n Node) {
	t.Helper()

	members := map[int]bool{}
	collectPoints(n, members)

	for p := range members {
		row := data.Row(p)
		assert.InDelta(t, 0, n.Bound().MinDistPoint(row), 1e-9)
		for q := range members {
			d := distance.L2(row, data.Row(q))
			assert.GreaterOrEqual(t, n.Bound().MaxDistPoint(row)+1e-9, d)
		}
	}

	for _, c := range n.Children() {
		checkBounds(t, data, c)
	}
}

func TestKDTreeCoversAllPoints(t *testing.T) {
	rng := testutil.NewRNG(42)
	data := rng.UniformMatrix(64, 3)

	root := NewKDTree(data, 4)

	members := map[int]bool{}
	collectPoints(root, members)
	require.Len(t, members, 64)

	checkBounds(t, data, root)
}

func TestKDTreeDuplicatePoints(t *testing.T) {
	data := matrix.NewDense(10, 2) // all zero rows
	root := NewKDTree(data, 2)

	members := map[int]bool{}
	collectPoints(root, members)
	assert.Len(t, members, 10)
}

func TestCoverTreeCoversAllPoints(t *testing.T) {
	rng := testutil.NewRNG(7)
	data := rng.UniformMatrix(50, 3)

	root := NewCoverTree(data, DefaultBase)

	members := map[int]bool{}
	collectPoints(root, members)
	require.Len(t, members, 50)

	checkBounds(t, data, root)
}

func TestRectBoundDistances(t *testing.T) {
	b := &RectBound{Min: []float64{0, 0}, Max: []float64{1, 1}}

	assert.Equal(t, 0.0, b.MinDistPoint([]float64{0.5, 0.5}))
	assert.InDelta(t, 1.0, b.MinDistPoint([]float64{2, 0.5}), 1e-12)
	assert.InDelta(t, math.Sqrt(2), b.MaxDistPoint([]float64{0, 0}), 1e-12)

	other := &RectBound{Min: []float64{3, 0}, Max: []float64{4, 1}}
	assert.InDelta(t, 2.0, b.MinDist(other), 1e-12)
	assert.InDelta(t, math.Sqrt(17), b.MaxDist(other), 1e-12)
}

func TestBallBoundDistances(t *testing.T) {
	a := &BallBound{Center: []float64{0, 0}, Radius: 1}
	b := &BallBound{Center: []float64{5, 0}, Radius: 1}

	assert.InDelta(t, 3.0, a.MinDist(b), 1e-12)
	assert.InDelta(t, 7.0, a.MaxDist(b), 1e-12)
	assert.InDelta(t, 4.0, a.MinDistPoint([]float64{5, 0}), 1e-12)
	assert.InDelta(t, 6.0, a.MaxDistPoint([]float64{5, 0}), 1e-12)

	// Overlapping balls have zero minimum distance.
	c := &BallBound{Center: []float64{1, 0}, Radius: 1}
	assert.Equal(t, 0.0, a.MinDist(c))
}

func TestCrossBoundDistances(t *testing.T) {
	rect := &RectBound{Min: []float64{0, 0}, Max: []float64{1, 1}}
	ball := &BallBound{Center: []float64{4, 0}, Radius: 1}

	assert.InDelta(t, 2.0, rect.MinDist(ball), 1e-12)
	assert.InDelta(t, 2.0, ball.MinDist(rect), 1e-12)
	assert.InDelta(t, rect.MaxDistPoint(ball.Center)+1, rect.MaxDist(ball), 1e-12)
}
