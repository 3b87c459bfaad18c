package distance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lloyd/matrix"
)

func TestSquaredL2(t *testing.T) {
	assert.Equal(t, 0.0, SquaredL2([]float64{1, 2}, []float64{1, 2}))
	assert.Equal(t, 25.0, SquaredL2([]float64{0, 0}, []float64{3, 4}))
	assert.Equal(t, 5.0, L2([]float64{0, 0}, []float64{3, 4}))
}

func TestNearest(t *testing.T) {
	centers := matrix.NewDenseData(3, 2, []float64{
		0, 0,
		10, 10,
		-5, 0,
	})

	idx, d := Nearest(centers, []float64{9, 9})
	assert.Equal(t, 1, idx)
	assert.Equal(t, 2.0, d)

	// Ties resolve to the lowest index.
	idx, _ = Nearest(centers, []float64{-2.5, 0})
	assert.Equal(t, 0, idx)
}

func TestNearestTwo(t *testing.T) {
	centers := matrix.NewDenseData(3, 2, []float64{
		0, 0,
		10, 10,
		1, 1,
	})

	first, d1, second, d2 := NearestTwo(centers, []float64{0.4, 0.4})
	assert.Equal(t, 0, first)
	assert.Equal(t, 2, second)
	assert.Less(t, d1, d2)
}

func TestNearestTwoSingleCenter(t *testing.T) {
	centers := matrix.NewDenseData(1, 2, []float64{0, 0})

	first, _, second, _ := NearestTwo(centers, []float64{1, 1})
	require.Equal(t, 0, first)
	assert.Equal(t, -1, second)
}
