package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lloyd/matrix"
)

func TestRNGDeterminism(t *testing.T) {
	a := NewRNG(1).UniformMatrix(4, 3)
	b := NewRNG(1).UniformMatrix(4, 3)

	assert.True(t, a.Equal(b, 0))
}

func TestRNGReset(t *testing.T) {
	r := NewRNG(99)
	first := r.Float64()
	r.Reset()

	assert.Equal(t, first, r.Float64())
}

func TestUniformMatrixRange(t *testing.T) {
	m := NewRNG(3).UniformMatrix(10, 2)
	for i := 0; i < 10; i++ {
		for j := 0; j < 2; j++ {
			v := m.At(i, j)
			assert.GreaterOrEqual(t, v, 0.0)
			assert.Less(t, v, 1.0)
		}
	}
}

func TestGaussianClusters(t *testing.T) {
	means := matrix.NewDenseData(2, 2, []float64{0, 0, 100, 100})
	pts := NewRNG(5).GaussianClusters(20, means, 0.1)

	require.Equal(t, 20, pts.Rows())
	// Even rows come from the first mean, odd rows from the second.
	assert.InDelta(t, 0, pts.At(0, 0), 1)
	assert.InDelta(t, 100, pts.At(1, 0), 1)
}
