package strategy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lloyd/matrix"
	"github.com/hupe1980/lloyd/testutil"
)

func testData(t *testing.T) (data, initial *matrix.Dense) {
	t.Helper()

	means := matrix.NewDenseData(4, 3, []float64{
		0, 0, 0,
		10, 0, 0,
		0, 10, 0,
		10, 10, 10,
	})
	data = testutil.NewRNG(42).GaussianClusters(120, means, 0.5)

	// First k rows as starting centers, shared across strategies.
	initial = data.Gather([]int{0, 1, 2, 3, 4})
	return data, initial
}

func runToConvergence(t *testing.T, name string, data, initial *matrix.Dense, parallelism int) ([]int, *matrix.Dense, int) {
	t.Helper()

	s, err := New(name, data, Options{Parallelism: parallelism, LeafSize: 8})
	require.NoError(t, err)

	centers := initial.Clone()
	assignments := make([]int, data.Rows())
	counts := make([]int, centers.Rows())

	iters := 0
	for iters < 100 {
		shift, err := s.Iterate(context.Background(), centers, assignments, counts)
		require.NoError(t, err)
		iters++
		if shift == 0 {
			break
		}
	}

	total := 0
	for _, c := range counts {
		total += c
	}
	require.Equal(t, data.Rows(), total, "cluster counts must sum to the point count")

	return assignments, centers, iters
}

func TestStrategiesProduceIdenticalResults(t *testing.T) {
	data, initial := testData(t)

	refAssign, refCenters, _ := runToConvergence(t, Naive, data, initial, 1)

	for _, name := range []string{Elkan, Hamerly, DualTree, DualTreeCoverTree} {
		t.Run(name, func(t *testing.T) {
			gotAssign, gotCenters, _ := runToConvergence(t, name, data, initial, 1)
			assert.Equal(t, refAssign, gotAssign)
			assert.True(t, refCenters.Equal(gotCenters, 1e-9))
		})
	}
}

func TestStrategiesIdenticalUnderParallelism(t *testing.T) {
	data, initial := testData(t)

	refAssign, refCenters, _ := runToConvergence(t, Naive, data, initial, 4)

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			gotAssign, gotCenters, _ := runToConvergence(t, name, data, initial, 4)
			assert.Equal(t, refAssign, gotAssign)
			assert.True(t, refCenters.Equal(gotCenters, 1e-9))
		})
	}
}

func TestConvergedStepIsNoop(t *testing.T) {
	data, initial := testData(t)

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			assignments, centers, _ := runToConvergence(t, name, data, initial, 1)

			s, err := New(name, data, Options{Parallelism: 1, LeafSize: 8})
			require.NoError(t, err)

			again := make([]int, len(assignments))
			counts := make([]int, centers.Rows())
			centersCopy := centers.Clone()

			shift, err := s.Iterate(context.Background(), centersCopy, again, counts)
			require.NoError(t, err)
			assert.Zero(t, shift)
			assert.Equal(t, assignments, again)
			assert.True(t, centers.Equal(centersCopy, 0))
		})
	}
}

func TestInvalidateReprimesBounds(t *testing.T) {
	data, initial := testData(t)

	for _, name := range []string{Elkan, Hamerly} {
		t.Run(name, func(t *testing.T) {
			s, err := New(name, data, Options{Parallelism: 1})
			require.NoError(t, err)
			ref, err := New(Naive, data, Options{Parallelism: 1})
			require.NoError(t, err)

			centers := initial.Clone()
			assignments := make([]int, data.Rows())
			counts := make([]int, centers.Rows())
			_, err = s.Iterate(context.Background(), centers, assignments, counts)
			require.NoError(t, err)

			// Mutate a center behind the strategy's back, as empty-cluster
			// handling does, then invalidate.
			centers.SetRow(0, data.Row(7))
			s.Invalidate()

			refCenters := centers.Clone()
			refAssign := make([]int, data.Rows())
			refCounts := make([]int, centers.Rows())
			_, err = ref.Iterate(context.Background(), refCenters, refAssign, refCounts)
			require.NoError(t, err)

			_, err = s.Iterate(context.Background(), centers, assignments, counts)
			require.NoError(t, err)

			assert.Equal(t, refAssign, assignments)
			assert.True(t, refCenters.Equal(centers, 1e-9))
		})
	}
}

func TestBoundedStrategiesHandleShrunkCenters(t *testing.T) {
	data, initial := testData(t)

	for _, name := range []string{Elkan, Hamerly} {
		t.Run(name, func(t *testing.T) {
			s, err := New(name, data, Options{Parallelism: 1})
			require.NoError(t, err)

			centers := initial.Clone()
			assignments := make([]int, data.Rows())
			counts := make([]int, centers.Rows())
			_, err = s.Iterate(context.Background(), centers, assignments, counts)
			require.NoError(t, err)

			// Drop a center, as the kill-empty policy does. The strategy
			// must re-prime instead of trusting bounds sized for the old
			// center count.
			centers.RemoveRow(centers.Rows() - 1)
			s.Invalidate()
			counts = make([]int, centers.Rows())

			_, err = s.Iterate(context.Background(), centers, assignments, counts)
			require.NoError(t, err)
			for _, a := range assignments {
				assert.Less(t, a, centers.Rows())
			}
		})
	}
}

func TestNewUnknownStrategy(t *testing.T) {
	data := testutil.NewRNG(1).UniformMatrix(10, 2)

	_, err := New("voronoi", data, Options{})
	assert.Error(t, err)
}

func TestNewDefaultsToNaive(t *testing.T) {
	data := testutil.NewRNG(1).UniformMatrix(10, 2)

	s, err := New("", data, Options{})
	require.NoError(t, err)
	assert.IsType(t, &naive{}, s)
}

func TestIterateCancelled(t *testing.T) {
	data, initial := testData(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s, err := New(Naive, data, Options{Parallelism: 4})
	require.NoError(t, err)

	centers := initial.Clone()
	_, err = s.Iterate(ctx, centers, make([]int, data.Rows()), make([]int, centers.Rows()))
	assert.ErrorIs(t, err, context.Canceled)
}
