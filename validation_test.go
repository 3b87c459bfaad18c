package lloyd

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lloyd/matrix"
	"github.com/hupe1980/lloyd/testutil"
)

func TestValidateConfigErrors(t *testing.T) {
	data := testutil.NewRNG(1).UniformMatrix(10, 4)

	nan := data.Clone()
	nan.Set(3, 2, math.NaN())

	wrongShape := matrix.NewDense(3, 4) // 2 clusters requested

	tests := []struct {
		name   string
		data   *matrix.Dense
		opts   []Option
		option string
	}{
		{
			name:   "unknown algorithm",
			data:   data,
			opts:   []Option{WithAlgorithm("voronoi")},
			option: "algorithm",
		},
		{
			name:   "negative max iterations",
			data:   data,
			opts:   []Option{WithMaxIterations(-1)},
			option: "max_iterations",
		},
		{
			name:   "negative tolerance",
			data:   data,
			opts:   []Option{WithTolerance(-0.5)},
			option: "tolerance",
		},
		{
			name:   "conflicting empty-cluster flags",
			data:   data,
			opts:   []Option{WithAllowEmptyClusters(), WithKillEmptyClusters()},
			option: "kill_empty_clusters",
		},
		{
			name:   "in-place with labels-only",
			data:   data,
			opts:   []Option{WithInPlace(), WithLabelsOnly()},
			option: "in_place",
		},
		{
			name:   "refined start with initial centroids",
			data:   data,
			opts:   []Option{WithRefinedStart(0.5, 2), WithInitialCentroids(matrix.NewDense(2, 4))},
			option: "initial_centroids",
		},
		{
			name:   "initial centroids wrong shape",
			data:   data,
			opts:   []Option{WithInitialCentroids(wrongShape)},
			option: "initial_centroids",
		},
		{
			name:   "non-finite input",
			data:   nan,
			option: "input",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(2, tt.opts...).Cluster(context.Background(), tt.data)
			require.Error(t, err)

			var ce *ConfigError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.option, ce.Option)
		})
	}
}

func TestValidateFailsBeforeAnyWork(t *testing.T) {
	data := testutil.NewRNG(2).UniformMatrix(10, 4)

	// in_place must not touch the input when validation fails.
	_, err := New(2, WithInPlace(), WithLabelsOnly()).Cluster(context.Background(), data)
	require.Error(t, err)
	assert.Equal(t, 4, data.Cols())
}

func TestIsConfigError(t *testing.T) {
	assert.True(t, IsConfigError(configError("input", "input required")))
	assert.False(t, IsConfigError(context.Canceled))
	assert.False(t, IsConfigError(nil))
}
