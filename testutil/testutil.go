// Package testutil provides seeded data generators shared by tests and
// benchmarks.
package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/lloyd/matrix"
)

// RNG encapsulates a seeded random number generator.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// FillUniform fills dst with random values in range [0, 1).
// Locks only once per call (preferred over calling Float64 in a loop).
func (r *RNG) FillUniform(dst []float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = r.rand.Float64()
	}
}

// UniformMatrix generates a rows×cols matrix with values in range [0, 1).
func (r *RNG) UniformMatrix(rows, cols int) *matrix.Dense {
	data := make([]float64, rows*cols)
	r.FillUniform(data)
	return matrix.NewDenseData(rows, cols, data)
}

// GaussianClusters generates rows points scattered around the given cluster
// means with the given standard deviation. Point i is drawn around mean
// i%len(means), so every mean receives points.
func (r *RNG) GaussianClusters(rows int, means *matrix.Dense, stddev float64) *matrix.Dense {
	r.mu.Lock()
	defer r.mu.Unlock()

	cols := means.Cols()
	out := matrix.NewDense(rows, cols)
	for i := 0; i < rows; i++ {
		mean := means.Row(i % means.Rows())
		row := out.Row(i)
		for j := range row {
			row[j] = mean[j] + r.rand.NormFloat64()*stddev
		}
	}
	return out
}
