package lloyd

import (
	"context"
	"math"
	"math/rand"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/lloyd/matrix"
)

// randomCenters picks clusters distinct rows of data uniformly at random
// without replacement.
func randomCenters(rng *rand.Rand, data *matrix.Dense, clusters int) *matrix.Dense {
	perm := rng.Perm(data.Rows())
	return data.Gather(perm[:clusters])
}

// refinedStart produces starting centers that are robust to bad random
// draws: samplings random sub-samples are each clustered to convergence with
// the naive algorithm, and the pooled sub-centers are clustered once more to
// yield the final centers. Sub-runs share nothing but the input data; each
// gets a fresh engine and discards its scratch state afterwards.
func (km *KMeans) refinedStart(ctx context.Context, rng *rand.Rand, data *matrix.Dense) (*matrix.Dense, error) {
	n := data.Rows()
	size := int(math.Ceil(km.opts.percentage * float64(n)))
	if size < km.clusters {
		size = km.clusters
	}
	if size > n {
		size = n
	}

	pooled := matrix.NewDense(km.opts.samplings*km.clusters, data.Cols())
	row := 0
	for s := 0; s < km.opts.samplings; s++ {
		sub := New(km.clusters,
			WithSeed(rng.Int63()),
			WithParallelism(km.opts.parallelism),
		)
		res, err := sub.Cluster(ctx, sampleRows(rng, data, size))
		if err != nil {
			return nil, err
		}
		for c := 0; c < res.Centroids.Rows(); c++ {
			pooled.SetRow(row, res.Centroids.Row(c))
			row++
		}
	}

	final := New(km.clusters,
		WithSeed(rng.Int63()),
		WithParallelism(km.opts.parallelism),
	)
	res, err := final.Cluster(ctx, pooled)
	if err != nil {
		return nil, err
	}
	return res.Centroids, nil
}

// sampleRows draws size distinct rows without replacement, tracking the
// picked indices in a bitmap.
func sampleRows(rng *rand.Rand, data *matrix.Dense, size int) *matrix.Dense {
	n := data.Rows()
	picked := roaring.New()
	for int(picked.GetCardinality()) < size {
		picked.Add(uint32(rng.Intn(n)))
	}

	rows := make([]int, 0, size)
	it := picked.Iterator()
	for it.HasNext() {
		rows = append(rows, int(it.Next()))
	}
	return data.Gather(rows)
}
