package lloyd_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/lloyd"
	"github.com/hupe1980/lloyd/matrix"
)

func ExampleKMeans_Cluster() {
	// Six points in two dimensions, forming two obvious groups.
	data := matrix.NewDenseData(6, 2, []float64{
		0.0, 0.1,
		0.1, 0.0,
		0.1, 0.1,
		9.0, 9.1,
		9.1, 9.0,
		9.1, 9.1,
	})

	km := lloyd.New(2,
		lloyd.WithAlgorithm(lloyd.AlgorithmElkan),
		lloyd.WithInitialCentroids(data.Gather([]int{0, 3})),
	)

	result, err := km.Cluster(context.Background(), data)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(result.Labels)
	fmt.Println(result.Centroids.Rows(), result.Centroids.Cols())
	// Output:
	// [0 0 0 1 1 1]
	// 2 2
}
