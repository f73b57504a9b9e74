package kmeans

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/expki/go-colorquant/compute"
)

// Initialize draws k distinct pixels uniformly at random and returns them as the
// initial centroid set, in draw order.
func Initialize(random *rand.Rand, buffer compute.PixelBuffer, k int) (compute.CentroidSet, error) {
	indexes, err := sampleIndexes(random, buffer.Len(), k)
	if err != nil {
		return nil, err
	}
	centroids := make(compute.CentroidSet, len(indexes))
	for i, idx := range indexes {
		centroids[i] = buffer.Pixels[idx].Vector()
	}
	return centroids, nil
}

// sampleIndexes returns k unique indexes in [0, n) without replacement.
func sampleIndexes(random *rand.Rand, n int, k int) ([]int, error) {
	if k <= 0 {
		return nil, errors.Join(ErrInput, fmt.Errorf("k must be positive, got %d", k))
	}
	if k > n {
		return nil, errors.Join(ErrInput, fmt.Errorf("k (%d) exceeds pixel count (%d)", k, n))
	}

	// rejection sampling keeps memory at O(k) for large images
	if k <= n/2 {
		indexes := make([]int, 0, k)
		used := make(map[int]struct{}, k)
		for len(indexes) < k {
			i := random.IntN(n)
			if _, ok := used[i]; !ok {
				used[i] = struct{}{}
				indexes = append(indexes, i)
			}
		}
		return indexes, nil
	}

	// Fisher-Yates partial shuffle when most of the range is drawn
	numbers := make([]int, n)
	for i := range numbers {
		numbers[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + random.IntN(n-i)
		numbers[i], numbers[j] = numbers[j], numbers[i]
	}
	return numbers[:k], nil
}

func newRandom(seed int64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
}
