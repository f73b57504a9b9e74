package kmeans

import (
	"errors"
	"fmt"

	"github.com/expki/go-colorquant/compute"
)

// Reduce merges the per-chunk partials into the next centroid set. A cluster
// that received no pixels keeps its previous centroid unchanged.
func Reduce(partials [][]Partial, previous compute.CentroidSet) (compute.CentroidSet, error) {
	k := len(previous)
	for idx, partial := range partials {
		if len(partial) != k {
			return nil, errors.Join(ErrWorker, fmt.Errorf("chunk %d returned %d clusters, expected %d", idx, len(partial), k))
		}
	}

	next := make(compute.CentroidSet, k)
	for i := range k {
		var sum compute.Vector3
		var count int
		for _, partial := range partials {
			sum = sum.Add(partial[i].Sum)
			count += partial[i].Count
		}
		if count > 0 {
			next[i] = sum.Div(float64(count))
		} else {
			next[i] = previous[i]
		}
	}
	return next, nil
}

// MaxShift returns the largest L1 movement of any centroid between two sets.
func MaxShift(previous, next compute.CentroidSet) (shift float64) {
	for i := range min(len(previous), len(next)) {
		shift = max(shift, compute.Manhattan(next[i], previous[i]))
	}
	return shift
}
