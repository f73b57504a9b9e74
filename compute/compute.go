package compute

import (
	"math"
)

// Manhattan returns the L1 distance between a and b.
func Manhattan(a, b Vector3) float64 {
	return math.Abs(a[0]-b[0]) + math.Abs(a[1]-b[1]) + math.Abs(a[2]-b[2])
}

// Nearest returns the index of the centroid closest to v by L1 distance.
// Equidistant centroids resolve to the lowest index. Returns -1 for an empty set.
func Nearest(v Vector3, centroids CentroidSet) (idx int) {
	idx = -1
	minDist := math.Inf(1)
	for i, centroid := range centroids {
		dist := Manhattan(v, centroid)
		if dist < minDist {
			minDist = dist
			idx = i
		}
	}
	return idx
}
