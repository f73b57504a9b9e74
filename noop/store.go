package noop

import (
	"context"

	"github.com/expki/go-colorquant/compute"
)

// Store implements a centroid store that keeps nothing.
type Store struct{}

// Load implements a fake centroid load that never finds a stored set.
func (Store) Load(ctx context.Context) (compute.CentroidSet, error) {
	return nil, nil
}

// Save implements a fake centroid save.
func (Store) Save(ctx context.Context, centroids compute.CentroidSet) error {
	return nil
}
