package kmeans

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/expki/go-colorquant/compute"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	mu     sync.Mutex
	stored compute.CentroidSet
	saves  []compute.CentroidSet
	failAt int // 1-based save that fails, 0 never
}

var errDiskFull = errors.New("disk full")

func (m *memoryStore) Load(ctx context.Context) (compute.CentroidSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stored.Clone(), nil
}

func (m *memoryStore) Save(ctx context.Context, centroids compute.CentroidSet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAt > 0 && len(m.saves)+1 == m.failAt {
		return errDiskFull
	}
	m.stored = centroids.Clone()
	m.saves = append(m.saves, centroids.Clone())
	return nil
}

func scenarioBuffer(t *testing.T) compute.PixelBuffer {
	t.Helper()
	buffer, err := compute.NewPixelBuffer([]compute.Pixel{
		{0, 0, 0}, {0, 0, 1}, {10, 10, 10}, {10, 10, 11},
	}, 2, 2)
	require.NoError(t, err)
	return buffer
}

func randomBuffer(t *testing.T, seed uint64, width, height int) compute.PixelBuffer {
	t.Helper()
	random := rand.New(rand.NewPCG(seed, seed))
	pixels := make([]compute.Pixel, width*height)
	for i := range pixels {
		pixels[i] = compute.Pixel{uint8(random.IntN(256)), uint8(random.IntN(256)), uint8(random.IntN(256))}
	}
	buffer, err := compute.NewPixelBuffer(pixels, width, height)
	require.NoError(t, err)
	return buffer
}
