package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/expki/go-colorquant/compute"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_LoadMissing(t *testing.T) {
	store := NewFile(filepath.Join(t.TempDir(), "missing.txt"))

	centroids, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, centroids)
}

func TestFile_SaveLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "centroids.txt")
	store := NewFile(path)
	assert.Equal(t, path, store.Path())

	first := compute.CentroidSet{{1, 2, 3}, {4, 5, 6}}
	require.NoError(t, store.Save(ctx, first))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1,2,3\n4,5,6\n", string(raw))

	second := compute.CentroidSet{{0, 0, 0.5}, {10, 10, 10.5}}
	require.NoError(t, store.Save(ctx, second))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, loaded)

	// no temporary files are left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFile_Compressed(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "centroids.txt"+CompressedSuffix)
	store := NewFile(path)

	centroids := compute.CentroidSet{{12.5, 0, 255}, {1.0 / 3.0, 2, 3}}
	require.NoError(t, store.Save(ctx, centroids))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x28, 0xb5, 0x2f, 0xfd}, raw[:4], "zstd magic number")

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, centroids, loaded)
}

func TestFile_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "centroids.txt")
	require.NoError(t, os.WriteFile(path, []byte("1,2\n"), 0644))

	_, err := NewFile(path).Load(context.Background())
	assert.Error(t, err)
}

func TestFile_SaveCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewFile(filepath.Join(t.TempDir(), "c.txt")).Save(ctx, compute.CentroidSet{{1, 1, 1}})
	assert.ErrorIs(t, err, context.Canceled)
}
