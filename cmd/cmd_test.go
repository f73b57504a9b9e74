package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/expki/go-colorquant/compute"
	"github.com/expki/go-colorquant/config"
	"github.com/expki/go-colorquant/database"
	"github.com/expki/go-colorquant/imageio"
	"github.com/expki/go-colorquant/kmeans"
	"github.com/expki/go-colorquant/noop"
	"github.com/expki/go-colorquant/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeImage(t *testing.T, dir string) string {
	t.Helper()
	buffer, err := compute.NewPixelBuffer([]compute.Pixel{
		{0, 0, 0}, {0, 0, 1},
		{10, 10, 10}, {10, 10, 11},
	}, 2, 2)
	require.NoError(t, err)
	path := filepath.Join(dir, "input.png")
	require.NoError(t, imageio.Save(path, buffer))
	return path
}

func TestSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	out, err := execute(t, "sample", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	cfg, err := config.ParseConfig(raw)
	require.NoError(t, err)
	assert.Equal(t, config.DEFAULT_K, cfg.KMeans.K)
}

func TestSample_RequiresPath(t *testing.T) {
	_, err := execute(t, "sample")
	assert.Error(t, err)
}

func TestRun_Flags(t *testing.T) {
	dir := t.TempDir()
	input := writeImage(t, dir)
	output := filepath.Join(dir, "out", "result.png")
	centroids := filepath.Join(dir, "centroids.txt")

	_, err := execute(t, "run",
		"--input", input,
		"--output", output,
		"-k", "2",
		"--workers", "2",
		"--seed", "7",
		"--centroids", centroids,
		"--log-level", "error",
	)
	require.NoError(t, err)

	result, err := imageio.Load(output)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Width)
	assert.Equal(t, 2, result.Height)
	// whatever the initial sample, the run settles on one colour per pair
	assert.Equal(t, result.Pixels[0], result.Pixels[1])
	assert.Equal(t, result.Pixels[2], result.Pixels[3])

	stored, err := store.NewFile(centroids).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestRun_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Config{
		Input:    writeImage(t, dir),
		Output:   filepath.Join(dir, "result.jpg"),
		LogLevel: config.LogLevelError,
		KMeans:   config.KMeans{K: 2, MaxIterations: 5, Seed: 1},
		Centroids: config.Centroids{
			Path: filepath.Join(dir, "centroids.txt"+store.CompressedSuffix),
		},
	}
	raw, err := json.Marshal(cfg)
	require.NoError(t, err)
	configPath := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(configPath, raw, 0600))

	_, err = execute(t, "run", "--config", configPath)
	require.NoError(t, err)
	assert.FileExists(t, cfg.Output)

	stored, err := store.NewFile(cfg.Centroids.Path).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestRun_Database(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Config{
		Input:    writeImage(t, dir),
		Output:   filepath.Join(dir, "result.png"),
		LogLevel: config.LogLevelError,
		KMeans:   config.KMeans{K: 2, Seed: 3},
		Centroids: config.Centroids{
			Database: &config.Database{Sqlite: filepath.Join(dir, "centroids.db"), Run: "test"},
		},
	}
	raw, err := json.Marshal(cfg)
	require.NoError(t, err)
	configPath := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(configPath, raw, 0600))

	_, err = execute(t, "run", "--config", configPath)
	require.NoError(t, err)
	assert.FileExists(t, cfg.Output)

	// a second run resumes from the recorded set
	_, err = execute(t, "run", "--config", configPath, "--resume")
	require.NoError(t, err)
}

func TestRun_MissingInput(t *testing.T) {
	_, err := execute(t, "run", "--output", filepath.Join(t.TempDir(), "out.png"))
	assert.ErrorContains(t, err, "no input image")

	_, err = execute(t, "run", "--input", "in.png")
	assert.ErrorContains(t, err, "no output image")
}

func TestRun_BadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0600))

	_, err := execute(t, "run", "--config", path)
	assert.Error(t, err)

	_, err = execute(t, "run", "--config", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestRun_UnreadableImage(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.png")
	require.NoError(t, os.WriteFile(input, []byte("not an image"), 0600))

	_, err := execute(t, "run", "--input", input, "--output", filepath.Join(dir, "out.png"), "--log-level", "error")
	assert.ErrorIs(t, err, kmeans.ErrInput)

	_, err = execute(t, "run", "--input", filepath.Join(dir, "missing.png"), "--output", filepath.Join(dir, "out.png"), "--log-level", "error")
	assert.ErrorIs(t, err, kmeans.ErrInput)
}

func TestRun_PersistsToDefaultPath(t *testing.T) {
	dir := t.TempDir()
	input := writeImage(t, dir)
	t.Chdir(dir)

	_, err := execute(t, "run", "--input", input, "--output", "result.png", "-k", "2", "--log-level", "error")
	require.NoError(t, err)

	stored, err := store.NewFile(config.DEFAULT_CENTROIDS_PATH).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestRun_NoCentroids(t *testing.T) {
	dir := t.TempDir()
	input := writeImage(t, dir)
	t.Chdir(dir)

	_, err := execute(t, "run", "--input", input, "--output", "result.png", "-k", "2", "--no-centroids", "--log-level", "error")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "result.png"))
	assert.NoFileExists(t, filepath.Join(dir, config.DEFAULT_CENTROIDS_PATH))
}

func TestOpenStore(t *testing.T) {
	dir := t.TempDir()

	centroids, closeStore, err := openStore(config.Centroids{Disabled: true, Path: filepath.Join(dir, "c.txt")})
	require.NoError(t, err)
	closeStore()
	assert.IsType(t, noop.Store{}, centroids)

	centroids, closeStore, err = openStore(config.Centroids{})
	require.NoError(t, err)
	closeStore()
	require.IsType(t, &store.File{}, centroids)
	assert.Equal(t, config.DEFAULT_CENTROIDS_PATH, centroids.(*store.File).Path())

	centroids, closeStore, err = openStore(config.Centroids{Path: filepath.Join(dir, "c.txt")})
	require.NoError(t, err)
	closeStore()
	assert.IsType(t, &store.File{}, centroids)

	centroids, closeStore, err = openStore(config.Centroids{
		Path:        filepath.Join(dir, "c.txt"),
		ObjectStore: &config.ObjectStore{Endpoint: "localhost:9000", Bucket: "b", Key: "k"},
	})
	require.NoError(t, err)
	closeStore()
	assert.IsType(t, &store.Object{}, centroids)

	centroids, closeStore, err = openStore(config.Centroids{
		Path:     filepath.Join(dir, "c.txt"),
		Database: &config.Database{Sqlite: filepath.Join(dir, "c.db")},
	})
	require.NoError(t, err)
	closeStore()
	assert.IsType(t, &database.Store{}, centroids)
}
