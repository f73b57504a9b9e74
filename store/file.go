package store

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/expki/go-colorquant/compute"
	"github.com/expki/go-colorquant/logger"
)

// File keeps the centroid set in a local text file. Paths ending in ".zst"
// are zstd compressed.
type File struct {
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Path() string {
	return f.path
}

// Load reads the centroid set. A missing file yields an empty set.
func (f *File) Load(ctx context.Context) (compute.CentroidSet, error) {
	file, err := os.Open(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Sugar().Debugf("No centroid file at %s", f.path)
		return nil, nil
	} else if err != nil {
		return nil, errors.Join(errors.New("failed to open centroid file"), err)
	}
	defer file.Close()

	centroids, err := decodeFrom(file, compressed(f.path), Decode)
	if err != nil {
		return nil, errors.Join(errors.New("failed to decode centroid file"), err)
	}
	return centroids, nil
}

// Save replaces the centroid file. The set is written to a temporary file in
// the same directory and renamed over the target, so readers never observe a
// partially written set.
func (f *File) Save(ctx context.Context, centroids compute.CentroidSet) (err error) {
	if err = ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(f.path)
	if err = os.MkdirAll(dir, 0755); err != nil {
		return errors.Join(errors.New("failed to create centroid directory"), err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return errors.Join(errors.New("failed to create temporary centroid file"), err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	err = encodeTo(tmp, compressed(f.path), func(w io.Writer) error {
		return Encode(w, centroids)
	})
	if err != nil {
		return errors.Join(errors.New("failed to write centroid file"), err)
	}
	if err = tmp.Sync(); err != nil {
		return errors.Join(errors.New("failed to sync centroid file"), err)
	}
	if err = tmp.Close(); err != nil {
		return errors.Join(errors.New("failed to close centroid file"), err)
	}
	if err = os.Rename(tmp.Name(), f.path); err != nil {
		return errors.Join(errors.New("failed to replace centroid file"), err)
	}
	return nil
}
