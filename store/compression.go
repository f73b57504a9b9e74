package store

import (
	"io"
	"runtime"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// CompressedSuffix marks centroid files and objects stored zstd compressed.
const CompressedSuffix = ".zst"

func compressed(name string) bool {
	return strings.HasSuffix(name, CompressedSuffix)
}

// encodeTo writes centroids to w, compressing when requested.
func encodeTo(w io.Writer, compress bool, write func(io.Writer) error) error {
	if !compress {
		return write(w)
	}
	encoder, err := zstd.NewWriter(
		w,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
		zstd.WithEncoderConcurrency(runtime.NumCPU()),
	)
	if err != nil {
		return err
	}
	if err = write(encoder); err != nil {
		encoder.Close()
		return err
	}
	return encoder.Close()
}

// decodeFrom reads from r, decompressing when requested.
func decodeFrom[T any](r io.Reader, compress bool, read func(io.Reader) (T, error)) (out T, err error) {
	if !compress {
		return read(r)
	}
	decoder, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return out, err
	}
	defer decoder.Close()
	return read(decoder)
}
