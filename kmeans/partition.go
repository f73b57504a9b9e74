package kmeans

import (
	"github.com/expki/go-colorquant/compute"
)

// Chunk is a contiguous run of pixels owned by a single worker.
type Chunk struct {
	Offset int
	Pixels []compute.Pixel
}

// Split divides pixels into workers contiguous chunks. Every chunk holds
// len(pixels)/workers pixels except the last, which absorbs the remainder.
// workers is clamped to [1, len(pixels)]; an empty input yields no chunks.
// Chunks are copies, so a worker can never observe or disturb another's data.
func Split(pixels []compute.Pixel, workers int) []Chunk {
	n := len(pixels)
	if n == 0 {
		return nil
	}
	workers = max(1, min(workers, n))

	chunkSize := n / workers
	chunks := make([]Chunk, workers)
	for i := range workers {
		start := i * chunkSize
		end := start + chunkSize
		if i == workers-1 {
			end = n
		}
		owned := make([]compute.Pixel, end-start)
		copy(owned, pixels[start:end])
		chunks[i] = Chunk{
			Offset: start,
			Pixels: owned,
		}
	}
	return chunks
}
