package kmeans

import (
	"context"
	"errors"
	"fmt"

	"github.com/expki/go-colorquant/compute"
	"github.com/vbauerster/mpb/v8"
	"golang.org/x/sync/errgroup"
)

// Partial is one chunk's running total for a single cluster.
type Partial struct {
	Sum   compute.Vector3
	Count int
}

// Map assigns every pixel to its nearest centroid and accumulates the pixel into
// that cluster's partial. The result always has one entry per centroid.
func Map(pixels []compute.Pixel, centroids compute.CentroidSet) []Partial {
	partials := make([]Partial, len(centroids))
	for _, pixel := range pixels {
		vector := pixel.Vector()
		idx := compute.Nearest(vector, centroids)
		if idx < 0 {
			continue
		}
		partials[idx].Sum = partials[idx].Sum.Add(vector)
		partials[idx].Count++
	}
	return partials
}

// mapChunk is the per-chunk map routine run by mapPhase.
var mapChunk = Map

// mapPhase runs Map over every chunk on a bounded pool and waits for all of
// them. Each task writes only its own slot of the result.
func mapPhase(ctx context.Context, chunks []Chunk, centroids compute.CentroidSet, workers int, multibar *mpb.Progress) (partials [][]Partial, err error) {
	partials = make([][]Partial, len(chunks))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, workers))
	bars := make([]*mpb.Bar, len(chunks))
	defer func() { abortIncomplete(bars...) }()
	for idx, chunk := range chunks {
		bar := addChunkBar(multibar, fmt.Sprintf("map chunk %d", idx), len(chunk.Pixels))
		bars[idx] = bar
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = errors.Join(ErrWorker, fmt.Errorf("chunk %d: %v", idx, r))
				}
			}()
			if err := ctx.Err(); err != nil {
				return err
			}
			partials[idx] = mapChunk(chunk.Pixels, centroids)
			if bar != nil {
				bar.IncrBy(len(chunk.Pixels))
			}
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}
	return partials, nil
}
