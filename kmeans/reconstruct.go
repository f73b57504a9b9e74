package kmeans

import (
	"context"
	"errors"
	"fmt"

	"github.com/expki/go-colorquant/compute"
	"github.com/expki/go-colorquant/config"
	"github.com/expki/go-colorquant/logger"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
)

// Recolor replaces every pixel by the rounded colour of its nearest centroid.
func Recolor(pixels []compute.Pixel, centroids compute.CentroidSet) []compute.Pixel {
	palette := compute.QuantizeSet(centroids)
	output := make([]compute.Pixel, len(pixels))
	for i, pixel := range pixels {
		idx := compute.Nearest(pixel.Vector(), centroids)
		if idx < 0 {
			output[i] = pixel
			continue
		}
		output[i] = palette[idx]
	}
	return output
}

// recolorChunk is the per-slice recolour routine run by Reconstruct.
var recolorChunk = Recolor

// Reconstruct produces a new buffer of the same shape in which every pixel is
// replaced by its nearest final centroid. Chunks are recoloured in parallel and
// each worker writes only its own range of the output.
func (c *Controller) Reconstruct(ctx context.Context, buffer compute.PixelBuffer, centroids compute.CentroidSet) (compute.PixelBuffer, error) {
	if len(centroids) == 0 {
		return compute.PixelBuffer{}, phaseError(PhaseReconstruct, -1, errors.Join(ErrInput, errors.New("no centroids to reconstruct from")))
	}

	var bar *progressbar.ProgressBar
	if c.options.Progress != nil {
		bar = progressbar.NewOptions64(
			int64(buffer.Len()),
			progressbar.OptionSetWriter(c.options.Progress),
			progressbar.OptionSetDescription("Reconstructing image"),
			progressbar.OptionShowCount(),
		)
		defer bar.Close()
	}

	output := make([]compute.Pixel, buffer.Len())
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.options.Workers)
	for idx, chunk := range Split(buffer.Pixels, c.options.Workers) {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = errors.Join(ErrWorker, fmt.Errorf("chunk %d: %v", idx, r))
				}
			}()
			if err := ctx.Err(); err != nil {
				return err
			}
			// recolor in slices so progress stays responsive on large chunks
			for start := 0; start < len(chunk.Pixels); start += config.PROGRESS_STEP {
				end := min(start+config.PROGRESS_STEP, len(chunk.Pixels))
				copy(output[chunk.Offset+start:], recolorChunk(chunk.Pixels[start:end], centroids))
				if bar != nil {
					bar.Add(end - start)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return compute.PixelBuffer{}, phaseError(PhaseReconstruct, -1, err)
	}
	if bar != nil {
		bar.Finish()
	}

	logger.Sugar().Debugf("Reconstructed %dx%d image from %d centroids", buffer.Width, buffer.Height, len(centroids))
	return compute.PixelBuffer{
		Pixels: output,
		Width:  buffer.Width,
		Height: buffer.Height,
	}, nil
}
