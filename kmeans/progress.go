package kmeans

import (
	"io"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

func newMultibar(output io.Writer) *mpb.Progress {
	if output == nil {
		return nil
	}
	return mpb.New(mpb.WithOutput(output), mpb.WithWidth(48))
}

func addIterationBar(multibar *mpb.Progress, maxIterations int) *mpb.Bar {
	if multibar == nil {
		return nil
	}
	return multibar.AddBar(
		int64(maxIterations),
		mpb.PrependDecorators(
			decor.Name("K-Means iterations"),
			decor.CountersNoUnit(" %d/%d"),
		),
		mpb.AppendDecorators(decor.Elapsed(decor.ET_STYLE_GO)),
	)
}

func addChunkBar(multibar *mpb.Progress, name string, total int) *mpb.Bar {
	if multibar == nil {
		return nil
	}
	return multibar.AddBar(
		int64(total),
		mpb.PrependDecorators(decor.Name(name)),
		mpb.AppendDecorators(decor.Percentage()),
		mpb.BarRemoveOnComplete(),
	)
}

// abortIncomplete releases bars that will never reach their total so the
// multibar can shut down.
func abortIncomplete(bars ...*mpb.Bar) {
	for _, bar := range bars {
		if bar != nil && !bar.Completed() {
			bar.Abort(true)
		}
	}
}

func waitMultibar(multibar *mpb.Progress) {
	if multibar != nil {
		multibar.Wait()
	}
}
