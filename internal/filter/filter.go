// Package filter discards chunks that carry no usable data. Rasters such as
// satellite scenes mark pixels outside the valid footprint with a no-data
// sentinel; chunks touching that footprint are useless to a learning
// pipeline and are dropped before the batch moves downstream.
package filter

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/terrapixel/raster-chunker/internal/raster"
)

// Valid returns the chunks of batch whose first band contains no sentinel
// pixel, preserving relative order, together with the number of chunks
// removed. A chunk is valid only when every pixel of its first band differs
// from sentinel, i.e. its non-sentinel count equals the chunk area.
//
// The scan statically partitions the chunk index range into numThreads
// contiguous slices; each worker writes disjoint entries of a shared
// validity array, so the workers need no locking. Valid blocks until all
// workers finish. The input batch is never mutated.
func Valid(batch *raster.ChunkBatch, sentinel float64, numThreads int) (*raster.ChunkBatch, int, error) {
	if numThreads < 1 {
		return nil, 0, fmt.Errorf("%w: num threads %d must be positive", raster.ErrInvalidArgument, numThreads)
	}

	n := batch.Chunks
	valid := make([]bool, n)

	g := new(errgroup.Group)
	for i := 0; i < numThreads; i++ {
		start := i * n / numThreads
		stop := (i + 1) * n / numThreads
		g.Go(func() error {
			for c := start; c < stop; c++ {
				valid[c] = !hasSentinel(batch, c, sentinel)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	var keep []int
	for c := 0; c < n; c++ {
		if valid[c] {
			keep = append(keep, c)
		}
	}

	out := raster.NewChunkBatch(len(keep), batch.Bands, batch.Size, batch.DType)
	for dst, src := range keep {
		out.CopyChunkFrom(batch, src, dst)
	}
	return out, n - len(keep), nil
}

// hasSentinel reports whether any first-band pixel of the chunk equals the
// sentinel value.
func hasSentinel(batch *raster.ChunkBatch, chunk int, sentinel float64) bool {
	for y := 0; y < batch.Size; y++ {
		for x := 0; x < batch.Size; x++ {
			if batch.At(chunk, 0, y, x) == sentinel {
				return true
			}
		}
	}
	return false
}
