// Package reader implements the multi-file raster reader capability consumed
// by the raster package. A MultiFile stacks the bands of several same-sized
// files into one logical image and supports rectangular reads and
// overlapping chunk extraction.
//
// PNG, JPEG and GIF decode through the standard library; TIFF through
// golang.org/x/image/tiff.
package reader

import (
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"

	_ "golang.org/x/image/tiff" // register TIFF decoder
	"golang.org/x/sync/errgroup"

	"github.com/terrapixel/raster-chunker/internal/raster"
)

// MultiFile reads one logical raster assembled from one or more image files.
// All files must share pixel dimensions; their bands are concatenated in
// path order. A MultiFile is single-use: Load once, query, Close.
type MultiFile struct {
	paths  []string
	images []image.Image
	bands  []int
	size   raster.Size
}

// New returns an empty reader. It satisfies raster.OpenReader when wrapped:
//
//	open := func() raster.Reader { return reader.New() }
func New() *MultiFile {
	return &MultiFile{}
}

// Load decodes every file up front. Decoding is the expensive step; ROI
// reads and chunk extraction afterwards only sample the decoded images.
func (m *MultiFile) Load(paths []string) error {
	if len(paths) == 0 {
		return fmt.Errorf("no input paths")
	}
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return fmt.Errorf("failed to open image %s: %w", p, err)
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("failed to decode image %s: %w", p, err)
		}

		b := img.Bounds()
		s := raster.Size{Width: b.Dx(), Height: b.Dy()}
		if len(m.images) == 0 {
			m.size = s
		} else if s != m.size {
			return fmt.Errorf("image %s size %v does not match %v", p, s, m.size)
		}
		m.images = append(m.images, img)
		m.bands = append(m.bands, bandsOf(img))
	}
	m.paths = paths
	return nil
}

// Close releases the decoded images. The reader cannot be reused afterwards.
func (m *MultiFile) Close() error {
	m.images = nil
	m.bands = nil
	m.paths = nil
	return nil
}

func (m *MultiFile) loaded() error {
	if len(m.images) == 0 {
		return fmt.Errorf("reader has no loaded images")
	}
	return nil
}

// ImageSize returns the shared pixel dimensions of the loaded files.
func (m *MultiFile) ImageSize() (raster.Size, error) {
	if err := m.loaded(); err != nil {
		return raster.Size{}, err
	}
	return m.size, nil
}

// NumBands returns the total band count across all loaded files.
func (m *MultiFile) NumBands() (int, error) {
	if err := m.loaded(); err != nil {
		return 0, err
	}
	total := 0
	for _, n := range m.bands {
		total += n
	}
	return total, nil
}

// ReadROI reads the pixels inside roi for every band, band-major.
func (m *MultiFile) ReadROI(roi raster.Rect, dt raster.DType) (*raster.Pixels, error) {
	if err := m.loaded(); err != nil {
		return nil, err
	}
	if roi.Empty() || !roi.In(m.size) {
		return nil, fmt.Errorf("%w: roi %v outside image bounds %v", raster.ErrInvalidArgument, roi, m.size)
	}

	total, _ := m.NumBands()
	px := raster.NewPixels(total, roi.Width(), roi.Height(), dt)
	band := 0
	for fi, img := range m.images {
		for local := 0; local < m.bands[fi]; local++ {
			min := img.Bounds().Min
			for y := roi.MinY; y < roi.MaxY; y++ {
				for x := roi.MinX; x < roi.MaxX; x++ {
					v := channel(img, min.X+x, min.Y+y, local, dt)
					px.Set(band, y-roi.MinY, x-roi.MinX, v)
				}
			}
			band++
		}
	}
	return px, nil
}

// ExtractChunks cuts roi into overlapping chunkSize×chunkSize chunks whose
// origins advance by chunkSize-chunkOverlap pixels in both axes, row-major.
// Only chunks fully contained in roi are produced; there is no zero padding
// at the far edges. Chunks are filled by up to numThreads goroutines, joined
// before returning.
func (m *MultiFile) ExtractChunks(roi raster.Rect, chunkSize, chunkOverlap, numThreads int, dt raster.DType) (*raster.ChunkBatch, error) {
	if err := m.loaded(); err != nil {
		return nil, err
	}
	if roi.Empty() || !roi.In(m.size) {
		return nil, fmt.Errorf("%w: roi %v outside image bounds %v", raster.ErrInvalidArgument, roi, m.size)
	}
	if chunkSize <= 0 || chunkOverlap < 0 || chunkOverlap >= chunkSize {
		return nil, fmt.Errorf("%w: chunk overlap %d must be non-negative and smaller than chunk size %d",
			raster.ErrInvalidArgument, chunkOverlap, chunkSize)
	}
	if numThreads < 1 {
		return nil, fmt.Errorf("%w: num threads %d must be positive", raster.ErrInvalidArgument, numThreads)
	}

	stride := chunkSize - chunkOverlap
	var origins []image.Point
	for y := roi.MinY; y+chunkSize <= roi.MaxY; y += stride {
		for x := roi.MinX; x+chunkSize <= roi.MaxX; x += stride {
			origins = append(origins, image.Point{X: x, Y: y})
		}
	}

	total, _ := m.NumBands()
	batch := raster.NewChunkBatch(len(origins), total, chunkSize, dt)

	// Each goroutine writes a disjoint chunk index, so the shared batch
	// needs no locking.
	g := new(errgroup.Group)
	g.SetLimit(numThreads)
	for ci, origin := range origins {
		g.Go(func() error {
			m.fillChunk(batch, ci, origin, chunkSize, dt)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return batch, nil
}

func (m *MultiFile) fillChunk(batch *raster.ChunkBatch, chunk int, origin image.Point, chunkSize int, dt raster.DType) {
	band := 0
	for fi, img := range m.images {
		for local := 0; local < m.bands[fi]; local++ {
			min := img.Bounds().Min
			for y := 0; y < chunkSize; y++ {
				for x := 0; x < chunkSize; x++ {
					v := channel(img, min.X+origin.X+x, min.Y+origin.Y+y, local, dt)
					batch.Set(chunk, band, y, x, v)
				}
			}
			band++
		}
	}
}

// bandsOf reports how many bands a decoded image contributes: 1 for
// grayscale, 4 when a non-opaque alpha channel is present, 3 otherwise.
func bandsOf(img image.Image) int {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	case *image.YCbCr, *image.CMYK:
		return 3
	}
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return 3
	}
	return 4
}

// channel samples one band value at (x, y). Values are the 16-bit channel
// intensities from color.Color.RGBA, scaled down to 8 bits for the Uint8
// dtype so they fit its range.
func channel(img image.Image, x, y, band int, dt raster.DType) float64 {
	r, g, b, a := img.At(x, y).RGBA()
	var v uint32
	switch band {
	case 0:
		v = r
	case 1:
		v = g
	case 2:
		v = b
	default:
		v = a
	}
	if dt == raster.Uint8 {
		return float64(v >> 8)
	}
	return float64(v)
}
