package raster

import (
	"fmt"
	"iter"
)

// Reader is the external capability that opens raster files and performs the
// actual pixel decode. A Reader is single-use: Load once, query, Close.
// Implementations live outside this package (see internal/reader).
type Reader interface {
	// Load opens the given files as one logical image whose bands are the
	// concatenation of each file's bands, in path order.
	Load(paths []string) error
	ImageSize() (Size, error)
	NumBands() (int, error)
	ReadROI(roi Rect, dt DType) (*Pixels, error)
	ExtractChunks(roi Rect, chunkSize, chunkOverlap, numThreads int, dt DType) (*ChunkBatch, error)
	Close() error
}

// OpenReader constructs a fresh Reader. FileImage opens one per pixel-access
// call and closes it before returning.
type OpenReader func() Reader

// Normalizer produces a band-reduced or otherwise normalized copy of the
// raster at src, written to dst. Injected so tests can substitute it.
type Normalizer func(src, dst string) error

// CacheManager maps a logical item name to a stable on-disk path. The
// mapping itself has no side effects; callers decide whether the path's
// content needs to be produced.
type CacheManager interface {
	RegisterItem(name string) (string, error)
}

// RecordInfo is the metadata stored in a packed-record header.
type RecordInfo struct {
	NumBands int
	Width    int
	Height   int
}

// RecordMeta resolves packed-record metadata without decoding pixels.
type RecordMeta func(path string) (RecordInfo, error)

// Image is the contract every image variant satisfies. Size and NumBands are
// lazily resolved on first use and cached for the handle's lifetime. Prep is
// idempotent: repeated calls must not redo work once the prepared artifact
// exists.
type Image interface {
	Size() (Size, error)
	NumBands() (int, error)

	// NumRegions is the partition granularity used by Tiles.
	NumRegions() int

	// Prep ensures the backing resource is consumable by the reader
	// capability and returns the file paths to load, in band order.
	Prep() ([]string, error)

	// Read returns pixel data restricted to roi; a nil roi means the whole
	// image. An roi outside [0,size) fails with ErrInvalidArgument.
	Read(dt DType, roi *Rect) (*Pixels, error)

	// ChunkRegion cuts roi into overlapping chunkSize×chunkSize chunks with
	// consecutive origins offset by chunkSize-chunkOverlap pixels in both
	// axes. chunkOverlap must be smaller than chunkSize.
	ChunkRegion(roi Rect, chunkSize, chunkOverlap int, dt DType) (*ChunkBatch, error)
}

// Tiles yields one Rect per region of img in region-index order, using the
// horizontal-band policy over the handle's NumRegions. The sequence is
// finite and restartable; since the image size is cached after its first
// resolution, every traversal yields the same rectangles.
func Tiles(img Image) iter.Seq2[Rect, error] {
	return func(yield func(Rect, error) bool) {
		s, err := img.Size()
		if err != nil {
			yield(Rect{}, err)
			return
		}
		n := img.NumRegions()
		for i := 0; i < n; i++ {
			r, err := HorizontalSplit(s, i, n)
			if !yield(r, err) {
				return
			}
		}
	}
}

// EstimateMemoryUsage approximates the bytes needed to chunk one region of
// img, assuming horizontal-band regions. If numBands is not positive it is
// resolved from the image. The result is a planning figure for admission
// decisions, not an allocation size.
func EstimateMemoryUsage(img Image, chunkSize, chunkOverlap int, dt DType, numBands int) (float64, error) {
	if chunkSize <= 0 || chunkOverlap < 0 || chunkOverlap >= chunkSize {
		return 0, fmt.Errorf("%w: chunk overlap %d and size %d give a non-positive stride",
			ErrInvalidArgument, chunkOverlap, chunkSize)
	}
	if numBands < 1 {
		b, err := img.NumBands()
		if err != nil {
			return 0, err
		}
		numBands = b
	}
	s, err := img.Size()
	if err != nil {
		return 0, err
	}

	regionHeight := float64(s.Height) / float64(img.NumRegions())
	regionPixels := regionHeight * float64(s.Width)
	stride := float64(chunkSize - chunkOverlap)
	numChunks := regionPixels / (stride * stride)
	chunkArea := float64(chunkSize * chunkSize)
	return numChunks * chunkArea * float64(numBands) * float64(dt.Size()), nil
}
