package raster

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileImage is a raster backed by one or more files that a Reader can
// decode. Pixel access opens a fresh Reader per call and closes it before
// returning; only the resolved size and band count are cached on the handle.
//
// Two variants exist: NewFileImage wraps a ready-to-use raster whose Prep is
// a pass-through, and NewNormalizedFileImage runs an injected Normalizer
// once, caching the result under a path obtained from the CacheManager.
type FileImage struct {
	path       string
	numRegions int
	open       OpenReader
	cache      CacheManager
	normalize  Normalizer

	chunkThreads int

	size  *Size
	bands int
}

// NewFileImage returns a handle for a raster that is ready to load as-is.
func NewFileImage(path string, numRegions int, open OpenReader) *FileImage {
	return &FileImage{
		path:         path,
		numRegions:   numRegions,
		open:         open,
		chunkThreads: 1,
	}
}

// NewNormalizedFileImage returns a handle for a raster that must be
// normalized before the reader can consume it. The normalized copy is
// written to the path the cache manager assigns to the file's base name; if
// that path already exists the conversion is skipped.
func NewNormalizedFileImage(path string, numRegions int, open OpenReader, cache CacheManager, normalize Normalizer) *FileImage {
	return &FileImage{
		path:         path,
		numRegions:   numRegions,
		open:         open,
		cache:        cache,
		normalize:    normalize,
		chunkThreads: 1,
	}
}

// SetChunkThreads sets the thread count passed to the reader when extracting
// chunks. Values below 1 are ignored.
func (im *FileImage) SetChunkThreads(n int) {
	if n >= 1 {
		im.chunkThreads = n
	}
}

func (im *FileImage) NumRegions() int { return im.numRegions }

// Prep returns the paths the reader should load. For normalized handles the
// conversion runs at most once: once the cached artifact exists, later calls
// return its path without redoing work.
func (im *FileImage) Prep() ([]string, error) {
	if im.normalize == nil {
		return []string{im.path}, nil
	}

	out, err := im.cache.RegisterItem(filepath.Base(im.path))
	if err != nil {
		return nil, fmt.Errorf("register cache item for %s: %w: %w", im.path, ErrUnavailable, err)
	}
	if _, err := os.Stat(out); err == nil {
		return []string{out}, nil
	}
	if err := im.normalize(im.path, out); err != nil {
		return nil, fmt.Errorf("normalize %s: %w: %w", im.path, ErrUnavailable, err)
	}
	return []string{out}, nil
}

// withReader preps the handle, opens a fresh reader over the prepared paths
// and guarantees it is closed before returning, on success and failure.
func (im *FileImage) withReader(fn func(Reader) error) error {
	paths, err := im.Prep()
	if err != nil {
		return err
	}
	r := im.open()
	defer r.Close()
	if err := r.Load(paths); err != nil {
		return fmt.Errorf("load %s: %w: %w", im.path, ErrUnavailable, err)
	}
	return fn(r)
}

func (im *FileImage) Size() (Size, error) {
	if im.size != nil {
		return *im.size, nil
	}
	var s Size
	err := im.withReader(func(r Reader) error {
		var err error
		s, err = r.ImageSize()
		return err
	})
	if err != nil {
		return Size{}, err
	}
	im.size = &s
	return s, nil
}

func (im *FileImage) NumBands() (int, error) {
	if im.bands > 0 {
		return im.bands, nil
	}
	var n int
	err := im.withReader(func(r Reader) error {
		var err error
		n, err = r.NumBands()
		return err
	})
	if err != nil {
		return 0, err
	}
	im.bands = n
	return n, nil
}

func (im *FileImage) Read(dt DType, roi *Rect) (*Pixels, error) {
	var px *Pixels
	err := im.withReader(func(r Reader) error {
		s, err := r.ImageSize()
		if err != nil {
			return err
		}
		region := Rect{MinX: 0, MinY: 0, MaxX: s.Width, MaxY: s.Height}
		if roi != nil {
			region = *roi
		}
		if region.Empty() || !region.In(s) {
			return fmt.Errorf("%w: roi %v outside image bounds %v", ErrInvalidArgument, region, s)
		}
		px, err = r.ReadROI(region, dt)
		return err
	})
	if err != nil {
		return nil, err
	}
	return px, nil
}

func (im *FileImage) ChunkRegion(roi Rect, chunkSize, chunkOverlap int, dt DType) (*ChunkBatch, error) {
	if chunkSize <= 0 || chunkOverlap < 0 || chunkOverlap >= chunkSize {
		return nil, fmt.Errorf("%w: chunk overlap %d must be non-negative and smaller than chunk size %d",
			ErrInvalidArgument, chunkOverlap, chunkSize)
	}
	var batch *ChunkBatch
	err := im.withReader(func(r Reader) error {
		var err error
		batch, err = r.ExtractChunks(roi, chunkSize, chunkOverlap, im.chunkThreads, dt)
		return err
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}
