package raster

import "fmt"

// RecordImage is the metadata-only image family: a packed-record file whose
// band count and size come from record metadata without decoding pixels.
// The packed format is not randomly addressable, so Read and ChunkRegion
// fail with ErrUnsupported.
type RecordImage struct {
	path       string
	numRegions int
	meta       RecordMeta

	size  *Size
	bands int
}

// NewRecordImage returns a handle answering metadata queries through meta.
func NewRecordImage(path string, numRegions int, meta RecordMeta) *RecordImage {
	return &RecordImage{path: path, numRegions: numRegions, meta: meta}
}

func (im *RecordImage) NumRegions() int { return im.numRegions }

// Prep is a no-op: the record file is consumed as-is by downstream tooling.
func (im *RecordImage) Prep() ([]string, error) {
	return []string{im.path}, nil
}

// resolve reads bands and size from the record header in one pass and caches
// both for the handle's lifetime.
func (im *RecordImage) resolve() error {
	info, err := im.meta(im.path)
	if err != nil {
		return fmt.Errorf("record info for %s: %w: %w", im.path, ErrUnavailable, err)
	}
	im.bands = info.NumBands
	im.size = &Size{Width: info.Width, Height: info.Height}
	return nil
}

func (im *RecordImage) Size() (Size, error) {
	if im.size == nil {
		if err := im.resolve(); err != nil {
			return Size{}, err
		}
	}
	return *im.size, nil
}

func (im *RecordImage) NumBands() (int, error) {
	if im.size == nil {
		if err := im.resolve(); err != nil {
			return 0, err
		}
	}
	return im.bands, nil
}

func (im *RecordImage) Read(DType, *Rect) (*Pixels, error) {
	return nil, fmt.Errorf("%w: packed records are not randomly addressable", ErrUnsupported)
}

func (im *RecordImage) ChunkRegion(Rect, int, int, DType) (*ChunkBatch, error) {
	return nil, fmt.Errorf("%w: packed records are not randomly addressable", ErrUnsupported)
}
