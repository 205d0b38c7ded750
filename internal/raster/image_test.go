package raster

import (
	"errors"
	"testing"
)

// stubImage satisfies Image with fixed metadata, for exercising Tiles and
// EstimateMemoryUsage without any backing file.
type stubImage struct {
	size    Size
	bands   int
	regions int
	sizeErr error
}

func (s *stubImage) Size() (Size, error)     { return s.size, s.sizeErr }
func (s *stubImage) NumBands() (int, error)  { return s.bands, nil }
func (s *stubImage) NumRegions() int         { return s.regions }
func (s *stubImage) Prep() ([]string, error) { return nil, nil }
func (s *stubImage) Read(DType, *Rect) (*Pixels, error) {
	return nil, errors.New("not implemented")
}
func (s *stubImage) ChunkRegion(Rect, int, int, DType) (*ChunkBatch, error) {
	return nil, errors.New("not implemented")
}

func collectTiles(t *testing.T, img Image) []Rect {
	t.Helper()
	var out []Rect
	for r, err := range Tiles(img) {
		if err != nil {
			t.Fatalf("Tiles yielded error: %v", err)
		}
		out = append(out, r)
	}
	return out
}

func TestTiles_MatchesHorizontalSplit(t *testing.T) {
	img := &stubImage{size: Size{640, 480}, bands: 3, regions: 4}

	tiles := collectTiles(t, img)
	if len(tiles) != 4 {
		t.Fatalf("got %d tiles, want 4", len(tiles))
	}
	for i, r := range tiles {
		want, err := HorizontalSplit(img.size, i, 4)
		if err != nil {
			t.Fatalf("HorizontalSplit failed: %v", err)
		}
		if r != want {
			t.Errorf("tile %d: got %v, want %v", i, r, want)
		}
	}
}

func TestTiles_Restartable(t *testing.T) {
	img := &stubImage{size: Size{100, 97}, bands: 1, regions: 3}

	first := collectTiles(t, img)
	second := collectTiles(t, img)
	if len(first) != len(second) {
		t.Fatalf("traversal lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("tile %d differs between traversals: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestTiles_PartialTraversal(t *testing.T) {
	img := &stubImage{size: Size{100, 100}, bands: 1, regions: 10}

	count := 0
	for _, err := range Tiles(img) {
		if err != nil {
			t.Fatalf("Tiles yielded error: %v", err)
		}
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Errorf("early break yielded %d tiles, want 2", count)
	}
}

func TestTiles_SizeError(t *testing.T) {
	img := &stubImage{regions: 3, sizeErr: ErrUnavailable}

	for _, err := range Tiles(img) {
		if !errors.Is(err, ErrUnavailable) {
			t.Errorf("got %v, want ErrUnavailable", err)
		}
		return
	}
	t.Fatal("sequence yielded nothing")
}

func TestEstimateMemoryUsage_Exact(t *testing.T) {
	img := &stubImage{size: Size{1000, 500}, bands: 3, regions: 5}

	// One region is 1000x100 pixels. With stride 10 that is 1000 chunks of
	// 10x10 pixels over 3 bands of 8-byte elements.
	got, err := EstimateMemoryUsage(img, 10, 0, Float64, 0)
	if err != nil {
		t.Fatalf("EstimateMemoryUsage failed: %v", err)
	}
	want := 1000.0 * 100 * 3 * 8
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestEstimateMemoryUsage_ExplicitBands(t *testing.T) {
	img := &stubImage{size: Size{1000, 500}, bands: 3, regions: 5}

	one, err := EstimateMemoryUsage(img, 10, 0, Float64, 1)
	if err != nil {
		t.Fatalf("EstimateMemoryUsage failed: %v", err)
	}
	three, err := EstimateMemoryUsage(img, 10, 0, Float64, 3)
	if err != nil {
		t.Fatalf("EstimateMemoryUsage failed: %v", err)
	}
	if three != 3*one {
		t.Errorf("bands scaling: got %v and %v, want 3x ratio", one, three)
	}
}

func TestEstimateMemoryUsage_Monotonic(t *testing.T) {
	img := &stubImage{size: Size{4096, 4096}, bands: 4, regions: 8}

	// More overlap at fixed chunk size shrinks the stride and grows the
	// chunk count, so the estimate must grow.
	prev := -1.0
	for _, overlap := range []int{0, 16, 32, 48} {
		est, err := EstimateMemoryUsage(img, 64, overlap, Float32, 0)
		if err != nil {
			t.Fatalf("overlap %d: %v", overlap, err)
		}
		if est <= prev {
			t.Errorf("overlap %d: estimate %v not greater than %v", overlap, est, prev)
		}
		prev = est
	}

	// Larger chunks at fixed stride cover more pixels per chunk, so the
	// estimate must grow as well.
	prev = -1.0
	for _, size := range []int{32, 64, 128} {
		est, err := EstimateMemoryUsage(img, size, size-32, Float32, 0)
		if err != nil {
			t.Fatalf("size %d: %v", size, err)
		}
		if est <= prev {
			t.Errorf("size %d: estimate %v not greater than %v", size, est, prev)
		}
		prev = est
	}

	// Wider element types cost proportionally more.
	small, err := EstimateMemoryUsage(img, 64, 0, Uint8, 0)
	if err != nil {
		t.Fatalf("uint8 estimate failed: %v", err)
	}
	big, err := EstimateMemoryUsage(img, 64, 0, Float64, 0)
	if err != nil {
		t.Fatalf("float64 estimate failed: %v", err)
	}
	if big != 8*small {
		t.Errorf("dtype scaling: got %v and %v, want 8x ratio", small, big)
	}
}

func TestEstimateMemoryUsage_BadStride(t *testing.T) {
	img := &stubImage{size: Size{100, 100}, bands: 1, regions: 1}

	if _, err := EstimateMemoryUsage(img, 16, 16, Float64, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("overlap == size: got %v, want ErrInvalidArgument", err)
	}
	if _, err := EstimateMemoryUsage(img, 16, 20, Float64, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("overlap > size: got %v, want ErrInvalidArgument", err)
	}
	if _, err := EstimateMemoryUsage(img, 0, 0, Float64, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("zero size: got %v, want ErrInvalidArgument", err)
	}
}
