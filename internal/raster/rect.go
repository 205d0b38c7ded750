package raster

import "fmt"

// Size is the pixel dimensions of an image.
type Size struct {
	Width  int
	Height int
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Rect is an axis-aligned pixel region with a half-open convention:
// (MinX,MinY) is inside the region, (MaxX,MaxY) is not. A well-formed Rect
// has MinX < MaxX and MinY < MaxY.
type Rect struct {
	MinX, MinY, MaxX, MaxY int
}

// Width returns MaxX - MinX.
func (r Rect) Width() int { return r.MaxX - r.MinX }

// Height returns MaxY - MinY.
func (r Rect) Height() int { return r.MaxY - r.MinY }

// Area returns the number of pixels in the region.
func (r Rect) Area() int { return r.Width() * r.Height() }

// Empty reports whether the region contains no pixels.
func (r Rect) Empty() bool { return r.MinX >= r.MaxX || r.MinY >= r.MaxY }

// In reports whether r lies entirely inside the image bounds [0,s).
func (r Rect) In(s Size) bool {
	return r.MinX >= 0 && r.MinY >= 0 && r.MaxX <= s.Width && r.MaxY <= s.Height
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.MinX, r.MinY, r.MaxX, r.MaxY)
}
