package raster

import (
	"fmt"
	"math"
)

// HorizontalSplit returns the region-th of numSplits horizontal bands of an
// image of the given size. Band boundaries are computed from the fractional
// band height and floored, so consecutive bands are contiguous in y. The
// last band's MaxY is clamped to the image height, so the bands together
// cover [0, size.Height) exactly.
func HorizontalSplit(size Size, region, numSplits int) (Rect, error) {
	if numSplits < 1 {
		return Rect{}, fmt.Errorf("%w: num splits %d must be positive", ErrInvalidArgument, numSplits)
	}
	if region < 0 || region >= numSplits {
		return Rect{}, fmt.Errorf("%w: region %d outside [0,%d)", ErrInvalidArgument, region, numSplits)
	}

	// Fractional band height is fine, boundaries are floored per region.
	bandHeight := float64(size.Height) / float64(numSplits)
	minY := int(math.Floor(bandHeight * float64(region)))
	maxY := int(math.Floor(bandHeight * float64(region+1)))
	if region == numSplits-1 {
		maxY = size.Height
	}

	return Rect{MinX: 0, MinY: minY, MaxX: size.Width, MaxY: maxY}, nil
}

// TileSplit returns the region-th cell of an N×N grid partition, where
// N = numSplits and region indexes the grid in row-major order. All tiles
// share the floored size (Width/N, Height/N); when the image dimensions are
// not divisible by N, the fractional strip at the right and bottom edge is
// left uncovered so that every tile has identical dimensions.
func TileSplit(size Size, region, numSplits int) (Rect, error) {
	if numSplits < 1 {
		return Rect{}, fmt.Errorf("%w: num splits %d must be positive", ErrInvalidArgument, numSplits)
	}
	numTiles := numSplits * numSplits
	if region < 0 || region >= numTiles {
		return Rect{}, fmt.Errorf("%w: region %d outside [0,%d)", ErrInvalidArgument, region, numTiles)
	}

	tileRow := region / numSplits
	tileCol := region % numSplits
	tileWidth := size.Width / numSplits
	tileHeight := size.Height / numSplits

	return Rect{
		MinX: tileWidth * tileCol,
		MinY: tileHeight * tileRow,
		MaxX: tileWidth * (tileCol + 1),
		MaxY: tileHeight * (tileRow + 1),
	}, nil
}
