// Package convert provides format-normalization capabilities for rasters
// that need a preprocessing pass before the reader can consume them. Each
// function matches raster.Normalizer and is injected into image handles, so
// tests can substitute a stub.
package convert

import (
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/clone"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// StripAlpha writes an opaque RGB copy of the raster at src to dst,
// discarding the alpha channel. Partially transparent pixels are flattened
// against black before the alpha plane is dropped.
func StripAlpha(src, dst string) error {
	img, err := imaging.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}

	rgba := clone.AsRGBA(img)
	for i := 3; i < len(rgba.Pix); i += 4 {
		rgba.Pix[i] = 0xff
	}

	if err := imaging.Save(rgba, dst); err != nil {
		return fmt.Errorf("failed to save %s: %w", dst, err)
	}
	return nil
}

// Luminance writes a single-band 16-bit grayscale copy of the raster at src
// to dst, reducing RGB to perceptual lightness (CIE Lab L, scaled to the
// full 16-bit range).
func Luminance(src, dst string) error {
	img, err := imaging.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}

	bounds := img.Bounds()
	gray := image.NewGray16(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				// Fully transparent pixel: no color information.
				continue
			}
			l, _, _ := c.Lab()
			if l < 0 {
				l = 0
			} else if l > 1 {
				l = 1
			}
			gray.SetGray16(x-bounds.Min.X, y-bounds.Min.Y, color.Gray16{Y: uint16(l * 0xffff)})
		}
	}

	if err := imaging.Save(gray, dst); err != nil {
		return fmt.Errorf("failed to save %s: %w", dst, err)
	}
	return nil
}
