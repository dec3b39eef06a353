package grayimage

import (
	"fmt"
	"image"

	"grayview/luma"
	"grayview/palette"
)

// FromSource builds a GrayImage from a decoded source image. Paletted
// sources whose palette is fully achromatic go through the strict indexed
// path; everything else is reduced pixel by pixel with conv.
func FromSource(img image.Image, conv luma.Func) (*GrayImage, error) {
	if p, ok := img.(*image.Paletted); ok {
		if _, err := palette.Grays(p.Palette); err == nil {
			return FromPaletted(p)
		}
	}
	return FromImage(img, conv)
}

// FromImage builds a GrayImage from any decoded image, reducing each pixel
// with conv. Fast path for images that are already 8-bit grayscale.
func FromImage(img image.Image, conv luma.Func) (*GrayImage, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadDimensions, width, height)
	}

	if conv == nil {
		conv = luma.Rec601
	}

	g := newGrayImage(width, height)
	if src, ok := img.(*image.Gray); ok {
		for y := 0; y < height; y++ {
			row := src.Pix[y*src.Stride:]
			for x := 0; x < width; x++ {
				g.original[y*width+x] = int32(row[x])
			}
		}
	} else {
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				c := img.At(bounds.Min.X+x, bounds.Min.Y+y)
				g.original[y*width+x] = int32(conv(c))
			}
		}
	}

	g.min, g.max = valueRange(g.original)
	g.ResetWindow()
	return g, nil
}
