package grayimage

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"grayview/palette"
)

// ApplyWindow remaps the display view through a linear window: original
// samples at or below center-width/2 render black, samples at or above
// center+width/2 render white. The original samples are not touched.
func (g *GrayImage) ApplyWindow(center, width int32) error {
	if width <= 0 {
		return fmt.Errorf("grayimage: window width must be positive: %d", width)
	}

	low := int64(center) - int64(width)/2
	for i, v := range g.original {
		scaled := (int64(v) - low) * 255 / int64(width)
		g.setDisplayPixel(i, clamp8(scaled))
	}
	return nil
}

// ResetWindow restores the plain clamped view of the original samples.
func (g *GrayImage) ResetWindow() {
	for i, v := range g.original {
		g.setDisplayPixel(i, clamp8(v))
	}
}

// Histogram counts display values. Index v holds the number of pixels
// currently rendered at gray level v.
func (g *GrayImage) Histogram() [256]int {
	var hist [256]int
	for _, v := range g.display {
		hist[v]++
	}
	return hist
}

// Paletted quantizes the display view onto an evenly spaced gray ramp,
// dithering with Floyd-Steinberg. levels must be in [2, 256].
func (g *GrayImage) Paletted(levels int) (*image.Paletted, error) {
	ramp, err := palette.Gray(levels)
	if err != nil {
		return nil, err
	}

	dst := image.NewPaletted(g.Bounds(), ramp)
	draw.FloydSteinberg.Draw(dst, g.Bounds(), g, image.Point{})
	return dst, nil
}
