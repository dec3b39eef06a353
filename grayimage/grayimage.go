// Package grayimage holds grayscale pixel buffers for the display layer.
//
// A GrayImage keeps the original sample values as read from the source,
// which may be wider than 8 bits, next to the clamped 8-bit view that is
// actually rendered. Construction computes the observed value range; the
// display view can then be remapped without touching the originals.
package grayimage

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"grayview/palette"
)

var (
	ErrBadDimensions    = errors.New("grayimage: dimensions must be positive")
	ErrLengthMismatch   = errors.New("grayimage: buffer length does not match dimensions")
	ErrUnsupportedDepth = errors.New("grayimage: unsupported bit depth")
)

// Supported bit depths for indexed sources.
const (
	Depth4 = 4
	Depth8 = 8
)

// GrayImage is a rectangular grayscale pixel buffer.
type GrayImage struct {
	width  int
	height int

	original []int32
	display  []uint8
	min, max int32

	// rgba mirrors display with the gray value replicated across R/G/B.
	rgba *image.RGBA
}

func newGrayImage(width, height int) *GrayImage {
	return &GrayImage{
		width:    width,
		height:   height,
		original: make([]int32, width*height),
		display:  make([]uint8, width*height),
		rgba:     image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// FromValues builds a GrayImage from an unpacked row-major sample buffer.
// The buffer length must be exactly width*height.
func FromValues(vals []int32, width, height int) (*GrayImage, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadDimensions, width, height)
	}
	if len(vals) != width*height {
		return nil, fmt.Errorf("%w: have %d samples, want %d", ErrLengthMismatch, len(vals), width*height)
	}

	g := newGrayImage(width, height)
	copy(g.original, vals)
	g.min, g.max = valueRange(g.original)
	g.ResetWindow()
	return g, nil
}

// FromIndexed builds a GrayImage from a legacy indexed bitmap. Rows are
// byte-aligned; at 4 bits per pixel the high nibble is the left pixel.
// Every referenced palette entry must be achromatic.
func FromIndexed(pix []byte, width, height int, pal color.Palette, depth int) (*GrayImage, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadDimensions, width, height)
	}

	var stride int
	switch depth {
	case Depth8:
		stride = width
	case Depth4:
		stride = (width + 1) / 2
	default:
		return nil, fmt.Errorf("%w: %d bits per pixel", ErrUnsupportedDepth, depth)
	}
	if len(pix) != stride*height {
		return nil, fmt.Errorf("%w: have %d bytes, want %d", ErrLengthMismatch, len(pix), stride*height)
	}

	grays, err := palette.Grays(pal)
	if err != nil {
		return nil, fmt.Errorf("could not use palette: %w", err)
	}

	g := newGrayImage(width, height)
	for y := 0; y < height; y++ {
		row := pix[y*stride : (y+1)*stride]
		for x := 0; x < width; x++ {
			var idx byte
			if depth == Depth8 {
				idx = row[x]
			} else if x%2 == 0 {
				idx = row[x/2] >> 4
			} else {
				idx = row[x/2] & 0x0F
			}

			if int(idx) >= len(grays) {
				return nil, fmt.Errorf("grayimage: index %d at (%d, %d) outside %d-entry palette",
					idx, x, y, len(grays))
			}
			g.original[y*width+x] = int32(grays[idx])
		}
	}

	g.min, g.max = valueRange(g.original)
	g.ResetWindow()
	return g, nil
}

// FromPaletted builds a GrayImage from a decoded paletted image, such as a
// GIF frame or an indexed PNG. The palette must be achromatic.
func FromPaletted(p *image.Paletted) (*GrayImage, error) {
	bounds := p.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadDimensions, width, height)
	}

	pix := make([]byte, width*height)
	for y := 0; y < height; y++ {
		src := p.Pix[y*p.Stride:]
		copy(pix[y*width:(y+1)*width], src[:width])
	}

	return FromIndexed(pix, width, height, p.Palette, Depth8)
}

// Width returns the image width in pixels.
func (g *GrayImage) Width() int {
	return g.width
}

// Height returns the image height in pixels.
func (g *GrayImage) Height() int {
	return g.height
}

// Min returns the smallest original sample value.
func (g *GrayImage) Min() int32 {
	return g.min
}

// Max returns the largest original sample value.
func (g *GrayImage) Max() int32 {
	return g.max
}

// GrayAt returns the original sample at (row, col), or 0 when the
// coordinates fall outside the buffer.
func (g *GrayImage) GrayAt(row, col int) int32 {
	if row < 0 || row >= g.height || col < 0 || col >= g.width {
		return 0
	}
	return g.original[row*g.width+col]
}

// DisplayAt returns the rendered 8-bit value at (row, col), or 0 when the
// coordinates fall outside the buffer.
func (g *GrayImage) DisplayAt(row, col int) uint8 {
	if row < 0 || row >= g.height || col < 0 || col >= g.width {
		return 0
	}
	return g.display[row*g.width+col]
}

// SetDisplay replaces the display view with a same-shaped sample buffer,
// clamping every value to [0, 255]. The original samples are not touched.
func (g *GrayImage) SetDisplay(vals []int32) error {
	if len(vals) != len(g.display) {
		return fmt.Errorf("%w: have %d samples, want %d", ErrLengthMismatch, len(vals), len(g.display))
	}

	for i, v := range vals {
		g.setDisplayPixel(i, clamp8(v))
	}
	return nil
}

// RGBA returns the renderable bitmap. Its pixels mirror the display view
// with the gray value replicated across the color channels.
func (g *GrayImage) RGBA() *image.RGBA {
	return g.rgba
}

// ColorModel implements the image.Image interface.
func (g *GrayImage) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements the image.Image interface.
func (g *GrayImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.width, g.height)
}

// At implements the image.Image interface.
func (g *GrayImage) At(x, y int) color.Color {
	return g.rgba.At(x, y)
}

func (g *GrayImage) setDisplayPixel(i int, v uint8) {
	g.display[i] = v
	j := i * 4
	g.rgba.Pix[j+0] = v
	g.rgba.Pix[j+1] = v
	g.rgba.Pix[j+2] = v
	g.rgba.Pix[j+3] = 0xFF
}

func valueRange(vals []int32) (min, max int32) {
	min, max = vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

func clamp8[T int32 | int64](v T) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
