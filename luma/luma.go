// based on:
// https://bottosson.github.io/posts/oklab/
// https://bottosson.github.io/posts/colorwrong/#what-can-we-do%3F

// Package luma reduces sRGB colors to 8-bit gray values, either with the
// Rec.601 luma weighting or through the Oklab lightness estimate.
package luma

import (
	"fmt"
	"image/color"
	"math"
)

// Func maps a color to its 8-bit gray value.
type Func func(color.Color) uint8

// ByName resolves a reduction mode name to its Func.
func ByName(name string) (Func, error) {
	switch name {
	case "luma":
		return Rec601, nil
	case "lightness":
		return Lightness, nil
	}
	return nil, fmt.Errorf("luma: unknown mode %q", name)
}

// Rec601 returns the classic luma of c: 0.299R + 0.587G + 0.114B.
func Rec601(c color.Color) uint8 {
	r, g, b, _ := c.RGBA()
	y := (299*r + 587*g + 114*b + 500) / 1000
	return uint8(y >> 8)
}

// Lightness returns the gray value whose perceived lightness matches c.
// The color is linearized, its Oklab L computed, and L mapped back to the
// achromatic sRGB value with the same lightness. For gray input this is
// the identity.
func Lightness(c color.Color) uint8 {
	r16, g16, b16, _ := c.RGBA()
	r := toLinear(float64(r16) / 65535)
	g := toLinear(float64(g16) / 65535)
	b := toLinear(float64(b16) / 65535)

	l := math.Cbrt(0.4122214708*r + 0.5363325363*g + 0.0514459929*b)
	m := math.Cbrt(0.2119034982*r + 0.6806995451*g + 0.1073969566*b)
	s := math.Cbrt(0.0883024619*r + 0.2817188376*g + 0.6299787005*b)

	lightness := 0.2104542553*l + 0.7936177850*m - 0.0040720468*s

	// An achromatic linear value v has L = cbrt(v), so v = L^3 is the
	// gray with the same perceived lightness.
	v := lightness * lightness * lightness
	y := fromLinear(v)
	switch {
	case y < 0:
		return 0
	case y > 1:
		return 255
	}
	return uint8(math.Round(y * 255))
}

func toLinear(x float64) float64 {
	if x >= 0.04045 {
		return math.Pow((x+0.055)/1.055, 2.4)
	}
	return x / 12.92
}

const pow float64 = 1.0 / 2.4

func fromLinear(x float64) float64 {
	if x >= 0.0031308 {
		return math.Pow(x, pow)*1.055 - 0.055
	}
	return x * 12.92
}
