// Package palette loads and validates the color tables used by indexed
// grayscale bitmaps.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"os"
)

var ErrChromaticEntry = errors.New("palette: entry is not gray")

// Load resolves a built-in palette name (bw, gray4, gray16, gray256) or
// reads the first palette of a RIFF PAL file at the given path.
func Load(name string) (color.Palette, error) {
	switch name {
	case "bw":
		return mustGray(2), nil
	case "gray4":
		return mustGray(4), nil
	case "gray16":
		return mustGray(16), nil
	case "gray256":
		return mustGray(256), nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("could not open palette file %q: %w", name, err)
	}
	defer func() {
		if close_err := f.Close(); close_err != nil {
			slog.Error("could not close palette file", "name", name, "error", close_err)
		}
	}()

	pals, err := ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("could not read palette file %q: %w", name, err)
	}
	if len(pals) == 0 {
		return nil, fmt.Errorf("no palettes in file %q", name)
	}

	return pals[0], nil
}

// Gray builds an evenly spaced achromatic ramp from black to white.
// levels must be in [2, 256].
func Gray(levels int) (color.Palette, error) {
	if levels < 2 || levels > 256 {
		return nil, fmt.Errorf("palette: gray ramp needs 2 to 256 levels, got %d", levels)
	}

	pal := make(color.Palette, levels)
	for i := 0; i < levels; i++ {
		v := uint8(i * 255 / (levels - 1))
		pal[i] = color.RGBA{R: v, G: v, B: v, A: 0xFF}
	}
	return pal, nil
}

func mustGray(levels int) color.Palette {
	pal, err := Gray(levels)
	if err != nil {
		panic(err)
	}
	return pal
}

// Grays maps every palette entry to its gray value. The first entry with
// unequal channels fails the whole palette.
func Grays(pal color.Palette) ([]uint8, error) {
	if len(pal) == 0 {
		return nil, errors.New("palette: empty palette")
	}

	grays := make([]uint8, len(pal))
	for i, col := range pal {
		c := color.RGBAModel.Convert(col).(color.RGBA)
		if c.R != c.G || c.G != c.B {
			return nil, fmt.Errorf("%w: entry %d is #%02X%02X%02X", ErrChromaticEntry, i, c.R, c.G, c.B)
		}
		grays[i] = c.R
	}
	return grays, nil
}
