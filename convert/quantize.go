package convert

import (
	"image"
	"log/slog"

	"golang.org/x/image/draw"

	"grayview/palette"
)

func quantize(logger *slog.Logger, img image.Image, palName string, dither bool) (image.Image, error) {
	pal, err := palette.Load(palName)
	if err != nil {
		return nil, err
	}
	if _, err := palette.Grays(pal); err != nil {
		return nil, err
	}

	logger.Info("quantizing", "colors", len(pal))
	sr := img.Bounds()
	dr := image.Rect(0, 0, sr.Dx(), sr.Dy())
	dest := image.NewPaletted(dr, pal)

	if dither {
		draw.FloydSteinberg.Draw(dest, dr, img, sr.Min)
	} else {
		draw.Draw(dest, dr, img, sr.Min, draw.Src)
	}
	return dest, nil
}
