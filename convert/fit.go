package convert

import (
	"image"
	"log/slog"
	"math"

	"golang.org/x/image/draw"
)

// fit scales img down to the largest size that fits the given box while
// keeping its aspect ratio. Images already inside the box pass through.
// A zero maxWidth or maxHeight leaves that axis unconstrained.
func fit(logger *slog.Logger, img image.Image, maxWidth, maxHeight int) image.Image {
	srcBounds := img.Bounds()
	srcWidth := float64(srcBounds.Dx())
	srcHeight := float64(srcBounds.Dy())

	scale := 1.0
	if (maxWidth > 0) && (srcWidth > float64(maxWidth)) {
		scale = float64(maxWidth) / srcWidth
	}
	if (maxHeight > 0) && (srcHeight*scale > float64(maxHeight)) {
		scale = float64(maxHeight) / srcHeight
	}
	if scale >= 1 {
		return img
	}

	destWidth := max(int(math.Round(srcWidth*scale)), 1)
	destHeight := max(int(math.Round(srcHeight*scale)), 1)
	logger.Info("scaling", "width", destWidth, "height", destHeight)

	destBounds := image.Rect(0, 0, destWidth, destHeight)
	dest := image.NewGray(destBounds)
	draw.CatmullRom.Scale(dest, destBounds, img, srcBounds, draw.Src, nil)

	return dest
}
