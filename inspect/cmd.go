// Package inspect reports grayscale statistics for image files.
package inspect

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"

	"grayview/grayimage"
	"grayview/luma"
)

type CLICmd struct {
	Mode  string   `help:"Grayscale reduction for color sources" enum:"luma,lightness" default:"luma"`
	Paths []string `arg:"" help:"Image files to inspect" type:"existingfile"`
}

func (c *CLICmd) Run() error {
	conv, err := luma.ByName(c.Mode)
	if err != nil {
		return err
	}

	errCount := 0
	for _, path := range c.Paths {
		if err := inspectFile(path, conv); err != nil {
			errCount++
			slog.Error("could not inspect image", "file", path, "error", err)
		}
	}

	if errCount > 0 {
		return fmt.Errorf("error inspecting %d files", errCount)
	}
	return nil
}

func inspectFile(path string, conv luma.Func) error {
	logger := slog.Default().With("file", path)

	imgFile, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not open image: %w", err)
	}
	defer func() {
		if close_err := imgFile.Close(); close_err != nil {
			logger.Error("could not close image", "error", close_err)
		}
	}()

	img, imgType, err := image.Decode(imgFile)
	if err != nil {
		return fmt.Errorf("could not decode image: %w", err)
	}

	g, err := grayimage.FromSource(img, conv)
	if err != nil {
		return fmt.Errorf("could not build gray buffer: %w", err)
	}

	peak, count := peakLevel(g.Histogram())
	logger.Info("image",
		"type", imgType,
		"width", g.Width(), "height", g.Height(),
		"min", g.Min(), "max", g.Max(),
		"center", g.GrayAt(g.Height()/2, g.Width()/2),
		"peak_level", peak, "peak_count", count)

	return nil
}

func peakLevel(hist [256]int) (level, count int) {
	for v, n := range hist {
		if n > count {
			level, count = v, n
		}
	}
	return level, count
}
