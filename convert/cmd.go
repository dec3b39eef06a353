// Package convert implements the batch grayscale conversion command.
package convert

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/alecthomas/kong"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"

	"grayview/grayimage"
	"grayview/luma"
	"grayview/palette"
	"grayview/parallel"
)

type CLICmd struct {
	Scan         string `help:"Source folder to scan" default:"."`
	Dest         string `help:"Destination folder for converted pictures. Relative to scan dir if not absolute." default:"gray"`
	Mode         string `help:"Grayscale reduction for color sources" enum:"luma,lightness" default:"luma"`
	WindowCenter int    `help:"Center of the display window" group:"window"`
	WindowWidth  int    `help:"Width of the display window. Needed when a center is given." group:"window"`
	MaxWidth     int    `help:"Scale output down to fit this width" group:"resize"`
	MaxHeight    int    `help:"Scale output down to fit this height" group:"resize"`
	Palette      string `help:"Gray palette name (bw, gray4, gray16, gray256) or PAL file in RIFF format to quantize the output" group:"palette"`
	Dither       bool   `help:"Apply dithering when quantizing" default:"false" group:"palette"`
	Format       string `help:"Output format. If prefixed with 'unsup:' will convert only unsupported formats" enum:"same,gif,unsup:gif,jpeg,unsup:jpeg,png,unsup:png,bmp,unsup:bmp,tiff,unsup:tiff" default:"unsup:png"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	scanDir, err := filepath.Abs(c.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Scan, err)
	}
	c.Scan = scanDir

	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(scanDir, c.Dest)
	}

	switch {
	case c.WindowWidth < 0:
		return fmt.Errorf("invalid window width: %d", c.WindowWidth)
	case (c.WindowCenter != 0) && (c.WindowWidth == 0):
		return fmt.Errorf("window center %d given without a window width", c.WindowCenter)
	}

	switch {
	case c.MaxWidth < 0:
		return fmt.Errorf("invalid resize width: %d", c.MaxWidth)
	case c.MaxHeight < 0:
		return fmt.Errorf("invalid resize height: %d", c.MaxHeight)
	}

	if c.Palette != "" {
		pal, err := palette.Load(c.Palette)
		if err != nil {
			return err
		}
		if _, err := palette.Grays(pal); err != nil {
			return err
		}
	}

	return nil
}

func (c *CLICmd) Run(pool *parallel.Pool) error {
	conv, err := luma.ByName(c.Mode)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(c.Dest, os.ModeDir); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	files, err := os.ReadDir(c.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
	}

	var processedCount, errCount atomic.Uint64
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		pool.Do(func(fileName string) func() {
			return func() {
				if err := c.convertFile(fileName, conv); err != nil {
					errCount.Add(1)
					slog.Error("could not convert image", "file", fileName, "error", err)
					return
				}
				processedCount.Add(1)
			}
		}(file.Name()))
	}

	pool.Wait()

	processed := processedCount.Load()
	errors := errCount.Load()
	slog.Info("stats", "processed", processed, "errors", errors,
		"total", processed+errors)

	if errors > 0 {
		return fmt.Errorf("error processing %d files", errors)
	}
	return nil
}

func (c *CLICmd) convertFile(fileName string, conv luma.Func) error {
	filePath := filepath.Join(c.Scan, fileName)
	logger := slog.Default().With("file", filePath)

	imgFile, err := os.Open(filePath)
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
	logger.Info("converted", "width", g.Width(), "height", g.Height(), "min", g.Min(), "max", g.Max())

	if c.WindowWidth > 0 {
		if err := g.ApplyWindow(int32(c.WindowCenter), int32(c.WindowWidth)); err != nil {
			return fmt.Errorf("could not apply window: %w", err)
		}
	}

	var out image.Image = g
	if (c.MaxWidth > 0) || (c.MaxHeight > 0) {
		out = fit(logger, out, c.MaxWidth, c.MaxHeight)
	}

	if c.Palette != "" {
		palLog := logger.With("palette", c.Palette)
		out, err = quantize(palLog, out, c.Palette, c.Dither)
		if err != nil {
			return fmt.Errorf("could not quantize image: %w", err)
		}
	}

	if err := save(out, imgType, c.Format, c.Dest, fileName); err != nil {
		return fmt.Errorf("could not save image to %q: %w", c.Dest, err)
	}
	return nil
}
