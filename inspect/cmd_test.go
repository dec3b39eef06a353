package inspect

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gradient.png")

	img := image.NewGray(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(x * 60)})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	c := &CLICmd{Mode: "luma", Paths: []string{path}}
	assert.NoError(t, c.Run())
}

func TestRunBadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "not-an-image.png")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o644))

	c := &CLICmd{Mode: "luma", Paths: []string{path}}
	assert.ErrorContains(t, c.Run(), "1 files")
}

func TestPeakLevel(t *testing.T) {
	var hist [256]int
	hist[12] = 3
	hist[200] = 7
	hist[255] = 2

	level, count := peakLevel(hist)
	assert.Equal(t, 200, level)
	assert.Equal(t, 7, count)
}
