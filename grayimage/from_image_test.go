package grayimage

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grayview/luma"
)

func TestFromImageGray(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 2, 2))
	src.SetGray(0, 0, color.Gray{Y: 10})
	src.SetGray(1, 0, color.Gray{Y: 20})
	src.SetGray(0, 1, color.Gray{Y: 30})
	src.SetGray(1, 1, color.Gray{Y: 40})

	g, err := FromImage(src, nil)
	require.NoError(t, err)

	assert.Equal(t, int32(10), g.GrayAt(0, 0))
	assert.Equal(t, int32(20), g.GrayAt(0, 1))
	assert.Equal(t, int32(30), g.GrayAt(1, 0))
	assert.Equal(t, int32(40), g.GrayAt(1, 1))
	assert.Equal(t, int32(10), g.Min())
	assert.Equal(t, int32(40), g.Max())
}

func TestFromImageColor(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	src.SetRGBA(0, 0, color.RGBA{R: 0xFF, A: 0xFF})

	g, err := FromImage(src, luma.Rec601)
	require.NoError(t, err)
	assert.Equal(t, int32(76), g.GrayAt(0, 0))
}

func TestFromImageOffsetBounds(t *testing.T) {
	src := image.NewGray(image.Rect(5, 5, 7, 6))
	src.SetGray(5, 5, color.Gray{Y: 1})
	src.SetGray(6, 5, color.Gray{Y: 2})

	g, err := FromImage(src, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, g.Width())
	assert.Equal(t, 1, g.Height())
	assert.Equal(t, int32(1), g.GrayAt(0, 0))
	assert.Equal(t, int32(2), g.GrayAt(0, 1))
}

func TestFromImageEmpty(t *testing.T) {
	_, err := FromImage(image.NewGray(image.Rect(0, 0, 0, 0)), nil)
	assert.ErrorIs(t, err, ErrBadDimensions)
}

func TestFromSource(t *testing.T) {
	grayPal := color.Palette{
		color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF},
		color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF},
	}
	chromaticPal := color.Palette{
		color.RGBA{R: 0xFF, G: 0x00, B: 0x00, A: 0xFF},
	}

	t.Run("gray paletted goes through the indexed path", func(t *testing.T) {
		src := image.NewPaletted(image.Rect(0, 0, 1, 1), grayPal)
		src.SetColorIndex(0, 0, 1)

		g, err := FromSource(src, luma.Rec601)
		require.NoError(t, err)
		assert.Equal(t, int32(0x80), g.GrayAt(0, 0))
	})

	t.Run("chromatic paletted falls back to reduction", func(t *testing.T) {
		src := image.NewPaletted(image.Rect(0, 0, 1, 1), chromaticPal)

		g, err := FromSource(src, luma.Rec601)
		require.NoError(t, err)
		assert.Equal(t, int32(76), g.GrayAt(0, 0))
	})

	t.Run("plain image", func(t *testing.T) {
		src := image.NewGray(image.Rect(0, 0, 1, 1))
		src.SetGray(0, 0, color.Gray{Y: 42})

		g, err := FromSource(src, luma.Rec601)
		require.NoError(t, err)
		assert.Equal(t, int32(42), g.GrayAt(0, 0))
	})
}
