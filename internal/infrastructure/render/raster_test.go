package render

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStructured_Convention(t *testing.T) {
	r := NewStructured(16, 8)

	// Black background, white ink.
	assert.Equal(t, color.Gray{Y: 0}, r.At(0, 0))
	assert.Equal(t, color.Gray{Y: 255}, r.InkColor())

	r.SetInk(3, 4)
	assert.Equal(t, color.Gray{Y: 255}, r.At(3, 4))
	assert.True(t, r.IsInk(3, 4))
	assert.False(t, r.IsInk(0, 0))
}

func TestNewCanvas_Convention(t *testing.T) {
	r := NewCanvas(16, 8)

	// White background, black ink, inverted from structured labels.
	assert.Equal(t, color.Gray{Y: 255}, r.At(0, 0))
	assert.Equal(t, color.Gray{Y: 0}, r.InkColor())

	r.SetInk(3, 4)
	assert.Equal(t, color.Gray{Y: 0}, r.At(3, 4))
	assert.True(t, r.IsInk(3, 4))
	assert.False(t, r.IsInk(0, 0))
}

func TestRaster_SetThreshold(t *testing.T) {
	r := NewStructured(8, 1)

	r.Set(0, 0, color.Gray{Y: 200})
	r.Set(1, 0, color.Gray{Y: 100})

	assert.Equal(t, color.Gray{Y: 255}, r.At(0, 0))
	assert.Equal(t, color.Gray{Y: 0}, r.At(1, 0))
}

func TestRaster_OutOfBoundsSafe(t *testing.T) {
	r := NewStructured(8, 8)

	assert.NotPanics(t, func() {
		r.SetInk(-1, 0)
		r.SetInk(0, -1)
		r.SetInk(8, 0)
		r.SetInk(0, 8)
		r.Set(100, 100, color.White)
	})
	assert.False(t, r.IsInk(-1, 0))
	assert.False(t, r.IsInk(100, 100))
}

func TestRaster_NonByteAlignedWidth(t *testing.T) {
	r := NewStructured(13, 2)

	r.SetInk(12, 1)
	assert.True(t, r.IsInk(12, 1))
	assert.False(t, r.IsInk(11, 1))
}

func TestRaster_EncodePNG(t *testing.T) {
	r := NewCanvas(20, 10)
	r.SetInk(5, 5)

	var buf bytes.Buffer
	require.NoError(t, r.EncodePNG(&buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 20, img.Bounds().Dx())
	assert.Equal(t, 10, img.Bounds().Dy())

	gray := color.GrayModel.Convert(img.At(5, 5)).(color.Gray)
	assert.Equal(t, uint8(0), gray.Y)
}
