package render

import (
	"image"
	"image/color"
	"image/png"
	"io"
)

// Raster is a 1-bit-per-pixel monochrome image. A set bit is a white
// pixel, a clear bit is a black pixel.
//
// Two pixel polarity conventions are in use and deliberately kept
// apart: structured labels (cable, device, warning, text, batch) start
// from an all-black background and draw white ink, while custom
// canvases start all-white and draw black ink. Each path matches what
// the corresponding printer pipeline expects, so they must not be
// unified without confirming the hardware behavior for both.
type Raster struct {
	width  int
	height int
	stride int
	bits   []byte
	ink    color.Gray
}

func newRaster(width, height int, background, ink color.Gray) *Raster {
	stride := (width + 7) / 8
	bits := make([]byte, stride*height)
	if background.Y >= 128 {
		for i := range bits {
			bits[i] = 0xFF
		}
	}
	return &Raster{
		width:  width,
		height: height,
		stride: stride,
		bits:   bits,
		ink:    ink,
	}
}

// NewStructured creates a black-background raster drawn with white ink
func NewStructured(width, height int) *Raster {
	return newRaster(width, height, color.Gray{Y: 0}, color.Gray{Y: 255})
}

// NewCanvas creates a white-background raster drawn with black ink
func NewCanvas(width, height int) *Raster {
	return newRaster(width, height, color.Gray{Y: 255}, color.Gray{Y: 0})
}

// Width returns the raster width in pixels
func (r *Raster) Width() int { return r.width }

// Height returns the raster height in pixels
func (r *Raster) Height() int { return r.height }

// InkColor returns the drawing color for this raster's convention
func (r *Raster) InkColor() color.Color { return r.ink }

// ColorModel implements image.Image
func (r *Raster) ColorModel() color.Model { return color.GrayModel }

// Bounds implements image.Image
func (r *Raster) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.width, r.height)
}

// At implements image.Image
func (r *Raster) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return color.Gray{Y: 0}
	}
	if r.bit(x, y) {
		return color.Gray{Y: 255}
	}
	return color.Gray{Y: 0}
}

// Set implements draw.Image. Anti-aliased glyph coverage is collapsed
// to one bit by luminance threshold.
func (r *Raster) Set(x, y int, c color.Color) {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return
	}
	gray := color.GrayModel.Convert(c).(color.Gray)
	r.setBit(x, y, gray.Y >= 128)
}

// SetInk paints one pixel with the raster's ink color. Out-of-bounds
// coordinates are ignored so element drawing never panics.
func (r *Raster) SetInk(x, y int) {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return
	}
	r.setBit(x, y, r.ink.Y >= 128)
}

// IsInk reports whether the pixel at (x, y) carries ink
func (r *Raster) IsInk(x, y int) bool {
	if x < 0 || y < 0 || x >= r.width || y >= r.height {
		return false
	}
	return r.bit(x, y) == (r.ink.Y >= 128)
}

// EncodePNG writes the raster as a PNG image
func (r *Raster) EncodePNG(w io.Writer) error {
	return png.Encode(w, r)
}

func (r *Raster) bit(x, y int) bool {
	return r.bits[y*r.stride+x/8]&(0x80>>uint(x%8)) != 0
}

func (r *Raster) setBit(x, y int, white bool) {
	idx := y*r.stride + x/8
	mask := byte(0x80) >> uint(x%8)
	if white {
		r.bits[idx] |= mask
	} else {
		r.bits[idx] &^= mask
	}
}
