package render

import (
	"image"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Fixed point sizes used by the structured label layouts
const (
	BoldFontSize   = 10
	NormalFontSize = 8
	SmallFontSize  = 6
)

const fontDPI = 72

type faceKey struct {
	size int
	bold bool
}

// FontSet parses the embedded Go fonts once and hands out cached
// fixed-size faces. When a face cannot be built it falls back to a
// basic monospace face instead of failing the render.
type FontSet struct {
	regular *opentype.Font
	bold    *opentype.Font

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

// NewFontSet loads the embedded regular and bold fonts
func NewFontSet() (*FontSet, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "failed to parse regular font", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		// Regular weight still renders every layout, just less prominent.
		bold = regular
	}
	return &FontSet{
		regular: regular,
		bold:    bold,
		faces:   make(map[faceKey]font.Face),
	}, nil
}

// Face returns a cached face for the given point size and weight.
// Never fails: falls back to a basic monospace face on error.
func (fs *FontSet) Face(size int, bold bool) font.Face {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	key := faceKey{size: size, bold: bold}
	if face, ok := fs.faces[key]; ok {
		return face
	}

	src := fs.regular
	if bold {
		src = fs.bold
	}
	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     fontDPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		face = basicfont.Face7x13
	}
	fs.faces[key] = face
	return face
}

// Bold returns the face used for label headlines
func (fs *FontSet) Bold() font.Face { return fs.Face(BoldFontSize, true) }

// Normal returns the face used for secondary lines
func (fs *FontSet) Normal() font.Face { return fs.Face(NormalFontSize, false) }

// Small returns the face used for detail lines
func (fs *FontSet) Small() font.Face { return fs.Face(SmallFontSize, false) }

// Measure returns the pixel width and height of the bounding box of s
// when drawn with face.
func (fs *FontSet) Measure(face font.Face, s string) (width, height int) {
	bounds, _ := font.BoundString(face, s)
	return (bounds.Max.X - bounds.Min.X).Ceil(), (bounds.Max.Y - bounds.Min.Y).Ceil()
}

// HasGlyph reports whether face carries a real glyph for r
func (fs *FontSet) HasGlyph(face font.Face, r rune) bool {
	_, ok := face.GlyphAdvance(r)
	return ok
}

// DrawText draws s onto dst with the text bounding box top-left corner
// at (x, y), using the raster's ink color.
func DrawText(dst *Raster, face font.Face, s string, x, y int) {
	bounds, _ := font.BoundString(face, s)
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(dst.InkColor()),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(x) - bounds.Min.X,
			Y: fixed.I(y) - bounds.Min.Y,
		},
	}
	d.DrawString(s)
}
