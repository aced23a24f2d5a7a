package render

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/image/font"

	"github.com/techlabel/backend/internal/domain/label"
)

const (
	barWidthPx     = 2
	qrMarkerSize   = 8
	tableFontSize  = 8
	cellTextInsetX = 2
	cellTextInsetY = 2
)

// CanvasRenderer draws custom label elements onto a white-background
// canvas with black ink (the inverted convention, see Raster).
type CanvasRenderer struct {
	fonts  *FontSet
	logger *zap.Logger
}

// NewCanvasRenderer creates a canvas renderer
func NewCanvasRenderer(fonts *FontSet, logger *zap.Logger) *CanvasRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CanvasRenderer{fonts: fonts, logger: logger}
}

// Render draws all canvas elements in list order. Later elements
// overwrite earlier ones; there is no z-index or collision handling.
// A failing element aborts the whole canvas, no partial raster is
// returned.
func (cr *CanvasRenderer) Render(canvas *label.CustomCanvas) (*Raster, error) {
	rst := NewCanvas(canvas.Width, canvas.Height)
	for _, el := range canvas.Elements {
		if err := cr.drawElement(rst, el); err != nil {
			return nil, NewElementError(el.ElementID(), err)
		}
	}
	return rst, nil
}

func (cr *CanvasRenderer) drawElement(rst *Raster, el label.Element) error {
	switch e := el.(type) {
	case label.TextElement:
		face := cr.fonts.Face(e.FontSize, e.Bold)
		DrawText(rst, face, e.Text, e.X, e.Y)

	case label.QRElement:
		// Placeholder only, not a real QR symbology.
		rectOutline(rst, e.X, e.Y, e.Size, e.Size)
		face := cr.fonts.Face(qrMarkerSize, false)
		w, h := cr.fonts.Measure(face, "QR")
		DrawText(rst, face, "QR", e.X+(e.Size-w)/2, e.Y+(e.Size-h)/2)

	case label.BarcodeElement:
		// Alternating stripes as a visual placeholder, not decodable.
		bars := e.Width / (2 * barWidthPx)
		for i := 0; i < bars; i++ {
			fillRect(rst, e.X+i*2*barWidthPx, e.Y, barWidthPx, e.Height)
		}

	case label.IconElement:
		face := cr.fonts.Face(e.Size, false)
		if glyphsAvailable(cr.fonts, face, e.Icon) {
			DrawText(rst, face, e.Icon, e.X, e.Y)
		} else {
			circleOutline(rst, e.X, e.Y, e.Size)
		}

	case label.LineElement:
		// Thickness approximated by vertical 1px offsets.
		for i := 0; i < e.Thickness; i++ {
			drawLine(rst, e.X, e.Y+i, e.X2, e.Y2+i)
		}

	case label.RectElement:
		if e.FillColor != "" && e.FillColor != "transparent" {
			if e.FillColor == "white" {
				clearRect(rst, e.X, e.Y, e.Width, e.Height)
			} else {
				fillRect(rst, e.X, e.Y, e.Width, e.Height)
			}
		}
		for i := 0; i < e.BorderWidth; i++ {
			rectOutline(rst, e.X+i, e.Y+i, e.Width-2*i, e.Height-2*i)
		}

	case label.TableElement:
		cr.drawTable(rst, e)

	default:
		return fmt.Errorf("unsupported element kind %q", el.Kind())
	}
	return nil
}

func (cr *CanvasRenderer) drawTable(rst *Raster, e label.TableElement) {
	gridWidth := e.Cols * e.CellWidth
	gridHeight := e.Rows * e.CellHeight

	for row := 0; row <= e.Rows; row++ {
		horizontalLine(rst, e.X, e.Y+row*e.CellHeight, gridWidth+1)
	}
	for col := 0; col <= e.Cols; col++ {
		verticalLine(rst, e.X+col*e.CellWidth, e.Y, gridHeight+1)
	}

	if len(e.Data) == 0 {
		return
	}
	face := cr.fonts.Face(tableFontSize, false)
	// Cell data beyond the declared grid is clipped, not drawn.
	for row := 0; row < e.Rows && row < len(e.Data); row++ {
		for col := 0; col < e.Cols && col < len(e.Data[row]); col++ {
			cell := e.Data[row][col]
			if cell == "" {
				continue
			}
			DrawText(rst, face, cell,
				e.X+col*e.CellWidth+cellTextInsetX,
				e.Y+row*e.CellHeight+cellTextInsetY)
		}
	}
}

func glyphsAvailable(fonts *FontSet, face font.Face, s string) bool {
	for _, r := range s {
		if !fonts.HasGlyph(face, r) {
			return false
		}
	}
	return true
}
