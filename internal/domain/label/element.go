package label

import (
	"fmt"
	"strings"

	"github.com/techlabel/backend/internal/domain/shared"
)

// ElementKind identifies the drawable element variants on a custom canvas
type ElementKind string

const (
	ElementText    ElementKind = "text"
	ElementQR      ElementKind = "qr"
	ElementBarcode ElementKind = "barcode"
	ElementIcon    ElementKind = "icon"
	ElementLine    ElementKind = "line"
	ElementRect    ElementKind = "rect"
	ElementTable   ElementKind = "table"
)

// IsValid checks if the ElementKind is a valid value
func (k ElementKind) IsValid() bool {
	switch k {
	case ElementText, ElementQR, ElementBarcode, ElementIcon, ElementLine, ElementRect, ElementTable:
		return true
	}
	return false
}

// Element is a drawable item on a custom canvas. Variants are built
// through ElementSpec.Build so every element the renderer sees has
// already been validated and carries its defaults.
type Element interface {
	ElementID() string
	Kind() ElementKind
}

// ElementBase holds the fields shared by all element variants
type ElementBase struct {
	ID string
	X  int
	Y  int
}

// ElementID returns the element identifier used in error reports
func (b ElementBase) ElementID() string { return b.ID }

// TextElement draws a text string at a position
type TextElement struct {
	ElementBase
	Text     string
	FontSize int
	Bold     bool
}

func (TextElement) Kind() ElementKind { return ElementText }

// QRElement draws a QR code placeholder box
type QRElement struct {
	ElementBase
	Data string
	Size int
}

func (QRElement) Kind() ElementKind { return ElementQR }

// BarcodeElement draws a striped barcode placeholder
type BarcodeElement struct {
	ElementBase
	Data   string
	Width  int
	Height int
}

func (BarcodeElement) Kind() ElementKind { return ElementBarcode }

// IconElement draws a single glyph
type IconElement struct {
	ElementBase
	Icon string
	Size int
}

func (IconElement) Kind() ElementKind { return ElementIcon }

// LineElement draws a straight line segment
type LineElement struct {
	ElementBase
	X2        int
	Y2        int
	Thickness int
}

func (LineElement) Kind() ElementKind { return ElementLine }

// RectElement draws a rectangle with optional fill
type RectElement struct {
	ElementBase
	Width       int
	Height      int
	FillColor   string
	BorderWidth int
}

func (RectElement) Kind() ElementKind { return ElementRect }

// TableElement draws a grid of cells with optional cell text
type TableElement struct {
	ElementBase
	Rows       int
	Cols       int
	CellWidth  int
	CellHeight int
	Data       [][]string
}

func (TableElement) Kind() ElementKind { return ElementTable }

// Element defaults applied at construction
const (
	defaultElementFontSize = 12
	defaultQRSize          = 30
	defaultBarcodeWidth    = 80
	defaultBarcodeHeight   = 20
	defaultIconSize        = 16
	defaultLineLength      = 50
	defaultLineThickness   = 1
	defaultRectWidth       = 40
	defaultRectHeight      = 20
	defaultBorderWidth     = 1
	defaultCellWidth       = 40
	defaultCellHeight      = 15
	defaultTableRows       = 2
	defaultTableCols       = 2
)

// ElementSpec is the raw, untyped description of one canvas element as
// received from the API. Build turns it into a typed Element variant.
type ElementSpec struct {
	Type        string
	ID          string
	X           int
	Y           int
	Text        string
	FontSize    int
	Bold        bool
	Data        string
	Size        int
	Width       int
	Height      int
	Icon        string
	X2          *int
	Y2          *int
	Thickness   int
	FillColor   string
	BorderWidth int
	Rows        int
	Cols        int
	CellWidth   int
	CellHeight  int
	TableData   [][]string
}

// Build validates the spec and produces the typed element variant.
// The index is used to synthesize an identifier when none is given.
func (s ElementSpec) Build(index int) (Element, error) {
	base := ElementBase{ID: s.ID, X: s.X, Y: s.Y}
	if base.ID == "" {
		base.ID = fmt.Sprintf("element_%d", index)
	}
	if s.X < 0 || s.Y < 0 {
		return nil, invalidElement(base.ID, "position cannot be negative")
	}

	switch ElementKind(s.Type) {
	case ElementText:
		if strings.TrimSpace(s.Text) == "" {
			return nil, invalidElement(base.ID, "text element requires text")
		}
		fontSize := s.FontSize
		if fontSize == 0 {
			fontSize = defaultElementFontSize
		}
		if fontSize < 1 {
			return nil, invalidElement(base.ID, "font size must be positive")
		}
		return TextElement{ElementBase: base, Text: s.Text, FontSize: fontSize, Bold: s.Bold}, nil

	case ElementQR:
		if s.Data == "" {
			return nil, invalidElement(base.ID, "qr element requires data")
		}
		size := s.Size
		if size == 0 {
			size = defaultQRSize
		}
		if size < 1 {
			return nil, invalidElement(base.ID, "qr size must be positive")
		}
		return QRElement{ElementBase: base, Data: s.Data, Size: size}, nil

	case ElementBarcode:
		if s.Data == "" {
			return nil, invalidElement(base.ID, "barcode element requires data")
		}
		width, height := s.Width, s.Height
		if width == 0 {
			width = defaultBarcodeWidth
		}
		if height == 0 {
			height = defaultBarcodeHeight
		}
		if width < 1 || height < 1 {
			return nil, invalidElement(base.ID, "barcode dimensions must be positive")
		}
		return BarcodeElement{ElementBase: base, Data: s.Data, Width: width, Height: height}, nil

	case ElementIcon:
		icon := s.Icon
		if icon == "" {
			icon = DefaultWarningIcon
		}
		size := s.Size
		if size == 0 {
			size = defaultIconSize
		}
		if size < 1 {
			return nil, invalidElement(base.ID, "icon size must be positive")
		}
		return IconElement{ElementBase: base, Icon: icon, Size: size}, nil

	case ElementLine:
		x2, y2 := s.X+defaultLineLength, s.Y
		if s.X2 != nil {
			x2 = *s.X2
		}
		if s.Y2 != nil {
			y2 = *s.Y2
		}
		thickness := s.Thickness
		if thickness == 0 {
			thickness = defaultLineThickness
		}
		if thickness < 1 {
			return nil, invalidElement(base.ID, "line thickness must be positive")
		}
		return LineElement{ElementBase: base, X2: x2, Y2: y2, Thickness: thickness}, nil

	case ElementRect:
		width, height := s.Width, s.Height
		if width == 0 {
			width = defaultRectWidth
		}
		if height == 0 {
			height = defaultRectHeight
		}
		if width < 1 || height < 1 {
			return nil, invalidElement(base.ID, "rect dimensions must be positive")
		}
		borderWidth := s.BorderWidth
		if borderWidth == 0 {
			borderWidth = defaultBorderWidth
		}
		if borderWidth < 0 {
			return nil, invalidElement(base.ID, "border width cannot be negative")
		}
		return RectElement{
			ElementBase: base,
			Width:       width,
			Height:      height,
			FillColor:   s.FillColor,
			BorderWidth: borderWidth,
		}, nil

	case ElementTable:
		rows, cols := s.Rows, s.Cols
		if rows == 0 {
			rows = defaultTableRows
		}
		if cols == 0 {
			cols = defaultTableCols
		}
		if rows < 1 || cols < 1 {
			return nil, invalidElement(base.ID, "table dimensions must be positive")
		}
		cellWidth, cellHeight := s.CellWidth, s.CellHeight
		if cellWidth == 0 {
			cellWidth = defaultCellWidth
		}
		if cellHeight == 0 {
			cellHeight = defaultCellHeight
		}
		if cellWidth < 1 || cellHeight < 1 {
			return nil, invalidElement(base.ID, "cell dimensions must be positive")
		}
		return TableElement{
			ElementBase: base,
			Rows:        rows,
			Cols:        cols,
			CellWidth:   cellWidth,
			CellHeight:  cellHeight,
			Data:        s.TableData,
		}, nil

	default:
		return nil, invalidElement(base.ID, fmt.Sprintf("unknown element type %q", s.Type))
	}
}

func invalidElement(id, message string) *shared.DomainError {
	return shared.NewDomainError("INVALID_ELEMENT", fmt.Sprintf("%s: %s", id, message))
}
