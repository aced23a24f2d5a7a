package render

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/image/font"

	"github.com/techlabel/backend/internal/domain/label"
)

// Width policy constants per label kind. Label width grows with the
// primary text but stays inside the per-kind clamp.
const (
	cableMinWidth    = 180
	cableWidthFactor = 12
	cableMaxWidth    = 350

	deviceMinWidth    = 200
	deviceWidthFactor = 10
	deviceMaxWidth    = 380

	warningMinWidth    = 160
	warningWidthFactor = 12
	warningMaxWidth    = 320

	textMinWidth   = 180
	textMaxWidth   = 400
	textPadding    = 40
	textShrinkPad  = 20
	minTextShrink  = 8
	maxModelChars  = 30
	modelTruncated = 27
)

// LabelRenderer lays out structured labels (cable, device, warning,
// text) onto fixed-height rasters. Rendering is pure given the font
// set; the raster height always equals the printer's print height.
type LabelRenderer struct {
	fonts  *FontSet
	logger *zap.Logger
}

// NewLabelRenderer creates a label renderer
func NewLabelRenderer(fonts *FontSet, logger *zap.Logger) *LabelRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LabelRenderer{fonts: fonts, logger: logger}
}

// RenderCable renders a cable identification label
func (r *LabelRenderer) RenderCable(req *label.CableLabel, printHeight int) (*Raster, error) {
	if err := checkPrintHeight(printHeight); err != nil {
		return nil, err
	}
	width := clampWidth(utf8.RuneCountInString(req.CableType), cableMinWidth, cableWidthFactor, cableMaxWidth)
	rst := NewStructured(width, printHeight)

	bold := r.fonts.Bold()
	normal := r.fonts.Normal()
	small := r.fonts.Small()

	y := 3

	w, h := r.fonts.Measure(bold, req.CableType)
	DrawText(rst, bold, req.CableType, (width-w)/2, y)
	y += h + 2

	if req.Voltage != "" && y+10 < printHeight {
		line := r.symbol(normal, "⚡", ">>") + " " + req.Voltage
		w, h = r.fonts.Measure(normal, line)
		DrawText(rst, normal, line, (width-w)/2, y)
		y += h + 1
	}

	if req.Destination != "" && y+8 < printHeight {
		line := "→ " + req.Destination
		w, h = r.fonts.Measure(small, line)
		DrawText(rst, small, line, (width-w)/2, y)
		y += h + 1
	}

	if req.ColorCode != "" && y+6 < printHeight {
		line := req.ColorCode
		w, _ = r.fonts.Measure(small, line)
		if w > width-8 {
			maxChars := (width - 20) / 5
			if utf8.RuneCountInString(line) > maxChars {
				line = string([]rune(line)[:maxChars]) + "..."
			}
		}
		w, _ = r.fonts.Measure(small, line)
		DrawText(rst, small, line, (width-w)/2, y)
	}

	return rst, nil
}

// RenderDevice renders a network device label
func (r *LabelRenderer) RenderDevice(req *label.DeviceLabel, printHeight int) (*Raster, error) {
	if err := checkPrintHeight(printHeight); err != nil {
		return nil, err
	}
	width := clampWidth(utf8.RuneCountInString(req.DeviceName), deviceMinWidth, deviceWidthFactor, deviceMaxWidth)
	rst := NewStructured(width, printHeight)

	bold := r.fonts.Bold()
	normal := r.fonts.Normal()
	small := r.fonts.Small()

	y := 2

	w, h := r.fonts.Measure(bold, req.DeviceName)
	DrawText(rst, bold, req.DeviceName, (width-w)/2, y)
	y += h + 2

	if req.IPAddress != "" && y+9 < printHeight {
		line := "IP: " + req.IPAddress
		w, h = r.fonts.Measure(normal, line)
		DrawText(rst, normal, line, (width-w)/2, y)
		y += h + 1
	}

	if req.MACAddress != "" && y+7 < printHeight {
		// Only the last part of the MAC stays readable at 6pt.
		mac := strings.ReplaceAll(req.MACAddress, ":", "")
		if len(mac) > 6 {
			mac = mac[len(mac)-6:]
		}
		line := "MAC: ..." + strings.ToUpper(mac)
		w, h = r.fonts.Measure(small, line)
		DrawText(rst, small, line, (width-w)/2, y)
		y += h + 1
	}

	info := req.Model
	if info == "" {
		info = req.RackUnit
	}
	if info != "" && y+6 < printHeight {
		info = TruncateModel(info)
		w, _ = r.fonts.Measure(small, info)
		DrawText(rst, small, info, (width-w)/2, y)
	}

	return rst, nil
}

// RenderWarning renders a safety warning label
func (r *LabelRenderer) RenderWarning(req *label.WarningLabel, printHeight int) (*Raster, error) {
	if err := checkPrintHeight(printHeight); err != nil {
		return nil, err
	}
	width := clampWidth(utf8.RuneCountInString(req.WarningText), warningMinWidth, warningWidthFactor, warningMaxWidth)
	rst := NewStructured(width, printHeight)

	bold := r.fonts.Bold()
	normal := r.fonts.Normal()

	y := 4

	icon := r.symbol(bold, req.Icon, "!")
	line := icon + " " + strings.ToUpper(req.WarningText) + " " + icon
	w, h := r.fonts.Measure(bold, line)
	DrawText(rst, bold, line, (width-w)/2, y)
	y += h + 3

	if req.Voltage != "" && y+10 < printHeight {
		line = ">>> " + req.Voltage + " <<<"
		w, _ = r.fonts.Measure(normal, line)
		DrawText(rst, normal, line, (width-w)/2, y)
	}

	return rst, nil
}

// RenderText renders a single-line free text label, shrinking the font
// until the text fits or the minimum size is reached.
func (r *LabelRenderer) RenderText(req *label.TextLabel, printHeight int) (*Raster, error) {
	if err := checkPrintHeight(printHeight); err != nil {
		return nil, err
	}

	estimated := int(float64(utf8.RuneCountInString(req.Text)) * float64(req.FontSize) * 0.6)
	width := estimated + textPadding
	if width > textMaxWidth {
		width = textMaxWidth
	}
	if width < textMinWidth {
		width = textMinWidth
	}
	rst := NewStructured(width, printHeight)

	face := r.fonts.Face(req.FontSize, true)
	w, h := r.fonts.Measure(face, req.Text)

	if w > width-textShrinkPad {
		size := ShrinkFontSize(req.FontSize, width-textShrinkPad, w)
		r.logger.Debug("text label auto-shrink",
			zap.Int("requested", req.FontSize),
			zap.Int("effective", size))
		face = r.fonts.Face(size, true)
		w, h = r.fonts.Measure(face, req.Text)
	}

	DrawText(rst, face, req.Text, (width-w)/2, (printHeight-h)/2)
	return rst, nil
}

// ShrinkFontSize scales the requested size down so the measured text
// width fits maxWidth, never going below the minimum readable size.
func ShrinkFontSize(requested, maxWidth, measuredWidth int) int {
	size := requested * maxWidth / measuredWidth
	if size < minTextShrink {
		return minTextShrink
	}
	return size
}

// TruncateModel shortens a device model string that exceeds 30
// characters to its first 27 characters plus "...".
func TruncateModel(info string) string {
	runes := []rune(info)
	if len(runes) <= maxModelChars {
		return info
	}
	return string(runes[:modelTruncated]) + "..."
}

// symbol returns s when face carries a glyph for every rune, otherwise
// the fallback. The embedded Go fonts miss some of the pictographs the
// label set uses, which would otherwise draw as .notdef boxes.
func (r *LabelRenderer) symbol(face font.Face, s, fallback string) string {
	if glyphsAvailable(r.fonts, face, s) {
		return s
	}
	return fallback
}

func clampWidth(charCount, minWidth, factor, maxWidth int) int {
	width := charCount * factor
	if width > maxWidth {
		width = maxWidth
	}
	if width < minWidth {
		width = minWidth
	}
	return width
}

func checkPrintHeight(printHeight int) error {
	if printHeight < 1 {
		return NewRenderError(ErrCodeRenderFailed, "print height must be positive", nil)
	}
	return nil
}
