package label

import (
	"strings"

	"github.com/techlabel/backend/internal/domain/shared"
)

// Default rendering parameters for text labels.
const (
	DefaultTextFontSize = 14
	DefaultWarningIcon  = "⚠"
)

// CableLabel describes a cable identification label
type CableLabel struct {
	CableType   string
	Voltage     string
	Destination string
	ColorCode   string
}

// NewCableLabel creates a validated cable label
func NewCableLabel(cableType, voltage, destination, colorCode string) (*CableLabel, error) {
	if strings.TrimSpace(cableType) == "" {
		return nil, shared.NewDomainError("INVALID_CABLE_TYPE", "Cable type cannot be empty")
	}
	return &CableLabel{
		CableType:   cableType,
		Voltage:     voltage,
		Destination: destination,
		ColorCode:   colorCode,
	}, nil
}

// DeviceLabel describes a network device label
type DeviceLabel struct {
	DeviceName string
	IPAddress  string
	MACAddress string
	Model      string
	RackUnit   string
}

// NewDeviceLabel creates a validated device label
func NewDeviceLabel(deviceName, ipAddress, macAddress, model, rackUnit string) (*DeviceLabel, error) {
	if strings.TrimSpace(deviceName) == "" {
		return nil, shared.NewDomainError("INVALID_DEVICE_NAME", "Device name cannot be empty")
	}
	return &DeviceLabel{
		DeviceName: deviceName,
		IPAddress:  ipAddress,
		MACAddress: macAddress,
		Model:      model,
		RackUnit:   rackUnit,
	}, nil
}

// WarningLabel describes a hazard warning label
type WarningLabel struct {
	WarningText string
	Voltage     string
	Icon        string
}

// NewWarningLabel creates a validated warning label.
// An empty icon defaults to the standard hazard glyph.
func NewWarningLabel(warningText, voltage, icon string) (*WarningLabel, error) {
	if strings.TrimSpace(warningText) == "" {
		return nil, shared.NewDomainError("INVALID_WARNING_TEXT", "Warning text cannot be empty")
	}
	if icon == "" {
		icon = DefaultWarningIcon
	}
	return &WarningLabel{
		WarningText: warningText,
		Voltage:     voltage,
		Icon:        icon,
	}, nil
}

// TextLabel describes a free-form single line text label
type TextLabel struct {
	Text     string
	FontSize int
}

// NewTextLabel creates a validated text label with defaults applied
func NewTextLabel(text string, fontSize int) (*TextLabel, error) {
	if strings.TrimSpace(text) == "" {
		return nil, shared.NewDomainError("INVALID_TEXT", "Label text cannot be empty")
	}
	if fontSize == 0 {
		fontSize = DefaultTextFontSize
	}
	if fontSize < 1 {
		return nil, shared.NewDomainError("INVALID_FONT_SIZE", "Font size must be positive")
	}
	return &TextLabel{
		Text:     text,
		FontSize: fontSize,
	}, nil
}

// BatchLabels describes a batch of text labels printed as one band.
// SeparatorMargin is accepted for API compatibility; the compositor
// uses a fixed 2px separator regardless of its value.
type BatchLabels struct {
	Texts           []string
	FontSize        int
	SeparatorMargin int
}

// NewBatchLabels creates a validated batch. Blank entries are rejected
// because each entry becomes a text label of its own.
func NewBatchLabels(texts []string, fontSize, separatorMargin int) (*BatchLabels, error) {
	if len(texts) == 0 {
		return nil, shared.ErrEmptyInput
	}
	for _, t := range texts {
		if strings.TrimSpace(t) == "" {
			return nil, shared.NewDomainError("INVALID_TEXT", "Batch entries cannot be blank")
		}
	}
	if fontSize == 0 {
		fontSize = DefaultTextFontSize
	}
	if fontSize < 1 {
		return nil, shared.NewDomainError("INVALID_FONT_SIZE", "Font size must be positive")
	}
	if separatorMargin < 0 {
		return nil, shared.NewDomainError("INVALID_MARGIN", "Separator margin cannot be negative")
	}
	return &BatchLabels{Texts: texts, FontSize: fontSize, SeparatorMargin: separatorMargin}, nil
}

// CustomCanvas describes a free-layout label canvas with drawable
// elements. Margin is the tape feed margin in dots used when the
// canvas is printed; zero selects the single-label default.
type CustomCanvas struct {
	Width    int
	Height   int
	Margin   int
	Elements []Element
}

// Canvas size bounds for custom labels
const (
	MinCanvasSize = 1
	MaxCanvasSize = 2048
)

// NewCustomCanvas creates a validated custom canvas from raw element specs
func NewCustomCanvas(width, height, margin int, specs []ElementSpec) (*CustomCanvas, error) {
	if width < MinCanvasSize || width > MaxCanvasSize {
		return nil, shared.NewDomainError("INVALID_CANVAS", "Canvas width out of range")
	}
	if height < MinCanvasSize || height > MaxCanvasSize {
		return nil, shared.NewDomainError("INVALID_CANVAS", "Canvas height out of range")
	}
	if margin < 0 {
		return nil, shared.NewDomainError("INVALID_CANVAS", "Canvas margin cannot be negative")
	}
	if len(specs) == 0 {
		return nil, shared.ErrEmptyInput
	}
	elements := make([]Element, 0, len(specs))
	for i, spec := range specs {
		el, err := spec.Build(i)
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
	}
	return &CustomCanvas{
		Width:    width,
		Height:   height,
		Margin:   margin,
		Elements: elements,
	}, nil
}
