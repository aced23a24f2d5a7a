package printer

import (
	"context"
	"fmt"

	"github.com/techlabel/backend/internal/infrastructure/render"
)

// PrintHeadPins is the number of dots across the PT print head. A
// raster line addresses all pins; tape narrower than the head leaves
// a margin of unused pins on each side.
const PrintHeadPins = 128

// Defaults used when the device cannot report its media, so the
// service can still render previews and serve its API.
const (
	DefaultTapeWidthMM   = 9
	DefaultPrintHeightPx = 50
)

// tapeMargin maps the media width reported by the printer (in mm) to
// the number of unused pins on each side of the head. The 3.5mm tape
// reports itself as 4mm.
var tapeMargin = map[int]int{
	4:  52,
	6:  48,
	9:  39,
	12: 29,
	18: 8,
	24: 0,
}

// Media describes the tape currently loaded in the printer.
type Media struct {
	// TapeWidthMM is the media width as reported by the device
	TapeWidthMM int
	// PrintHeightPx is the printable height in dots for this tape
	PrintHeightPx int
}

// PrintHeightForTape computes the printable dot height for a tape
// width. Unknown widths return an error so callers fall back to the
// defaults explicitly.
func PrintHeightForTape(widthMM int) (int, error) {
	margin, ok := tapeMargin[widthMM]
	if !ok {
		return 0, NewPrintError(ErrCodeUnsupportedTape,
			fmt.Sprintf("unsupported tape width %dmm", widthMM), nil)
	}
	return PrintHeadPins - 2*margin, nil
}

// Printer drives a label printer. Implementations are not safe for
// concurrent use; callers serialize access.
type Printer interface {
	// Initialize probes the device and returns the loaded media
	Initialize(ctx context.Context) (Media, error)
	// Send prints a raster, offset marginPx dots from the head edge
	Send(img *render.Raster, marginPx int) error
	// Ready reports whether Initialize succeeded
	Ready() bool
	// Close releases the underlying transport
	Close() error
}

// PrintError represents an error while talking to the printer
type PrintError struct {
	Code    string
	Message string
	Cause   error
}

func (e *PrintError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *PrintError) Unwrap() error {
	return e.Cause
}

// Error codes for printer failures
const (
	ErrCodeNotReady        = "PRINTER_NOT_READY"
	ErrCodeOffline         = "PRINTER_OFFLINE"
	ErrCodeUnsupportedTape = "UNSUPPORTED_TAPE"
	ErrCodePrintFailed     = "PRINT_FAILED"
)

// NewPrintError creates a new PrintError
func NewPrintError(code, message string, cause error) *PrintError {
	return &PrintError{Code: code, Message: message, Cause: cause}
}
