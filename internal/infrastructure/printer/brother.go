package printer

import (
	"bytes"
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/techlabel/backend/internal/infrastructure/render"
)

// PT raster command bytes
var (
	cmdInvalidate  = bytes.Repeat([]byte{0x00}, 100)
	cmdInitialize  = []byte{0x1b, 0x40}
	cmdRasterMode  = []byte{0x1b, 0x69, 0x61, 0x01}
	cmdStatusReq   = []byte{0x1b, 0x69, 0x53}
	cmdCompression = []byte{0x4d, 0x02}
)

const (
	statusLength     = 32
	statusMediaWidth = 10
	statusErrorInfo1 = 8
	statusErrorInfo2 = 9

	bytesPerLine = PrintHeadPins / 8
)

// DialFunc opens a transport on demand
type DialFunc func() (Transport, error)

// Brother drives a PT series printer over a Transport using the
// raster protocol with packbits compressed lines.
type Brother struct {
	transport Transport
	dial      DialFunc
	logger    *zap.Logger
	media     Media
	ready     bool
}

// NewBrother creates a printer on the given transport
func NewBrother(transport Transport, logger *zap.Logger) *Brother {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Brother{transport: transport, logger: logger}
}

// NewBrotherDialer creates a printer that opens its transport on the
// first successful Initialize. Startup retries can then recover from a
// device that is plugged in or powered on late.
func NewBrotherDialer(dial DialFunc, logger *zap.Logger) *Brother {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Brother{dial: dial, logger: logger}
}

// Initialize resets the device, requests a status reply and derives
// the printable height from the reported tape width.
func (b *Brother) Initialize(ctx context.Context) (Media, error) {
	if err := ctx.Err(); err != nil {
		return Media{}, err
	}
	if b.transport == nil {
		if b.dial == nil {
			return Media{}, NewPrintError(ErrCodeOffline, "no transport configured", nil)
		}
		transport, err := b.dial()
		if err != nil {
			return Media{}, NewPrintError(ErrCodeOffline, "failed to open transport", err)
		}
		b.transport = transport
	}
	if err := writeAll(b.transport, cmdInvalidate); err != nil {
		return Media{}, NewPrintError(ErrCodeOffline, "invalidate", err)
	}
	if err := writeAll(b.transport, cmdInitialize); err != nil {
		return Media{}, NewPrintError(ErrCodeOffline, "initialize", err)
	}
	if err := writeAll(b.transport, cmdStatusReq); err != nil {
		return Media{}, NewPrintError(ErrCodeOffline, "status request", err)
	}

	status, err := b.readStatus()
	if err != nil {
		return Media{}, err
	}
	if status[statusErrorInfo1] != 0 || status[statusErrorInfo2] != 0 {
		return Media{}, NewPrintError(ErrCodeOffline,
			fmt.Sprintf("device error 0x%02x 0x%02x",
				status[statusErrorInfo1], status[statusErrorInfo2]), nil)
	}

	tapeWidth := int(status[statusMediaWidth])
	printHeight, err := PrintHeightForTape(tapeWidth)
	if err != nil {
		return Media{}, err
	}

	b.media = Media{TapeWidthMM: tapeWidth, PrintHeightPx: printHeight}
	b.ready = true
	b.logger.Info("printer initialized",
		zap.Int("tape_width_mm", tapeWidth),
		zap.Int("print_height_px", printHeight))
	return b.media, nil
}

func (b *Brother) readStatus() ([]byte, error) {
	status := make([]byte, statusLength)
	read := 0
	for read < statusLength {
		n, err := b.transport.Read(status[read:])
		if err != nil {
			return nil, NewPrintError(ErrCodeOffline, "read status", err)
		}
		if n == 0 {
			return nil, NewPrintError(ErrCodeOffline, "empty status reply", nil)
		}
		read += n
	}
	return status, nil
}

// Send streams one raster to the device. Columns of the image become
// raster lines across the head. marginPx is the feed margin in dots
// along the tape (ESC i d); across the head the image is centered in
// the printable window of the loaded tape, since narrow tape only
// covers the middle pins.
func (b *Brother) Send(img *render.Raster, marginPx int) error {
	if !b.ready {
		return NewPrintError(ErrCodeNotReady, "printer not initialized", nil)
	}
	if img.Height() > b.media.PrintHeightPx {
		return NewPrintError(ErrCodePrintFailed,
			fmt.Sprintf("raster height %d exceeds printable window %d for %dmm tape",
				img.Height(), b.media.PrintHeightPx, b.media.TapeWidthMM), nil)
	}

	pinOffset := tapeMargin[b.media.TapeWidthMM] + (b.media.PrintHeightPx-img.Height())/2

	var buf bytes.Buffer
	buf.Write(cmdRasterMode)
	buf.Write(printInfo(b.media.TapeWidthMM, img.Width()))
	buf.Write([]byte{0x1b, 0x69, 0x4d, 0x40}) // auto-cut on
	buf.Write([]byte{0x1b, 0x69, 0x4b, 0x08}) // no chain printing
	buf.Write([]byte{0x1b, 0x69, 0x64, byte(marginPx), byte(marginPx >> 8)})
	buf.Write(cmdCompression)

	line := make([]byte, bytesPerLine)
	for x := 0; x < img.Width(); x++ {
		for i := range line {
			line[i] = 0
		}
		empty := true
		for y := 0; y < img.Height(); y++ {
			if !img.IsInk(x, y) {
				continue
			}
			pin := pinOffset + y
			line[pin/8] |= 0x80 >> uint(pin%8)
			empty = false
		}
		if empty {
			buf.WriteByte(0x5a) // Z, zero raster line
			continue
		}
		packed := packBits(line)
		buf.WriteByte(0x47) // G, raster line
		buf.WriteByte(byte(len(packed)))
		buf.WriteByte(byte(len(packed) >> 8))
		buf.Write(packed)
	}
	buf.WriteByte(0x1a) // print with feed

	if err := writeAll(b.transport, buf.Bytes()); err != nil {
		return NewPrintError(ErrCodePrintFailed, "send raster", err)
	}
	b.logger.Debug("raster sent",
		zap.Int("width", img.Width()),
		zap.Int("height", img.Height()),
		zap.Int("margin_px", marginPx),
		zap.Int("pin_offset", pinOffset))
	return nil
}

// Ready reports whether Initialize succeeded
func (b *Brother) Ready() bool { return b.ready }

// Close releases the transport
func (b *Brother) Close() error {
	b.ready = false
	if b.transport == nil {
		return nil
	}
	return b.transport.Close()
}

// printInfo builds the ESC i z print information command carrying the
// media width and the number of raster lines to follow.
func printInfo(tapeWidthMM, rasterLines int) []byte {
	const (
		flagMediaWidth = 0x04
		flagRecover    = 0x80
	)
	return []byte{
		0x1b, 0x69, 0x7a,
		flagMediaWidth | flagRecover,
		0x00, // media type unspecified
		byte(tapeWidthMM),
		0x00, // media length unspecified
		byte(rasterLines),
		byte(rasterLines >> 8),
		byte(rasterLines >> 16),
		byte(rasterLines >> 24),
		0x00, // first page
		0x00,
	}
}

// packBits compresses one raster line with the TIFF packbits scheme:
// a negative count byte repeats the next byte, a non-negative count
// byte prefixes a literal run.
func packBits(data []byte) []byte {
	var out []byte
	i := 0
	for i < len(data) {
		run := 1
		for i+run < len(data) && run < 128 && data[i+run] == data[i] {
			run++
		}
		if run > 1 {
			out = append(out, byte(-(run-1)&0xff), data[i])
			i += run
			continue
		}
		start := i
		for i < len(data) && i-start < 128 {
			if i+1 < len(data) && data[i+1] == data[i] {
				break
			}
			i++
		}
		out = append(out, byte(i-start-1))
		out = append(out, data[start:i]...)
	}
	return out
}
