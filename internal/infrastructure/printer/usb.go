package printer

import (
	"fmt"

	"github.com/google/gousb"
)

// USB identifiers for the supported device
const (
	BrotherVendorID  gousb.ID = 0x04f9
	PTE550WProductID gousb.ID = 0x2060
)

type usbTransport struct {
	ctx  *gousb.Context
	dev  *gousb.Device
	cfg  *gousb.Config
	intf *gousb.Interface
	out  *gousb.OutEndpoint
	in   *gousb.InEndpoint
}

// NewUSBTransport opens the printer over USB bulk endpoints.
func NewUSBTransport(vendorID, productID gousb.ID) (Transport, error) {
	ctx := gousb.NewContext()
	dev, err := ctx.OpenDeviceWithVIDPID(vendorID, productID)
	if err != nil {
		ctx.Close()
		return nil, fmt.Errorf("open usb device %s:%s: %w", vendorID, productID, err)
	}
	if dev == nil {
		ctx.Close()
		return nil, fmt.Errorf("usb device %s:%s not found", vendorID, productID)
	}

	dev.SetAutoDetach(true)
	cfg, err := dev.Config(1)
	if err != nil {
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("usb config: %w", err)
	}

	intf, err := cfg.Interface(0, 0)
	if err != nil {
		cfg.Close()
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("usb interface: %w", err)
	}

	out, err := intf.OutEndpoint(0x02)
	if err != nil {
		intf.Close()
		cfg.Close()
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("usb out endpoint: %w", err)
	}

	in, err := intf.InEndpoint(0x81)
	if err != nil {
		// Status replies unavailable, writes still work.
		in = nil
	}

	return &usbTransport{ctx: ctx, dev: dev, cfg: cfg, intf: intf, out: out, in: in}, nil
}

func (u *usbTransport) Write(p []byte) (int, error) {
	return u.out.Write(p)
}

func (u *usbTransport) Read(p []byte) (int, error) {
	if u.in == nil {
		return 0, fmt.Errorf("usb in endpoint not available")
	}
	return u.in.Read(p)
}

func (u *usbTransport) Close() error {
	if u.intf != nil {
		u.intf.Close()
	}
	if u.cfg != nil {
		u.cfg.Close()
	}
	if u.dev != nil {
		u.dev.Close()
	}
	if u.ctx != nil {
		return u.ctx.Close()
	}
	return nil
}
