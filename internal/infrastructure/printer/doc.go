// Package printer provides infrastructure implementations for driving
// Brother PT series label printers over the raster protocol.
//
// This package contains:
// - Printer interface for initializing the device and sending rasters
// - Brother implementation speaking the PT raster command set
// - Transport interface with USB (gousb) and serial (go.bug.st/serial) backends
// - Mock implementation for development without attached hardware
//
// Example usage:
//
//	transport, err := printer.NewUSBTransport(printer.BrotherVendorID, printer.PTE550WProductID)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pt := printer.NewBrother(transport, logger)
//	media, err := pt.Initialize(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Tape: %dmm, printable height: %dpx\n", media.TapeWidthMM, media.PrintHeightPx)
package printer
