package printer

import "io"

// Transport is the byte pipe to the device. USB and serial backends
// implement it; tests use in-memory buffers.
type Transport interface {
	io.ReadWriteCloser
}

// writeAll writes the whole buffer, retrying on short writes.
func writeAll(t Transport, b []byte) error {
	sent := 0
	for sent < len(b) {
		n, err := t.Write(b[sent:])
		if err != nil {
			return err
		}
		sent += n
	}
	return nil
}
