package printer

import (
	"fmt"
	"time"

	"go.bug.st/serial"
)

// DefaultBaudRate matches the PT series serial line speed
const DefaultBaudRate = 115200

type serialTransport struct {
	port serial.Port
}

// NewSerialTransport opens the printer on a serial port such as
// /dev/ttyUSB0 or COM3.
func NewSerialTransport(portName string, baudRate int) (Transport, error) {
	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}

	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("list serial ports: %w", err)
	}
	found := false
	for _, p := range ports {
		if p == portName {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("serial port %s not found", portName)
	}

	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", portName, err)
	}
	if err := port.SetReadTimeout(500 * time.Millisecond); err != nil {
		port.Close()
		return nil, fmt.Errorf("set read timeout: %w", err)
	}

	return &serialTransport{port: port}, nil
}

func (s *serialTransport) Write(p []byte) (int, error) { return s.port.Write(p) }
func (s *serialTransport) Read(p []byte) (int, error)  { return s.port.Read(p) }
func (s *serialTransport) Close() error                { return s.port.Close() }
