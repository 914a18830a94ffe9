package serialport

import (
	"fmt"
	"time"

	"github.com/tarm/serial"
)

// NativePort wraps github.com/tarm/serial, configured to the
// controller's fixed line settings (8 data bits, no parity, 1 stop bit
// — tarm/serial's zero values — at the baud and timeout given by cfg).
type NativePort struct {
	port *serial.Port
}

// Open opens the native serial port described by cfg.
func Open(cfg *Config) (Port, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: time.Duration(cfg.ReadTimeoutMillis) * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", cfg.Device, err)
	}

	return &NativePort{port: port}, nil
}

func (p *NativePort) Read(b []byte) (int, error) {
	return p.port.Read(b)
}

func (p *NativePort) Write(b []byte) (int, error) {
	return p.port.Write(b)
}

func (p *NativePort) Close() error {
	return p.port.Close()
}

// Flush is a no-op: tarm/serial writes synchronously and exposes no
// separate flush call.
func (p *NativePort) Flush() error {
	return nil
}
