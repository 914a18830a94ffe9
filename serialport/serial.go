// Package serialport provides the serial-port abstraction the driver
// layer talks to, plus the concrete implementation backed by
// github.com/tarm/serial. It is kept separate from the driver package
// so the driver and controller can be tested against a fake Port
// without touching real hardware.
package serialport

import "io"

// Port is the byte-stream abstraction the wire driver sends and
// receives through. This allows swapping the native implementation for
// a fake in tests.
type Port interface {
	io.ReadWriteCloser

	// Flush flushes any buffered output.
	Flush() error
}

// Config holds the serial-port settings specified by the controller's
// external interface: 115200 baud, 8 data bits, no parity, 1 stop bit,
// no flow control, 10ms read timeout.
type Config struct {
	// Device is the path to the serial device (e.g. "/dev/ttyACM0").
	Device string

	// Baud is the line rate. 115200 unless overridden.
	Baud int

	// ReadTimeoutMillis bounds a single underlying Read call.
	ReadTimeoutMillis int
}

// DefaultConfig returns the controller's standard serial settings for
// the given device path.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:            device,
		Baud:              115200,
		ReadTimeoutMillis: 10,
	}
}
