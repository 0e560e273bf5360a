package serial

import (
	"errors"
	"io"
)

// ErrTimeout reports a read that expired without delivering any data.
// A chip that is not in boot mode never answers the sync pattern, so
// the timeout is the normal failure mode rather than an exceptional one.
var ErrTimeout = errors.New("serial: read timeout")

// Port represents a serial port connected to a BL702 in boot-ROM mode.
// The abstraction keeps the ISP protocol testable against an in-memory
// implementation.
type Port interface {
	io.ReadWriteCloser
}

// Config holds serial port configuration.
type Config struct {
	// Device path (e.g., "/dev/ttyUSB0", "COM3")
	Device string

	// Baud rate. The boot ROM detects the rate from the sync pattern;
	// 115200 always works, higher rates up to 2M depend on the adapter.
	Baud int

	// Read timeout in milliseconds (0 = blocking). The ROM answers
	// within a few milliseconds, so a short timeout doubles as the
	// "chip not in boot mode" detector.
	ReadTimeout int
}

// DefaultConfig returns a configuration matching the ROM's defaults.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 2000,
	}
}
