package serial

import (
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"
)

// NativePort drives a UART adapter through tarm/serial with the read
// semantics the boot ROM needs: an expired timeout surfaces as
// ErrTimeout instead of the zero-byte nil-error read tarm reports,
// which would otherwise make io.ReadFull spin forever against a chip
// that never answers.
type NativePort struct {
	port io.ReadWriteCloser
}

var _ Port = (*NativePort)(nil)

// Open opens the device for a boot-ROM session. A positive ReadTimeout
// is required; without one a silent chip hangs every read.
func Open(cfg *Config) (*NativePort, error) {
	if cfg == nil {
		return nil, fmt.Errorf("serial: config cannot be nil")
	}
	if cfg.ReadTimeout <= 0 {
		return nil, fmt.Errorf("serial: read timeout must be positive, got %d", cfg.ReadTimeout)
	}

	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: time.Duration(cfg.ReadTimeout) * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("serial: open %s: %w", cfg.Device, err)
	}
	return &NativePort{port: port}, nil
}

// Read reads from the port. An expired timeout returns ErrTimeout.
func (p *NativePort) Read(b []byte) (int, error) {
	n, err := p.port.Read(b)
	if n == 0 && err == nil && len(b) > 0 {
		return 0, ErrTimeout
	}
	return n, err
}

// Write writes data to the port.
func (p *NativePort) Write(b []byte) (int, error) {
	return p.port.Write(b)
}

// Drain discards buffered input until a read times out. The ROM keeps
// answering a half-finished exchange; draining between sync attempts
// keeps stale bytes from being parsed as the next response.
func (p *NativePort) Drain() error {
	buf := make([]byte, 64)
	for {
		n, err := p.port.Read(buf)
		if n == 0 {
			if err != nil && err != io.EOF {
				return err
			}
			return nil
		}
	}
}

// Close closes the port.
func (p *NativePort) Close() error {
	if p.port != nil {
		return p.port.Close()
	}
	return nil
}
