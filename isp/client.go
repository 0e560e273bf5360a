package isp

import (
	"errors"
	"fmt"
	"io"
)

// ErrNoSync is returned when the ROM does not acknowledge the sync pattern.
var ErrNoSync = errors.New("isp: no answer to sync pattern")

// Client drives the boot-ROM protocol over a byte stream, normally a
// serial port opened at the ROM's baud rate.
type Client struct {
	rw io.ReadWriter
}

// NewClient wraps an open byte stream. The caller keeps ownership of the
// stream and closes it when done.
func NewClient(rw io.ReadWriter) *Client {
	return &Client{rw: rw}
}

// Handshake trains the ROM's baud rate detector and waits for its "OK".
// The pattern length follows the ROM's expectation of roughly 5 ms of
// sync bytes; sending more is harmless.
func (c *Client) Handshake() error {
	if _, err := c.rw.Write(SyncPattern(70)); err != nil {
		return fmt.Errorf("isp: sync write: %w", err)
	}
	status := make([]byte, 2)
	if _, err := io.ReadFull(c.rw, status); err != nil {
		return fmt.Errorf("%w: %v", ErrNoSync, err)
	}
	if err := ParseStatus(status); err != nil {
		return err
	}
	return nil
}

// GetBootInfo queries the ROM version and OTP configuration.
func (c *Client) GetBootInfo() (BootInfo, error) {
	payload, err := c.roundTrip(CmdGetBootInfo, nil, false)
	if err != nil {
		return BootInfo{}, err
	}
	return ParseBootInfo(payload)
}

// LoadBootHeader, LoadSegmentHeader and LoadSegmentData stream an image to
// the ROM; CheckImage and RunImage finalize it.

func (c *Client) LoadBootHeader(header []byte) error {
	_, err := c.roundTrip(CmdLoadBootHeader, header, true)
	return err
}

func (c *Client) LoadSegmentHeader(header []byte) error {
	_, err := c.roundTrip(CmdLoadSegmentHeader, header, true)
	return err
}

func (c *Client) LoadSegmentData(data []byte) error {
	_, err := c.roundTrip(CmdLoadSegmentData, data, true)
	return err
}

func (c *Client) CheckImage() error {
	_, err := c.roundTrip(CmdCheckImage, nil, false)
	return err
}

func (c *Client) RunImage() error {
	_, err := c.roundTrip(CmdRunImage, nil, false)
	return err
}

// roundTrip sends one command frame and reads the status plus any
// length-prefixed payload.
func (c *Client) roundTrip(cmd byte, payload []byte, checksummed bool) ([]byte, error) {
	frame, err := Frame(cmd, payload, checksummed)
	if err != nil {
		return nil, err
	}
	if _, err := c.rw.Write(frame); err != nil {
		return nil, fmt.Errorf("isp: write command %#02x: %w", cmd, err)
	}

	status := make([]byte, 2)
	if _, err := io.ReadFull(c.rw, status); err != nil {
		return nil, fmt.Errorf("isp: read status: %w", err)
	}
	if status[0] == 'F' && status[1] == 'L' {
		code := make([]byte, 2)
		if _, err := io.ReadFull(c.rw, code); err != nil {
			return nil, fmt.Errorf("isp: read error code: %w", err)
		}
		return nil, ParseStatus(append(status, code...))
	}
	if err := ParseStatus(status); err != nil {
		return nil, err
	}

	// Query commands answer with a little-endian length and that many
	// payload bytes; commands without a payload answer with bare "OK".
	if !responseCarriesPayload(cmd) {
		return nil, nil
	}
	lenBytes := make([]byte, 2)
	if _, err := io.ReadFull(c.rw, lenBytes); err != nil {
		return nil, fmt.Errorf("isp: read response length: %w", err)
	}
	n := int(lenBytes[0]) | int(lenBytes[1])<<8
	resp := make([]byte, n)
	if _, err := io.ReadFull(c.rw, resp); err != nil {
		return nil, fmt.Errorf("isp: read response payload: %w", err)
	}
	return resp, nil
}

func responseCarriesPayload(cmd byte) bool {
	return cmd == CmdGetBootInfo
}
