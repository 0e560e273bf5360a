// Package isp implements the host side of the BL702 UART boot-ROM
// protocol: the in-system-programming channel used to inspect and load a
// chip whose BOOT pin was strapped at reset.
//
// The wire format is byte-oriented: a sync pattern of repeated 0x55 bytes
// trains the ROM's baud rate detector, then each command travels as a
// four-byte header (command, checksum, little-endian payload length)
// followed by the payload. The ROM answers "OK", optionally with a
// length-prefixed payload, or "FL" with a 16-bit error code.
package isp

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Boot ROM command bytes.
const (
	CmdGetBootInfo       = 0x10
	CmdLoadBootHeader    = 0x11
	CmdLoadPublicKey     = 0x12
	CmdLoadSegmentHeader = 0x17
	CmdLoadSegmentData   = 0x18
	CmdCheckImage        = 0x19
	CmdRunImage          = 0x1a
)

// SyncByte is repeated to let the ROM lock onto the host baud rate.
const SyncByte = 0x55

var (
	ErrPayloadTooLarge = errors.New("isp: payload exceeds 16-bit length field")
	ErrShortResponse   = errors.New("isp: short response")
	ErrBadResponse     = errors.New("isp: malformed response")
)

// RomError is a failure code reported by the boot ROM in an "FL" response.
type RomError uint16

func (e RomError) Error() string {
	return fmt.Sprintf("isp: boot rom error %#04x", uint16(e))
}

// Checksum is the 8-bit additive checksum the ROM verifies on load
// commands. It covers the two length bytes and the payload, not the
// command byte.
func Checksum(lenLo, lenHi byte, payload []byte) byte {
	sum := uint32(lenLo) + uint32(lenHi)
	for _, b := range payload {
		sum += uint32(b)
	}
	return byte(sum)
}

// Frame builds the wire form of one command. Commands that carry data the
// ROM acts on (the load family) are checksummed; query commands send a
// zero in the checksum slot.
func Frame(cmd byte, payload []byte, checksummed bool) ([]byte, error) {
	if len(payload) > 0xffff {
		return nil, ErrPayloadTooLarge
	}
	lenLo := byte(len(payload))
	lenHi := byte(len(payload) >> 8)

	var chk byte
	if checksummed {
		chk = Checksum(lenLo, lenHi, payload)
	}

	frame := make([]byte, 0, 4+len(payload))
	frame = append(frame, cmd, chk, lenLo, lenHi)
	frame = append(frame, payload...)
	return frame, nil
}

// SyncPattern returns n sync bytes.
func SyncPattern(n int) []byte {
	p := make([]byte, n)
	for i := range p {
		p[i] = SyncByte
	}
	return p
}

// ParseStatus interprets the two-byte status that opens every response.
// It returns nil for "OK" and the decoded RomError for "FL"; anything else
// is a framing failure.
func ParseStatus(b []byte) error {
	if len(b) < 2 {
		return ErrShortResponse
	}
	switch {
	case b[0] == 'O' && b[1] == 'K':
		return nil
	case b[0] == 'F' && b[1] == 'L':
		if len(b) < 4 {
			return ErrShortResponse
		}
		return RomError(binary.LittleEndian.Uint16(b[2:4]))
	}
	return fmt.Errorf("%w: status %q", ErrBadResponse, b[:2])
}

// BootInfo is the payload of a get_boot_info response.
type BootInfo struct {
	ROMVersion uint32
	OTPInfo    [16]byte
}

// ParseBootInfo decodes a get_boot_info payload.
func ParseBootInfo(payload []byte) (BootInfo, error) {
	if len(payload) < 20 {
		return BootInfo{}, fmt.Errorf("%w: boot info payload is %d bytes, want 20", ErrBadResponse, len(payload))
	}
	info := BootInfo{ROMVersion: binary.LittleEndian.Uint32(payload[0:4])}
	copy(info.OTPInfo[:], payload[4:20])
	return info, nil
}
