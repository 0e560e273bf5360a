// Package spi drives the BL702 SPI function in controller mode.
//
// Construct an engine with New, handing it the peripheral register handle
// (SPI0 on hardware), the pin-set and the desired mode and clock rate:
//
//	bus, err := spi.New(spi.SPI0, spi.Pins{SDI: 5, SDO: 4, CS: 2, SCLK: 3},
//		spi.Mode0, 8_000_000, clocks)
//
// The requested frequency cannot exceed half of the SPI peripheral clock.
// Transfers are byte-wise full duplex through the hardware FIFO: every byte
// clocked out simultaneously clocks one in, so each byte-step pushes the
// transmit FIFO before popping the receive FIFO. All waits are unbounded
// busy-spins on hardware status; a stuck peripheral hangs the caller.
package spi

import (
	"errors"

	"tinygo.org/x/drivers"

	"github.com/RensHijdra/bl702-hal/clock"
	"github.com/RensHijdra/bl702-hal/delay"
)

// Terminal FIFO fault conditions. Any of them aborts the in-progress call
// immediately; bytes already transferred stay in the caller's buffers. The
// driver never retries or clears FIFO state on its own, so recovery means
// ClearFIFOs and a fresh transfer.
var (
	ErrRxOverflow  = errors.New("spi: receive FIFO overflow")
	ErrRxUnderflow = errors.New("spi: receive FIFO underflow")
	ErrTxOverflow  = errors.New("spi: transmit FIFO overflow")
	ErrTxUnderflow = errors.New("spi: transmit FIFO underflow")
)

// ErrUnreachableFrequency is returned from New when the requested bus
// frequency cannot be generated from the SPI peripheral clock.
var ErrUnreachableFrequency = errors.New("spi: cannot reach the desired frequency")

// Polarity selects the SCLK idle level.
type Polarity uint8

const (
	IdleLow Polarity = iota
	IdleHigh
)

// Phase selects which SCLK transition samples data.
type Phase uint8

const (
	CaptureOnFirstTransition Phase = iota
	CaptureOnSecondTransition
)

// Mode pairs clock polarity and phase. Fixed for the lifetime of an engine.
type Mode struct {
	Polarity Polarity
	Phase    Phase
}

// The four conventional SPI modes.
var (
	Mode0 = Mode{IdleLow, CaptureOnFirstTransition}
	Mode1 = Mode{IdleLow, CaptureOnSecondTransition}
	Mode2 = Mode{IdleHigh, CaptureOnFirstTransition}
	Mode3 = Mode{IdleHigh, CaptureOnSecondTransition}
)

// BitOrder selects which end of each frame shifts out first.
type BitOrder uint8

const (
	MSBFirst BitOrder = iota // hardware default
	LSBFirst
)

// SPI is a serial bus engine in controller mode. It exclusively owns its
// register handle and pin-set until Release. Not safe for concurrent use;
// a multi-threaded caller must serialize access externally.
type SPI struct {
	regs  Registers
	pins  Pins
	delay delay.CycleDelay
}

// New configures the peripheral as an 8-bit-frame SPI controller and
// returns the engine. It fails, without touching hardware, when a pin
// cannot carry its assigned signal or when freqHz is unreachable from the
// SPI peripheral clock (the half-period divider must land in [1, 256]).
func New(regs Registers, pins Pins, mode Mode, freqHz uint32, clocks clock.Clocks) (*SPI, error) {
	if err := pins.validate(); err != nil {
		return nil, err
	}
	prd, err := dividerValue(clocks.SPIClk(), freqHz)
	if err != nil {
		return nil, err
	}

	s := &SPI{
		regs:  regs,
		pins:  pins,
		delay: delay.New(clocks.SysClk()),
	}

	// Route the SPI function as controller at the global level.
	regs.SetParm(regs.Parm() | parmMasterMode)

	s.programPeriods(prd)

	cfg := regs.Config()
	cfg &^= cfgSlaveEnable | cfgContinuousMode | cfgFrameSizeMask | cfgClockPolarity | cfgClockPhase
	if mode.Polarity == IdleHigh {
		cfg |= cfgClockPolarity
	}
	if mode.Phase == CaptureOnFirstTransition {
		cfg |= cfgClockPhase
	}
	cfg |= cfgMasterEnable
	regs.SetConfig(cfg)

	return s, nil
}

// dividerValue computes the half-period register value for the desired bus
// frequency: floor(spiClkHz / freqHz / 2), programmed as value-1. Lengths
// of 0 or above 256 are unrepresentable and fail rather than clamp.
func dividerValue(spiClkHz, freqHz uint32) (uint8, error) {
	if freqHz == 0 {
		return 0, ErrUnreachableFrequency
	}
	length := spiClkHz / freqHz / 2
	if length == 0 || length > 256 {
		return 0, ErrUnreachableFrequency
	}
	return uint8(length - 1), nil
}

// programPeriods writes the same divider value to all four half-period
// fields and the inter-frame idle field. The five fields stay in lock-step
// so the generated clock keeps a 50% duty cycle.
func (s *SPI) programPeriods(prd uint8) {
	lanes := uint32(prd) | uint32(prd)<<8 | uint32(prd)<<16 | uint32(prd)<<24
	s.regs.SetPeriod0(lanes)
	s.regs.SetPeriod1(s.regs.Period1()&^prdIntervalMask | uint32(prd))
}

// SetBitOrder selects the frame bit order for subsequent transfers.
func (s *SPI) SetBitOrder(order BitOrder) {
	cfg := s.regs.Config()
	if order == LSBFirst {
		cfg |= cfgBitInverse
	} else {
		cfg &^= cfgBitInverse
	}
	s.regs.SetConfig(cfg)
}

// ClearFIFOs discards any bytes held in the transmit and receive FIFOs.
// The clear triggers are one-shot, so a plain write is enough.
func (s *SPI) ClearFIFOs() {
	s.regs.SetFIFOConfig0(fifoTxClear | fifoRxClear)
}

// Release relinquishes ownership of the register handle and pin-set so the
// caller can reuse or reconfigure them. The engine must not be used after.
func (s *SPI) Release() (Registers, Pins) {
	regs, pins := s.regs, s.pins
	s.regs = nil
	return regs, pins
}

// writeByte pushes one byte into the transmit FIFO. A full FIFO is a
// transient condition and is re-polled without bound; the fault flags are
// terminal and abort immediately.
func (s *SPI) writeByte(b byte) error {
	for {
		status := s.regs.FIFOConfig0()
		if status&fifoTxOverflow != 0 {
			return ErrTxOverflow
		}
		if status&fifoTxUnderflow != 0 {
			return ErrTxUnderflow
		}
		if s.regs.FIFOConfig1()&fifoTxCountMask == 0 {
			continue // no free transmit slot yet
		}
		s.regs.WriteData(uint32(b))
		return nil
	}
}

// readByte pops one byte from the receive FIFO, spinning while it is empty.
func (s *SPI) readByte() (byte, error) {
	for {
		status := s.regs.FIFOConfig0()
		if status&fifoRxOverflow != 0 {
			return 0, ErrRxOverflow
		}
		if status&fifoRxUnderflow != 0 {
			return 0, ErrRxUnderflow
		}
		if s.regs.FIFOConfig1()&fifoRxCountMask == 0 {
			continue // nothing received yet
		}
		return byte(s.regs.ReadData() & 0xff), nil
	}
}

// transferByte is the atomic byte-step: transmit before receive, in that
// order. Reversing it deadlocks, because nothing arrives until a byte has
// been clocked out.
func (s *SPI) transferByte(b byte) (byte, error) {
	if err := s.writeByte(b); err != nil {
		return 0, err
	}
	return s.readByte()
}

// Read fills buf with incoming bytes, clocking out a 0x00 filler for each.
func (s *SPI) Read(buf []byte) error {
	for i := range buf {
		b, err := s.transferByte(0x00)
		if err != nil {
			return err
		}
		buf[i] = b
	}
	return nil
}

// Write sends buf. Each received byte is still popped and discarded to
// keep the FIFO balanced.
func (s *SPI) Write(buf []byte) error {
	for _, b := range buf {
		if _, err := s.transferByte(b); err != nil {
			return err
		}
	}
	return nil
}

// Transfer sends write while filling read; the buffers may differ in
// length. The overlapping prefix is transferred pairwise; a longer write
// buffer finishes with write-only steps (receive bytes discarded), a longer
// read buffer finishes with 0x00 filler steps. Exactly
// max(len(read), len(write)) byte-steps occur.
func (s *SPI) Transfer(read, write []byte) error {
	n := len(read)
	if len(write) < n {
		n = len(write)
	}

	for i := 0; i < n; i++ {
		b, err := s.transferByte(write[i])
		if err != nil {
			return err
		}
		read[i] = b
	}
	for _, b := range write[n:] {
		if _, err := s.transferByte(b); err != nil {
			return err
		}
	}
	for i := n; i < len(read); i++ {
		b, err := s.transferByte(0x00)
		if err != nil {
			return err
		}
		read[i] = b
	}
	return nil
}

// TransferInPlace sends buf while overwriting it with the received bytes.
func (s *SPI) TransferInPlace(buf []byte) error {
	for i, b := range buf {
		r, err := s.transferByte(b)
		if err != nil {
			return err
		}
		buf[i] = r
	}
	return nil
}

// Flush busy-waits until the bus-busy flag clears. It moves no data.
func (s *SPI) Flush() error {
	for s.regs.BusStatus()&stsBusBusy != 0 {
	}
	return nil
}

// Bus adapts an engine to the tinygo.org/x/drivers SPI contract so the
// device drivers in that collection can run on this HAL.
type Bus struct {
	spi *SPI
}

var _ drivers.SPI = Bus{}

// Bus returns the drivers-facing view of the engine.
func (s *SPI) Bus() Bus {
	return Bus{spi: s}
}

// Tx handles the machine.SPI-style buffer conventions: a nil w receives
// into r with filler bytes, a nil r sends w discarding the input, and two
// buffers run as a bidirectional transfer.
func (b Bus) Tx(w, r []byte) error {
	switch {
	case w == nil:
		return b.spi.Read(r)
	case r == nil:
		return b.spi.Write(w)
	default:
		return b.spi.Transfer(r, w)
	}
}

// Transfer clocks a single byte out and returns the byte clocked in.
func (b Bus) Transfer(c byte) (byte, error) {
	return b.spi.transferByte(c)
}
