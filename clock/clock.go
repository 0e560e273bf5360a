// Package clock carries the clock-tree frequencies the peripheral drivers
// are programmed against. Clock-tree bring-up itself happens during board
// initialization, before any driver is constructed; drivers only consume
// the resulting frequencies.
package clock

// Clocks is a snapshot of the frozen clock tree. Values are immutable once
// captured and are passed by value into driver constructors.
type Clocks struct {
	sysClkHz uint32
	spiClkHz uint32
}

// New captures the system core clock and the SPI peripheral clock, in Hz.
func New(sysClkHz, spiClkHz uint32) Clocks {
	return Clocks{sysClkHz: sysClkHz, spiClkHz: spiClkHz}
}

// SysClk returns the core clock frequency in Hz.
func (c Clocks) SysClk() uint32 {
	return c.sysClkHz
}

// SPIClk returns the SPI peripheral clock frequency in Hz.
func (c Clocks) SPIClk() uint32 {
	return c.spiClkHz
}
