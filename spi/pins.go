package spi

import (
	"errors"
	"fmt"

	"github.com/RensHijdra/bl702-hal/gpio"
)

// ErrInvalidPin is returned from New when a pin in the pin-set cannot carry
// the bus signal it was assigned to.
var ErrInvalidPin = errors.New("spi: pin cannot serve the requested bus signal")

// Pins is the pin-set an engine drives. SDI, SDO and SCLK are required; set
// CS to gpio.NoPin to keep manual control over chip select.
type Pins struct {
	SDI  gpio.Pin // controller data in (MISO)
	SDO  gpio.Pin // controller data out (MOSI)
	CS   gpio.Pin // chip select, optional
	SCLK gpio.Pin // serial clock
}

// validate checks every assigned pin against the chip's SPI routing table.
func (p Pins) validate() error {
	assignments := []struct {
		pin      gpio.Pin
		signal   gpio.Signal
		optional bool
	}{
		{pin: p.SDI, signal: gpio.SDI},
		{pin: p.SDO, signal: gpio.SDO},
		{pin: p.CS, signal: gpio.CS, optional: true},
		{pin: p.SCLK, signal: gpio.SCLK},
	}

	for _, a := range assignments {
		if a.optional && a.pin == gpio.NoPin {
			continue
		}
		if !a.pin.CanServe(a.signal) {
			return fmt.Errorf("%w: pin %d as %s", ErrInvalidPin, a.pin, a.signal)
		}
	}
	return nil
}
