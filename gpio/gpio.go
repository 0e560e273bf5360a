// Package gpio identifies the BL702 GPIO pins and the bus signal roles each
// pin can serve. The chip routes each peripheral function to a fixed subset
// of pins; asking for a pin outside that subset is a configuration mistake,
// so it is rejected when the driver is constructed rather than discovered
// later as silent hardware misbehavior.
package gpio

// Pin identifies one of the BL702 GPIO pins (0-31).
type Pin uint8

// NoPin marks an intentionally unconnected signal, such as a chip select
// that the application drives manually.
const NoPin Pin = 0xff

const numPins = 32

// Signal is a bus signal role on the SPI function.
type Signal uint8

const (
	SDO  Signal = iota // controller data out (MOSI)
	SDI                // controller data in (MISO)
	CS                 // chip select
	SCLK               // serial clock
)

func (s Signal) String() string {
	switch s {
	case SDO:
		return "SDO"
	case SDI:
		return "SDI"
	case CS:
		return "CS"
	case SCLK:
		return "SCLK"
	}
	return "unknown"
}

// The SPI function is routed to the pins in repeating groups of four:
// pin 0 carries SDO, pin 1 SDI, pin 2 CS, pin 3 SCLK, pin 4 SDO again, and
// so on across all 32 pins.
var spiSignal = [4]Signal{SDO, SDI, CS, SCLK}

// CanServe reports whether the pin can carry the given SPI signal.
func (p Pin) CanServe(s Signal) bool {
	if p >= numPins {
		return false
	}
	return spiSignal[p%4] == s
}
