// bl702boot talks to the BL702 UART boot ROM: it syncs with a chip held
// in boot mode and prints its boot information. Strap the BOOT pin high,
// reset the chip, then run this against the UART adapter.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/RensHijdra/bl702-hal/host/serial"
	"github.com/RensHijdra/bl702-hal/isp"
)

const handshakeAttempts = 3

var (
	device  = flag.String("device", "/dev/ttyUSB0", "Serial device path")
	baud    = flag.Int("baud", 115200, "Baud rate for the boot ROM")
	timeout = flag.Int("timeout", 2000, "Read timeout in milliseconds")
)

func main() {
	flag.Parse()

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud
	cfg.ReadTimeout = *timeout

	port, err := serial.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	client := isp.NewClient(port)

	fmt.Printf("Syncing with boot ROM on %s...\n", *device)
	var hsErr error
	for attempt := 0; attempt < handshakeAttempts; attempt++ {
		if hsErr = client.Handshake(); hsErr == nil {
			break
		}
		// Discard whatever the ROM sent mid-exchange before retrying.
		if err := port.Drain(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: drain: %v\n", err)
			os.Exit(1)
		}
	}
	if hsErr != nil {
		fmt.Fprintf(os.Stderr, "Error: handshake failed: %v\n", hsErr)
		fmt.Fprintln(os.Stderr, "Is the chip in boot mode (BOOT strapped high at reset)?")
		os.Exit(1)
	}

	info, err := client.GetBootInfo()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: get_boot_info failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Boot ROM version: %d\n", info.ROMVersion)
	fmt.Printf("OTP info:         %x\n", info.OTPInfo)
}
