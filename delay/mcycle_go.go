//go:build !tinygo

package delay

import "time"

var hostEpoch = time.Now()

// cycleCount synthesizes a cycle counter from the wall clock, ticking at
// 1 GHz, so host builds of the HAL make progress through spins. Hardware
// builds read the real mcycle CSR instead.
func cycleCount() uint64 {
	return uint64(time.Since(hostEpoch))
}
