//go:build tinygo

package delay

import "device/riscv"

// mcycle CSR numbers from the RISC-V privileged spec. The BL702 core is
// rv32, so the 64-bit counter is split across mcycle and mcycleh.
const (
	csrMCycle  riscv.CSR = 0xB00
	csrMCycleH riscv.CSR = 0xB80
)

// cycleCount reads the full 64-bit cycle counter. High word first, then
// low, then high again: if the high word changed, the low word rolled over
// mid-read and the sample is retried.
func cycleCount() uint64 {
	for {
		hi := csrMCycleH.Get()
		lo := csrMCycle.Get()
		if csrMCycleH.Get() == hi {
			return uint64(hi)<<32 | uint64(lo)
		}
	}
}
