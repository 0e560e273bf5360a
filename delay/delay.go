// Package delay provides a busy-wait delay provider driven by the RISC-V
// machine-mode cycle counter (mcycle).
//
// It is useful for high resolution waits during device initialization,
// bit-banged protocols and inter-operation gaps. Every wait is a pure CPU
// spin with no upper bound; nothing sleeps or yields.
package delay

import "time"

// CycleDelay converts real-world durations into core clock cycles and spins
// until they have elapsed. The zero value is not usable; construct one with
// New.
type CycleDelay struct {
	coreFreqHz uint32
	counter    func() uint64
}

// New constructs the delay provider from the core clock frequency in Hz.
// The frequency is used to convert clock cycles into real-world time values.
func New(coreFreqHz uint32) CycleDelay {
	return CycleDelay{coreFreqHz: coreFreqHz, counter: cycleCount}
}

// NewWithCounter constructs a delay provider reading cycles from counter
// instead of the hardware cycle counter (for testing/hardware integration).
func NewWithCounter(coreFreqHz uint32, counter func() uint64) CycleDelay {
	return CycleDelay{coreFreqHz: coreFreqHz, counter: counter}
}

// Now returns the current value of the free-running 64-bit cycle counter.
func (d CycleDelay) Now() uint64 {
	return d.counter()
}

// CyclesSince returns the number of cycles elapsed since start. The
// subtraction is modular, so a counter rollover between start and the read
// still yields the correct distance.
func (d CycleDelay) CyclesSince(start uint64) uint64 {
	return d.counter() - start
}

// DelayCycles busy-waits until more than cycles core clock cycles have
// elapsed. The spin re-samples the counter on every iteration and has no
// upper bound.
func (d CycleDelay) DelayCycles(cycles uint64) {
	start := d.counter()
	for d.CyclesSince(start) <= cycles {
	}
}

// DelayNs busy-waits for ns nanoseconds. Durations shorter than one core
// clock cycle truncate to zero cycles and return almost immediately; that
// is boundary behavior, not an error.
func (d CycleDelay) DelayNs(ns uint32) {
	d.DelayCycles(uint64(ns) * uint64(d.coreFreqHz) / 1_000_000_000)
}

// DelayUs busy-waits for us microseconds.
func (d CycleDelay) DelayUs(us uint32) {
	d.DelayCycles(uint64(us) * uint64(d.coreFreqHz) / 1_000_000)
}

// DelayMs busy-waits for ms milliseconds.
func (d CycleDelay) DelayMs(ms uint32) {
	d.DelayCycles(uint64(ms) * uint64(d.coreFreqHz) / 1000)
}

// Delay busy-waits for the given duration. The cycle conversion is done in
// 64-bit arithmetic and holds for the durations a busy-wait is reasonable
// for (well under a minute at the chip's clock rates).
func (d CycleDelay) Delay(duration time.Duration) {
	if duration <= 0 {
		return
	}
	d.DelayCycles(uint64(duration.Nanoseconds()) * uint64(d.coreFreqHz) / 1_000_000_000)
}
