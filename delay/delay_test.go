package delay

import (
	"math"
	"testing"
)

// fakeCounter is a simulated cycle counter that advances by step on every
// read, starting at start.
type fakeCounter struct {
	value uint64
	step  uint64
	reads int
}

func (c *fakeCounter) read() uint64 {
	v := c.value
	c.value += c.step
	c.reads++
	return v
}

func TestCyclesSince(t *testing.T) {
	testCases := []struct {
		name    string
		start   uint64
		now     uint64
		elapsed uint64
	}{
		{name: "simple", start: 100, now: 250, elapsed: 150},
		{name: "zero", start: 42, now: 42, elapsed: 0},
		{name: "wraparound", start: math.MaxUint64 - 9, now: 10, elapsed: 20},
		{name: "wraparound to max", start: math.MaxUint64, now: math.MaxUint64 - 1, elapsed: math.MaxUint64},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := &fakeCounter{value: tc.now}
			d := NewWithCounter(1_000_000, c.read)
			if got := d.CyclesSince(tc.start); got != tc.elapsed {
				t.Errorf("CyclesSince(%d) with counter at %d = %d, want %d", tc.start, tc.now, got, tc.elapsed)
			}
		})
	}
}

func TestDelayCyclesWaitsPastCount(t *testing.T) {
	c := &fakeCounter{step: 1}
	d := NewWithCounter(1_000_000, c.read)

	d.DelayCycles(10)

	// One read captures the start; the spin then re-reads until strictly
	// more than 10 cycles have passed.
	if c.value <= 10 {
		t.Errorf("counter advanced only %d cycles, want > 10", c.value)
	}
}

func TestDelayCyclesAcrossWraparound(t *testing.T) {
	c := &fakeCounter{value: math.MaxUint64 - 5, step: 1}
	d := NewWithCounter(1_000_000, c.read)

	// The counter rolls over mid-wait; modular subtraction must still
	// terminate the spin after ~20 cycles rather than spinning forever.
	d.DelayCycles(20)

	if c.reads > 100 {
		t.Errorf("spin did not settle after wraparound: %d counter reads", c.reads)
	}
}

func TestDelayMsLowerBound(t *testing.T) {
	const freqHz = 1_000_000 // 1 MHz: 1000 cycles per millisecond

	testCases := []struct {
		ms        uint32
		minCycles uint64
	}{
		{ms: 0, minCycles: 0},
		{ms: 1, minCycles: 1000},
		{ms: 1000, minCycles: 1_000_000},
	}

	for _, tc := range testCases {
		c := &fakeCounter{step: 1}
		d := NewWithCounter(freqHz, c.read)

		d.DelayMs(tc.ms)

		// value - 1 cycles had elapsed at the final spin check; the
		// wait must not end before minCycles of simulated time.
		elapsed := c.value - 1
		if elapsed < tc.minCycles {
			t.Errorf("DelayMs(%d) returned after %d cycles, want >= %d", tc.ms, elapsed, tc.minCycles)
		}
	}
}

func TestDelayNsTruncatesBelowOneCycle(t *testing.T) {
	// 10 MHz core: one cycle is 100 ns. A 99 ns request truncates to zero
	// cycles and the spin ends on the first elapsed cycle.
	c := &fakeCounter{step: 1}
	d := NewWithCounter(10_000_000, c.read)

	d.DelayNs(99)

	if c.reads > 3 {
		t.Errorf("sub-cycle delay performed %d counter reads, want at most 3", c.reads)
	}
}

func TestDelayDuration(t *testing.T) {
	const freqHz = 1_000_000

	c := &fakeCounter{step: 1}
	d := NewWithCounter(freqHz, c.read)

	d.Delay(5_000_000) // 5 ms at 1 MHz is 5000 cycles

	if elapsed := c.value - 1; elapsed < 5000 {
		t.Errorf("Delay(5ms) returned after %d cycles, want >= 5000", elapsed)
	}

	// Non-positive durations return without touching the counter.
	reads := c.reads
	d.Delay(0)
	d.Delay(-1)
	if c.reads != reads {
		t.Errorf("Delay(<=0) read the counter %d times", c.reads-reads)
	}
}
