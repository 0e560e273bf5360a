package spi

import (
	"errors"
	"testing"
	"time"

	"github.com/RensHijdra/bl702-hal/delay"
)

// sequencedRegisters records the order of bus events next to the delay
// ticks so transaction ordering is observable.
type sequencedRegisters struct {
	fakeRegisters
	events *[]string
}

func (f *sequencedRegisters) WriteData(v uint32) {
	*f.events = append(*f.events, "tx")
	f.fakeRegisters.WriteData(v)
}

func (f *sequencedRegisters) ReadData() uint32 {
	*f.events = append(*f.events, "rx")
	return f.fakeRegisters.ReadData()
}

func TestTransactionRunsOperationsInOrder(t *testing.T) {
	var events []string
	f := &sequencedRegisters{events: &events}
	s, err := New(f, testPins, Mode0, 8_000_000, testClocks)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// 1 kHz core clock: a 5 ms delay is 5 cycles. The fake counter logs
	// a tick per read so the delay's position in the sequence is visible.
	var cycles uint64
	s.delay = delay.NewWithCounter(1000, func() uint64 {
		events = append(events, "tick")
		cycles++
		return cycles
	})

	buf := make([]byte, 2)
	ops := []Operation{
		WriteOp([]byte{0x0a, 0x0b}),
		DelayOp(5 * time.Millisecond),
		ReadOp(buf),
	}
	if err := s.Transaction(ops); err != nil {
		t.Fatalf("Transaction: %v", err)
	}

	// Expected shape: tx rx tx rx, ticks, tx rx tx rx.
	want := []string{"tx", "rx", "tx", "rx"}
	if len(events) < 8 {
		t.Fatalf("only %d events recorded: %v", len(events), events)
	}
	for i, e := range want {
		if events[i] != e {
			t.Fatalf("event %d = %q, want %q (sequence %v)", i, events[i], e, events)
		}
	}

	ticks := 0
	sawBusAfterDelay := false
	for _, e := range events[4:] {
		switch e {
		case "tick":
			if sawBusAfterDelay {
				t.Fatalf("delay tick after the read started: %v", events)
			}
			ticks++
		default:
			sawBusAfterDelay = true
		}
	}
	// Start capture plus at least 5 cycles of spinning.
	if ticks < 6 {
		t.Errorf("%d counter reads during a 5 ms delay at 1 kHz, want >= 6", ticks)
	}
	if !sawBusAfterDelay {
		t.Errorf("read operation never ran: %v", events)
	}

	if want := []byte{0x0a, 0x0b, 0x00, 0x00}; !equalBytes(f.txLog, want) {
		t.Errorf("clocked out %#v, want %#v", f.txLog, want)
	}
}

func TestTransactionShortCircuitsOnFailure(t *testing.T) {
	f := &fakeRegisters{faultFlags: fifoTxOverflow, faultAfter: 1}
	s := newTestSPI(t, f)

	counterReads := 0
	s.delay = delay.NewWithCounter(1000, func() uint64 {
		counterReads++
		return uint64(counterReads)
	})

	buf := make([]byte, 2)
	err := s.Transaction([]Operation{
		WriteOp([]byte{0x0a, 0x0b}),
		DelayOp(5 * time.Millisecond),
		ReadOp(buf),
	})
	if !errors.Is(err, ErrTxOverflow) {
		t.Fatalf("Transaction = %v, want ErrTxOverflow", err)
	}

	if counterReads != 0 {
		t.Errorf("delay ran after a failed write (%d counter reads)", counterReads)
	}
	if len(f.txLog) > 1 {
		t.Errorf("operations kept running after the failure: %d byte-steps", len(f.txLog))
	}
	if !equalBytes(buf, []byte{0, 0}) {
		t.Errorf("read executed after the failure: %#v", buf)
	}
}

func TestTransactionTransferAndInPlaceOps(t *testing.T) {
	f := &fakeRegisters{respond: func(b byte) byte { return b + 1 }}
	s := newTestSPI(t, f)

	read := make([]byte, 2)
	inplace := []byte{7, 8}
	err := s.Transaction([]Operation{
		TransferOp(read, []byte{1, 2, 3}),
		TransferInPlaceOp(inplace),
	})
	if err != nil {
		t.Fatalf("Transaction: %v", err)
	}

	if want := []byte{2, 3}; !equalBytes(read, want) {
		t.Errorf("transfer captured %#v, want %#v", read, want)
	}
	if want := []byte{8, 9}; !equalBytes(inplace, want) {
		t.Errorf("in-place buffer %#v, want %#v", inplace, want)
	}
	if want := []byte{1, 2, 3, 7, 8}; !equalBytes(f.txLog, want) {
		t.Errorf("clocked out %#v, want %#v", f.txLog, want)
	}
}

func TestTransactionEmpty(t *testing.T) {
	f := &fakeRegisters{}
	s := newTestSPI(t, f)

	if err := s.Transaction(nil); err != nil {
		t.Fatalf("empty transaction: %v", err)
	}
	if len(f.txLog) != 0 {
		t.Errorf("empty transaction moved data")
	}
}
