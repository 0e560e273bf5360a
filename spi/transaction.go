package spi

import "time"

type operationKind uint8

const (
	opRead operationKind = iota
	opWrite
	opTransfer
	opTransferInPlace
	opDelay
)

// Operation is one step of a composite bus transaction. Build them with
// ReadOp, WriteOp, TransferOp, TransferInPlaceOp and DelayOp.
type Operation struct {
	kind  operationKind
	read  []byte
	write []byte
	pause time.Duration
}

// ReadOp fills buf from the bus.
func ReadOp(buf []byte) Operation {
	return Operation{kind: opRead, read: buf}
}

// WriteOp sends buf on the bus.
func WriteOp(buf []byte) Operation {
	return Operation{kind: opWrite, write: buf}
}

// TransferOp runs a bidirectional transfer; the buffers may differ in
// length, as with Transfer.
func TransferOp(read, write []byte) Operation {
	return Operation{kind: opTransfer, read: read, write: write}
}

// TransferInPlaceOp sends buf while overwriting it with the received bytes.
func TransferInPlaceOp(buf []byte) Operation {
	return Operation{kind: opTransferInPlace, read: buf}
}

// DelayOp inserts a busy-wait between bus operations, timed by the cycle
// counter rather than the scheduler.
func DelayOp(d time.Duration) Operation {
	return Operation{kind: opDelay, pause: d}
}

// Transaction executes the operations strictly in order. The first
// operation to fail aborts the transaction and its error is returned; the
// remaining operations do not run. There is no rollback and no retry.
func (s *SPI) Transaction(ops []Operation) error {
	for _, op := range ops {
		var err error
		switch op.kind {
		case opRead:
			err = s.Read(op.read)
		case opWrite:
			err = s.Write(op.write)
		case opTransfer:
			err = s.Transfer(op.read, op.write)
		case opTransferInPlace:
			err = s.TransferInPlace(op.read)
		case opDelay:
			s.delay.Delay(op.pause)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
