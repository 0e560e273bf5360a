package spi

// Registers is the register-level surface of the BL702 SPI function. On
// hardware it is backed by the memory-mapped peripheral block (see SPI0);
// tests back it with simulated registers. A live *SPI exclusively owns its
// Registers value: no other code may touch the same peripheral until
// Release returns it.
//
// Status words are re-read from the underlying register on every call,
// never cached, so FIFO flags and occupancy counts are always current.
type Registers interface {
	// Parm accesses the GLB routing word that carries the SPI
	// controller-mode switch.
	Parm() uint32
	SetParm(uint32)

	// Config accesses the SPI mode/config register.
	Config() uint32
	SetConfig(uint32)

	// Period0 accesses the period register holding the four half-period
	// fields; Period1 holds the inter-frame idle field.
	Period0() uint32
	SetPeriod0(uint32)
	Period1() uint32
	SetPeriod1(uint32)

	// FIFOConfig0 accesses the FIFO control/status word (clear triggers
	// plus overflow/underflow flags); FIFOConfig1 is the read-only
	// occupancy word.
	FIFOConfig0() uint32
	SetFIFOConfig0(uint32)
	FIFOConfig1() uint32

	// WriteData pushes one frame into the transmit FIFO; ReadData pops
	// one frame from the receive FIFO. Only the low byte is meaningful
	// in 8-bit frame mode.
	WriteData(uint32)
	ReadData() uint32

	// BusStatus reads the bus-busy status word.
	BusStatus() uint32
}

// GLB parm register bits.
const (
	parmMasterMode = 1 << 12 // route the SPI function as controller
)

// spi_config register bits.
const (
	cfgMasterEnable   = 1 << 0 // controller enable
	cfgSlaveEnable    = 1 << 1 // peripheral enable, mutually exclusive with controller
	cfgFrameSizeMask  = 3 << 2 // frame size field; 0 selects 8-bit frames
	cfgClockPolarity  = 1 << 4 // SCLK idles high when set
	cfgClockPhase     = 1 << 5 // sample on first transition when set
	cfgBitInverse     = 1 << 6 // LSB-first when set
	cfgByteInverse    = 1 << 7
	cfgRxIgnoreEnable = 1 << 8
	cfgContinuousMode = 1 << 9 // back-to-back frames without deasserting CS
)

// spi_fifo_config_0 register bits.
const (
	fifoTxDMAEnable  = 1 << 0
	fifoRxDMAEnable  = 1 << 1
	fifoTxClear      = 1 << 2 // one-shot transmit FIFO clear
	fifoRxClear      = 1 << 3 // one-shot receive FIFO clear
	fifoTxOverflow   = 1 << 4
	fifoTxUnderflow  = 1 << 5
	fifoRxOverflow   = 1 << 6
	fifoRxUnderflow  = 1 << 7
)

// spi_fifo_config_1 occupancy fields. The transmit count is the number of
// free transmit slots; the receive count is the number of buffered bytes.
const (
	fifoTxCountMask  = 0x3f
	fifoRxCountShift = 8
	fifoRxCountMask  = 0x3f << fifoRxCountShift
)

// spi_bus_busy register bits.
const (
	stsBusBusy = 1 << 0 // a transfer is physically in flight
)

// prd registers. Period0 packs the start, stop and both data-phase
// half-period fields as four byte lanes; Period1 keeps the inter-frame
// interval in its low byte.
const (
	prdIntervalMask = 0xff
)
