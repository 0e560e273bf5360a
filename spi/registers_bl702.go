//go:build tinygo

package spi

import (
	"runtime/volatile"
	"unsafe"
)

// BL702 memory map, per the reference manual.
const (
	spiBase       = 0x4000_A200
	glbBase       = 0x4000_0000
	glbParmOffset = 0x80
)

// registerBlock is the memory layout of the SPI function.
type registerBlock struct {
	config  volatile.Register32 // 0x00 spi_config
	intSts  volatile.Register32 // 0x04 spi_int_sts
	busBusy volatile.Register32 // 0x08 spi_bus_busy
	_       [1]uint32

	prd0 volatile.Register32 // 0x10 spi_prd_0
	prd1 volatile.Register32 // 0x14 spi_prd_1
	_    [26]uint32

	fifoConfig0 volatile.Register32 // 0x80 spi_fifo_config_0
	fifoConfig1 volatile.Register32 // 0x84 spi_fifo_config_1
	fifoWData   volatile.Register32 // 0x88 spi_fifo_wdata
	fifoRData   volatile.Register32 // 0x8c spi_fifo_rdata
}

// hwRegisters routes the Registers surface to the memory-mapped block. All
// accesses go through volatile loads and stores so polling reads are never
// elided or reordered.
type hwRegisters struct {
	spi  *registerBlock
	parm *volatile.Register32
}

// SPI0 is the register handle for the chip's SPI function. Exactly one live
// engine may own it at a time; construct a second engine only after the
// first has been released.
var SPI0 Registers = &hwRegisters{
	spi:  (*registerBlock)(unsafe.Pointer(uintptr(spiBase))),
	parm: (*volatile.Register32)(unsafe.Pointer(uintptr(glbBase + glbParmOffset))),
}

func (h *hwRegisters) Parm() uint32            { return h.parm.Get() }
func (h *hwRegisters) SetParm(v uint32)        { h.parm.Set(v) }
func (h *hwRegisters) Config() uint32          { return h.spi.config.Get() }
func (h *hwRegisters) SetConfig(v uint32)      { h.spi.config.Set(v) }
func (h *hwRegisters) Period0() uint32         { return h.spi.prd0.Get() }
func (h *hwRegisters) SetPeriod0(v uint32)     { h.spi.prd0.Set(v) }
func (h *hwRegisters) Period1() uint32         { return h.spi.prd1.Get() }
func (h *hwRegisters) SetPeriod1(v uint32)     { h.spi.prd1.Set(v) }
func (h *hwRegisters) FIFOConfig0() uint32     { return h.spi.fifoConfig0.Get() }
func (h *hwRegisters) SetFIFOConfig0(v uint32) { h.spi.fifoConfig0.Set(v) }
func (h *hwRegisters) FIFOConfig1() uint32     { return h.spi.fifoConfig1.Get() }
func (h *hwRegisters) WriteData(v uint32)      { h.spi.fifoWData.Set(v) }
func (h *hwRegisters) ReadData() uint32        { return h.spi.fifoRData.Get() }
func (h *hwRegisters) BusStatus() uint32       { return h.spi.busBusy.Get() }
