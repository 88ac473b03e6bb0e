package mos65xx

import (
	"github.com/innot/mos65xx/memory"
)

// Vectors
const (
	NMIVector   = 0xfffa
	ResetVector = 0xfffc
	IRQVector   = 0xfffe
)

// AddressMode determines how the CPU resolves the operand address
type AddressMode uint8

// Address modes
const (
	Implied AddressMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndexedIndirect
	IndirectIndexed
)

var addressModeName = map[AddressMode]string{
	Implied:         "implied",
	Accumulator:     "accumulator",
	Immediate:       "immediate",
	ZeroPage:        "zero-page",
	ZeroPageX:       "zero-page indexed X",
	ZeroPageY:       "zero-page indexed Y",
	Relative:        "relative",
	Absolute:        "absolute",
	AbsoluteX:       "absolute indexed X",
	AbsoluteY:       "absolute indexed Y",
	Indirect:        "indirect",
	IndexedIndirect: "indexed indirect",
	IndirectIndexed: "indirect indexed",
}

func (mode AddressMode) String() string {
	if s, ok := addressModeName[mode]; ok {
		return s
	}
	return "Invalid"
}

// FetchWord is a helper to fetch a 16-bit word from memory
func FetchWord(mem memory.Memory, addr uint16) uint16 {
	var (
		lo = uint16(mem.Fetch(addr))
		hi = uint16(mem.Fetch(addr+1)) << 8
	)
	return lo | hi
}

// FetchWordBug is a helper to fetch a 16-bit word from memory, reproducing
// the 6502 indirect jump quirk: the high pointer byte is fetched without
// carry into the page.
func FetchWordBug(mem memory.Memory, addr uint16) uint16 {
	var (
		lo = uint16(mem.Fetch(addr))
		hi = uint16(mem.Fetch((addr&0xff00)|uint16(uint8(addr+1)))) << 8
	)
	return lo | hi
}

// StoreWord is a helper to store a 16-bit word on a bus
func StoreWord(mem memory.Memory, addr, value uint16) {
	mem.Store(addr+0, uint8(value))
	mem.Store(addr+1, uint8(value>>8))
}
