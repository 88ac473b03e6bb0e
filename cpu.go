package mos65xx

import "fmt"

// Processor status register flags
const (
	C uint8 = 1 << iota // Carry flag, 1 = true
	Z                   // Zero, 1 = Result zero
	I                   // IRQ disable, 1 = disable
	D                   // Decimal mode, 1 = true
	B                   // BRK command
	U                   // Unused, stored as-is
	V                   // Overflow, 1 = true
	N                   // Negative, 1 = true
)

// Internal interrupt state flags for the BRK micro-sequence
const (
	brkIRQ   uint8 = 1 << iota // IRQ was triggered
	brkNMI                     // NMI was triggered
	brkReset                   // RES was triggered
)

// Registers are the CPU registers
type Registers struct {
	PC uint16 // Program counter
	S  uint8  // Stack pointer
	P  uint8  // Processor status register
	A  uint8  // Accumulator register
	X  uint8  // X index register
	Y  uint8  // Y index register
}

// setFlag sets a processor status register flag
func setFlag(mask, flag uint8, set bool) uint8 {
	if set {
		return mask | flag
	}
	return mask & ^flag
}

// setZN sets the Z and N flags based on the value
func (reg *Registers) setZN(value uint8) {
	reg.P = setFlag(reg.P, Z, value == 0x00)
	reg.P = setFlag(reg.P, N, value&0x80 != 0x00)
}

// cmp compares two values and updates the Z, N and C flags accordingly
func (reg *Registers) cmp(a, b uint8) {
	t := uint16(a) - uint16(b)
	reg.setZN(uint8(t))
	reg.P = setFlag(reg.P, C, t&0xff00 == 0)
}

// spDec returns S, then decrements it
func (reg *Registers) spDec() uint8 {
	s := reg.S
	reg.S--
	return s
}

// spInc returns S, then increments it
func (reg *Registers) spInc() uint8 {
	s := reg.S
	reg.S++
	return s
}

func (reg *Registers) String() string {
	p := []rune("········")
	for i, c := range []rune("NVUBDIZC") {
		if reg.P&(1<<(7-uint(i))) != 0 {
			p[i] = c
		}
	}

	return fmt.Sprintf("PC:%04X A:%02X X:%02X Y:%02X S:%02X P:%02X(%s)",
		reg.PC, reg.A, reg.X, reg.Y, reg.S, reg.P, string(p))
}

// CPUInput are the input pins sampled on every tick.
type CPUInput struct {
	Reset bool  // RES, active low
	NMI   bool  // NMI, active low, edge triggered
	IRQ   bool  // IRQ, active low, level triggered
	Ready bool  // RDY, active high; low pauses read cycles
	Data  uint8 // D0-D7 as read from the bus
}

// CPUOutput are the output pins valid after every tick. The caller must
// serve the bus access they describe before the next tick.
type CPUOutput struct {
	Addr uint16 // A0-A15
	Data uint8  // D0-D7, valid on write cycles
	RW   bool   // R/W, true = read
	Sync bool   // SYNC, true on opcode fetch cycles
}

// CPU is a cycle-accurate MOS 6502. Tick advances it by one clock cycle.
//
// The caller arranges that on entry the input data byte holds whatever the
// bus returned for the previous tick's address (for a read cycle), and
// serves the returned address/data/rw before the next tick.
type CPU struct {
	Registers

	ir       uint16 // instruction register: (opcode << 3) | cycle
	ad       uint16 // ADL/ADH scratch register
	irqPip   uint16
	nmiPip   uint16
	brkFlags uint8
	lastNMI  bool // NMI pin state on the last cycle, for edge detection

	cycles  int
	in      CPUInput
	out     CPUOutput
	monitor Monitor
}

// NewCPU creates a CPU in its power-on state. Hold the reset input low for
// a few ticks to run the reset sequence and load PC from the reset vector.
func NewCPU() *CPU {
	cpu := &CPU{}
	cpu.P = Z
	cpu.out.RW = true
	cpu.out.Sync = true
	return cpu
}

// Attach a monitor
func (cpu *CPU) Attach(m Monitor) { cpu.monitor = m }

// Model identifies the emulated chip.
func (cpu *CPU) Model() Model { return MOS6502 }

// Cycles returns the total number of clock cycles ticked so far, not
// counting cycles paused by RDY.
func (cpu *CPU) Cycles() int { return cpu.cycles }

// Output returns the output pins of the last tick.
func (cpu *CPU) Output() CPUOutput { return cpu.out }

// setA sets the address bus
func (cpu *CPU) setA(addr uint16) {
	cpu.out.Addr = addr
}

// setAD sets the address and data bus
func (cpu *CPU) setAD(addr uint16, data uint8) {
	cpu.out.Addr = addr
	cpu.out.Data = data
}

// setD sets the data bus
func (cpu *CPU) setD(data uint8) {
	cpu.out.Data = data
}

// getD reads the data bus
func (cpu *CPU) getD() uint8 {
	return cpu.in.Data
}

// wr turns this cycle into a memory write cycle
func (cpu *CPU) wr() {
	cpu.out.RW = false
}

// fetch sets the address bus to the next opcode byte and raises SYNC
func (cpu *CPU) fetch() {
	cpu.out.Addr = cpu.PC
	cpu.out.Sync = true
}

// Tick advances the CPU by exactly one clock cycle. Call it on the falling
// edge of ϕ2, so that the next rising edge sees a stable bus.
func (cpu *CPU) Tick(in CPUInput) CPUOutput {
	cpu.in = in

	// Interrupt detection also works in RDY phases, but only NMI is sticky.
	// NMI is edge triggered, IRQ is level triggered and gated by I.
	if cpu.lastNMI && !in.NMI {
		cpu.nmiPip |= 0x100
	}
	if !in.IRQ && cpu.P&I == 0 {
		cpu.irqPip |= 0x100
	}
	if !in.Reset {
		cpu.brkFlags |= brkReset
	}

	// RDY pauses read cycles only; write cycles complete unconditionally
	if cpu.out.RW && !in.Ready {
		cpu.lastNMI = in.NMI
		cpu.irqPip <<= 1
		return cpu.out
	}

	if cpu.out.Sync {
		// load the new opcode and restart the cycle counter
		cpu.ir = uint16(in.Data) << 3
		cpu.out.Sync = false

		// IRQ must have been active in the full cycle before SYNC, an NMI
		// edge may have happened in any cycle before SYNC
		if cpu.irqPip&0x400 != 0 {
			cpu.brkFlags |= brkIRQ
		}
		if cpu.nmiPip >= 0x400 {
			cpu.brkFlags |= brkNMI
		}
		cpu.irqPip &= 0x3ff
		cpu.nmiPip &= 0x3ff

		// a pending interrupt or reset forces a BRK instruction
		opPC := cpu.PC
		if cpu.brkFlags != 0 {
			cpu.ir = 0
			cpu.P &^= B
		} else {
			cpu.PC++
		}

		if cpu.monitor != nil && cpu.brkFlags&brkReset == 0 {
			op := opcodes[uint8(cpu.ir>>3)]
			regs := cpu.Registers
			regs.PC = opPC
			cpu.monitor.BeforeExecute(Instruction{
				Cycles:      cpu.cycles,
				Opcode:      uint8(cpu.ir >> 3),
				Mnemonic:    op.Mnemonic,
				AddressMode: op.Mode,
				Interrupt:   cpu.brkFlags != 0,
				Registers:   regs,
			})
		}
	}

	// reads are the default, micro-cycles turn writes on explicitly
	cpu.out.RW = true

	ir := cpu.ir
	cpu.ir++
	cpu.cycles++
	step := microcode[ir]
	if step == nil {
		panic(fmt.Sprintf("mos65xx: undefined micro-cycle $%02X/%d", ir>>3, ir&7))
	}
	step(cpu)

	cpu.lastNMI = in.NMI
	cpu.irqPip <<= 1
	cpu.nmiPip <<= 1
	return cpu.out
}
