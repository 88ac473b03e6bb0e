package mos65xx

// The instruction decoder is a table of function pointers indexed by
// IR = (opcode << 3) | cycle. Each slot performs one clock cycle of one
// opcode: it drives the address/data bus, turns the cycle into a write
// where needed, and calls fetch on the final cycle. Slots left nil are
// unreachable; hitting one is an emulator defect.
var microcode [0x800]func(*CPU)

func init() {
	for opc := 0; opc < 0x100; opc++ {
		op := opcodes[opc]
		var seq []func(*CPU)
		switch op.kind {
		case kindImplied:
			seq = impliedSeq(op)
		case kindRead, kindStore, kindModify:
			seq = memSeq(op)
		case kindBranch:
			seq = branchSeq(uint8(opc))
		case kindSpecial:
			seq = specialSeq(uint8(opc))
		}
		for i, fn := range seq {
			microcode[opc<<3|i] = fn
		}
	}
}

// opAddrPC puts PC on the address bus without advancing it
func opAddrPC(cpu *CPU) {
	cpu.setA(cpu.PC)
}

// opFetchPC puts PC on the address bus and advances it
func opFetchPC(cpu *CPU) {
	cpu.setA(cpu.PC)
	cpu.PC++
}

// impliedSeq builds the 2-cycle sequence for implied and accumulator
// operations. The second cycle discards the dummy operand read.
func impliedSeq(op opcode) []func(*CPU) {
	var exec func(*CPU)
	if op.Mode == Accumulator {
		exec = accOps[op.Mnemonic]
	} else {
		exec = impliedOps[op.Mnemonic]
	}
	return []func(*CPU){
		opAddrPC,
		func(cpu *CPU) {
			exec(cpu)
			cpu.fetch()
		},
	}
}

// memSeq builds the micro-cycle sequence for all operand-addressing
// operations: the address phase per mode, then the read, store or
// read-modify-write phase. Stores merge the write into the cycle that
// completes the effective address; indexed loads skip the address fix-up
// cycle when no page is crossed.
func memSeq(op opcode) []func(*CPU) {
	var (
		seq   []func(*CPU)
		store = op.kind == kindStore
		write func(*CPU) uint8
	)
	if store {
		write = storeOps[op.Mnemonic]
	}

	// last address cycle, with the store write merged in
	last := func(addr func(*CPU) uint16) func(*CPU) {
		if store {
			return func(cpu *CPU) {
				cpu.setA(addr(cpu))
				cpu.setD(write(cpu))
				cpu.wr()
			}
		}
		return func(cpu *CPU) {
			cpu.setA(addr(cpu))
		}
	}

	switch op.Mode {
	case Immediate:
		seq = append(seq, opFetchPC)

	case ZeroPage:
		seq = append(seq, opFetchPC,
			last(func(cpu *CPU) uint16 { return uint16(cpu.getD()) }))

	case ZeroPageX, ZeroPageY:
		idx := indexOf(op.Mode)
		seq = append(seq, opFetchPC,
			func(cpu *CPU) {
				cpu.ad = uint16(cpu.getD())
				cpu.setA(cpu.ad)
			},
			last(func(cpu *CPU) uint16 { return (cpu.ad + uint16(idx(cpu))) & 0x00ff }))

	case Absolute:
		seq = append(seq, opFetchPC,
			func(cpu *CPU) {
				cpu.setA(cpu.PC)
				cpu.PC++
				cpu.ad = uint16(cpu.getD())
			},
			last(func(cpu *CPU) uint16 { return uint16(cpu.getD())<<8 | cpu.ad }))

	case AbsoluteX, AbsoluteY:
		idx := indexOf(op.Mode)
		seq = append(seq, opFetchPC,
			func(cpu *CPU) {
				cpu.setA(cpu.PC)
				cpu.PC++
				cpu.ad = uint16(cpu.getD())
			},
			func(cpu *CPU) {
				cpu.ad |= uint16(cpu.getD()) << 8
				sum := cpu.ad + uint16(idx(cpu))
				cpu.setA(cpu.ad&0xff00 | sum&0x00ff)
				if op.kind == kindRead {
					// skip the fix-up cycle when the high byte is unchanged
					cpu.ir += ^(cpu.ad>>8 - sum>>8) & 1
				}
			},
			last(func(cpu *CPU) uint16 { return cpu.ad + uint16(idx(cpu)) }))

	case IndexedIndirect:
		seq = append(seq, opFetchPC,
			func(cpu *CPU) {
				cpu.ad = uint16(cpu.getD())
				cpu.setA(cpu.ad)
			},
			func(cpu *CPU) {
				cpu.ad = (cpu.ad + uint16(cpu.X)) & 0x00ff
				cpu.setA(cpu.ad)
			},
			func(cpu *CPU) {
				cpu.setA((cpu.ad + 1) & 0x00ff)
				cpu.ad = uint16(cpu.getD())
			},
			last(func(cpu *CPU) uint16 { return uint16(cpu.getD())<<8 | cpu.ad }))

	case IndirectIndexed:
		seq = append(seq, opFetchPC,
			func(cpu *CPU) {
				cpu.ad = uint16(cpu.getD())
				cpu.setA(cpu.ad)
			},
			func(cpu *CPU) {
				cpu.setA((cpu.ad + 1) & 0x00ff)
				cpu.ad = uint16(cpu.getD())
			},
			func(cpu *CPU) {
				cpu.ad |= uint16(cpu.getD()) << 8
				sum := cpu.ad + uint16(cpu.Y)
				cpu.setA(cpu.ad&0xff00 | sum&0x00ff)
				if op.kind == kindRead {
					cpu.ir += ^(cpu.ad>>8 - sum>>8) & 1
				}
			},
			last(func(cpu *CPU) uint16 { return cpu.ad + uint16(cpu.Y) }))
	}

	switch op.kind {
	case kindRead:
		exec := readOps[op.Mnemonic]
		seq = append(seq, func(cpu *CPU) {
			exec(cpu, cpu.getD())
			cpu.fetch()
		})

	case kindStore:
		seq = append(seq, (*CPU).fetch)

	case kindModify:
		modify := modifyOps[op.Mnemonic]
		seq = append(seq,
			func(cpu *CPU) {
				cpu.ad = uint16(cpu.getD())
				cpu.wr()
			},
			func(cpu *CPU) {
				cpu.setD(modify(cpu, uint8(cpu.ad)))
				cpu.wr()
			},
			(*CPU).fetch)
	}

	return seq
}

func indexOf(mode AddressMode) func(*CPU) uint8 {
	switch mode {
	case ZeroPageX, AbsoluteX:
		return func(cpu *CPU) uint8 { return cpu.X }
	default:
		return func(cpu *CPU) uint8 { return cpu.Y }
	}
}

// branch conditions: the P mask and the value that takes the branch
var branchCond = map[Mnemonic]struct {
	flag  uint8
	taken uint8
}{
	BPL: {N, 0}, BMI: {N, N},
	BVC: {V, 0}, BVS: {V, V},
	BCC: {C, 0}, BCS: {C, C},
	BNE: {Z, 0}, BEQ: {Z, Z},
}

// branchSeq builds a conditional relative branch: 2 cycles when not taken,
// 3 when taken, 4 when the target is on another page. A taken branch that
// stays on the same page delays pending interrupts by one instruction.
func branchSeq(opc uint8) []func(*CPU) {
	cond := branchCond[opcodes[opc].Mnemonic]
	return []func(*CPU){
		opFetchPC,
		func(cpu *CPU) {
			cpu.setA(cpu.PC)
			cpu.ad = cpu.PC + uint16(int16(int8(cpu.getD())))
			if cpu.P&cond.flag != cond.taken {
				cpu.fetch()
			}
		},
		func(cpu *CPU) {
			cpu.setA(cpu.PC&0xff00 | cpu.ad&0x00ff)
			if cpu.ad&0xff00 == cpu.PC&0xff00 {
				cpu.PC = cpu.ad
				cpu.irqPip >>= 1
				cpu.nmiPip >>= 1
				cpu.fetch()
			}
		},
		func(cpu *CPU) {
			cpu.PC = cpu.ad
			cpu.fetch()
		},
	}
}

// specialSeq builds the hand-written sequences: BRK and the interrupt
// entries, the stack operations, the jumps and JAM.
func specialSeq(opc uint8) []func(*CPU) {
	switch opc {
	case 0x00: // BRK, shared by IRQ, NMI and RESET entry
		return []func(*CPU){
			opAddrPC,
			func(cpu *CPU) {
				if cpu.brkFlags&(brkIRQ|brkNMI) == 0 {
					cpu.PC++
				}
				cpu.setAD(0x0100|uint16(cpu.spDec()), uint8(cpu.PC>>8))
				if cpu.brkFlags&brkReset == 0 {
					cpu.wr()
				}
			},
			func(cpu *CPU) {
				cpu.setAD(0x0100|uint16(cpu.spDec()), uint8(cpu.PC))
				if cpu.brkFlags&brkReset == 0 {
					cpu.wr()
				}
			},
			func(cpu *CPU) {
				cpu.setAD(0x0100|uint16(cpu.spDec()), cpu.P|U)
				if cpu.brkFlags&brkReset != 0 {
					cpu.ad = ResetVector
				} else {
					cpu.wr()
					if cpu.brkFlags&brkNMI != 0 {
						cpu.ad = NMIVector
					} else {
						cpu.ad = IRQVector
					}
				}
			},
			func(cpu *CPU) {
				// the vector is committed, a later RES/NMI can no longer hijack
				cpu.setA(cpu.ad)
				cpu.ad++
				cpu.P |= I | B
				cpu.brkFlags = 0
			},
			func(cpu *CPU) {
				cpu.setA(cpu.ad)
				cpu.ad = uint16(cpu.getD())
			},
			func(cpu *CPU) {
				cpu.PC = uint16(cpu.getD())<<8 | cpu.ad
				cpu.fetch()
			},
		}

	case 0x08: // PHP
		return []func(*CPU){
			opAddrPC,
			func(cpu *CPU) {
				cpu.setAD(0x0100|uint16(cpu.spDec()), cpu.P|U)
				cpu.wr()
			},
			(*CPU).fetch,
		}

	case 0x20: // JSR
		return []func(*CPU){
			opFetchPC,
			func(cpu *CPU) {
				cpu.setA(0x0100 | uint16(cpu.S))
				cpu.ad = uint16(cpu.getD())
			},
			func(cpu *CPU) {
				cpu.setAD(0x0100|uint16(cpu.spDec()), uint8(cpu.PC>>8))
				cpu.wr()
			},
			func(cpu *CPU) {
				cpu.setAD(0x0100|uint16(cpu.spDec()), uint8(cpu.PC))
				cpu.wr()
			},
			opAddrPC,
			func(cpu *CPU) {
				cpu.PC = uint16(cpu.getD())<<8 | cpu.ad
				cpu.fetch()
			},
		}

	case 0x28: // PLP
		return []func(*CPU){
			opAddrPC,
			func(cpu *CPU) { cpu.setA(0x0100 | uint16(cpu.spInc())) },
			func(cpu *CPU) { cpu.setA(0x0100 | uint16(cpu.S)) },
			func(cpu *CPU) {
				cpu.P = (cpu.getD() | B) &^ U
				cpu.fetch()
			},
		}

	case 0x40: // RTI
		return []func(*CPU){
			opAddrPC,
			func(cpu *CPU) { cpu.setA(0x0100 | uint16(cpu.spInc())) },
			func(cpu *CPU) { cpu.setA(0x0100 | uint16(cpu.spInc())) },
			func(cpu *CPU) {
				cpu.setA(0x0100 | uint16(cpu.spInc()))
				cpu.P = (cpu.getD() | B) &^ U
			},
			func(cpu *CPU) {
				cpu.setA(0x0100 | uint16(cpu.S))
				cpu.ad = uint16(cpu.getD())
			},
			func(cpu *CPU) {
				cpu.PC = uint16(cpu.getD())<<8 | cpu.ad
				cpu.fetch()
			},
		}

	case 0x48: // PHA
		return []func(*CPU){
			opAddrPC,
			func(cpu *CPU) {
				cpu.setAD(0x0100|uint16(cpu.spDec()), cpu.A)
				cpu.wr()
			},
			(*CPU).fetch,
		}

	case 0x4c: // JMP abs
		return []func(*CPU){
			opFetchPC,
			func(cpu *CPU) {
				cpu.setA(cpu.PC)
				cpu.PC++
				cpu.ad = uint16(cpu.getD())
			},
			func(cpu *CPU) {
				cpu.PC = uint16(cpu.getD())<<8 | cpu.ad
				cpu.fetch()
			},
		}

	case 0x60: // RTS
		return []func(*CPU){
			opAddrPC,
			func(cpu *CPU) { cpu.setA(0x0100 | uint16(cpu.spInc())) },
			func(cpu *CPU) { cpu.setA(0x0100 | uint16(cpu.spInc())) },
			func(cpu *CPU) {
				cpu.setA(0x0100 | uint16(cpu.S))
				cpu.ad = uint16(cpu.getD())
			},
			func(cpu *CPU) {
				cpu.PC = uint16(cpu.getD())<<8 | cpu.ad
				cpu.setA(cpu.PC)
				cpu.PC++
			},
			(*CPU).fetch,
		}

	case 0x68: // PLA
		return []func(*CPU){
			opAddrPC,
			func(cpu *CPU) { cpu.setA(0x0100 | uint16(cpu.spInc())) },
			func(cpu *CPU) { cpu.setA(0x0100 | uint16(cpu.S)) },
			func(cpu *CPU) {
				cpu.A = cpu.getD()
				cpu.setZN(cpu.A)
				cpu.fetch()
			},
		}

	case 0x6c: // JMP (ind), with the page-wrap quirk on the pointer read
		return []func(*CPU){
			opFetchPC,
			func(cpu *CPU) {
				cpu.setA(cpu.PC)
				cpu.PC++
				cpu.ad = uint16(cpu.getD())
			},
			func(cpu *CPU) {
				cpu.ad |= uint16(cpu.getD()) << 8
				cpu.setA(cpu.ad)
			},
			func(cpu *CPU) {
				cpu.setA(cpu.ad&0xff00 | (cpu.ad+1)&0x00ff)
				cpu.ad = uint16(cpu.getD())
			},
			func(cpu *CPU) {
				cpu.PC = uint16(cpu.getD())<<8 | cpu.ad
				cpu.fetch()
			},
		}

	default: // JAM: lock the bus until reset
		return []func(*CPU){
			opAddrPC,
			func(cpu *CPU) {
				if cpu.brkFlags&brkReset != 0 {
					cpu.setA(cpu.PC)
					cpu.ir = 0
					return
				}
				cpu.setAD(0xffff, 0xff)
				cpu.ir--
			},
		}
	}
}

// Shift and rotate primitives; C takes the shifted-out bit, N and Z follow
// the 8-bit result.

func (cpu *CPU) aslv(v uint8) uint8 {
	cpu.P = setFlag(cpu.P, C, v&0x80 != 0)
	v <<= 1
	cpu.setZN(v)
	return v
}

func (cpu *CPU) lsrv(v uint8) uint8 {
	cpu.P = setFlag(cpu.P, C, v&0x01 != 0)
	v >>= 1
	cpu.setZN(v)
	return v
}

func (cpu *CPU) rolv(v uint8) uint8 {
	carry := cpu.P&C != 0
	cpu.P = setFlag(cpu.P, C, v&0x80 != 0)
	v <<= 1
	if carry {
		v |= 0x01
	}
	cpu.setZN(v)
	return v
}

func (cpu *CPU) rorv(v uint8) uint8 {
	carry := cpu.P&C != 0
	cpu.P = setFlag(cpu.P, C, v&0x01 != 0)
	v >>= 1
	if carry {
		v |= 0x80
	}
	cpu.setZN(v)
	return v
}

func (cpu *CPU) bit(v uint8) {
	cpu.P = setFlag(cpu.P, Z, cpu.A&v == 0)
	cpu.P = cpu.P&^(N|V) | v&(N|V)
}

// readOps operate on the operand fetched in the final cycle.
var readOps = [mnemonics]func(*CPU, uint8){
	LDA: func(cpu *CPU, v uint8) { cpu.A = v; cpu.setZN(v) },
	LDX: func(cpu *CPU, v uint8) { cpu.X = v; cpu.setZN(v) },
	LDY: func(cpu *CPU, v uint8) { cpu.Y = v; cpu.setZN(v) },
	AND: func(cpu *CPU, v uint8) { cpu.A &= v; cpu.setZN(cpu.A) },
	ORA: func(cpu *CPU, v uint8) { cpu.A |= v; cpu.setZN(cpu.A) },
	EOR: func(cpu *CPU, v uint8) { cpu.A ^= v; cpu.setZN(cpu.A) },
	ADC: (*CPU).adc,
	SBC: (*CPU).sbc,
	CMP: func(cpu *CPU, v uint8) { cpu.cmp(cpu.A, v) },
	CPX: func(cpu *CPU, v uint8) { cpu.cmp(cpu.X, v) },
	CPY: func(cpu *CPU, v uint8) { cpu.cmp(cpu.Y, v) },
	BIT: (*CPU).bit,
	NOP: func(cpu *CPU, v uint8) {},

	// undocumented
	LAX: func(cpu *CPU, v uint8) { cpu.A, cpu.X = v, v; cpu.setZN(v) },
	ANC: func(cpu *CPU, v uint8) {
		cpu.A &= v
		cpu.setZN(cpu.A)
		cpu.P = setFlag(cpu.P, C, cpu.A&0x80 != 0)
	},
	ASR: func(cpu *CPU, v uint8) {
		cpu.A &= v
		cpu.A = cpu.lsrv(cpu.A)
	},
	ARR: func(cpu *CPU, v uint8) {
		cpu.A &= v
		cpu.arr()
	},
	ANE: func(cpu *CPU, v uint8) {
		cpu.A = (cpu.A | 0xee) & cpu.X & v
		cpu.setZN(cpu.A)
	},
	LXA: func(cpu *CPU, v uint8) {
		cpu.A = (cpu.A | 0xee) & v
		cpu.X = cpu.A
		cpu.setZN(cpu.A)
	},
	SBX: (*CPU).sbx,
	LAS: func(cpu *CPU, v uint8) {
		v &= cpu.S
		cpu.A, cpu.X, cpu.S = v, v, v
		cpu.setZN(v)
	},
}

// storeOps produce the value driven onto the data bus. The SH family reads
// the effective address already on the bus.
var storeOps = [mnemonics]func(*CPU) uint8{
	STA: func(cpu *CPU) uint8 { return cpu.A },
	STX: func(cpu *CPU) uint8 { return cpu.X },
	STY: func(cpu *CPU) uint8 { return cpu.Y },
	SAX: func(cpu *CPU) uint8 { return cpu.A & cpu.X },
	SHA: func(cpu *CPU) uint8 { return cpu.A & cpu.X & (uint8(cpu.out.Addr>>8) + 1) },
	SHX: func(cpu *CPU) uint8 { return cpu.X & (uint8(cpu.out.Addr>>8) + 1) },
	SHY: func(cpu *CPU) uint8 { return cpu.Y & (uint8(cpu.out.Addr>>8) + 1) },
	SHS: func(cpu *CPU) uint8 {
		cpu.S = cpu.A & cpu.X
		return cpu.S & (uint8(cpu.out.Addr>>8) + 1)
	},
}

// modifyOps transform the value of a read-modify-write operation; the
// combined undocumented forms also fold the result into the accumulator.
var modifyOps = [mnemonics]func(*CPU, uint8) uint8{
	ASL: (*CPU).aslv,
	LSR: (*CPU).lsrv,
	ROL: (*CPU).rolv,
	ROR: (*CPU).rorv,
	INC: func(cpu *CPU, v uint8) uint8 { v++; cpu.setZN(v); return v },
	DEC: func(cpu *CPU, v uint8) uint8 { v--; cpu.setZN(v); return v },

	// undocumented
	SLO: func(cpu *CPU, v uint8) uint8 {
		v = cpu.aslv(v)
		cpu.A |= v
		cpu.setZN(cpu.A)
		return v
	},
	RLA: func(cpu *CPU, v uint8) uint8 {
		v = cpu.rolv(v)
		cpu.A &= v
		cpu.setZN(cpu.A)
		return v
	},
	SRE: func(cpu *CPU, v uint8) uint8 {
		v = cpu.lsrv(v)
		cpu.A ^= v
		cpu.setZN(cpu.A)
		return v
	},
	RRA: func(cpu *CPU, v uint8) uint8 {
		v = cpu.rorv(v)
		cpu.adc(v)
		return v
	},
	DCP: func(cpu *CPU, v uint8) uint8 {
		v--
		cpu.cmp(cpu.A, v)
		return v
	},
	ISB: func(cpu *CPU, v uint8) uint8 {
		v++
		cpu.sbc(v)
		return v
	},
}

// accOps are the accumulator-mode shifts and rotates.
var accOps = [mnemonics]func(*CPU){
	ASL: func(cpu *CPU) { cpu.A = cpu.aslv(cpu.A) },
	LSR: func(cpu *CPU) { cpu.A = cpu.lsrv(cpu.A) },
	ROL: func(cpu *CPU) { cpu.A = cpu.rolv(cpu.A) },
	ROR: func(cpu *CPU) { cpu.A = cpu.rorv(cpu.A) },
}

// impliedOps run in the second cycle of a single-byte instruction.
var impliedOps = [mnemonics]func(*CPU){
	CLC: func(cpu *CPU) { cpu.P &^= C },
	CLD: func(cpu *CPU) { cpu.P &^= D },
	CLI: func(cpu *CPU) { cpu.P &^= I },
	CLV: func(cpu *CPU) { cpu.P &^= V },
	SEC: func(cpu *CPU) { cpu.P |= C },
	SED: func(cpu *CPU) { cpu.P |= D },
	SEI: func(cpu *CPU) { cpu.P |= I },
	INX: func(cpu *CPU) { cpu.X++; cpu.setZN(cpu.X) },
	INY: func(cpu *CPU) { cpu.Y++; cpu.setZN(cpu.Y) },
	DEX: func(cpu *CPU) { cpu.X--; cpu.setZN(cpu.X) },
	DEY: func(cpu *CPU) { cpu.Y--; cpu.setZN(cpu.Y) },
	TAX: func(cpu *CPU) { cpu.X = cpu.A; cpu.setZN(cpu.X) },
	TAY: func(cpu *CPU) { cpu.Y = cpu.A; cpu.setZN(cpu.Y) },
	TSX: func(cpu *CPU) { cpu.X = cpu.S; cpu.setZN(cpu.X) },
	TXA: func(cpu *CPU) { cpu.A = cpu.X; cpu.setZN(cpu.A) },
	TXS: func(cpu *CPU) { cpu.S = cpu.X },
	TYA: func(cpu *CPU) { cpu.A = cpu.Y; cpu.setZN(cpu.A) },
	NOP: func(cpu *CPU) {},
}
