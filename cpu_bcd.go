package mos65xx

// adc adds the value and the carry to the accumulator. In decimal mode the
// nibbles are adjusted after the binary add and N, V and Z are derived from
// the intermediate binary results (the MAME algorithm; other emulators
// disagree here, see the ARR note below).
func (cpu *CPU) adc(v uint8) {
	if cpu.P&D != 0 {
		var c uint16
		if cpu.P&C != 0 {
			c = 1
		}
		cpu.P &^= N | V | Z | C

		al := uint16(cpu.A&0x0f) + uint16(v&0x0f) + c
		if al > 9 {
			al += 6
		}
		ah := uint16(cpu.A>>4) + uint16(v>>4)
		if al > 0x0f {
			ah++
		}

		if cpu.A+v+uint8(c) == 0 {
			cpu.P |= Z
		} else if ah&0x08 != 0 {
			cpu.P |= N
		}
		if ^(cpu.A^v)&(cpu.A^uint8(ah<<4))&0x80 != 0 {
			cpu.P |= V
		}
		if ah > 9 {
			ah += 6
		}
		if ah > 15 {
			cpu.P |= C
		}
		cpu.A = uint8(ah<<4) | uint8(al&0x0f)
		return
	}

	sum := uint16(cpu.A) + uint16(v)
	if cpu.P&C != 0 {
		sum++
	}
	cpu.P &^= V | C
	cpu.setZN(uint8(sum))
	if ^(cpu.A^v)&(cpu.A^uint8(sum))&0x80 != 0 {
		cpu.P |= V
	}
	if sum&0xff00 != 0 {
		cpu.P |= C
	}
	cpu.A = uint8(sum)
}

// sbc subtracts the value and the borrow from the accumulator, with the
// matching decimal-mode adjustment.
func (cpu *CPU) sbc(v uint8) {
	if cpu.P&D != 0 {
		var c int16
		if cpu.P&C == 0 {
			c = 1
		}
		cpu.P &^= N | V | Z | C

		diff := int16(cpu.A) - int16(v) - c
		al := int16(cpu.A&0x0f) - int16(v&0x0f) - c
		if al < 0 {
			al -= 6
		}
		ah := int16(cpu.A>>4) - int16(v>>4)
		if al < 0 {
			ah--
		}

		if diff == 0 {
			cpu.P |= Z
		} else if diff&0x80 != 0 {
			cpu.P |= N
		}
		if (cpu.A^v)&(cpu.A^uint8(diff))&0x80 != 0 {
			cpu.P |= V
		}
		if uint16(diff)&0xff00 == 0 {
			cpu.P |= C
		}
		if ah&0x80 != 0 {
			ah -= 6
		}
		cpu.A = uint8(ah<<4) | uint8(al&0x0f)
		return
	}

	diff := uint16(cpu.A) - uint16(v)
	if cpu.P&C == 0 {
		diff--
	}
	cpu.P &^= V | C
	cpu.setZN(uint8(diff))
	if (cpu.A^v)&(cpu.A^uint8(diff))&0x80 != 0 {
		cpu.P |= V
	}
	if diff&0xff00 == 0 {
		cpu.P |= C
	}
	cpu.A = uint8(diff)
}

// arr rotates the accumulator right after the preceding AND, with flag
// behavior nobody should rely on. The decimal variant follows MAME; it is
// exercised by the Wolfgang Lorenz C64 suite.
func (cpu *CPU) arr() {
	carry := cpu.P&C != 0
	cpu.P &^= N | V | Z | C
	a := cpu.A >> 1
	if carry {
		a |= 0x80
	}
	if cpu.P&D != 0 {
		cpu.setZN(a)
		if (a^cpu.A)&0x40 != 0 {
			cpu.P |= V
		}
		if cpu.A&0x0f >= 0x05 {
			a = (a+6)&0x0f | a&0xf0
		}
		if cpu.A&0xf0 >= 0x50 {
			a += 0x60
			cpu.P |= C
		}
		cpu.A = a
		return
	}
	cpu.A = a
	cpu.setZN(cpu.A)
	if cpu.A&0x40 != 0 {
		cpu.P |= V | C
	}
	if cpu.A&0x20 != 0 {
		cpu.P ^= V
	}
}

// sbx stores A AND X minus the operand in X; the subtract ignores the
// carry but sets it like a compare.
func (cpu *CPU) sbx(v uint8) {
	t := uint16(cpu.A&cpu.X) - uint16(v)
	cpu.setZN(uint8(t))
	cpu.P = setFlag(cpu.P, C, t&0xff00 == 0)
	cpu.X = uint8(t)
}
