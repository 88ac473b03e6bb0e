package mos65xx

import (
	"bytes"
	"fmt"
	"text/template"
)

// Instruction formats
const (
	FormatDefault = `{{printf "%07d %04X %02X %02X %02X %02X:%s %02X %02X:%-4s %-19s" .C .PC .A .X .Y .P .PS .S .I .M .Mode}}`
)

var (
	// InstructionFormat is the default instruction format
	InstructionFormat = FormatDefault
)

// Instruction describes an instruction that is about to be executed. It is
// snapshotted on the SYNC cycle, before the first operand byte is fetched.
type Instruction struct {
	// Cycles elapsed before this instruction
	Cycles int

	// Opcode byte latched from the data bus
	Opcode uint8

	// Mnemonic is the current operation
	Mnemonic

	// AddressMode is the addressing mode for this instruction
	AddressMode

	// Interrupt is true when the opcode was replaced by a forced BRK for
	// an IRQ, NMI or RESET entry
	Interrupt bool

	// Registers state for this instruction; PC is the address of the opcode
	Registers
}

// Format returns a formatted string based on the InstructionFormat template.
func (in Instruction) Format() string {
	var (
		t = template.Must(template.New("instruction").Parse(InstructionFormat))
		b = new(bytes.Buffer)
		d = map[string]interface{}{
			"C":    in.Cycles,
			"M":    in.Mnemonic,
			"Mode": in.AddressMode,
			"PC":   in.Registers.PC,
			"P":    in.Registers.P,
			"PS":   fmtP(in.Registers.P),
			"S":    in.Registers.S,
			"A":    in.Registers.A,
			"X":    in.Registers.X,
			"Y":    in.Registers.Y,
			"I":    in.Opcode,
		}
	)
	if err := t.Execute(b, d); err != nil {
		return ""
	}
	return b.String()
}

func fmtP(p uint8) (s string) {
	var o = []rune("········")
	for i, c := range []rune("NVUBDIZC") {
		if p&(1<<uint(7-i)) != 0 {
			o[i] = c
		}
	}
	return string(o)
}

func padX(b []byte) (s string) {
	for i, c := range b {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%02X", c)
	}
	return
}

// Monitor observes instruction fetches. BeforeExecute is called on every
// SYNC cycle with the just-latched opcode and the register state.
type Monitor interface {
	BeforeExecute(Instruction)
}

// InstructionPrinter will output a formatted string on every fetch.
type InstructionPrinter func(string)

// BeforeExecute triggers the printer function.
func (m InstructionPrinter) BeforeExecute(in Instruction) {
	m(in.Format())
}
