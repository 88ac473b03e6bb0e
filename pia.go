package mos65xx

import "fmt"

// PIA register indices, selected by the 2-bit RS input
const (
	RegPIARA  = iota // DDRA or ORA, per CRA bit 2
	RegPIACRA        // control register A
	RegPIARB         // DDRB or ORB, per CRB bit 2
	RegPIACRB        // control register B
)

// Control register bits, same layout for CRA and CRB
const (
	// CRIRQ1Enable generates the IRQ signal on an active C1 transition.
	CRIRQ1Enable uint8 = 1 << 0

	// CRIRQ1Transition selects the active C1 edge:
	// 0 = negative (high-to-low), 1 = positive (low-to-high).
	CRIRQ1Transition uint8 = 1 << 1

	// CRORSelect selects the register behind RA/RB:
	// 0 = data direction register, 1 = output register.
	CRORSelect uint8 = 1 << 2

	// CRIRQ2Enable generates the IRQ signal on an active C2 transition.
	// Only when C2 is an input.
	CRIRQ2Enable uint8 = 1 << 3

	// CRIRQ2Transition selects the active C2 edge:
	// 0 = negative, 1 = positive. Only when C2 is an input.
	CRIRQ2Transition uint8 = 1 << 4

	// CRC2Restore controls the automatic strobe restore when C2 is an
	// output: 0 = C2 returns high on the next active C1 transition,
	// 1 = C2 returns high on the next ϕ2 negative edge.
	CRC2Restore uint8 = 1 << 3

	// CRC2Manual switches C2 output between the automatic strobe (0) and
	// direct control from the restore bit (1). Only when C2 is an output.
	CRC2Manual uint8 = 1 << 4

	// CRC2Mode selects the C2 direction: 0 = input, 1 = output.
	CRC2Mode uint8 = 1 << 5

	// CRIRQ2Flag is set on an active C2 transition and cleared by a read
	// of the output register. Read-only.
	CRIRQ2Flag uint8 = 1 << 6

	// CRIRQ1Flag is set on an active C1 transition and cleared by a read
	// of the output register. Read-only.
	CRIRQ1Flag uint8 = 1 << 7
)

// piaPort is the state of one 8-bit peripheral port
type piaPort struct {
	inpr uint8
	pins uint8
	outr uint8
	ddr  uint8

	c1In          bool
	c1Triggered   bool // armed restore: C2 returns high on the next C1 edge
	c2In          bool
	c2Out         bool
	c2TriggerLow  bool // strobe armed by an output register access
	c2TriggerHigh bool // restore armed after the strobe went low
}

func (p *piaPort) init() {
	p.inpr = 0x00
	p.pins = 0x00
	p.outr = 0
	p.ddr = 0
	p.c1In = false
	p.c1Triggered = false
	p.c2In = false
	p.c2Out = true
	p.c2TriggerLow = false
	p.c2TriggerHigh = false
}

// PIAInput are the input pins sampled on every tick.
type PIAInput struct {
	Reset bool // RES, active low
	CS0   bool // chip select 0, active high
	CS1   bool // chip select 1, active high
	CS2   bool // chip select 2, active low
	Phi2  bool // ϕ2 clock; register access happens while high
	RW    bool // R/W, true = read
	RS    uint8
	Data  uint8
	CA1   bool
	CA2   bool
	CB1   bool
	CB2   bool
	PA    uint8
	PB    uint8
}

// PIAOutput are the output pins valid after every tick.
type PIAOutput struct {
	IRQA   bool // active low
	IRQB   bool // active low
	Data   uint8
	PA     uint8
	PADir  uint8
	PB     uint8
	PBDir  uint8
	CA2    bool
	CA2Dir bool
	CB2    bool
	CB2Dir bool
}

// PIA is a MOS 6520 Peripheral Interface Adapter: two 8-bit ports with
// CA/CB control-line strobes and separate IRQA/IRQB outputs.
type PIA struct {
	pa piaPort
	pb piaPort

	cra uint8
	crb uint8

	out PIAOutput
}

// NewPIA creates a PIA in its power-on state.
func NewPIA() *PIA {
	pia := &PIA{}
	pia.reset()
	pia.out.IRQA = true
	pia.out.IRQB = true
	return pia
}

// Model identifies the emulated chip.
func (pia *PIA) Model() Model { return MOS6520 }

// Control register predicates

func irq1Rising(cr uint8) bool  { return cr&CRIRQ1Transition != 0 }
func irq1Falling(cr uint8) bool { return cr&CRIRQ1Transition == 0 }
func irq2Rising(cr uint8) bool  { return cr&CRIRQ2Transition != 0 }
func irq2Falling(cr uint8) bool { return cr&CRIRQ2Transition == 0 }
func c2Output(cr uint8) bool    { return cr&CRC2Mode != 0 }
func c2Input(cr uint8) bool     { return cr&CRC2Mode == 0 }
func c2Manual(cr uint8) bool    { return cr&CRC2Manual != 0 }

// reset clears all internal registers; all peripheral lines become inputs
// and interrupts are disabled.
func (pia *PIA) reset() {
	pia.pa.init()
	pia.pb.init()
	pia.cra = 0
	pia.crb = 0
}

func (pia *PIA) readPortPins(in PIAInput) {
	pia.pa.inpr = in.PA
	pia.pb.inpr = in.PB

	// a port read returns a mix of input pins and output register per the
	// data direction
	pia.pa.pins = pia.pa.inpr&^pia.pa.ddr | pia.pa.outr&pia.pa.ddr
	pia.pb.pins = pia.pb.inpr&^pia.pb.ddr | pia.pb.outr&pia.pb.ddr
}

// controlChange detects the C1/C2 transitions, raises the IRQ flags per
// the edge selects and completes strobe restores that wait on C1.
func (pia *PIA) controlChange(in PIAInput) {
	var (
		ca1Edge  = pia.pa.c1In != in.CA1
		resetCA2 = false
	)
	if ca1Edge && !in.CA1 && irq1Falling(pia.cra) {
		pia.cra |= CRIRQ1Flag
		resetCA2 = true
	}
	if ca1Edge && in.CA1 && irq1Rising(pia.cra) {
		pia.cra |= CRIRQ1Flag
		resetCA2 = true
	}

	ca2Edge := pia.pa.c2In != in.CA2
	if c2Input(pia.cra) {
		if ca2Edge && !in.CA2 && irq2Falling(pia.cra) {
			pia.cra |= CRIRQ2Flag
		}
		if ca2Edge && in.CA2 && irq2Rising(pia.cra) {
			pia.cra |= CRIRQ2Flag
		}
	}

	var (
		cb1Edge  = pia.pb.c1In != in.CB1
		resetCB2 = false
	)
	if cb1Edge && !in.CB1 && irq1Falling(pia.crb) {
		pia.crb |= CRIRQ1Flag
		resetCB2 = true
	}
	if cb1Edge && in.CB1 && irq1Rising(pia.crb) {
		pia.crb |= CRIRQ1Flag
		resetCB2 = true
	}

	cb2Edge := pia.pb.c2In != in.CB2
	if c2Input(pia.crb) {
		if cb2Edge && !in.CB2 && irq2Falling(pia.crb) {
			pia.crb |= CRIRQ2Flag
		}
		if cb2Edge && in.CB2 && irq2Rising(pia.crb) {
			pia.crb |= CRIRQ2Flag
		}
	}

	pia.pa.c1In = in.CA1
	pia.pa.c2In = in.CA2
	pia.pb.c1In = in.CB1
	pia.pb.c2In = in.CB2

	// restore the strobes on an active C1 transition
	if resetCA2 && pia.pa.c1Triggered {
		pia.pa.c2Out = true
		pia.pa.c1Triggered = false
	}
	if resetCB2 && pia.pb.c1Triggered {
		pia.pb.c2Out = true
		pia.pb.c1Triggered = false
	}
}

// handleStrobes drives the automatic CA2/CB2 output strobes: C2 goes low
// on the ϕ2 negative edge after a read of ORA (CA2) or a write of ORB
// (CB2), and returns high per the restore control bit.
func (pia *PIA) handleStrobes(in PIAInput) {
	if c2Output(pia.cra) && !c2Manual(pia.cra) {
		switch {
		case !in.Phi2 && pia.pa.c2TriggerLow:
			pia.pa.c2Out = false
			pia.pa.c2TriggerLow = false
			pia.pa.c2TriggerHigh = true
		case pia.cra&CRC2Restore != 0:
			// high on the next ϕ2 negative transition
			if !in.Phi2 && pia.pa.c2TriggerHigh {
				pia.pa.c2Out = true
				pia.pa.c2TriggerHigh = false
			}
		default:
			// high on the next active CA1 transition
			if pia.pa.c2TriggerHigh {
				pia.pa.c1Triggered = true
				pia.pa.c2TriggerHigh = false
			}
		}
	}

	if c2Output(pia.crb) && !c2Manual(pia.crb) {
		switch {
		case !in.Phi2 && pia.pb.c2TriggerLow:
			pia.pb.c2Out = false
			pia.pb.c2TriggerLow = false
			pia.pb.c2TriggerHigh = true
		case pia.crb&CRC2Restore != 0:
			if !in.Phi2 && pia.pb.c2TriggerHigh {
				pia.pb.c2Out = true
				pia.pb.c2TriggerHigh = false
			}
		default:
			if pia.pb.c2TriggerHigh {
				pia.pb.c1Triggered = true
				pia.pb.c2TriggerHigh = false
			}
		}
	}
}

func (pia *PIA) readRegister(addr uint8) uint8 {
	switch addr {
	case RegPIARA:
		if pia.cra&CRORSelect == 0 {
			return pia.pa.ddr
		}
		pia.cra &^= CRIRQ1Flag | CRIRQ2Flag
		pia.pa.c2TriggerLow = true
		return pia.pa.pins

	case RegPIARB:
		if pia.crb&CRORSelect == 0 {
			return pia.pb.ddr
		}
		pia.crb &^= CRIRQ1Flag | CRIRQ2Flag
		return pia.pb.pins

	case RegPIACRA:
		return pia.cra

	case RegPIACRB:
		return pia.crb
	}
	panic(fmt.Sprintf("mos65xx: PIA register select out of range: %d", addr))
}

func (pia *PIA) writeRegister(addr, data uint8) {
	switch addr {
	case RegPIARA:
		if pia.cra&CRORSelect == 0 {
			pia.pa.ddr = data
		} else {
			pia.pa.outr = data
		}

	case RegPIARB:
		if pia.crb&CRORSelect == 0 {
			pia.pb.ddr = data
		} else {
			pia.pb.outr = data
			pia.pb.c2TriggerLow = true
		}

	case RegPIACRA:
		// the IRQ flags are not changed by a write
		pia.cra = pia.cra&(CRIRQ1Flag|CRIRQ2Flag) | data&0x3f
		if c2Output(data) && c2Manual(data) {
			// CA2 is driven directly from the restore bit
			pia.pa.c2Out = data&CRC2Restore != 0
		}

	case RegPIACRB:
		pia.crb = pia.crb&(CRIRQ1Flag|CRIRQ2Flag) | data&0x3f
		if c2Output(data) && c2Manual(data) {
			pia.pb.c2Out = data&CRC2Restore != 0
		}

	default:
		panic(fmt.Sprintf("mos65xx: PIA register select out of range: %d", addr))
	}
}

func (pia *PIA) updateOutput() {
	pia.out.PA = pia.pa.pins & pia.pa.ddr
	pia.out.PADir = pia.pa.ddr

	pia.out.PB = pia.pb.pins & pia.pb.ddr
	pia.out.PBDir = pia.pb.ddr

	pia.out.CA2 = pia.pa.c2Out
	pia.out.CA2Dir = c2Output(pia.cra)

	pia.out.CB2 = pia.pb.c2Out
	pia.out.CB2Dir = c2Output(pia.crb)

	// the IRQ outputs are active low; an IRQ flag only pulls the line
	// when its enable bit is set
	pia.out.IRQA = !(pia.cra&CRIRQ1Enable != 0 && pia.cra&CRIRQ1Flag != 0 ||
		pia.cra&CRIRQ2Enable != 0 && pia.cra&CRIRQ2Flag != 0)
	pia.out.IRQB = !(pia.crb&CRIRQ1Enable != 0 && pia.crb&CRIRQ1Flag != 0 ||
		pia.crb&CRIRQ2Enable != 0 && pia.crb&CRIRQ2Flag != 0)
}

// Tick advances the PIA by one clock edge. Call it on both edges of ϕ2
// with the Phi2 input reflecting the new clock level; register access
// happens while ϕ2 is high, the strobe edges while it is low.
func (pia *PIA) Tick(in PIAInput) PIAOutput {
	if !in.Reset {
		pia.reset()
		pia.out.Data = 0
		pia.updateOutput()
		return pia.out
	}

	pia.readPortPins(in)
	pia.controlChange(in)

	if in.Phi2 {
		// register access happens while ϕ2 is high, when the CPU has set
		// up all control lines
		if in.CS0 && in.CS1 && !in.CS2 {
			if in.RS > 0x03 {
				panic(fmt.Sprintf("mos65xx: PIA register select out of range: %d", in.RS))
			}
			if in.RW {
				pia.out.Data = pia.readRegister(in.RS)
			} else {
				pia.writeRegister(in.RS, in.Data)
			}
		}
	}

	pia.handleStrobes(in)

	pia.updateOutput()
	return pia.out
}
