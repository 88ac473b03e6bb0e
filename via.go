package mos65xx

import "fmt"

// VIA register indices, selected by the 4-bit RS input
const (
	RegRB     = iota // input/output register B
	RegRA            // input/output register A
	RegDDRB          // data direction B
	RegDDRA          // data direction A
	RegT1CL          // T1 low-order latch / counter
	RegT1CH          // T1 high-order counter
	RegT1LL          // T1 low-order latch
	RegT1LH          // T1 high-order latch
	RegT2CL          // T2 low-order latch / counter
	RegT2CH          // T2 high-order counter
	RegSR            // shift register (not implemented)
	RegACR           // auxiliary control register
	RegPCR           // peripheral control register
	RegIFR           // interrupt flag register
	RegIER           // interrupt enable register
	RegRANoHS        // input/output register A without handshake
)

// VIA interrupt flag and enable bits, shared by IFR and IER
const (
	IRQCA2 uint8 = 1 << iota
	IRQCA1
	IRQSR
	IRQCB2
	IRQCB1
	IRQT2
	IRQT1
	IRQAny
)

// delay-pipeline bit offsets
const (
	pipTimerCount = 0 // 2-cycle 'counter active' lane, bits 0..7
	pipTimerLoad  = 8 // 1-cycle 'force load from latch' lane, bits 8..15
	pipIRQ        = 0
)

// pipeline is a small shift register modeling per-cycle latency; bit 0 of
// a lane is the output bit.
type pipeline uint16

func (p *pipeline) set(offset, pos int) { *p |= 1 << uint(offset+pos) }

func (p *pipeline) clr(offset, pos int) { *p &^= 1 << uint(offset+pos) }

func (p *pipeline) reset(offset int) { *p &^= 0xff << uint(offset) }

func (p pipeline) test(offset, pos int) bool { return p&(1<<uint(offset+pos)) != 0 }

// tick shifts both 8-bit lanes forward by one cycle
func (p *pipeline) tick() { *p = (*p >> 1) & 0x7f7f }

// viaPort is the state of one 8-bit peripheral port
type viaPort struct {
	inpr uint8 // latched input register
	pins uint8 // current pin state
	outr uint8 // output register
	ddr  uint8 // data direction, bit set = output

	c1In        bool
	c1Triggered bool
	c2In        bool
	c2Out       bool
	c2Triggered bool
}

func (p *viaPort) init() {
	// the datasheet clears all registers on reset; all lines become inputs
	p.inpr = 0x00
	p.pins = 0x00
	p.outr = 0
	p.ddr = 0
	p.c1In = false
	p.c1Triggered = false
	p.c2In = false
	p.c2Out = true
	p.c2Triggered = false
}

// viaTimer is the state of one 16-bit interval timer
type viaTimer struct {
	// 16-bit initial value latch; hardware T2 only latches the low byte,
	// the model keeps the full field
	latch uint16

	counter uint16

	// tBit toggles on underflow in continuous mode and guards the
	// one-shot interrupt otherwise
	tBit bool

	// tOut is true for the single cycle of an underflow
	tOut bool

	pip pipeline
}

func (t *viaTimer) init(reset bool) {
	// counters and latches survive a reset
	if !reset {
		t.latch = 0xffff
		t.counter = 0
		t.tBit = false
	}
	t.tOut = false
	t.pip = 0
}

// viaInterrupt is the interrupt flag/enable state
type viaInterrupt struct {
	ier uint8
	ifr uint8
	pip pipeline
}

func (i *viaInterrupt) init() {
	i.ier = 0
	i.ifr = 0
	i.pip = 0
}

// VIAInput are the input pins sampled on every tick.
type VIAInput struct {
	Reset bool // RES, active low
	CS1   bool // chip select 1, active high
	CS2   bool // chip select 2, active low
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

// VIAOutput are the output pins valid after every tick.
type VIAOutput struct {
	IRQ    bool // active low
	Data   uint8
	PA     uint8
	PADir  uint8
	PB     uint8
	PBDir  uint8
	CA2    bool
	CA2Dir bool
	CB1    bool
	CB1Dir bool
	CB2    bool
	CB2Dir bool
}

// VIA is a MOS 6522 Versatile Interface Adapter: two 8-bit ports with
// latching and handshake, two interval timers and the shared interrupt
// flag/enable logic. The shift register is not implemented.
type VIA struct {
	pa   viaPort
	pb   viaPort
	t1   viaTimer
	t2   viaTimer
	intr viaInterrupt

	acr uint8
	pcr uint8

	lastInput VIAInput
	out       VIAOutput
}

// NewVIA creates a VIA in its power-on state.
func NewVIA() *VIA {
	via := &VIA{}
	via.pa.init()
	via.pb.init()
	via.t1.init(false)
	via.t2.init(false)
	via.intr.init()
	via.out.IRQ = true
	return via
}

// Model identifies the emulated chip.
func (via *VIA) Model() Model { return MOS6522 }

// PCR predicates

func (via *VIA) ca1Rising() bool  { return via.pcr&0x01 != 0 }
func (via *VIA) ca1Falling() bool { return via.pcr&0x01 == 0 }
func (via *VIA) ca2Input() bool   { return via.pcr&0x08 == 0 }
func (via *VIA) ca2Output() bool  { return via.pcr&0x08 != 0 }
func (via *VIA) ca2Rising() bool  { return via.pcr&0x0c == 0x04 }
func (via *VIA) ca2Falling() bool { return via.pcr&0x0c == 0x00 }
func (via *VIA) ca2IndIRQ() bool  { return via.pcr&0x0a == 0x02 }
func (via *VIA) ca2AutoHS() bool  { return via.pcr&0x0c == 0x08 }
func (via *VIA) ca2PulseOut() bool {
	return via.pcr&0x0e == 0x0a
}
func (via *VIA) ca2FixOut() bool   { return via.pcr&0x0c == 0x0c }
func (via *VIA) ca2OutLevel() bool { return via.pcr&0x02 != 0 }

func (via *VIA) cb1Rising() bool  { return via.pcr&0x10 != 0 }
func (via *VIA) cb1Falling() bool { return via.pcr&0x10 == 0 }
func (via *VIA) cb2Input() bool   { return via.pcr&0x80 == 0 }
func (via *VIA) cb2Output() bool  { return via.pcr&0x80 != 0 }
func (via *VIA) cb2Rising() bool  { return via.pcr&0xc0 == 0x40 }
func (via *VIA) cb2Falling() bool { return via.pcr&0xc0 == 0x00 }
func (via *VIA) cb2IndIRQ() bool  { return via.pcr&0xa0 == 0x20 }
func (via *VIA) cb2AutoHS() bool  { return via.pcr&0xc0 == 0x80 }
func (via *VIA) cb2PulseOut() bool {
	return via.pcr&0xe0 == 0xa0
}
func (via *VIA) cb2FixOut() bool   { return via.pcr&0xc0 == 0xc0 }
func (via *VIA) cb2OutLevel() bool { return via.pcr&0x20 != 0 }

// ACR predicates

func (via *VIA) paLatch() bool      { return via.acr&0x01 != 0 }
func (via *VIA) pbLatch() bool      { return via.acr&0x02 != 0 }
func (via *VIA) t1SetPB7() bool     { return via.acr&0x80 != 0 }
func (via *VIA) t1Continuous() bool { return via.acr&0x40 != 0 }
func (via *VIA) t2CountPB6() bool   { return via.acr&0x20 != 0 }

// reset clears all registers except the timer counters and latches, turns
// all lines into inputs and disables interrupt generation.
func (via *VIA) reset() {
	via.pa.init()
	via.pb.init()
	via.t1.init(true)
	via.t2.init(true)
	via.intr.init()
	via.acr = 0
	via.pcr = 0
}

// readPortPins samples the input pins and detects the CA1/CA2/CB1/CB2
// transitions selected by the PCR. With latching enabled the input
// register only updates when C1 goes active.
func (via *VIA) readPortPins(in VIAInput) {
	via.pa.c1Triggered = via.pa.c1In != in.CA1 &&
		((in.CA1 && via.ca1Rising()) || (!in.CA1 && via.ca1Falling()))
	via.pa.c2Triggered = via.pa.c2In != in.CA2 &&
		((in.CA2 && via.ca2Rising()) || (!in.CA2 && via.ca2Falling()))
	via.pb.c1Triggered = via.pb.c1In != in.CB1 &&
		((in.CB1 && via.cb1Rising()) || (!in.CB1 && via.cb1Falling()))
	via.pb.c2Triggered = via.pb.c2In != in.CB2 &&
		((in.CB2 && via.cb2Rising()) || (!in.CB2 && via.cb2Falling()))
	via.pa.c1In = in.CA1
	via.pa.c2In = in.CA2
	via.pb.c1In = in.CB1
	via.pb.c2In = in.CB2

	if via.paLatch() {
		if via.pa.c1Triggered {
			via.pa.inpr = in.PA
		}
	} else {
		via.pa.inpr = in.PA
	}
	if via.pbLatch() {
		if via.pb.c1Triggered {
			via.pb.inpr = in.PB
		}
	} else {
		via.pb.inpr = in.PB
	}
}

// updateControl turns the detected transitions into interrupt flags and
// completes the automatic handshake on C1.
func (via *VIA) updateControl() {
	if via.pa.c1Triggered {
		via.setIntr(IRQCA1)
		if via.ca2AutoHS() {
			via.pa.c2Out = true
		}
	}
	if via.pa.c2Triggered && via.ca2Input() {
		via.setIntr(IRQCA2)
	}
	if via.pb.c1Triggered {
		via.setIntr(IRQCB1)
		if via.cb2AutoHS() {
			via.pb.c2Out = true
		}
	}
	if via.pb.c2Triggered && via.cb2Input() {
		via.setIntr(IRQCB2)
	}
}

/*
On timer behaviour: http://forum.6502.org/viewtopic.php?f=4&t=2901

T1 is always reloaded from the latch, both in continuous and one-shot
mode, while T2 is never reloaded.
*/
func (via *VIA) tickT1() {
	t := &via.t1

	if t.pip.test(pipTimerCount, 0) {
		t.counter--
	}

	t.tOut = t.counter == 0xffff
	if t.tOut {
		if via.t1Continuous() {
			t.tBit = !t.tBit
			via.setIntr(IRQT1)
		} else if !t.tBit {
			// trigger T1 only once
			via.setIntr(IRQT1)
			t.tBit = true
		}
		// reload from latch one cycle later, in both modes
		t.pip.set(pipTimerLoad, 1)
	}

	if t.pip.test(pipTimerLoad, 0) {
		t.counter = t.latch
	}
}

func (via *VIA) tickT2(in VIAInput) {
	t := &via.t2

	// either count PB6 high-to-low transitions, or count clock cycles
	if via.t2CountPB6() {
		if in.PB&0x40 == 0 && via.lastInput.PB&0x40 != 0 {
			t.counter--
		}
	} else if t.pip.test(pipTimerCount, 0) {
		t.counter--
	}

	t.tOut = t.counter == 0xffff
	if t.tOut {
		// T2 is always one-shot and never reloads from the latch
		if !t.tBit {
			via.setIntr(IRQT2)
			t.tBit = true
		}
	}
}

// updateIRQ raises the master interrupt bit one cycle after an enabled
// flag is set; the IRQ output is active low.
func (via *VIA) updateIRQ() {
	if via.intr.pip.test(pipIRQ, 0) {
		via.intr.ifr |= IRQAny
	}
	via.out.IRQ = via.intr.ifr&IRQAny == 0
}

func (via *VIA) mergePB7(data uint8) uint8 {
	if via.t1SetPB7() {
		data &^= 1 << 7
		if via.t1.tBit {
			data |= 1 << 7
		}
	}
	return data
}

func (via *VIA) writePortPins() {
	via.pa.pins = via.pa.inpr&^via.pa.ddr | via.pa.outr&via.pa.ddr
	via.pb.pins = via.mergePB7(via.pb.inpr&^via.pb.ddr | via.pb.outr&via.pb.ddr)
}

// tickPipeline feeds and shifts the delay pipelines; both counters are
// always feeding.
func (via *VIA) tickPipeline() {
	via.t1.pip.set(pipTimerCount, 2)
	via.t2.pip.set(pipTimerCount, 2)

	if via.intr.ifr&via.intr.ier&0x7f != 0 {
		via.intr.pip.set(pipIRQ, 1)
	}

	via.t1.pip.tick()
	via.t2.pip.tick()
	via.intr.pip.tick()
}

func (via *VIA) setIntr(flags uint8) {
	via.intr.ifr |= flags
}

// clearIntr clears the given interrupt flags, and the master bit plus any
// pipelined interrupt when no enabled flag remains.
func (via *VIA) clearIntr(flags uint8) {
	via.intr.ifr &^= flags
	if via.intr.ifr&via.intr.ier&0x7f == 0 {
		via.intr.ifr &= 0x7f
		via.intr.pip.reset(pipIRQ)
	}
}

func (via *VIA) clearPAIntr() {
	flags := IRQCA1
	if !via.ca2IndIRQ() {
		flags |= IRQCA2
	}
	via.clearIntr(flags)
}

func (via *VIA) clearPBIntr() {
	flags := IRQCB1
	if !via.cb2IndIRQ() {
		flags |= IRQCB2
	}
	via.clearIntr(flags)
}

func (via *VIA) writeIER(data uint8) {
	if data&0x80 != 0 {
		via.intr.ier |= data & 0x7f
	} else {
		via.intr.ier &^= data & 0x7f
	}
}

func (via *VIA) writeIFR(data uint8) {
	if data&IRQAny != 0 {
		data = 0x7f
	}
	via.clearIntr(data)
}

func (via *VIA) readRegister(addr uint8) uint8 {
	var data uint8
	switch addr {
	case RegRB:
		if via.pbLatch() {
			data = via.pb.inpr
		} else {
			data = via.pb.pins
		}
		via.clearPBIntr()

	case RegRA:
		if via.paLatch() {
			data = via.pa.inpr
		} else {
			data = via.pa.pins
		}
		via.clearPAIntr()
		if via.ca2PulseOut() || via.ca2AutoHS() {
			via.pa.c2Out = false
		}

	case RegDDRB:
		data = via.pb.ddr

	case RegDDRA:
		data = via.pa.ddr

	case RegT1CL:
		data = uint8(via.t1.counter)
		via.clearIntr(IRQT1)

	case RegT1CH:
		data = uint8(via.t1.counter >> 8)

	case RegT1LL:
		data = uint8(via.t1.latch)

	case RegT1LH:
		data = uint8(via.t1.latch >> 8)

	case RegT2CL:
		data = uint8(via.t2.counter)
		via.clearIntr(IRQT2)

	case RegT2CH:
		data = uint8(via.t2.counter >> 8)

	case RegSR:
		// not implemented

	case RegACR:
		data = via.acr

	case RegPCR:
		data = via.pcr

	case RegIFR:
		data = via.intr.ifr

	case RegIER:
		data = via.intr.ier | 0x80

	case RegRANoHS:
		if via.paLatch() {
			data = via.pa.inpr
		} else {
			data = via.pa.pins
		}
	}
	return data
}

func (via *VIA) writeRegister(addr, data uint8) {
	switch addr {
	case RegRB:
		via.pb.outr = data
		via.clearPBIntr()
		if via.cb2AutoHS() {
			via.pb.c2Out = false
		}

	case RegRA:
		via.pa.outr = data
		via.clearPAIntr()
		if via.ca2PulseOut() || via.ca2AutoHS() {
			via.pa.c2Out = false
		}

	case RegDDRB:
		via.pb.ddr = data

	case RegDDRA:
		via.pa.ddr = data

	case RegT1CL, RegT1LL:
		via.t1.latch = via.t1.latch&0xff00 | uint16(data)

	case RegT1CH:
		// starts the timer: the counter reloads immediately, not via the
		// load pipeline
		via.t1.latch = uint16(data)<<8 | via.t1.latch&0x00ff
		via.clearIntr(IRQT1)
		via.t1.tBit = false
		via.t1.counter = via.t1.latch

	case RegT1LH:
		via.t1.latch = uint16(data)<<8 | via.t1.latch&0x00ff
		via.clearIntr(IRQT1)

	case RegT2CL:
		via.t2.latch = via.t2.latch&0xff00 | uint16(data)

	case RegT2CH:
		via.t2.latch = uint16(data)<<8 | via.t2.latch&0x00ff
		via.clearIntr(IRQT2)
		via.t2.tBit = false
		via.t2.counter = via.t2.latch

	case RegSR:
		// not implemented

	case RegACR:
		via.acr = data
		// transitions T2 out of PB6 counting back to clock counting
		if !via.t2CountPB6() {
			via.t2.pip.clr(pipTimerCount, 0)
		}

	case RegPCR:
		via.pcr = data
		if via.ca2FixOut() {
			via.pa.c2Out = via.ca2OutLevel()
		}
		if via.cb2FixOut() {
			via.pb.c2Out = via.cb2OutLevel()
		}

	case RegIFR:
		via.writeIFR(data)

	case RegIER:
		via.writeIER(data)
	}
}

func (via *VIA) updateOutput() {
	// reflect register changes of this cycle on the pins
	via.writePortPins()

	via.out.PA = via.pa.pins & via.pa.ddr
	via.out.PADir = via.pa.ddr

	via.out.PB = via.pb.pins & via.pb.ddr
	via.out.PBDir = via.pb.ddr

	via.out.CA2 = via.pa.c2Out
	via.out.CA2Dir = via.ca2Output()

	via.out.CB2 = via.pb.c2Out
	via.out.CB2Dir = via.cb2Output()
}

// Tick advances the VIA by one clock cycle. Call it on the rising edge of
// ϕ2, when the CPU address, R/W and data lines are valid.
func (via *VIA) Tick(in VIAInput) VIAOutput {
	if !in.Reset {
		via.reset()
		via.out.Data = 0
		via.updateOutput()
		via.updateIRQ()
		return via.out
	}

	via.readPortPins(in)
	via.updateControl()
	via.tickT1()
	via.tickT2(in)
	via.updateIRQ()
	via.writePortPins()
	via.tickPipeline()

	if in.CS1 && !in.CS2 {
		if in.RS > 0x0f {
			panic(fmt.Sprintf("mos65xx: VIA register select out of range: %d", in.RS))
		}
		if in.RW {
			via.out.Data = via.readRegister(in.RS)
		} else {
			via.writeRegister(in.RS, in.Data)
		}
	}
	via.updateOutput()

	via.lastInput = in
	return via.out
}
