package mos65xx

import "testing"

// viaTester drives a VIA through its pin bundle the way a bus master
// would: one tick per register access, chip selects released in between.
type viaTester struct {
	via *VIA
	in  VIAInput
	out VIAOutput
}

func newVIATester() *viaTester {
	vt := &viaTester{via: NewVIA()}
	vt.out = vt.via.Tick(vt.in) // one cycle in reset to settle the outputs
	vt.in.Reset = true
	return vt
}

func (vt *viaTester) tick() VIAOutput {
	vt.out = vt.via.Tick(vt.in)
	return vt.out
}

func (vt *viaTester) write(reg, value uint8) {
	vt.in.CS1 = true
	vt.in.CS2 = false
	vt.in.RW = false
	vt.in.RS = reg
	vt.in.Data = value
	vt.tick()
	vt.in.CS1 = false
	vt.in.CS2 = true
	vt.in.RW = true
}

func (vt *viaTester) read(reg uint8) uint8 {
	vt.in.CS1 = true
	vt.in.CS2 = false
	vt.in.RW = true
	vt.in.RS = reg
	vt.tick()
	vt.in.CS1 = false
	vt.in.CS2 = true
	return vt.out.Data
}

func TestVIAPortDirection(t *testing.T) {
	vt := newVIATester()

	vt.tick()
	if vt.out.PADir != 0 || vt.out.PA != 0 || vt.out.PBDir != 0 || vt.out.PB != 0 {
		t.Fatalf("expected all lines as inputs after reset, got %+v", vt.out)
	}

	// the output registers do not drive pins that are inputs
	vt.write(RegRA, 0xaa)
	if vt.out.PA != 0 {
		t.Fatalf("port A drove input pins: $%02X", vt.out.PA)
	}
	vt.write(RegRB, 0x55)
	if vt.out.PB != 0 {
		t.Fatalf("port B drove input pins: $%02X", vt.out.PB)
	}

	vt.write(RegDDRA, 0x0f)
	if vt.out.PADir != 0x0f || vt.out.PA != 0x0a {
		t.Fatalf("port A: dir $%02X pins $%02X", vt.out.PADir, vt.out.PA)
	}
	vt.write(RegDDRB, 0xf0)
	if vt.out.PBDir != 0xf0 || vt.out.PB != 0x50 {
		t.Fatalf("port B: dir $%02X pins $%02X", vt.out.PBDir, vt.out.PB)
	}
}

func TestVIAPortLatch(t *testing.T) {
	vt := newVIATester()

	// without latching a port read returns the live pins
	for i := 0; i <= 0xff; i++ {
		vt.in.PA = uint8(i)
		if got := vt.read(RegRA); got != uint8(i) {
			t.Fatalf("port A read $%02X, expected $%02X", got, i)
		}
		vt.in.PB = uint8(i)
		if got := vt.read(RegRB); got != uint8(i) {
			t.Fatalf("port B read $%02X, expected $%02X", got, i)
		}
	}

	// enable latching on both ports; the input register freezes until an
	// active C1 edge
	vt.write(RegACR, 0x03)
	vt.in.PA = 0xaa
	vt.in.PB = 0x55
	for i := 0; i < 10; i++ {
		if got := vt.read(RegRA); got != 0xff {
			t.Fatalf("latched port A read $%02X, expected $FF", got)
		}
		if got := vt.read(RegRB); got != 0xff {
			t.Fatalf("latched port B read $%02X, expected $FF", got)
		}
	}

	// an inactive (rising) edge does not latch
	vt.in.CA1 = true
	vt.in.CB1 = true
	vt.tick()
	if got := vt.read(RegRA); got != 0xff {
		t.Fatalf("port A latched on the wrong edge: $%02X", got)
	}

	// the falling edge latches the current pins
	vt.in.CA1 = false
	vt.in.CB1 = false
	vt.tick()
	vt.in.PA = 0xde
	vt.in.PB = 0xad
	if got := vt.read(RegRA); got != 0xaa {
		t.Fatalf("port A read $%02X, expected latched $AA", got)
	}
	if got := vt.read(RegRB); got != 0x55 {
		t.Fatalf("port B read $%02X, expected latched $55", got)
	}

	// latch on a rising edge instead
	vt.write(RegPCR, 0x11)
	vt.in.PA = 0x11
	vt.in.PB = 0x22
	vt.in.CA1 = true
	vt.in.CB1 = true
	vt.tick()
	vt.in.PA = 0xbe
	vt.in.PB = 0xef
	if got := vt.read(RegRA); got != 0x11 {
		t.Fatalf("port A read $%02X, expected latched $11", got)
	}
	if got := vt.read(RegRB); got != 0x22 {
		t.Fatalf("port B read $%02X, expected latched $22", got)
	}
}

func TestVIATimer2OneShot(t *testing.T) {
	vt := newVIATester()

	vt.write(RegIER, 0xa0) // enable T2
	vt.write(RegT2CL, 0)
	vt.write(RegT2CH, 1) // counter = $0100, timer runs

	for i := 255; i >= 0; i-- {
		if got := vt.read(RegT2CL); got != uint8(i) {
			t.Fatalf("T2CL read $%02X, expected $%02X", got, i)
		}
		if !vt.out.IRQ {
			t.Fatalf("IRQ asserted before underflow, counter $%02X", i)
		}
	}

	// underflow: the flag is raised now, the IRQ line follows one cycle
	// later
	vt.tick()
	if !vt.out.IRQ {
		t.Fatal("IRQ asserted in the underflow cycle")
	}
	vt.tick()
	if vt.out.IRQ {
		t.Fatal("IRQ not asserted after underflow")
	}

	// T1 has been counting since power-on; its one-shot underflow left the
	// T1 flag set as well
	if got := vt.read(RegIFR); got != 0xe0 {
		t.Fatalf("IFR = $%02X, expected $E0", got)
	}

	// T2 does not reload: the counter keeps running down from $FFFF
	if got := vt.read(RegT2CH); got != 0xff {
		t.Fatalf("T2CH = $%02X, expected $FF", got)
	}
	if got := vt.read(RegT2CL); got != 0xfb {
		t.Fatalf("T2CL = $%02X, expected $FB", got)
	}

	// reading T2CL cleared the interrupt
	vt.tick()
	if !vt.out.IRQ {
		t.Fatal("IRQ still asserted after reading T2CL")
	}

	// the T2 flag stays clear after the read
	if got := vt.read(RegIFR); got&IRQT2 != 0 {
		t.Fatalf("IFR = $%02X, T2 flag set again", got)
	}
}

func TestVIATimer2PulseCounting(t *testing.T) {
	vt := newVIATester()

	vt.in.PB = 0x40 // PB6 high
	vt.write(RegIER, 0xa0)
	vt.write(RegACR, 0x20) // T2 counts PB6 pulses

	const pulses = 10
	vt.write(RegT2CL, pulses)
	vt.write(RegT2CH, 0)

	for i := pulses; i >= 0; i-- {
		if got := vt.read(RegT2CL); got != uint8(i) {
			t.Fatalf("T2CL read $%02X, expected $%02X", got, i)
		}
		if !vt.out.IRQ {
			t.Fatal("IRQ asserted before the count ran out")
		}
		vt.in.PB = 0x00
		vt.tick()
		vt.in.PB = 0x40
		vt.tick()
	}

	// the last pulse took the counter below zero
	if vt.out.IRQ {
		t.Fatal("IRQ not asserted after counting down")
	}

	// restart by writing T2CH
	vt.write(RegT2CH, 0)
	vt.tick()
	if !vt.out.IRQ {
		t.Fatal("IRQ still asserted after restarting T2")
	}
}

func TestVIATimer1ContinuousIRQ(t *testing.T) {
	vt := newVIATester()

	vt.write(RegIER, 0xc0) // enable T1
	vt.write(RegACR, 0x40) // continuous mode
	vt.write(RegT1CL, 0x05)
	vt.write(RegT1CH, 0x00) // counter = 5, timer runs

	// the interrupt asserts exactly 7 ticks after the T1CH write
	for i := 0; i < 6; i++ {
		vt.tick()
		if !vt.out.IRQ {
			t.Fatalf("IRQ asserted early, %d ticks after start", i+1)
		}
	}
	vt.tick()
	if vt.out.IRQ {
		t.Fatal("IRQ not asserted 7 ticks after start")
	}

	// reading T1CL acknowledges; the line clears on the next tick
	vt.read(RegT1CL)
	vt.tick()
	if !vt.out.IRQ {
		t.Fatal("IRQ still asserted after reading T1CL")
	}

	// the counter reloaded from the latch: the next interrupt comes one
	// full period (N+2 ticks) after the previous one
	for i := 0; i < 4; i++ {
		vt.tick()
		if !vt.out.IRQ {
			t.Fatalf("IRQ asserted early in the second period")
		}
	}
	vt.tick()
	if vt.out.IRQ {
		t.Fatal("IRQ not asserted again after one full period")
	}
}

func TestVIATimer1PB7Output(t *testing.T) {
	vt := newVIATester()

	vt.write(RegDDRB, 0x80)
	vt.write(RegACR, 0xc0) // continuous mode, T1 drives PB7
	vt.write(RegT1CL, 0x02)
	vt.write(RegT1CH, 0x00)

	// wait for the first toggle
	var ticks int
	for vt.out.PB&0x80 == 0 {
		if ticks++; ticks > 10 {
			t.Fatal("PB7 never toggled")
		}
		vt.tick()
	}

	// a full period later it toggles back
	var period int
	for vt.out.PB&0x80 != 0 {
		if period++; period > 10 {
			t.Fatal("PB7 stuck high")
		}
		vt.tick()
	}
	if period != 4 { // N+2 with N=2
		t.Fatalf("PB7 period = %d ticks, expected 4", period)
	}
}

func TestVIAInterruptEnable(t *testing.T) {
	vt := newVIATester()

	vt.write(RegIER, 0xa0)
	if got := vt.read(RegIER); got != 0xa0 {
		t.Fatalf("IER = $%02X, expected $A0", got)
	}

	// bit 7 clear disables the named bits
	vt.write(RegIER, 0x20)
	if got := vt.read(RegIER); got != 0x80 {
		t.Fatalf("IER = $%02X, expected $80", got)
	}
}

func TestVIAInterruptFlags(t *testing.T) {
	vt := newVIATester()

	// CA1 falling edge sets the flag even with interrupts disabled; both
	// timers have underflowed once since power-on and left their flags set
	vt.in.CA1 = true
	vt.tick()
	vt.in.CA1 = false
	vt.tick()
	if got := vt.read(RegIFR); got != IRQT1|IRQT2|IRQCA1 {
		t.Fatalf("IFR = $%02X, expected $%02X", got, IRQT1|IRQT2|IRQCA1)
	}
	if !vt.out.IRQ {
		t.Fatal("IRQ asserted with all sources disabled")
	}

	// writing a set bit clears the flag
	vt.write(RegIFR, IRQCA1)
	if got := vt.read(RegIFR); got != IRQT1|IRQT2 {
		t.Fatalf("IFR = $%02X after clearing, expected $%02X", got, IRQT1|IRQT2)
	}

	// bit 7 set clears everything
	vt.in.CA1 = true
	vt.tick()
	vt.in.CA1 = false
	vt.tick()
	vt.write(RegIFR, 0x80)
	if got := vt.read(RegIFR); got != 0 {
		t.Fatalf("IFR = $%02X after clear-all, expected 0", got)
	}
}

func TestVIACA2Handshake(t *testing.T) {
	vt := newVIATester()

	vt.write(RegPCR, 0x08) // CA2 output, automatic handshake
	if !vt.out.CA2Dir {
		t.Fatal("CA2 not configured as output")
	}

	// reading port A lowers CA2
	vt.read(RegRA)
	if vt.out.CA2 {
		t.Fatal("CA2 not lowered by the port A read")
	}

	// the next active CA1 transition completes the handshake
	vt.in.CA1 = true
	vt.tick()
	vt.in.CA1 = false
	vt.tick()
	if !vt.out.CA2 {
		t.Fatal("CA2 not restored by the CA1 transition")
	}
}

func TestVIACA2FixedOutput(t *testing.T) {
	vt := newVIATester()

	vt.write(RegPCR, 0x0e) // CA2 fixed output, high
	if !vt.out.CA2 || !vt.out.CA2Dir {
		t.Fatalf("expected CA2 driven high, got %+v", vt.out)
	}
	vt.write(RegPCR, 0x0c) // CA2 fixed output, low
	if vt.out.CA2 {
		t.Fatal("expected CA2 driven low")
	}
}

func TestVIAPortAReadWithoutHandshake(t *testing.T) {
	vt := newVIATester()

	vt.write(RegPCR, 0x08) // CA2 output, automatic handshake

	// raise the CA1 flag
	vt.in.CA1 = true
	vt.tick()
	vt.in.CA1 = false
	vt.tick()

	// register 15 reads the port without touching CA2 or the flags
	vt.read(RegRANoHS)
	if !vt.out.CA2 {
		t.Fatal("no-handshake read lowered CA2")
	}
	if got := vt.read(RegIFR); got&IRQCA1 == 0 {
		t.Fatal("no-handshake read cleared the CA1 flag")
	}

	// the handshake read clears both
	vt.read(RegRA)
	if vt.out.CA2 {
		t.Fatal("handshake read did not lower CA2")
	}
	if got := vt.read(RegIFR); got&IRQCA1 != 0 {
		t.Fatal("handshake read did not clear the CA1 flag")
	}
}

func TestVIAReset(t *testing.T) {
	vt := newVIATester()

	vt.write(RegDDRA, 0xff)
	vt.write(RegT1CL, 0x05)
	vt.write(RegIER, 0xc0)

	vt.in.Reset = false
	vt.tick()
	if vt.out.PADir != 0 || !vt.out.IRQ {
		t.Fatalf("reset did not clear the outputs: %+v", vt.out)
	}
	vt.in.Reset = true

	if got := vt.read(RegDDRA); got != 0 {
		t.Fatalf("DDRA = $%02X after reset, expected 0", got)
	}
	if got := vt.read(RegIER); got != 0x80 {
		t.Fatalf("IER = $%02X after reset, expected $80", got)
	}
	// the timer latches survive the reset
	if got := vt.read(RegT1LL); got != 0x05 {
		t.Fatalf("T1LL = $%02X after reset, expected $05", got)
	}
}

func TestVIARegisterSelectRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for RS out of range")
		}
	}()
	vt := newVIATester()
	vt.in.CS1 = true
	vt.in.CS2 = false
	vt.in.RS = 16
	vt.tick()
}
