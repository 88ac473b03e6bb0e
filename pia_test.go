package mos65xx

import "testing"

// piaTester drives a PIA through its pin bundle; every register access is
// a ϕ2-high tick followed by a ϕ2-low tick, the way the bus clock runs.
type piaTester struct {
	pia *PIA
	in  PIAInput
	out PIAOutput
}

func newPIATester() *piaTester {
	pt := &piaTester{pia: NewPIA()}
	pt.out = pt.pia.Tick(pt.in) // one cycle in reset to settle the outputs
	pt.in.Reset = true
	return pt
}

func (pt *piaTester) tickHigh() PIAOutput {
	pt.in.Phi2 = true
	pt.out = pt.pia.Tick(pt.in)
	return pt.out
}

func (pt *piaTester) tickLow() PIAOutput {
	pt.in.Phi2 = false
	pt.out = pt.pia.Tick(pt.in)
	return pt.out
}

func (pt *piaTester) cycle() PIAOutput {
	pt.tickHigh()
	return pt.tickLow()
}

func (pt *piaTester) write(reg, value uint8) {
	pt.in.CS0 = true
	pt.in.CS1 = true
	pt.in.CS2 = false
	pt.in.RW = false
	pt.in.RS = reg
	pt.in.Data = value
	pt.cycle()
	pt.deselect()
}

func (pt *piaTester) read(reg uint8) uint8 {
	pt.in.CS0 = true
	pt.in.CS1 = true
	pt.in.CS2 = false
	pt.in.RW = true
	pt.in.RS = reg
	data := pt.tickHigh().Data
	pt.tickLow()
	pt.deselect()
	return data
}

func (pt *piaTester) deselect() {
	pt.in.CS0 = false
	pt.in.CS1 = false
	pt.in.CS2 = true
	pt.in.RW = true
}

func TestPIARegisterReadWrite(t *testing.T) {
	pt := newPIATester()

	// with CR bit 2 clear, RA/RB address the data direction registers
	for _, reg := range []uint8{RegPIARA, RegPIARB} {
		pt.write(reg, 0x00)
		if got := pt.read(reg); got != 0x00 {
			t.Fatalf("register %d = $%02X, expected $00", reg, got)
		}
		pt.write(reg, 0xff)
		if got := pt.read(reg); got != 0xff {
			t.Fatalf("register %d = $%02X, expected $FF", reg, got)
		}
	}

	// the two flag bits of the control registers cannot be written
	for _, reg := range []uint8{RegPIACRA, RegPIACRB} {
		pt.write(reg, 0x00)
		if got := pt.read(reg); got != 0x00 {
			t.Fatalf("control register %d = $%02X, expected $00", reg, got)
		}
		pt.write(reg, 0xff)
		if got := pt.read(reg); got != 0x3f {
			t.Fatalf("control register %d = $%02X, expected $3F", reg, got)
		}
	}
}

func TestPIAPortDirection(t *testing.T) {
	pt := newPIATester()

	pt.cycle()
	if pt.out.PADir != 0 || pt.out.PA != 0 || pt.out.PBDir != 0 || pt.out.PB != 0 {
		t.Fatalf("expected all lines as inputs after reset, got %+v", pt.out)
	}

	// write the output registers; nothing drives yet
	pt.write(RegPIACRA, CRORSelect)
	pt.write(RegPIARA, 0xaa)
	if pt.out.PA != 0 {
		t.Fatalf("port A drove input pins: $%02X", pt.out.PA)
	}
	pt.write(RegPIACRB, CRORSelect)
	pt.write(RegPIARB, 0x55)
	if pt.out.PB != 0 {
		t.Fatalf("port B drove input pins: $%02X", pt.out.PB)
	}

	// switch RA/RB to the direction registers and open the lower/upper
	// halves
	pt.write(RegPIACRA, 0x00)
	pt.write(RegPIARA, 0x0f)
	if pt.out.PADir != 0x0f || pt.out.PA != 0x0a {
		t.Fatalf("port A: dir $%02X pins $%02X", pt.out.PADir, pt.out.PA)
	}
	pt.write(RegPIACRB, 0x00)
	pt.write(RegPIARB, 0xf0)
	if pt.out.PBDir != 0xf0 || pt.out.PB != 0x50 {
		t.Fatalf("port B: dir $%02X pins $%02X", pt.out.PBDir, pt.out.PB)
	}
}

func TestPIACA1FallingIRQ(t *testing.T) {
	pt := newPIATester()
	pt.in.CA1 = true
	pt.cycle()

	pt.write(RegPIACRA, CRORSelect|CRIRQ1Enable) // falling edge is the default
	if !pt.out.IRQA {
		t.Fatal("IRQA asserted without a transition")
	}

	pt.in.CA1 = false
	pt.cycle()
	if pt.out.IRQA {
		t.Fatal("IRQA not asserted on the falling edge")
	}
	if !pt.out.IRQB {
		t.Fatal("IRQB asserted by a CA1 transition")
	}

	// reading the output register clears the flags
	pt.read(RegPIARA)
	if !pt.out.IRQA {
		t.Fatal("IRQA still asserted after reading ORA")
	}
}

func TestPIACA1RisingIRQ(t *testing.T) {
	pt := newPIATester()

	pt.write(RegPIACRA, CRORSelect|CRIRQ1Enable|CRIRQ1Transition)
	pt.in.CA1 = false
	pt.cycle()

	pt.in.CA1 = true
	pt.tickHigh()
	if pt.out.IRQA {
		t.Fatal("IRQA not asserted after the rising edge")
	}
	pt.tickLow()

	pt.read(RegPIARA)
	if !pt.out.IRQA {
		t.Fatal("IRQA still asserted after reading ORA")
	}
}

func TestPIACA2InputIRQ(t *testing.T) {
	pt := newPIATester()
	pt.in.CA2 = true
	pt.cycle()

	// CA2 input, falling edge, IRQ2 enabled
	pt.write(RegPIACRA, CRORSelect|CRIRQ2Enable)
	pt.in.CA2 = false
	pt.cycle()
	if pt.out.IRQA {
		t.Fatal("IRQA not asserted on the CA2 falling edge")
	}
	if got := pt.read(RegPIACRA); got&CRIRQ2Flag == 0 {
		t.Fatalf("IRQ2 flag not set: CRA = $%02X", got)
	}
	// reading the control register does not clear the flag, reading the
	// output register does
	if pt.out.IRQA {
		t.Fatal("IRQA released by the control register read")
	}
	pt.read(RegPIARA)
	if !pt.out.IRQA {
		t.Fatal("IRQA still asserted after reading ORA")
	}
}

func TestPIAIRQRequiresEnable(t *testing.T) {
	pt := newPIATester()
	pt.in.CB1 = true
	pt.cycle()

	// flag set but not enabled: the line stays high
	pt.write(RegPIACRB, CRORSelect)
	pt.in.CB1 = false
	pt.cycle()
	if got := pt.read(RegPIACRB); got&CRIRQ1Flag == 0 {
		t.Fatalf("IRQ1 flag not set: CRB = $%02X", got)
	}
	if !pt.out.IRQB {
		t.Fatal("IRQB asserted without the enable bit")
	}

	// writing the control register does not clear the flag; enabling
	// afterwards asserts the line
	pt.write(RegPIACRB, CRORSelect|CRIRQ1Enable)
	pt.cycle()
	if pt.out.IRQB {
		t.Fatal("IRQB not asserted after enabling a pending flag")
	}
}

func TestPIAReadStrobePhi2Restore(t *testing.T) {
	pt := newPIATester()

	// CA2 output, automatic strobe, restore on the next ϕ2 edge
	pt.write(RegPIACRA, CRORSelect|CRC2Mode|CRC2Restore)
	if !pt.out.CA2Dir || !pt.out.CA2 {
		t.Fatalf("expected CA2 as high output, got %+v", pt.out)
	}

	// reading ORA arms the strobe; CA2 is low for one full clock
	pt.in.CS0 = true
	pt.in.CS1 = true
	pt.in.CS2 = false
	pt.in.RW = true
	pt.in.RS = RegPIARA
	pt.tickHigh()
	if !pt.out.CA2 {
		t.Fatal("CA2 fell before the ϕ2 edge")
	}
	pt.tickLow()
	if pt.out.CA2 {
		t.Fatal("CA2 not lowered on the ϕ2 edge after the read")
	}
	pt.deselect()

	pt.tickHigh()
	if pt.out.CA2 {
		t.Fatal("CA2 restored too early")
	}
	pt.tickLow()
	if !pt.out.CA2 {
		t.Fatal("CA2 not restored on the next ϕ2 edge")
	}
}

func TestPIAReadStrobeCA1Restore(t *testing.T) {
	pt := newPIATester()
	pt.in.CA1 = true
	pt.cycle()

	// CA2 output, automatic strobe, restore on the next CA1 transition
	// (falling, per the transition select)
	pt.write(RegPIACRA, CRORSelect|CRC2Mode)
	pt.read(RegPIARA)
	if pt.out.CA2 {
		t.Fatal("CA2 not lowered after the read")
	}

	// stays low across clock edges
	pt.cycle()
	pt.cycle()
	if pt.out.CA2 {
		t.Fatal("CA2 restored without a CA1 transition")
	}

	// the active CA1 transition restores it
	pt.in.CA1 = false
	pt.cycle()
	if !pt.out.CA2 {
		t.Fatal("CA2 not restored by the CA1 transition")
	}
}

func TestPIAWriteStrobeCB2(t *testing.T) {
	pt := newPIATester()

	// CB2 output, automatic strobe, restore on the next ϕ2 edge; the
	// strobe triggers on a write of ORB
	pt.write(RegPIACRB, CRORSelect|CRC2Mode|CRC2Restore)
	if !pt.out.CB2 {
		t.Fatal("CB2 not high after configuration")
	}

	pt.in.CS0 = true
	pt.in.CS1 = true
	pt.in.CS2 = false
	pt.in.RW = false
	pt.in.RS = RegPIARB
	pt.in.Data = 0x5a
	pt.tickHigh()
	pt.tickLow()
	pt.deselect()
	if pt.out.CB2 {
		t.Fatal("CB2 not lowered after the ORB write")
	}
	pt.cycle()
	if !pt.out.CB2 {
		t.Fatal("CB2 not restored on the next ϕ2 edge")
	}
}

func TestPIAManualC2(t *testing.T) {
	pt := newPIATester()

	pt.write(RegPIACRB, CRC2Mode|CRC2Manual) // restore bit low: CB2 low
	if pt.out.CB2 {
		t.Fatal("CB2 not driven low under manual control")
	}
	pt.write(RegPIACRB, CRC2Mode|CRC2Manual|CRC2Restore)
	if !pt.out.CB2 {
		t.Fatal("CB2 not driven high under manual control")
	}
}

func TestPIAReset(t *testing.T) {
	pt := newPIATester()

	pt.write(RegPIACRA, CRORSelect|CRIRQ1Enable)
	pt.write(RegPIARA, 0xff)

	pt.in.Reset = false
	pt.tickLow()
	if pt.out.PADir != 0 || !pt.out.IRQA || !pt.out.IRQB {
		t.Fatalf("reset did not clear the outputs: %+v", pt.out)
	}
	pt.in.Reset = true

	if got := pt.read(RegPIACRA); got != 0 {
		t.Fatalf("CRA = $%02X after reset, expected 0", got)
	}
}

func TestPIARegisterSelectRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for RS out of range")
		}
	}()
	pt := newPIATester()
	pt.in.CS0 = true
	pt.in.CS1 = true
	pt.in.CS2 = false
	pt.in.RS = 4
	pt.tickHigh()
}
