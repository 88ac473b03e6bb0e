package mos65xx

// Frequency scale
const (
	Hz  = 1
	KHz = 1000 * Hz
	MHz = 1000 * KHz
)

// Model of a MOS Technology 65xx (or compatible) chip
type Model struct {
	Name      string
	Frequency float64 // Typical clock frequency in Hz
}

// Models
var (
	MOS6502 = Model{
		Name:      "MOS Technology 6502",
		Frequency: 1 * MHz,
	}

	MOS6520 = Model{
		Name:      "MOS Technology 6520",
		Frequency: 1 * MHz,
	}

	MOS6522 = Model{
		Name:      "MOS Technology 6522",
		Frequency: 1 * MHz,
	}
)

func (m Model) String() string {
	return m.Name
}
