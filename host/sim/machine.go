// Package sim runs the boot sequencer on a simulated board with a virtual
// millisecond clock. Reset presses are scheduled ahead of time; a press
// aborts whatever is running, keeps the persistent cell and starts the
// next boot, the same way the reset button does on hardware.
package sim

import (
	"fmt"
	"sort"

	"dtboot/core"
)

// EndReason says how a simulated boot ended
type EndReason uint8

const (
	EndReset   EndReason = iota // a reset press interrupted it
	EndHorizon                  // the simulation ran out of time
)

func (e EndReason) String() string {
	if e == EndHorizon {
		return "horizon"
	}
	return "reset"
}

// Boot is the record of one simulated boot
type Boot struct {
	Index       int
	StartMs     uint32
	EndMs       uint32
	HwReset     bool
	CellAtStart uint32
	CellAtEnd   uint32
	End         EndReason

	Jumped   bool   // user program started
	JumpMs   uint32 // virtual time of the jump
	Halted   bool   // entered the halt loop
	FadeTick int    // halt loop ticks run
	MaxLevel uint8  // highest waiting level written
	MinLevel uint8  // lowest waiting level written

	ArmedOnMs   uint32 // when the armed indicator came on
	ArmedOffMs  uint32 // when it went off
	ArmedLit    bool   // armed indicator came on this boot
	CleanAtJump bool   // every indicator register at default when jumping

	Events []core.BootEvent
}

// Config describes one simulation run
type Config struct {
	Boot        core.Config
	InitialCell uint32
	FirstWake   bool     // first boot is a wake from sleep instead of a reset
	Presses     []uint32 // reset press times in virtual ms
	HorizonMs   uint32   // stop the simulation at this time
}

// Machine is a simulated board
type Machine struct {
	cfg     Config
	cell    uint32
	now     uint32
	presses []uint32
	periph  *peripherals
}

// abort signals, thrown through the sequencer by the simulated delay
type resetPressed struct{}
type horizonReached struct{}

// NewMachine validates the configuration and builds a machine
func NewMachine(cfg Config) (*Machine, error) {
	if err := cfg.Boot.Validate(); err != nil {
		return nil, fmt.Errorf("boot config: %w", err)
	}
	if cfg.HorizonMs == 0 {
		return nil, fmt.Errorf("horizon must be non-zero")
	}

	presses := append([]uint32(nil), cfg.Presses...)
	sort.Slice(presses, func(i, j int) bool { return presses[i] < presses[j] })

	return &Machine{
		cfg:     cfg,
		cell:    cfg.InitialCell,
		presses: presses,
	}, nil
}

// Cell returns the current persistent cell value
func (m *Machine) Cell() uint32 {
	return m.cell
}

// Now returns the virtual time in milliseconds
func (m *Machine) Now() uint32 {
	return m.now
}

// Run boots the machine repeatedly until the horizon is reached and
// returns one record per boot.
func (m *Machine) Run() ([]Boot, error) {
	var boots []Boot
	hwReset := !m.cfg.FirstWake

	for i := 0; ; i++ {
		rec, err := m.boot(i, hwReset)
		if err != nil {
			return boots, err
		}
		boots = append(boots, rec)
		if rec.End == EndHorizon {
			return boots, nil
		}
		hwReset = true
	}
}

// boot runs one boot until a press or the horizon aborts it
func (m *Machine) boot(index int, hwReset bool) (rec Boot, err error) {
	// RAM does not survive a reset; only the cell does
	core.ClearEvents()
	m.periph = newPeripherals()

	rec = Boot{
		Index:       index,
		StartMs:     m.now,
		HwReset:     hwReset,
		CellAtStart: m.cell,
		MinLevel:    255,
	}

	board := core.Board{
		Cell:      &simCell{m: m},
		Cause:     simProbe(hwReset),
		Indicator: &simIndicator{m: m, rec: &rec, inner: core.NewLEDIndicator(m.periph, m.periph, m.cfg.Boot)},
		Delay:     &simDelay{m: m, rec: &rec},
		Trap:      simTrap{},
		Entry:     &simEntry{m: m, rec: &rec},
	}

	seq, err := core.NewSequencer(m.cfg.Boot, board)
	if err != nil {
		return rec, fmt.Errorf("boot %d: %w", index, err)
	}

	defer func() {
		r := recover()
		switch r.(type) {
		case resetPressed:
			rec.End = EndReset
		case horizonReached:
			rec.End = EndHorizon
		case nil:
			err = fmt.Errorf("boot %d: sequencer returned", index)
		default:
			panic(r)
		}
		rec.Halted = seq.State() == core.StateDoubleTapHalt
		rec.EndMs = m.now
		rec.CellAtEnd = m.cell
		rec.Events = core.Events()
	}()

	seq.Run()
	return rec, nil
}

// advance moves the clock forward by ms, stopping early at a press or
// the horizon
func (m *Machine) advance(ms uint32) {
	target := uint64(m.now) + uint64(ms)
	horizon := uint64(m.cfg.HorizonMs)

	if len(m.presses) > 0 {
		press := uint64(m.presses[0])
		if press <= target && press <= horizon {
			m.presses = m.presses[1:]
			if press > uint64(m.now) {
				m.now = uint32(press)
			}
			panic(resetPressed{})
		}
	}
	if target >= horizon {
		m.now = m.cfg.HorizonMs
		panic(horizonReached{})
	}
	m.now = uint32(target)
}

// runUserProgram models the user program running until the next press
func (m *Machine) runUserProgram() {
	for {
		m.advance(m.cfg.HorizonMs)
	}
}
