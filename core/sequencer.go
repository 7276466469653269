// Double-tap boot sequencer
// Decides between running the user program and halting for a debugger,
// using a persistent cell to carry a flag from one boot to the next.
package core

// State is a step of the boot sequence
type State uint8

const (
	StateStart State = iota
	StateCauseCheck
	StateDoubleTapHalt
	StateArmAndWait
	StateSkipToRestore
	StateRestorePeripherals
	StateJumpToUser

	// stateNone tags events recorded outside the sequencer
	stateNone State = 0xFF
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateCauseCheck:
		return "cause-check"
	case StateDoubleTapHalt:
		return "double-tap-halt"
	case StateArmAndWait:
		return "arm-and-wait"
	case StateSkipToRestore:
		return "skip-to-restore"
	case StateRestorePeripherals:
		return "restore-peripherals"
	case StateJumpToUser:
		return "jump-to-user"
	default:
		return "unknown"
	}
}

// Outcome is the terminal decision of one boot
type Outcome uint8

const (
	OutcomeJump Outcome = iota // hand off to the user program
	OutcomeHalt                // fade forever until the next reset
)

func (o Outcome) String() string {
	if o == OutcomeHalt {
		return "halt"
	}
	return "jump"
}

// Sequencer runs the double-tap protocol once per boot.
type Sequencer struct {
	cfg   Config
	board Board

	state State
	level uint8 // current waiting indicator level in the halt loop
}

// NewSequencer checks the configuration and board and returns a sequencer
// ready to Run.
func NewSequencer(cfg Config, board Board) (*Sequencer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := board.validate(); err != nil {
		return nil, err
	}
	return &Sequencer{cfg: cfg, board: board, state: StateStart}, nil
}

// State returns the step the sequencer last entered
func (s *Sequencer) State() State {
	return s.state
}

// Level returns the last level written to the waiting indicator
func (s *Sequencer) Level() uint8 {
	return s.level
}

// Run executes the boot sequence and then either halts or jumps to the
// user program. On hardware neither path returns.
func (s *Sequencer) Run() {
	if s.Boot() == OutcomeHalt {
		s.Halt()
	}

	RecordEvent(EvtHandoff, s.state, 0)
	s.board.Entry.Jump()
}

// Boot performs every step up to the final control transfer and reports
// which transfer is due. For OutcomeHalt the cell has already been cleared
// and the waiting indicator is running at full level; for OutcomeJump the
// peripherals are back at defaults. Interrupts stay masked either way.
func (s *Sequencer) Boot() Outcome {
	s.state = StateStart
	RecordEvent(EvtStart, s.state, s.cfg.Magic)

	s.board.Trap.InstallDefault()
	disableInterrupts()

	s.state = StateCauseCheck
	hwReset := s.board.Cause.IsHardwareReset()
	RecordEvent(EvtCause, s.state, boolToU32(hwReset))

	if !hwReset {
		// Waking from sleep never passed through the window.
		s.state = StateSkipToRestore
	} else {
		// Single read; every write below happens after it.
		value := s.board.Cell.Read()
		RecordEvent(EvtCellRead, s.state, value)

		if value == s.cfg.Magic {
			s.enterHalt()
			return OutcomeHalt
		}
		s.armAndWait(value)
	}

	s.restorePeripherals()
	s.state = StateJumpToUser
	return OutcomeJump
}

// enterHalt consumes the double-tap flag and starts the waiting indicator.
func (s *Sequencer) enterHalt() {
	s.board.Cell.Write(0)
	s.state = StateDoubleTapHalt
	RecordEvent(EvtMagicSeen, s.state, 0)

	s.board.Indicator.SetArmed(false)
	s.level = 255
	s.board.Indicator.SetWaitingLevel(s.level)
}

// armAndWait opens the double-tap window. A reset during the delay leaves
// the magic in the cell for the next boot to find.
func (s *Sequencer) armAndWait(prior uint32) {
	s.state = StateArmAndWait
	s.board.Cell.Write(s.cfg.Magic)
	RecordEvent(EvtArmed, s.state, prior)

	s.board.Indicator.SetArmed(true)
	s.board.Delay.DelayMs(s.cfg.WindowMs)
	s.board.Indicator.SetArmed(false)

	s.board.Cell.Write(prior)
	RecordEvent(EvtRestored, s.state, prior)
}

func (s *Sequencer) restorePeripherals() {
	s.state = StateRestorePeripherals
	s.board.Indicator.ResetToDefault()
	RecordEvent(EvtPeriphReset, s.state, 0)
}

// Halt fades the waiting indicator forever. The level steps down by one
// per tick and wraps from 0 to 255, so the processor visibly keeps
// executing while a debugger attaches. Only a reset leaves this loop.
func (s *Sequencer) Halt() {
	s.state = StateDoubleTapHalt
	for {
		s.board.Delay.DelayMs(s.cfg.FadeTickMs)
		s.level--
		s.board.Indicator.SetWaitingLevel(s.level)
	}
}

func boolToU32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
