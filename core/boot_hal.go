package core

// PersistentCell is a 32-bit storage word that keeps its value across a
// warm reset but not across power loss.
type PersistentCell interface {
	Read() uint32
	Write(value uint32)
}

// ResetProbe reports how the current boot was entered.
type ResetProbe interface {
	// IsHardwareReset is true when the boot came from the reset line
	// (or power-on), false when resuming from a low-power state.
	IsHardwareReset() bool
}

// Delayer blocks the caller for approximately ms milliseconds.
// There is no cancellation; the only way out early is a reset.
type Delayer interface {
	DelayMs(ms uint32)
}

// TrapVector puts the CPU's exception vector back to its default,
// halt-on-exception handler.
type TrapVector interface {
	InstallDefault()
}

// Entry transfers control to the user program. Hardware implementations
// never return.
type Entry interface {
	Jump()
}

// Indicator is the operator-facing feedback for the boot protocol.
type Indicator interface {
	// SetArmed lights the indicator for the double-tap window.
	SetArmed(on bool)

	// SetWaitingLevel drives the brightness of the halted indicator.
	SetWaitingLevel(level uint8)

	// ResetToDefault returns everything the indicator ever touched to its
	// power-on value.
	ResetToDefault()
}

// Board bundles the hardware capabilities the boot sequencer needs.
// Targets fill one in at startup; tests fill one in with fakes.
type Board struct {
	Cell      PersistentCell
	Cause     ResetProbe
	Indicator Indicator
	Delay     Delayer
	Trap      TrapVector
	Entry     Entry
}

// validate checks that every capability is present.
func (b Board) validate() error {
	if b.Cell == nil || b.Cause == nil || b.Indicator == nil ||
		b.Delay == nil || b.Trap == nil || b.Entry == nil {
		return ErrMissingCapability
	}
	return nil
}
