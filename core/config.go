package core

import "errors"

// Magic is the sentinel left in the persistent cell while the double-tap
// window is open. Nothing else may store this value in the same slot.
const Magic uint32 = 0xD027B007

// Timing defaults
const (
	DefaultWindowMs    = 500     // double-tap detection window
	DefaultFadeTickMs  = 2       // halt loop fade step; 256 steps per sawtooth
	DefaultPWMPeriodNs = 1000000 // 1 kHz indicator PWM
)

var (
	ErrMagicZero         = errors.New("magic value must not be zero")
	ErrNoWindow          = errors.New("double-tap window must be non-zero")
	ErrNoFadeTick        = errors.New("fade tick must be non-zero")
	ErrNoPWMPeriod       = errors.New("pwm period must be non-zero")
	ErrPinConflict       = errors.New("armed and waiting indicators share a pin")
	ErrMissingCapability = errors.New("board capability not configured")
)

// Config holds the compile-time parameters of the boot sequence.
// Target board files provide pins; the rest normally stays at defaults.
type Config struct {
	// Magic is the value that marks an open double-tap window
	Magic uint32

	// WindowMs is how long the armed window stays open after a single reset
	WindowMs uint32

	// FadeTickMs is the delay between halt loop brightness steps
	FadeTickMs uint32

	// ArmedPin drives the digital "window open" indicator
	ArmedPin GPIOPin

	// ArmedActiveLow is set when the armed LED lights with the pin low
	ArmedActiveLow bool

	// WaitingPin drives the PWM "halted" indicator
	WaitingPin PWMPin

	// PWMPeriodNs is the requested period of the waiting indicator PWM
	PWMPeriodNs uint64
}

// DefaultConfig returns the configuration used when a board overrides
// nothing but its pins.
func DefaultConfig(armed GPIOPin, waiting PWMPin) Config {
	return Config{
		Magic:       Magic,
		WindowMs:    DefaultWindowMs,
		FadeTickMs:  DefaultFadeTickMs,
		ArmedPin:    armed,
		WaitingPin:  waiting,
		PWMPeriodNs: DefaultPWMPeriodNs,
	}
}

// Validate reports the first problem with the configuration.
// A zero magic is rejected because the double-tap branch clears the
// cell to zero; that would make every following reset halt again.
func (c Config) Validate() error {
	switch {
	case c.Magic == 0:
		return ErrMagicZero
	case c.WindowMs == 0:
		return ErrNoWindow
	case c.FadeTickMs == 0:
		return ErrNoFadeTick
	case c.PWMPeriodNs == 0:
		return ErrNoPWMPeriod
	case uint32(c.ArmedPin) == uint32(c.WaitingPin):
		return ErrPinConflict
	}
	return nil
}
