package core

// Indicator fault op codes, recorded as the value of EvtIndicatorFault
const (
	OpConfigureOutput = 1
	OpSetPin          = 2
	OpConfigurePWM    = 3
	OpSetDuty         = 4
	OpDisablePWM      = 5
	OpResetPin        = 6
	OpWritePixel      = 7
)

// LEDIndicator drives the armed indicator as a plain digital output and
// the waiting indicator through hardware PWM.
//
// Pins are configured lazily on first use so nothing is touched before
// the sequencer has reset the trap vector. Driver errors are recorded and
// dropped: feedback must never change the boot outcome.
type LEDIndicator struct {
	gpio GPIODriver
	pwm  PWMDriver

	armedPin       GPIOPin
	armedActiveLow bool
	waitingPin     PWMPin
	periodNs       uint64

	armedReady   bool
	waitingReady bool
}

// NewLEDIndicator creates an indicator over the given drivers and pins
func NewLEDIndicator(gpio GPIODriver, pwm PWMDriver, cfg Config) *LEDIndicator {
	return &LEDIndicator{
		gpio:           gpio,
		pwm:            pwm,
		armedPin:       cfg.ArmedPin,
		armedActiveLow: cfg.ArmedActiveLow,
		waitingPin:     cfg.WaitingPin,
		periodNs:       cfg.PWMPeriodNs,
	}
}

// SetArmed switches the armed indicator on or off. The pin level is
// inverted for an active-low LED.
func (l *LEDIndicator) SetArmed(on bool) {
	if !l.armedReady {
		if err := l.gpio.ConfigureOutput(l.armedPin); err != nil {
			IndicatorFault(OpConfigureOutput, err)
			return
		}
		l.armedReady = true
	}
	if err := l.gpio.SetPin(l.armedPin, on != l.armedActiveLow); err != nil {
		IndicatorFault(OpSetPin, err)
	}
}

// SetWaitingLevel scales level (0-255) onto the PWM range and writes it
func (l *LEDIndicator) SetWaitingLevel(level uint8) {
	if !l.waitingReady {
		if _, err := l.pwm.ConfigureHardwarePWM(l.waitingPin, l.periodNs); err != nil {
			IndicatorFault(OpConfigurePWM, err)
			return
		}
		l.waitingReady = true
	}

	duty := (uint32(level) * l.pwm.GetMaxValue()) / 255
	if err := l.pwm.SetDutyCycle(l.waitingPin, PWMValue(duty)); err != nil {
		IndicatorFault(OpSetDuty, err)
	}
}

// ResetToDefault tears down the PWM and returns both pins to their
// power-on state. It runs unconditionally, whether or not the pins were
// used this boot, and keeps going past errors so one failing step does
// not leave the rest configured.
func (l *LEDIndicator) ResetToDefault() {
	if err := l.pwm.DisablePWM(l.waitingPin); err != nil {
		IndicatorFault(OpDisablePWM, err)
	}
	if err := l.gpio.ResetPin(l.armedPin); err != nil {
		IndicatorFault(OpResetPin, err)
	}
	l.armedReady = false
	l.waitingReady = false
}

// IndicatorFault records a failed indicator driver operation. Indicator
// implementations call it instead of returning the error.
func IndicatorFault(op uint32, err error) {
	RecordEvent(EvtIndicatorFault, stateNone, op)
	DebugPrintln("[BOOT] indicator op " + utoa(op) + " failed: " + err.Error())
}
