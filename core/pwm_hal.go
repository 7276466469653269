package core

// PWMPin identifies a hardware pin capable of PWM output
type PWMPin uint32

// PWMValue is the duty cycle value (0 to GetMaxValue())
type PWMValue uint32

// PWMDriver is the abstract PWM interface that core code uses.
// Platform-specific implementations handle actual hardware control.
type PWMDriver interface {
	// ConfigureHardwarePWM routes a pin to its PWM peripheral and starts
	// the counter with the requested period in nanoseconds.
	// Returns the actual period used (hardware may round it).
	ConfigureHardwarePWM(pin PWMPin, periodNs uint64) (uint64, error)

	// SetDutyCycle sets the PWM duty cycle for a pin
	// value: 0 (fully off) to GetMaxValue() (fully on)
	SetDutyCycle(pin PWMPin, value PWMValue) error

	// GetMaxValue returns the maximum PWM value (e.g., 255 for 8-bit)
	GetMaxValue() uint32

	// DisablePWM stops the PWM peripheral serving the pin, clears its
	// counter and compare registers and returns the pin to its power-on
	// GPIO state.
	DisablePWM(pin PWMPin) error
}

// PrescaleForPeriod picks the smallest power-of-two prescale, up to
// maxScale, at which a counter of steps ticks clocked at clockHz spans at
// least periodNs. It returns the scale and the period that scale gives.
// The PWM period tracks whatever clock the runtime left the core on.
func PrescaleForPeriod(clockHz uint32, steps uint32, maxScale uint32, periodNs uint64) (uint32, uint64) {
	var scale uint32
	for scale < maxScale && periodAt(clockHz, steps, scale) < periodNs {
		scale++
	}
	return scale, periodAt(clockHz, steps, scale)
}

func periodAt(clockHz uint32, steps uint32, scale uint32) uint64 {
	return (uint64(steps) << scale) * 1000000000 / uint64(clockHz)
}
