//go:build rp2040

package main

import (
	"machine"
	"runtime/volatile"
	"unsafe"

	"dtboot/core"
)

// PWM_MAX is the top of the duty range the core works in
const PWM_MAX = 255

// RP2040 PWM slice registers, 0x14 bytes per slice
const (
	pwmBase       = 0x40050000
	pwmSliceSize  = 0x14
	pwmDivReset   = 0x010 // integer divider 1
	pwmTopReset   = 0xFFFF
	pwmSliceCount = 8
)

// pwmPeripheral is an interface for PWM hardware peripherals
// This abstracts over TinyGo's unexported *pwmGroup type
type pwmPeripheral interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
}

// RP2040PWMDriver implements the PWMDriver interface for RP2040
type RP2040PWMDriver struct {
	gpio *RPGPIODriver

	// Track pin to channel mapping
	// Key: pin number, Value: PWM channel
	channels map[uint32]uint8

	// Track PWM peripherals for each slice
	// Key: slice number (0-7), Value: PWM peripheral
	peripherals map[uint8]pwmPeripheral
}

// NewRP2040PWMDriver creates a new RP2040 PWM driver. Disabled pins are
// handed back to gpio.
func NewRP2040PWMDriver(gpio *RPGPIODriver) *RP2040PWMDriver {
	return &RP2040PWMDriver{
		gpio:        gpio,
		channels:    make(map[uint32]uint8),
		peripherals: make(map[uint8]pwmPeripheral),
	}
}

// GetMaxValue returns the maximum PWM value (255)
func (d *RP2040PWMDriver) GetMaxValue() uint32 {
	return PWM_MAX
}

// ConfigureHardwarePWM configures a pin for hardware PWM output
// This uses TinyGo's machine.PWM API for the setup
func (d *RP2040PWMDriver) ConfigureHardwarePWM(pin core.PWMPin, periodNs uint64) (uint64, error) {
	pinNum := uint32(pin)

	// RP2040: GPIO pin N maps to:
	//   Slice: (N >> 1) & 0x7  (divide by 2, mod 8)
	//   Channel: N & 1          (even=A, odd=B)
	sliceNum := sliceOf(pinNum)

	pwm, exists := d.peripherals[sliceNum]
	if !exists {
		pwm = getPWMPeripheral(sliceNum)
		d.peripherals[sliceNum] = pwm
	}

	if err := pwm.Configure(machine.PWMConfig{Period: periodNs}); err != nil {
		return 0, err
	}

	channel, err := pwm.Channel(machine.Pin(pinNum))
	if err != nil {
		return 0, err
	}
	d.channels[pinNum] = channel

	return periodNs, nil
}

// SetDutyCycle sets the PWM duty cycle for a pin
// value: 0 (fully off) to 255 (fully on)
func (d *RP2040PWMDriver) SetDutyCycle(pin core.PWMPin, value core.PWMValue) error {
	pinNum := uint32(pin)

	channel, exists := d.channels[pinNum]
	if !exists {
		// Pin not configured
		return nil
	}
	pwm := d.peripherals[sliceOf(pinNum)]

	// Scale 0-255 onto 0-Top()
	top := pwm.Top()
	dutyCycle := (uint32(value) * top) / PWM_MAX
	pwm.Set(channel, dutyCycle)

	return nil
}

// DisablePWM stops the slice, puts its registers back to reset values
// and returns the pin to GPIO defaults. TinyGo has no API for this, so
// the slice registers are written directly.
func (d *RP2040PWMDriver) DisablePWM(pin core.PWMPin) error {
	pinNum := uint32(pin)
	slice := pwmBase + pwmSliceSize*uintptr(sliceOf(pinNum))

	(*volatile.Register32)(unsafe.Pointer(slice + 0x00)).Set(0) // CSR: disable
	(*volatile.Register32)(unsafe.Pointer(slice + 0x04)).Set(pwmDivReset)
	(*volatile.Register32)(unsafe.Pointer(slice + 0x08)).Set(0) // CTR
	(*volatile.Register32)(unsafe.Pointer(slice + 0x0C)).Set(0) // CC
	(*volatile.Register32)(unsafe.Pointer(slice + 0x10)).Set(pwmTopReset)

	delete(d.channels, pinNum)
	return d.gpio.ResetPin(core.GPIOPin(pin))
}

func sliceOf(pin uint32) uint8 {
	return uint8((pin >> 1) % pwmSliceCount)
}

// getPWMPeripheral returns the PWM peripheral for a given slice number
// RP2040 has 8 PWM slices: PWM0-PWM7
func getPWMPeripheral(sliceNum uint8) pwmPeripheral {
	switch sliceNum {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}
