//go:build fe310

package main

import (
	"errors"
	"machine"
	"runtime/volatile"
	"unsafe"

	"dtboot/core"
)

// PWM_MAX is the top of the 8-bit compare range used for the indicator
const PWM_MAX = 255

// FE310 PWM1 memory map
const (
	pwm1Base  = 0x10025000
	pwm1Cfg   = pwm1Base + 0x00
	pwm1Count = pwm1Base + 0x08
	pwm1Cmp0  = pwm1Base + 0x20
	pwm1Cmp3  = pwm1Base + 0x2C

	pwmCfgZeroCmp   = 1 << 9
	pwmCfgEnAlways  = 1 << 12
	pwmCfgScaleMask = 0xF

	// PWM1 comparator 3 is routed to GPIO22 through IOF1
	pwm1Cmp3Pin = 22
)

var (
	pwm1CfgReg   = (*volatile.Register32)(unsafe.Pointer(uintptr(pwm1Cfg)))
	pwm1CountReg = (*volatile.Register32)(unsafe.Pointer(uintptr(pwm1Count)))
	pwm1Cmp0Reg  = (*volatile.Register32)(unsafe.Pointer(uintptr(pwm1Cmp0)))
	pwm1Cmp3Reg  = (*volatile.Register32)(unsafe.Pointer(uintptr(pwm1Cmp3)))
)

var errNoPWMChannel = errors.New("pin has no PWM1 channel")

// FE310PWMDriver implements core.PWMDriver for the red LED on PWM1
// channel 3. cmp0 resets the counter, so the period is 256 scaled ticks.
// The comparator output is low while the count is below cmp3 and the LED
// is active-low, so the compare value reads directly as brightness.
type FE310PWMDriver struct {
	gpio    *FE310GPIODriver
	clockHz uint32
}

// NewFE310PWMDriver creates a PWM driver that hands pins back to gpio
// when disabled. The runtime may have moved the core from the HFROSC to
// the PLL before main, so the period is computed from the clock it
// reports.
func NewFE310PWMDriver(gpio *FE310GPIODriver) *FE310PWMDriver {
	return &FE310PWMDriver{gpio: gpio, clockHz: machine.CPUFrequency()}
}

// GetMaxValue returns the maximum PWM value (255)
func (d *FE310PWMDriver) GetMaxValue() uint32 {
	return PWM_MAX
}

// ConfigureHardwarePWM routes the pin to PWM1 and starts the counter.
// The scale is the smallest that reaches the requested period.
func (d *FE310PWMDriver) ConfigureHardwarePWM(pin core.PWMPin, periodNs uint64) (uint64, error) {
	if uint32(pin) != pwm1Cmp3Pin {
		return 0, errNoPWMChannel
	}
	bit := uint32(1) << pwm1Cmp3Pin

	// Hand the pin to the IOF1 function with no inversion
	gpioOutXorReg.ClearBits(bit)
	gpioIOFSelReg.SetBits(bit)
	gpioIOFEnReg.SetBits(bit)

	// period = 256 << scale core cycles
	scale, actual := core.PrescaleForPeriod(d.clockHz, PWM_MAX+1, pwmCfgScaleMask, periodNs)

	pwm1CfgReg.Set(0)
	pwm1CountReg.Set(0)
	pwm1Cmp0Reg.Set(PWM_MAX)
	pwm1Cmp3Reg.Set(PWM_MAX)
	pwm1CfgReg.Set(pwmCfgEnAlways | pwmCfgZeroCmp | scale)

	return actual, nil
}

// SetDutyCycle writes the channel 3 compare value
func (d *FE310PWMDriver) SetDutyCycle(pin core.PWMPin, value core.PWMValue) error {
	if uint32(pin) != pwm1Cmp3Pin {
		return errNoPWMChannel
	}
	if value > PWM_MAX {
		value = PWM_MAX
	}
	pwm1Cmp3Reg.Set(uint32(value))
	return nil
}

// DisablePWM stops PWM1, zeroes its counter and compares and returns the
// pin to plain GPIO
func (d *FE310PWMDriver) DisablePWM(pin core.PWMPin) error {
	if uint32(pin) != pwm1Cmp3Pin {
		return errNoPWMChannel
	}

	pwm1CfgReg.Set(0)
	pwm1CountReg.Set(0)
	pwm1Cmp0Reg.Set(0)
	pwm1Cmp3Reg.Set(0)

	return d.gpio.ResetPin(core.GPIOPin(pin))
}
