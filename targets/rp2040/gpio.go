//go:build rp2040

package main

import (
	"errors"
	"machine"
	"runtime/volatile"
	"unsafe"

	"dtboot/core"
)

// RP2040 GPIO register blocks
const (
	ioBank0Base   = 0x40014000 // GPIOn_CTRL at 0x04 + 8n
	padsBank0Base = 0x4001C000 // GPIOn pad at 0x04 + 4n
	sioBase       = 0xD0000000
	sioGPIOOutClr = sioBase + 0x018
	sioGPIOOEClr  = sioBase + 0x028

	gpioCtrlFuncNull = 0x1F // FUNCSEL reset value
	padResetValue    = 0x56 // IE, 4mA drive, pull-down, schmitt

	gpioPinCount = 30
)

var (
	sioOutClr = (*volatile.Register32)(unsafe.Pointer(uintptr(sioGPIOOutClr)))
	sioOEClr  = (*volatile.Register32)(unsafe.Pointer(uintptr(sioGPIOOEClr)))
)

var errInvalidPin = errors.New("gpio pin out of range")

// RPGPIODriver implements the GPIODriver interface for RP2040
type RPGPIODriver struct {
	// Track configured pins
	configuredPins map[core.GPIOPin]machine.Pin
}

// NewRPGPIODriver creates a new RP2040 GPIO driver
func NewRPGPIODriver() *RPGPIODriver {
	return &RPGPIODriver{
		configuredPins: make(map[core.GPIOPin]machine.Pin),
	}
}

// ConfigureOutput configures a pin as a digital output
func (d *RPGPIODriver) ConfigureOutput(pin core.GPIOPin) error {
	if uint32(pin) >= gpioPinCount {
		return errInvalidPin
	}
	if _, exists := d.configuredPins[pin]; exists {
		return nil
	}

	// RP2040 pins map directly to GPIO numbers
	machinePin := machine.Pin(pin)
	machinePin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	d.configuredPins[pin] = machinePin

	return nil
}

// SetPin sets the pin to high (true) or low (false)
func (d *RPGPIODriver) SetPin(pin core.GPIOPin, value bool) error {
	machinePin, exists := d.configuredPins[pin]
	if !exists {
		// Pin isn't configured - configure it first
		if err := d.ConfigureOutput(pin); err != nil {
			return err
		}
		machinePin = d.configuredPins[pin]
	}

	machinePin.Set(value)
	return nil
}

// ResetPin drops the SIO output, disconnects the pin function and puts
// the pad back to its reset value. machine.Pin has no way to do this,
// so the registers are written directly.
func (d *RPGPIODriver) ResetPin(pin core.GPIOPin) error {
	if uint32(pin) >= gpioPinCount {
		return errInvalidPin
	}
	resetPinRegisters(uint32(pin))
	delete(d.configuredPins, pin)
	return nil
}

func resetPinRegisters(pin uint32) {
	bit := uint32(1) << pin
	sioOEClr.Set(bit)
	sioOutClr.Set(bit)

	ctrl := (*volatile.Register32)(unsafe.Pointer(uintptr(ioBank0Base + 0x04 + 8*pin)))
	ctrl.Set(gpioCtrlFuncNull)

	pad := (*volatile.Register32)(unsafe.Pointer(uintptr(padsBank0Base + 0x04 + 4*pin)))
	pad.Set(padResetValue)
}
