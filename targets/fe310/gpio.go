//go:build fe310

package main

import (
	"errors"
	"runtime/volatile"
	"unsafe"

	"dtboot/core"
)

// FE310 GPIO0 memory map
const (
	gpioBase     = 0x10012000
	gpioOutputEn = gpioBase + 0x08
	gpioPort     = gpioBase + 0x0C // output_val
	gpioIOFEn    = gpioBase + 0x38
	gpioIOFSel   = gpioBase + 0x3C
	gpioOutXor   = gpioBase + 0x40

	gpioPinCount = 32
)

var (
	gpioOutputEnReg = (*volatile.Register32)(unsafe.Pointer(uintptr(gpioOutputEn)))
	gpioPortReg     = (*volatile.Register32)(unsafe.Pointer(uintptr(gpioPort)))
	gpioIOFEnReg    = (*volatile.Register32)(unsafe.Pointer(uintptr(gpioIOFEn)))
	gpioIOFSelReg   = (*volatile.Register32)(unsafe.Pointer(uintptr(gpioIOFSel)))
	gpioOutXorReg   = (*volatile.Register32)(unsafe.Pointer(uintptr(gpioOutXor)))
)

var errInvalidPin = errors.New("gpio pin out of range")

// FE310GPIODriver implements core.GPIODriver on GPIO0 with direct
// register access. All registers reset to zero on the FE310.
type FE310GPIODriver struct{}

// NewFE310GPIODriver creates a new FE310 GPIO driver
func NewFE310GPIODriver() *FE310GPIODriver {
	return &FE310GPIODriver{}
}

// ConfigureOutput makes a pin a non-inverted software-driven output,
// starting low
func (d *FE310GPIODriver) ConfigureOutput(pin core.GPIOPin) error {
	bit, err := pinBit(uint32(pin))
	if err != nil {
		return err
	}

	gpioIOFEnReg.ClearBits(bit)
	gpioOutXorReg.ClearBits(bit)
	gpioPortReg.ClearBits(bit)
	gpioOutputEnReg.SetBits(bit)
	return nil
}

// SetPin sets the pin to high (true) or low (false)
func (d *FE310GPIODriver) SetPin(pin core.GPIOPin, value bool) error {
	bit, err := pinBit(uint32(pin))
	if err != nil {
		return err
	}

	if value {
		gpioPortReg.SetBits(bit)
	} else {
		gpioPortReg.ClearBits(bit)
	}
	return nil
}

// ResetPin clears the pin's bit in every register this bootloader writes
func (d *FE310GPIODriver) ResetPin(pin core.GPIOPin) error {
	bit, err := pinBit(uint32(pin))
	if err != nil {
		return err
	}

	gpioOutputEnReg.ClearBits(bit)
	gpioPortReg.ClearBits(bit)
	gpioOutXorReg.ClearBits(bit)
	gpioIOFEnReg.ClearBits(bit)
	gpioIOFSelReg.ClearBits(bit)
	return nil
}

func pinBit(pin uint32) (uint32, error) {
	if pin >= gpioPinCount {
		return 0, errInvalidPin
	}
	return 1 << pin, nil
}
