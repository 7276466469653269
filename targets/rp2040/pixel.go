//go:build rp2040 && neopixel

package main

import (
	"image/color"
	"machine"

	"tinygo.org/x/drivers/ws2812"

	"dtboot/core"
)

// armedGreen is the pixel brightness used for the double-tap window
const armedGreen = 0x40

// pixelIndicator implements core.Indicator on a single WS2812: green
// while armed, red at the waiting level while halted.
type pixelIndicator struct {
	pin   machine.Pin
	dev   ws2812.Device
	ready bool

	armed bool
	level uint8
	buf   [1]color.RGBA
}

func newPixelIndicator(pin machine.Pin) *pixelIndicator {
	return &pixelIndicator{pin: pin}
}

func (p *pixelIndicator) SetArmed(on bool) {
	p.armed = on
	p.write()
}

func (p *pixelIndicator) SetWaitingLevel(level uint8) {
	p.level = level
	p.write()
}

// ResetToDefault blanks the pixel and returns the data pin to its reset
// state. A pixel that was never written is only reset at the pin.
func (p *pixelIndicator) ResetToDefault() {
	if p.ready {
		p.armed = false
		p.level = 0
		p.write()
	}
	resetPinRegisters(uint32(p.pin))
	p.ready = false
}

func (p *pixelIndicator) write() {
	if !p.ready {
		p.pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
		p.dev = ws2812.NewWS2812(p.pin)
		p.ready = true
	}

	p.buf[0] = color.RGBA{R: p.level, A: 0xFF}
	if p.armed {
		p.buf[0].G = armedGreen
	}
	if err := p.dev.WriteColors(p.buf[:]); err != nil {
		core.IndicatorFault(core.OpWritePixel, err)
	}
}
