//go:build rp2040 && neopixel

package main

import (
	"machine"

	"dtboot/core"
)

// Boards whose only LED is a WS2812 (RP2040-Zero, QT Py RP2040 style)
// show both channels on the one pixel.
const pixelPin = machine.Pin(16)

func newIndicator(cfg core.Config) core.Indicator {
	return newPixelIndicator(pixelPin)
}
