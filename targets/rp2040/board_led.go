//go:build rp2040 && !neopixel

package main

import "dtboot/core"

// newIndicator drives plain LEDs: armed on SIO, waiting on a PWM slice
func newIndicator(cfg core.Config) core.Indicator {
	gpio := NewRPGPIODriver()
	return core.NewLEDIndicator(gpio, NewRP2040PWMDriver(gpio), cfg)
}
