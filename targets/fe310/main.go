//go:build fe310

package main

import (
	"dtboot/core"
)

// Board LEDs
const (
	redLED   = 22 // PWM1 channel 3, fades while halted
	greenLED = 19 // plain output, lit during the double-tap window
)

func main() {
	// The RGB LED is common-anode: a colour lights with its pin low
	cfg := core.DefaultConfig(greenLED, redLED)
	cfg.ArmedActiveLow = true

	gpio := NewFE310GPIODriver()
	pwm := NewFE310PWMDriver(gpio)

	seq, err := core.NewSequencer(cfg, core.Board{
		Cell:      backupCell{},
		Cause:     pmuProbe{},
		Indicator: core.NewLEDIndicator(gpio, pwm, cfg),
		Delay:     core.NewTickDelayer(readMtime, mtimeFreqHz),
		Trap:      defaultTrap{},
		Entry:     flashEntry{addr: userProgramAddr},
	})
	if err != nil {
		// Nothing has been touched yet; panic halts the same way a trap does
		panic("dtboot: " + err.Error())
	}

	seq.Run()
}
