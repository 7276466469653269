//go:build rp2040

package main

// User program vector table. The bootloader owns the first 64 KiB of
// flash after boot2; user programs are linked at this offset.
const userProgramAddr = 0x10010000

// Indicator pins
const (
	armedPin   = 16 // external green LED, lit during the double-tap window
	waitingPin = 25 // on-board LED (PWM slice 4 B), fades while halted
)
