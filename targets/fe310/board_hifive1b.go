//go:build fe310 && hifive1b

package main

// HiFive1 Rev B: user programs start 64 KiB into SPI flash
const userProgramAddr = 0x20010000
