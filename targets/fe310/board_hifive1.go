//go:build fe310 && !hifive1b

package main

// HiFive1: user programs are linked 4 MiB into SPI flash
const userProgramAddr = 0x20400000
