//go:build rp2040

package main

import (
	"dtboot/core"
)

func main() {
	cfg := core.DefaultConfig(armedPin, waitingPin)

	seq, err := core.NewSequencer(cfg, core.Board{
		Cell:      sramCell{},
		Cause:     chipProbe{},
		Indicator: newIndicator(cfg),
		Delay:     core.NewTickDelayer(GetHardwareTime, timerFreqHz),
		Trap:      romTrap{},
		Entry:     vectorEntry{addr: userProgramAddr},
	})
	if err != nil {
		// Nothing has been touched yet; panic halts the same way a fault does
		panic("dtboot: " + err.Error())
	}

	seq.Run()
}
