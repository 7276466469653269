package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"dtboot/core"
	"dtboot/host/sim"
)

var (
	cell     = flag.String("cell", "0x00000000", "Persistent cell value at power-on")
	wake     = flag.Bool("wake", false, "First boot is a wake from sleep instead of a reset")
	taps     = flag.String("taps", "", "Comma-separated reset press times in ms, e.g. 250,1000")
	horizon  = flag.String("horizon", "3000", "Simulated time to run in ms")
	window   = flag.String("window", strconv.Itoa(core.DefaultWindowMs), "Double-tap window in ms")
	fadeTick = flag.String("fade-tick", strconv.Itoa(core.DefaultFadeTickMs), "Halt loop fade tick in ms")
	verbose  = flag.Bool("verbose", false, "Print boot events as they are recorded")
)

func main() {
	flag.Parse()

	cfg, err := buildConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if *verbose {
		core.SetDebugWriter(func(s string) { fmt.Println("  " + s) })
		core.SetDebugEnabled(true)
	}

	machine, err := sim.NewMachine(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	fmt.Println("dtboot simulator")
	fmt.Println("================")
	fmt.Printf("cell=0x%08X window=%dms fade-tick=%dms horizon=%dms\n\n",
		cfg.InitialCell, cfg.Boot.WindowMs, cfg.Boot.FadeTickMs, cfg.HorizonMs)

	boots, err := machine.Run()
	for _, b := range boots {
		printBoot(b)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nfinal cell=0x%08X at %dms\n", machine.Cell(), machine.Now())
}

func buildConfig() (sim.Config, error) {
	initial, err := strconv.ParseUint(*cell, 0, 32)
	if err != nil {
		return sim.Config{}, fmt.Errorf("invalid -cell %q: %w", *cell, err)
	}

	presses, err := parseTaps(*taps)
	if err != nil {
		return sim.Config{}, err
	}

	boot := core.DefaultConfig(19, 22)
	if boot.WindowMs, err = parseMs("window", *window); err != nil {
		return sim.Config{}, err
	}
	if boot.FadeTickMs, err = parseMs("fade-tick", *fadeTick); err != nil {
		return sim.Config{}, err
	}
	horizonMs, err := parseMs("horizon", *horizon)
	if err != nil {
		return sim.Config{}, err
	}

	return sim.Config{
		Boot:        boot,
		InitialCell: uint32(initial),
		FirstWake:   *wake,
		Presses:     presses,
		HorizonMs:   horizonMs,
	}, nil
}

// parseMs parses a millisecond flag, rejecting anything that does not
// fit the 32-bit virtual clock
func parseMs(name, s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid -%s %q: %w", name, s, err)
	}
	return uint32(v), nil
}

func parseTaps(s string) ([]uint32, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var out []uint32
	for _, part := range strings.Split(s, ",") {
		v, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid tap time %q: %w", part, err)
		}
		out = append(out, uint32(v))
	}
	return out, nil
}

func printBoot(b sim.Boot) {
	cause := "reset"
	if !b.HwReset {
		cause = "wake"
	}

	fmt.Printf("boot %d @%dms (%s) cell 0x%08X -> 0x%08X\n", b.Index, b.StartMs, cause, b.CellAtStart, b.CellAtEnd)
	if b.ArmedLit {
		fmt.Printf("  green on %dms..%dms\n", b.ArmedOnMs, b.ArmedOffMs)
	}
	switch {
	case b.Halted:
		fmt.Printf("  HALT: red fading, %d ticks (levels %d..%d)\n", b.FadeTick, b.MinLevel, b.MaxLevel)
	case b.Jumped:
		clean := "clean"
		if !b.CleanAtJump {
			clean = "DIRTY"
		}
		fmt.Printf("  user program started @%dms, peripherals %s\n", b.JumpMs, clean)
	}
	fmt.Printf("  ended by %s @%dms\n", b.End, b.EndMs)
}
