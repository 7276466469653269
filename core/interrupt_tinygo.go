//go:build tinygo

package core

import "runtime/interrupt"

// disableInterrupts masks interrupts for the rest of the boot. They stay
// masked across the jump: the user program starts the way reset would
// leave it and installs its own vectors before enabling anything.
func disableInterrupts() {
	interrupt.Disable()
}
