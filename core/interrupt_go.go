//go:build !tinygo

package core

// interruptsMasked mirrors the interrupt mask on regular Go (for testing)
var interruptsMasked bool

// disableInterrupts only records the mask on regular Go
func disableInterrupts() {
	interruptsMasked = true
}
