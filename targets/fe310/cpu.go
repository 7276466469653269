//go:build fe310

package main

import (
	"device/riscv"
	"runtime/volatile"
	"unsafe"
)

// CLINT machine timer, driven by the 32.768 kHz real-time clock
const (
	clintMtime  = 0x0200BFF8
	mtimeFreqHz = 32768
)

var mtimeLow = (*volatile.Register32)(unsafe.Pointer(uintptr(clintMtime)))

// readMtime returns the low word of mtime
func readMtime() uint32 {
	return mtimeLow.Get()
}

// defaultTrap points mtvec at address 0 in direct mode. Any exception
// then spins there, which keeps the debug path usable.
type defaultTrap struct{}

func (defaultTrap) InstallDefault() {
	riscv.Asm("csrw mtvec, zero")
}

// flashEntry jumps to the user program in SPI flash
type flashEntry struct {
	addr uintptr
}

func (e flashEntry) Jump() {
	riscv.AsmFull("jr {addr}", map[string]interface{}{
		"addr": e.addr,
	})
	for {
	}
}
