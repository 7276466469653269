//go:build rp2040

package main

import (
	"device/arm"
	"runtime/volatile"
	"unsafe"
)

const (
	// Last word of SRAM bank 5 (SCRATCH_Y). TinyGo does not place data
	// there, and SRAM keeps its contents through a RUN pin reset.
	cellAddr = 0x20041FFC

	chipResetAddr       = 0x40064008 // VREG_AND_CHIP_RESET.CHIP_RESET
	chipResetHadPOR     = 1 << 8
	chipResetHadRun     = 1 << 16
	chipResetHadPSMBoot = 1 << 20

	watchdogReasonAddr = 0x40058008 // WATCHDOG.REASON: timer | force

	vtorAddr = 0xE000ED08 // SCB.VTOR
)

var (
	cellReg        = (*volatile.Register32)(unsafe.Pointer(uintptr(cellAddr)))
	chipResetReg   = (*volatile.Register32)(unsafe.Pointer(uintptr(chipResetAddr)))
	watchdogReason = (*volatile.Register32)(unsafe.Pointer(uintptr(watchdogReasonAddr)))
	vtorReg        = (*volatile.Register32)(unsafe.Pointer(uintptr(vtorAddr)))
)

// sramCell is a reserved SRAM word. It holds whatever it held before a
// RUN pin reset and is garbage after power-on.
type sramCell struct{}

func (sramCell) Read() uint32 {
	return cellReg.Get()
}

func (sramCell) Write(v uint32) {
	cellReg.Set(v)
}

// chipProbe treats power-on, the RUN pin and a debugger-requested
// restart as a hardware reset. A watchdog reboot requested by the user
// program is not an operator tap and skips the window.
type chipProbe struct{}

func (chipProbe) IsHardwareReset() bool {
	if watchdogReason.Get() != 0 {
		return false
	}
	return chipResetReg.HasBits(chipResetHadPOR | chipResetHadRun | chipResetHadPSMBoot)
}

// romTrap points VTOR back at the boot ROM vector table, whose fault
// handlers spin.
type romTrap struct{}

func (romTrap) InstallDefault() {
	vtorReg.Set(0)
}

// vectorEntry starts a user program from its vector table: VTOR, then
// the initial stack pointer, then the reset handler.
type vectorEntry struct {
	addr uintptr
}

func (e vectorEntry) Jump() {
	sp := *(*uint32)(unsafe.Pointer(e.addr))
	pc := *(*uint32)(unsafe.Pointer(e.addr + 4))

	vtorReg.Set(uint32(e.addr))
	arm.AsmFull(`
		msr msp, {sp}
		bx {pc}
	`, map[string]interface{}{
		"sp": sp,
		"pc": pc,
	})
	for {
	}
}
