//go:build fe310

package main

import (
	"runtime/volatile"
	"unsafe"
)

// FE310 always-on (AON) domain memory map
const (
	aonBase       = 0x10000000
	aonBackup0    = aonBase + 0x080 // backup registers, 4 bytes apart
	aonPMUCause   = aonBase + 0x144
	backupSlot    = 15
	wakeupMask    = 0x3 // pmucause.wakeupcause
	wakeupReset   = 0x0
	wakeupRTC     = 0x1
	wakeupDigital = 0x2
)

var (
	backupReg = (*volatile.Register32)(unsafe.Pointer(uintptr(aonBackup0 + 4*backupSlot)))
	pmuCause  = (*volatile.Register32)(unsafe.Pointer(uintptr(aonPMUCause)))
)

// backupCell is AON backup register 15. It is kept across reset but lost
// when the board loses power.
type backupCell struct{}

func (backupCell) Read() uint32 {
	return backupReg.Get()
}

func (backupCell) Write(v uint32) {
	backupReg.Set(v)
}

// pmuProbe reads the PMU wakeup cause. Anything other than a reset
// (RTC or digital wakeup from sleep) skips the double-tap window.
type pmuProbe struct{}

func (pmuProbe) IsHardwareReset() bool {
	return pmuCause.Get()&wakeupMask == wakeupReset
}
