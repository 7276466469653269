package core

// TickSource reads a free-running 32-bit hardware counter
type TickSource func() uint32

// maxTickChunk bounds a single wait so the wrap-safe subtraction below
// never sees more than half the counter range.
const maxTickChunk = 1 << 31

// TickDelayer implements Delayer by busy-waiting on a hardware counter.
// It needs no interrupts, which keeps it usable after the trap vector has
// been reset to the halt-on-exception default.
type TickDelayer struct {
	now  TickSource
	freq uint32 // counter frequency in Hz
}

// NewTickDelayer creates a delayer over a counter running at freq Hz
func NewTickDelayer(now TickSource, freq uint32) *TickDelayer {
	return &TickDelayer{now: now, freq: freq}
}

// TicksFromMs converts milliseconds to counter ticks at freq Hz
func TicksFromMs(ms uint32, freq uint32) uint64 {
	return (uint64(ms) * uint64(freq)) / 1000
}

// DelayMs spins until ms milliseconds worth of ticks have elapsed.
// Counter wraparound is handled by unsigned subtraction.
func (d *TickDelayer) DelayMs(ms uint32) {
	remaining := TicksFromMs(ms, d.freq)
	for remaining > 0 {
		chunk := uint32(maxTickChunk)
		if remaining < maxTickChunk {
			chunk = uint32(remaining)
		}

		start := d.now()
		for d.now()-start < chunk {
		}
		remaining -= uint64(chunk)
	}
}
