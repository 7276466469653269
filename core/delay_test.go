package core

import "testing"

// fakeCounter advances by step ticks on every read
type fakeCounter struct {
	now   uint32
	step  uint32
	reads int
}

func (c *fakeCounter) read() uint32 {
	v := c.now
	c.now += c.step
	c.reads++
	return v
}

func TestTicksFromMs(t *testing.T) {
	testCases := []struct {
		ms       uint32
		freq     uint32
		expected uint64
	}{
		{500, 1000000, 500000},
		{500, 32768, 16384},
		{2, 32768, 65},
		{0, 1000000, 0},
		{4294967295, 1000000, 4294967295000},
	}

	for _, tc := range testCases {
		if got := TicksFromMs(tc.ms, tc.freq); got != tc.expected {
			t.Errorf("TicksFromMs(%d, %d) = %d, expected %d", tc.ms, tc.freq, got, tc.expected)
		}
	}
}

func TestTickDelayerWaitsLongEnough(t *testing.T) {
	c := &fakeCounter{step: 1}
	d := NewTickDelayer(c.read, 32768)

	d.DelayMs(500)

	// first read is the start stamp, then polls until 16384 ticks elapsed
	elapsed := c.now - 1
	if elapsed < 16384 {
		t.Errorf("Delayed only %d ticks, expected at least 16384", elapsed)
	}
	if elapsed > 16384+2 {
		t.Errorf("Delayed %d ticks, expected about 16384", elapsed)
	}
}

func TestTickDelayerCounterWrap(t *testing.T) {
	c := &fakeCounter{now: 0xFFFFFF00, step: 16}
	d := NewTickDelayer(c.read, 1000000)

	d.DelayMs(1) // 1000 ticks across the wrap

	if c.now > 0xFFFFFF00 {
		t.Fatalf("Counter did not wrap, returned early at 0x%08X", c.now)
	}
	// 0xFFFFFF00 + 1008 wraps to 0x2F0; one more step after the last poll
	if c.now != 0x300 {
		t.Errorf("Unexpected counter end 0x%08X, expected 0x00000300", c.now)
	}
	if c.reads < 1000/16 {
		t.Errorf("Only %d polls for 1000 ticks at 16 per poll", c.reads)
	}
}

func TestTickDelayerZero(t *testing.T) {
	c := &fakeCounter{step: 1}
	d := NewTickDelayer(c.read, 1000000)

	d.DelayMs(0)
	if c.reads != 0 {
		t.Errorf("Expected no counter reads for zero delay, got %d", c.reads)
	}
}

func TestTickDelayerChunksLongWaits(t *testing.T) {
	// Big steps keep the test fast while covering more than 2^31 ticks
	c := &fakeCounter{step: 1 << 24}
	d := NewTickDelayer(c.read, 1000000)

	d.DelayMs(5000000) // 5e9 ticks, more than one chunk

	var total uint64 = uint64(c.reads) * (1 << 24)
	if total < 5000000000 {
		t.Errorf("Counter advanced %d ticks, expected at least 5e9", total)
	}
}
