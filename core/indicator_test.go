package core

import (
	"errors"
	"testing"
)

// pinRegs models the register bits a driver owns for one pin.
// The zero value is the power-on default.
type pinRegs struct {
	outputEnable bool
	level        bool
	pwmRouted    bool
	pwmRunning   bool
	periodNs     uint64
	duty         PWMValue
}

// MockPeripherals implements GPIODriver and PWMDriver over pinRegs
type MockPeripherals struct {
	pins    map[uint32]*pinRegs
	failPWM error
	failPin error
}

func NewMockPeripherals() *MockPeripherals {
	return &MockPeripherals{pins: make(map[uint32]*pinRegs)}
}

func (m *MockPeripherals) regs(pin uint32) *pinRegs {
	r, ok := m.pins[pin]
	if !ok {
		r = &pinRegs{}
		m.pins[pin] = r
	}
	return r
}

func (m *MockPeripherals) ConfigureOutput(pin GPIOPin) error {
	m.regs(uint32(pin)).outputEnable = true
	return nil
}

func (m *MockPeripherals) SetPin(pin GPIOPin, value bool) error {
	if m.failPin != nil {
		return m.failPin
	}
	m.regs(uint32(pin)).level = value
	return nil
}

func (m *MockPeripherals) ResetPin(pin GPIOPin) error {
	*m.regs(uint32(pin)) = pinRegs{}
	return nil
}

func (m *MockPeripherals) ConfigureHardwarePWM(pin PWMPin, periodNs uint64) (uint64, error) {
	if m.failPWM != nil {
		return 0, m.failPWM
	}
	r := m.regs(uint32(pin))
	r.pwmRouted = true
	r.pwmRunning = true
	r.periodNs = periodNs
	return periodNs, nil
}

func (m *MockPeripherals) SetDutyCycle(pin PWMPin, value PWMValue) error {
	m.regs(uint32(pin)).duty = value
	return nil
}

func (m *MockPeripherals) GetMaxValue() uint32 {
	return 1023
}

func (m *MockPeripherals) DisablePWM(pin PWMPin) error {
	*m.regs(uint32(pin)) = pinRegs{}
	return nil
}

// allDefault reports whether every touched pin is back at power-on values
func (m *MockPeripherals) allDefault() bool {
	for _, r := range m.pins {
		if *r != (pinRegs{}) {
			return false
		}
	}
	return true
}

func TestLEDIndicatorArmed(t *testing.T) {
	periph := NewMockPeripherals()
	ind := NewLEDIndicator(periph, periph, DefaultConfig(19, 22))

	ind.SetArmed(true)
	r := periph.pins[19]
	if r == nil || !r.outputEnable || !r.level {
		t.Fatalf("Expected pin 19 output high, got %+v", r)
	}

	ind.SetArmed(false)
	if r.level {
		t.Error("Expected pin 19 low after SetArmed(false)")
	}
	if _, touched := periph.pins[22]; touched {
		t.Error("Waiting pin touched by armed indicator")
	}
}

func TestLEDIndicatorWaitingScaling(t *testing.T) {
	periph := NewMockPeripherals()
	ind := NewLEDIndicator(periph, periph, DefaultConfig(19, 22))

	cases := []struct {
		level uint8
		duty  PWMValue
	}{
		{0, 0},
		{255, 1023},
		{128, 513},
		{1, 4},
	}
	for _, tc := range cases {
		ind.SetWaitingLevel(tc.level)
		r := periph.pins[22]
		if r.duty != tc.duty {
			t.Errorf("level %d: expected duty %d, got %d", tc.level, tc.duty, r.duty)
		}
		if r.periodNs != DefaultPWMPeriodNs {
			t.Errorf("level %d: expected period %d, got %d", tc.level, DefaultPWMPeriodNs, r.periodNs)
		}
	}
}

func TestLEDIndicatorResetRestoresEverything(t *testing.T) {
	periph := NewMockPeripherals()
	ind := NewLEDIndicator(periph, periph, DefaultConfig(19, 22))

	ind.SetArmed(true)
	ind.SetWaitingLevel(200)
	if periph.allDefault() {
		t.Fatal("Expected pins configured before reset")
	}

	ind.ResetToDefault()
	if !periph.allDefault() {
		t.Errorf("Pins not at defaults after reset: 19=%+v 22=%+v", periph.pins[19], periph.pins[22])
	}

	// Drivers must be reconfigured after a reset
	ind.SetArmed(true)
	if !periph.pins[19].outputEnable {
		t.Error("Armed pin not reconfigured after reset")
	}
}

func TestLEDIndicatorResetWithoutUse(t *testing.T) {
	periph := NewMockPeripherals()
	ind := NewLEDIndicator(periph, periph, DefaultConfig(19, 22))

	ind.ResetToDefault()
	if !periph.allDefault() {
		t.Error("Reset of untouched indicator left non-default state")
	}
}

func TestLEDIndicatorDriverErrorsRecorded(t *testing.T) {
	ClearEvents()
	periph := NewMockPeripherals()
	periph.failPWM = errors.New("slice busy")
	periph.failPin = errors.New("pin locked")
	ind := NewLEDIndicator(periph, periph, DefaultConfig(19, 22))

	var lines []string
	SetDebugWriter(func(s string) { lines = append(lines, s) })
	SetDebugEnabled(true)
	defer func() {
		SetDebugEnabled(false)
		SetDebugWriter(func(s string) {})
	}()

	ind.SetWaitingLevel(10)
	ind.SetArmed(true)

	var ops []uint32
	for _, evt := range Events() {
		if evt.EventType == EvtIndicatorFault {
			ops = append(ops, evt.Value)
		}
	}
	if len(ops) != 2 || ops[0] != OpConfigurePWM || ops[1] != OpSetPin {
		t.Errorf("Expected faults [configure-pwm set-pin], got %v", ops)
	}
	if len(lines) == 0 {
		t.Error("Expected fault messages on the debug writer")
	}
}

func TestSequencerHandoffWithLEDIndicator(t *testing.T) {
	periph := NewMockPeripherals()
	cfg := DefaultConfig(19, 22)
	log := &opLog{}

	var atJump bool
	entry := &checkEntry{check: func() { atJump = periph.allDefault() }}

	seq, err := NewSequencer(cfg, Board{
		Cell:      &fakeCell{log: log},
		Cause:     &fakeProbe{log: log, hwReset: true},
		Indicator: NewLEDIndicator(periph, periph, cfg),
		Delay:     &fakeDelay{log: log},
		Trap:      &fakeTrap{log: log},
		Entry:     entry,
	})
	if err != nil {
		t.Fatalf("NewSequencer failed: %v", err)
	}
	seq.Run()

	if !entry.called {
		t.Fatal("Jump not executed")
	}
	if !atJump {
		t.Errorf("Registers not at defaults at jump: %+v", periph.pins)
	}
	if len(periph.pins) == 0 {
		t.Error("Armed window never touched the indicator")
	}
}

// checkEntry runs a check at the moment of control transfer
type checkEntry struct {
	check  func()
	called bool
}

func (e *checkEntry) Jump() {
	e.called = true
	e.check()
}

// samplingDelay samples the indicator on every delay and stops the
// halt loop after limit calls
type samplingDelay struct {
	sample func()
	calls  int
	limit  int
}

func (d *samplingDelay) DelayMs(ms uint32) {
	d.calls++
	d.sample()
	if d.limit > 0 && d.calls >= d.limit {
		panic(stopHalt{})
	}
}

func TestActiveLowArmedPin(t *testing.T) {
	cfg := DefaultConfig(19, 22)
	cfg.ArmedActiveLow = true

	// an active-low LED is lit while its pin is an output driven low
	lit := func(periph *MockPeripherals) bool {
		r := periph.pins[19]
		return r != nil && r.outputEnable && !r.level
	}

	t.Run("window", func(t *testing.T) {
		periph := NewMockPeripherals()
		var litInWindow bool
		delay := &samplingDelay{}
		delay.sample = func() { litInWindow = lit(periph) }

		var litAtJump bool
		entry := &checkEntry{check: func() { litAtJump = lit(periph) }}

		seq, err := NewSequencer(cfg, Board{
			Cell:      &fakeCell{log: &opLog{}},
			Cause:     &fakeProbe{log: &opLog{}, hwReset: true},
			Indicator: NewLEDIndicator(periph, periph, cfg),
			Delay:     delay,
			Trap:      &fakeTrap{log: &opLog{}},
			Entry:     entry,
		})
		if err != nil {
			t.Fatalf("NewSequencer failed: %v", err)
		}
		seq.Run()

		if delay.calls != 1 {
			t.Fatalf("Expected one window delay, got %d", delay.calls)
		}
		if !litInWindow {
			t.Errorf("Armed LED dark during the window: %+v", periph.pins[19])
		}
		if litAtJump {
			t.Error("Armed LED still lit at jump")
		}
	})

	t.Run("halt", func(t *testing.T) {
		periph := NewMockPeripherals()
		litTicks := 0
		delay := &samplingDelay{limit: 8}
		delay.sample = func() {
			if lit(periph) {
				litTicks++
			}
		}

		seq, err := NewSequencer(cfg, Board{
			Cell:      &fakeCell{log: &opLog{}, value: Magic},
			Cause:     &fakeProbe{log: &opLog{}, hwReset: true},
			Indicator: NewLEDIndicator(periph, periph, cfg),
			Delay:     delay,
			Trap:      &fakeTrap{log: &opLog{}},
			Entry:     &fakeEntry{log: &opLog{}},
		})
		if err != nil {
			t.Fatalf("NewSequencer failed: %v", err)
		}
		if got := seq.Boot(); got != OutcomeHalt {
			t.Fatalf("Expected halt, got %v", got)
		}
		if lit(periph) {
			t.Error("Armed LED lit on entering the halt")
		}

		func() {
			defer func() {
				if r := recover(); r != nil {
					if _, ok := r.(stopHalt); !ok {
						panic(r)
					}
				}
			}()
			seq.Halt()
		}()

		if litTicks != 0 {
			t.Errorf("Armed LED lit for %d of %d halt ticks", litTicks, delay.calls)
		}
	})
}

func TestLEDIndicatorActiveLowLevels(t *testing.T) {
	periph := NewMockPeripherals()
	cfg := DefaultConfig(19, 22)
	cfg.ArmedActiveLow = true
	ind := NewLEDIndicator(periph, periph, cfg)

	ind.SetArmed(true)
	if periph.pins[19].level {
		t.Error("Expected pin 19 low while armed on an active-low LED")
	}
	ind.SetArmed(false)
	if !periph.pins[19].level {
		t.Error("Expected pin 19 high while disarmed on an active-low LED")
	}
}
