package sim

import "dtboot/core"

// pinState is the per-pin register model; the zero value is power-on
type pinState struct {
	Output    bool
	Level     bool
	PWMRouted bool
	PWMOn     bool
	Duty      core.PWMValue
}

// peripherals implements core.GPIODriver and core.PWMDriver
type peripherals struct {
	pins map[uint32]*pinState
}

func newPeripherals() *peripherals {
	return &peripherals{pins: make(map[uint32]*pinState)}
}

func (p *peripherals) pin(n uint32) *pinState {
	s, ok := p.pins[n]
	if !ok {
		s = &pinState{}
		p.pins[n] = s
	}
	return s
}

// clean reports whether every pin is at its power-on state
func (p *peripherals) clean() bool {
	for _, s := range p.pins {
		if *s != (pinState{}) {
			return false
		}
	}
	return true
}

func (p *peripherals) ConfigureOutput(pin core.GPIOPin) error {
	p.pin(uint32(pin)).Output = true
	return nil
}

func (p *peripherals) SetPin(pin core.GPIOPin, value bool) error {
	p.pin(uint32(pin)).Level = value
	return nil
}

func (p *peripherals) ResetPin(pin core.GPIOPin) error {
	*p.pin(uint32(pin)) = pinState{}
	return nil
}

func (p *peripherals) ConfigureHardwarePWM(pin core.PWMPin, periodNs uint64) (uint64, error) {
	s := p.pin(uint32(pin))
	s.PWMRouted = true
	s.PWMOn = true
	return periodNs, nil
}

func (p *peripherals) SetDutyCycle(pin core.PWMPin, value core.PWMValue) error {
	p.pin(uint32(pin)).Duty = value
	return nil
}

func (p *peripherals) GetMaxValue() uint32 {
	return 255
}

func (p *peripherals) DisablePWM(pin core.PWMPin) error {
	*p.pin(uint32(pin)) = pinState{}
	return nil
}

// simCell is the persistent cell; it lives on the machine so it
// survives the simulated reset
type simCell struct {
	m *Machine
}

func (c *simCell) Read() uint32 {
	return c.m.cell
}

func (c *simCell) Write(v uint32) {
	c.m.cell = v
}

type simProbe bool

func (p simProbe) IsHardwareReset() bool {
	return bool(p)
}

type simTrap struct{}

func (simTrap) InstallDefault() {}

// simDelay advances virtual time; a press inside the delay aborts the boot
type simDelay struct {
	m   *Machine
	rec *Boot
}

func (d *simDelay) DelayMs(ms uint32) {
	d.m.advance(ms)
}

// simIndicator records operator-visible behaviour and forwards to the
// real LED indicator over the simulated peripherals
type simIndicator struct {
	m      *Machine
	rec    *Boot
	inner  *core.LEDIndicator
	writes int
}

func (s *simIndicator) SetArmed(on bool) {
	if on {
		s.rec.ArmedLit = true
		s.rec.ArmedOnMs = s.m.now
	} else if s.rec.ArmedLit {
		s.rec.ArmedOffMs = s.m.now
	}
	s.inner.SetArmed(on)
}

func (s *simIndicator) SetWaitingLevel(level uint8) {
	if level > s.rec.MaxLevel {
		s.rec.MaxLevel = level
	}
	if level < s.rec.MinLevel {
		s.rec.MinLevel = level
	}
	// the first write starts the fade, every later one is a tick
	if s.writes > 0 {
		s.rec.FadeTick++
	}
	s.writes++
	s.inner.SetWaitingLevel(level)
}

func (s *simIndicator) ResetToDefault() {
	s.inner.ResetToDefault()
}

// simEntry starts the user program, which runs until the next press
type simEntry struct {
	m   *Machine
	rec *Boot
}

func (e *simEntry) Jump() {
	e.rec.Jumped = true
	e.rec.JumpMs = e.m.now
	e.rec.CleanAtJump = e.m.periph.clean()
	e.m.runUserProgram()
}
