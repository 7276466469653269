package core

import (
	"errors"
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig(19, 22)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config invalid: %v", err)
	}
	if cfg.Magic != 0xD027B007 {
		t.Errorf("Expected magic 0xD027B007, got 0x%08X", cfg.Magic)
	}
	if cfg.WindowMs != 500 {
		t.Errorf("Expected 500ms window, got %d", cfg.WindowMs)
	}
}

func TestConfigValidate(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"zero magic", func(c *Config) { c.Magic = 0 }, ErrMagicZero},
		{"zero window", func(c *Config) { c.WindowMs = 0 }, ErrNoWindow},
		{"zero fade tick", func(c *Config) { c.FadeTickMs = 0 }, ErrNoFadeTick},
		{"zero pwm period", func(c *Config) { c.PWMPeriodNs = 0 }, ErrNoPWMPeriod},
		{"shared pin", func(c *Config) { c.WaitingPin = PWMPin(c.ArmedPin) }, ErrPinConflict},
		{"custom magic", func(c *Config) { c.Magic = 0xB007B007 }, nil},
	}

	for _, tc := range testCases {
		cfg := DefaultConfig(19, 22)
		tc.modify(&cfg)
		if err := cfg.Validate(); !errors.Is(err, tc.want) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}
