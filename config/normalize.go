package config

import (
	"time"

	"ledarena-go/input"
	"ledarena-go/link"
	"ledarena-go/protocol"
)

// Normalize fills defaults. It is allowed to mutate cfg and MUST be called
// only after Validate.
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.Serial.Baud == 0 {
		cfg.Serial.Baud = link.DefaultBaud
	}
	if cfg.Serial.ReadTimeoutMs == 0 {
		cfg.Serial.ReadTimeoutMs = int(link.DefaultReadTimeout / time.Millisecond)
	}
	if cfg.Serial.RXBuffer == 0 {
		cfg.Serial.RXBuffer = link.DefaultRXSize
	}

	if cfg.Wait.TimeoutMs == 0 {
		cfg.Wait.TimeoutMs = int(input.DefaultTimeout / time.Millisecond)
	}
	if cfg.Wait.IntervalUs == 0 {
		cfg.Wait.IntervalUs = 1000
	}
	if cfg.Wait.Rule == "" {
		cfg.Wait.Rule = input.RuleElapsed.String()
	}

	if cfg.Display.BrightnessPercent == nil {
		p := float64(protocol.DefaultBrightnessPercent)
		cfg.Display.BrightnessPercent = &p
	}
	if cfg.Display.AngularSize == 0 {
		cfg.Display.AngularSize = protocol.DefaultAngularSize
	}
	if cfg.Display.Mode == "" {
		cfg.Display.Mode = protocol.Forward.String()
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Encoding == "" {
		cfg.Log.Encoding = "console"
	}
}

// LinkConfig returns the serial settings for link.Open.
func (c *Config) LinkConfig() link.Config {
	return link.Config{
		Address:     c.Serial.Port,
		BaudRate:    c.Serial.Baud,
		ReadTimeout: time.Duration(c.Serial.ReadTimeoutMs) * time.Millisecond,
		RXSize:      c.Serial.RXBuffer,
	}
}

// WaitConfig returns the controller-side wait settings. The rule must
// already be valid.
func (c *Config) WaitConfig() input.Config {
	rule, _ := input.ParseRule(c.Wait.Rule)
	return input.Config{
		Timeout:  time.Duration(c.Wait.TimeoutMs) * time.Millisecond,
		Interval: time.Duration(c.Wait.IntervalUs) * time.Microsecond,
		Rule:     rule,
	}
}

// ReplyTimeout is the quiet gap that ends a controller reply on the host.
// It follows the serial read timeout, not the controller's wait section.
func (c *Config) ReplyTimeout() time.Duration {
	return time.Duration(c.Serial.ReadTimeoutMs) * time.Millisecond
}
