package config

import (
	"fmt"

	"go.uber.org/multierr"

	"ledarena-go/errcode"
	"ledarena-go/input"
	"ledarena-go/protocol"
)

// Validate checks configuration correctness. It performs declarative
// validation only and MUST NOT mutate cfg. Every problem is reported.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errcode.Wrap(errcode.InvalidParams, "config_validate", "nil config", nil)
	}
	var err error
	bad := func(format string, args ...any) {
		err = multierr.Append(err, errcode.Wrap(errcode.InvalidParams, "config_validate", fmt.Sprintf(format, args...), nil))
	}

	// ---- serial ----
	s := cfg.Serial
	if s.Baud < 0 {
		bad("serial.baud must be >= 0, got %d", s.Baud)
	}
	if s.ReadTimeoutMs < 0 {
		bad("serial.read_timeout_ms must be >= 0, got %d", s.ReadTimeoutMs)
	}
	if s.RXBuffer < 0 || s.RXBuffer > 64*1024 {
		bad("serial.rx_buffer must be within 0..65536, got %d", s.RXBuffer)
	}

	// ---- wait ----
	w := cfg.Wait
	if w.TimeoutMs < 0 {
		bad("wait.timeout_ms must be >= 0, got %d", w.TimeoutMs)
	}
	if w.IntervalUs < 0 {
		bad("wait.interval_us must be >= 0, got %d", w.IntervalUs)
	}
	if _, e := input.ParseRule(w.Rule); e != nil {
		bad("wait.rule %q is not one of elapsed, inverted, inverted_wrap", w.Rule)
	}

	// ---- display ----
	d := cfg.Display
	if p := d.BrightnessPercent; p != nil && (*p < 0 || *p > 100) {
		bad("display.brightness_percent must be within 0..100, got %v", *p)
	}
	if d.AngularSize < 0 || d.AngularSize > 0xffff {
		bad("display.angular_size must be within 0..65535, got %d", d.AngularSize)
	}
	if d.Mode != "" {
		if _, e := protocol.ParseDirection(d.Mode); e != nil {
			bad("display.mode %q is not a known direction", d.Mode)
		}
	}

	// ---- log ----
	switch cfg.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		bad("log.level %q is not one of debug, info, warn, error", cfg.Log.Level)
	}
	switch cfg.Log.Encoding {
	case "", "console", "json":
	default:
		bad("log.encoding %q is not one of console, json", cfg.Log.Encoding)
	}
	return err
}
