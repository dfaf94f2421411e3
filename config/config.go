// Package config loads the host tool's YAML configuration.
package config

import (
	"bytes"
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"ledarena-go/errcode"
)

type Config struct {
	Serial  SerialConfig  `yaml:"serial"`
	Wait    WaitConfig    `yaml:"wait"`
	Display DisplayConfig `yaml:"display"`
	Log     LogConfig     `yaml:"log"`
}

// ---- SERIAL ----

type SerialConfig struct {
	Port          string `yaml:"port"`
	Baud          int    `yaml:"baud"`
	ReadTimeoutMs int    `yaml:"read_timeout_ms"`
	RXBuffer      int    `yaml:"rx_buffer"`
}

// ---- WAIT ----

type WaitConfig struct {
	TimeoutMs  int    `yaml:"timeout_ms"`
	IntervalUs int    `yaml:"interval_us"`
	Rule       string `yaml:"rule"` // elapsed | inverted | inverted_wrap
}

// ---- DISPLAY ----

type DisplayConfig struct {
	BrightnessPercent *float64 `yaml:"brightness_percent"` // nil => default; 0 is full brightness
	AngularSize       int      `yaml:"angular_size"`
	Mode              string   `yaml:"mode"`
}

// ---- LOG ----

type LogConfig struct {
	Level    string `yaml:"level"`    // debug | info | warn | error
	Encoding string `yaml:"encoding"` // console | json
}

// Load reads and decodes path. It does not validate.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errcode.Wrap(errcode.InvalidParams, "config_load", path, err)
	}
	return Parse(b)
}

// Parse decodes YAML, rejecting unknown keys.
func Parse(b []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errcode.Wrap(errcode.InvalidParams, "config_parse", "", err)
	}
	return &cfg, nil
}

// Default returns a configuration with every default filled in.
func Default() *Config {
	cfg := &Config{}
	Normalize(cfg)
	return cfg
}
