// Package logging builds the host tools' zap loggers.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"ledarena-go/errcode"
)

// NewConfig returns the console configuration used by the host tools:
// ISO8601 timestamps, coloured levels, no stack traces.
func NewConfig(level zapcore.Level, encoding string) zap.Config {
	if encoding == "" {
		encoding = "console"
	}
	encodeLevel := zapcore.CapitalColorLevelEncoder
	if encoding == "json" {
		encodeLevel = zapcore.LowercaseLevelEncoder
	}
	return zap.Config{
		Level:    zap.NewAtomicLevelAt(level),
		Encoding: encoding,
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      zapcore.OmitKey,
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    encodeLevel,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeName:     zapcore.FullNameEncoder,
		},
		DisableStacktrace: true,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
	}
}

// New builds a named logger from textual level and encoding.
func New(name, level, encoding string) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, errcode.Wrap(errcode.InvalidParams, "logging", level, err)
		}
	}
	l, err := NewConfig(lvl, encoding).Build()
	if err != nil {
		return nil, errcode.Wrap(errcode.Error, "logging", "build", err)
	}
	return l.Named(name), nil
}
