// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger builds the console logger for level: none, normal (info and
// up), or debug.
func newLogger(level string, w zapcore.WriteSyncer) (*zap.Logger, error) {
	var min zapcore.Level
	switch level {
	case "none":
		return zap.NewNop(), nil
	case "normal", "":
		min = zapcore.InfoLevel
	case "debug":
		min = zapcore.DebugLevel
	default:
		return nil, fmt.Errorf("unknown log level %q: use none, normal, or debug", level)
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(w), zap.NewAtomicLevelAt(min))
	return zap.New(core), nil
}
