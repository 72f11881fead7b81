// File: internal/logger/logger.go
// Author: momentics <momentics@gmail.com>
//
// Process-wide zap logger for the library's own diagnostics (leak
// reports, pool overflow). Defaults to a production config at warn level
// so a silent consumer stays silent until something goes wrong.

package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// L is the global logger instance.
var L = zap.NewNop()

func init() {
	// Best-effort default; Init replaces it when the host application
	// wants a specific level.
	if l, err := build("warn"); err == nil {
		L = l
	}
}

// Init initializes the global logger at the given level
// (debug|info|warn|error).
func Init(level string) error {
	l, err := build(level)
	if err != nil {
		return err
	}
	L = l
	return nil
}

func build(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.WarnLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapLevel)
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return config.Build()
}

// Sync flushes any buffered log entries.
func Sync() {
	if L != nil {
		_ = L.Sync()
	}
}
