package logger

import (
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var current atomic.Pointer[zap.Logger]

func init() {
	current.Store(zap.NewNop())
}

// Initialize replaces the global logger with a console logger at the given level.
func Initialize(level zap.AtomicLevel) error {
	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.DisableStacktrace = true
	log, err := cfg.Build()
	if err != nil {
		return err
	}
	Set(log)
	return nil
}

// Set replaces the global logger.
func Set(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	current.Store(log)
}

func Logger() *zap.Logger {
	return current.Load()
}

func Sugar() *zap.SugaredLogger {
	return current.Load().Sugar()
}

// Sync flushes buffered log entries.
func Sync() {
	_ = current.Load().Sync()
}
