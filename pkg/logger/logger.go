package logger

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds logger settings.
type Config struct {
	Level       string
	ServiceName string
	Development bool
}

var (
	mu     sync.RWMutex
	global = zap.NewNop()
)

// Init builds the process logger. Call once at startup before Get.
func Init(cfg *Config) error {
	var (
		log *zap.Logger
		err error
	)

	if cfg.Development {
		log, err = zap.NewDevelopment()
	} else {
		zc := zap.NewProductionConfig()
		if cfg.Level != "" {
			var lvl zapcore.Level
			if err := lvl.UnmarshalText([]byte(cfg.Level)); err == nil {
				zc.Level = zap.NewAtomicLevelAt(lvl)
			}
		}
		log, err = zc.Build()
	}
	if err != nil {
		return fmt.Errorf("logger init: %w", err)
	}

	if cfg.ServiceName != "" {
		log = log.With(zap.String("service", cfg.ServiceName))
	}

	mu.Lock()
	global = log
	mu.Unlock()
	return nil
}

// Get returns the process logger; a no-op logger before Init.
func Get() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// Sync flushes buffered log entries. Safe to defer from main.
func Sync() {
	_ = Get().Sync()
}
