package logger

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	instance *zap.Logger
	mu       sync.RWMutex
)

// Init configura o logger global de acordo com o ambiente ("dev" ou "prod").
// Em "prod" a saída é JSON; em "dev" é console colorido com nível debug.
func Init(env string) (*zap.Logger, error) {
	var cfg zap.Config
	switch env {
	case "prod":
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	case "dev", "":
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return nil, fmt.Errorf("invalid environment value '%s': must be 'dev' or 'prod'", env)
	}

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}

	mu.Lock()
	instance = l
	mu.Unlock()
	zap.ReplaceGlobals(l)
	return l, nil
}

// Use retorna o logger inicializado ou um logger no-op.
func Use() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if instance == nil {
		return zap.NewNop()
	}
	return instance
}

// Sync descarrega os buffers do logger global.
func Sync() {
	_ = Use().Sync()
}
