package acess_log

import (
	"context"
	"errors"
	"sync"

	"github.com/Joker-Pro-Max/Basalt/internal/pkg/log/batch"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	instance *Service
	once     sync.Once
	initErr  error

	ErrDisabled = errors.New("access log disabled in config")
)

type Config struct {
	Enabled bool
	Batch   batch.Config
}

// New cria a instância global uma única vez.
func New(db *gorm.DB, cfg Config, logger *zap.Logger) (*Service, error) {
	once.Do(func() {
		if !cfg.Enabled {
			initErr = ErrDisabled
			return
		}
		if db == nil {
			initErr = errors.New("database required for access log")
			return
		}
		instance = NewService(batch.GormSink[AccessLog](db, cfg.Batch.BatchSize), cfg.Batch, logger)
	})

	return instance, initErr
}

// MustUse simplesmente retorna a instância (pode ser nil)
func MustUse() *Service {
	return instance
}

func Close(ctx context.Context) error {
	if instance == nil {
		return nil
	}
	return instance.Close(ctx)
}
