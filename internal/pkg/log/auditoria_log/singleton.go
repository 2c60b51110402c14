package auditoria_log

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

	ErrDisabled = errors.New("audit log disabled in config")
)

type Config struct {
	Enabled bool
	Batch   batch.Config
}

// New cria a instância global uma única vez. Desativado, Record vira no-op.
func New(db *gorm.DB, cfg Config, logger *zap.Logger) (*Service, error) {
	once.Do(func() {
		if !cfg.Enabled {
			initErr = ErrDisabled
			return
		}
		if db == nil {
			initErr = errors.New("database required for audit log")
			return
		}
		instance = NewService(batch.GormSink[AuditLog](db, cfg.Batch.BatchSize), cfg.Batch, logger)
	})

	return instance, initErr
}

// MustUse retorna a instância global (pode ser nil).
func MustUse() *Service {
	return instance
}

func Record(entry AuditLog) {
	if instance == nil {
		return
	}
	instance.Record(entry)
}

// Close drena a fila da instância global.
func Close(ctx context.Context) error {
	if instance == nil {
		return nil
	}
	return instance.Close(ctx)
}
