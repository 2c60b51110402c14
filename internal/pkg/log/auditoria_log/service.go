package auditoria_log

import (
	"context"
	"time"

	"github.com/Joker-Pro-Max/Basalt/internal/pkg/log/batch"

	"go.uber.org/zap"
)

type Service struct {
	writer *batch.Writer[AuditLog]
}

func NewService(sink batch.Sink[AuditLog], cfg batch.Config, logger *zap.Logger) *Service {
	return &Service{writer: batch.New("AUDIT-LOG", sink, cfg, logger)}
}

// Record enfileira o registro sem bloquear a requisição.
func (s *Service) Record(entry AuditLog) bool {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	return s.writer.Enqueue(entry)
}

func (s *Service) Dropped() int64 { return s.writer.Dropped() }

func (s *Service) Close(ctx context.Context) error {
	return s.writer.Close(ctx)
}
