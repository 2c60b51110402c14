package acess_log

import (
	"context"

	"github.com/Joker-Pro-Max/Basalt/internal/pkg/log/batch"

	"go.uber.org/zap"
)

type Service struct {
	writer *batch.Writer[AccessLog]
}

func NewService(sink batch.Sink[AccessLog], cfg batch.Config, logger *zap.Logger) *Service {
	return &Service{writer: batch.New("ACCESS-LOG", sink, cfg, logger)}
}

func (s *Service) Record(entry AccessLog) bool {
	return s.writer.Enqueue(entry)
}

func (s *Service) Close(ctx context.Context) error {
	return s.writer.Close(ctx)
}
