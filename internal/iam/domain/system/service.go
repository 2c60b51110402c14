package system

import (
	"context"
	"errors"
	"time"

	"github.com/Joker-Pro-Max/Basalt/internal/iam/domain/model"
	"github.com/Joker-Pro-Max/Basalt/internal/infra/cache"

	"go.uber.org/zap"
)

// DefaultCacheTTL é a validade de uma entrada system:{code}.
const DefaultCacheTTL = time.Hour

type Service interface {
	GetByCode(ctx context.Context, code string) (model.System, error)
	Remember(ctx context.Context, s model.System)
	List(ctx context.Context, page, pageSize int) ([]model.System, int64, error)
}

type implService struct {
	repository Repository
	cache      cache.Store
	ttl        time.Duration
	logger     *zap.Logger
}

func NewService(repository Repository, store cache.Store, ttl time.Duration, logger *zap.Logger) Service {
	if store == nil {
		store = cache.NewNoop()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &implService{
		repository: repository,
		cache:      store,
		ttl:        ttl,
		logger:     logger,
	}
}

func CacheKey(code string) string {
	return "system:" + code
}

// GetByCode consulta o cache antes do banco. O cache é apenas consultivo:
// qualquer falha nele cai para o repositório.
func (s *implService) GetByCode(ctx context.Context, code string) (model.System, error) {
	var cached model.System
	err := cache.GetJSON(ctx, s.cache, CacheKey(code), &cached)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn("[SYSTEM-CACHE] leitura falhou, consultando banco",
			zap.String("code", code), zap.Error(err))
	}

	found, err := s.repository.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.logger.Warn("[SYSTEM] sistema não encontrado", zap.String("code", code))
		}
		return model.System{}, err
	}
	s.Remember(ctx, found)
	return found, nil
}

func (s *implService) Remember(ctx context.Context, sys model.System) {
	if err := cache.SetJSON(ctx, s.cache, CacheKey(sys.Code), sys, s.ttl); err != nil {
		s.logger.Warn("[SYSTEM-CACHE] escrita falhou",
			zap.String("code", sys.Code), zap.Error(err))
	}
}

func (s *implService) List(ctx context.Context, page, pageSize int) ([]model.System, int64, error) {
	return s.repository.List(ctx, page, pageSize)
}
