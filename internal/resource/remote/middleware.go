// Package remote resolve a identidade de um bearer token consultando o
// serviço de contas, com cache por token.
package remote

import (
	"context"
	"errors"
	"time"

	"github.com/Joker-Pro-Max/Basalt/internal/iam/identity"
	"github.com/Joker-Pro-Max/Basalt/internal/infra/cache"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	CacheKeyPrefix     = "user_jwt:"
	DefaultTTL         = 300 * time.Second
	DefaultNegativeTTL = 300 * time.Second
)

func CacheKey(token string) string {
	return CacheKeyPrefix + token
}

// rejection é gravado no cache para tokens recusados. Sem uuid, Decode o lê
// como anônimo.
var rejection = []byte(`{"anonymous":true}`)

type Config struct {
	TTL         time.Duration
	NegativeTTL time.Duration
}

type Middleware struct {
	resolver    Resolver
	cache       cache.Store
	ttl         time.Duration
	negativeTTL time.Duration
	logger      *zap.Logger
}

func NewMiddleware(resolver Resolver, store cache.Store, cfg Config, logger *zap.Logger) *Middleware {
	if store == nil {
		store = cache.NewNoop()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Middleware{
		resolver:    resolver,
		cache:       store,
		ttl:         cfg.TTL,
		negativeTTL: cfg.NegativeTTL,
		logger:      logger,
	}
}

// Resolve nunca falha: qualquer problema resulta em identidade anônima.
func (m *Middleware) Resolve(ctx context.Context, authorization string) identity.Identity {
	token, ok := identity.ExtractBearerToken(authorization)
	if !ok {
		return identity.Anonymous()
	}
	key := CacheKey(token)

	raw, err := m.cache.Get(ctx, key)
	switch {
	case err == nil:
		if id, decodeErr := identity.Decode(raw); decodeErr == nil {
			return id
		}
		m.logger.Warn("[REMOTE-AUTH] entrada de cache ilegível, ignorando")
	case !errors.Is(err, cache.ErrMiss):
		m.logger.Warn("[REMOTE-AUTH] leitura do cache falhou", zap.Error(err))
	}

	id, err := m.resolver.Me(ctx, "Bearer "+token)
	if err != nil {
		if errors.Is(err, ErrRejected) {
			m.store(ctx, key, rejection, m.negativeTTL)
			return identity.Anonymous()
		}
		m.logger.Warn("[REMOTE-AUTH] serviço de contas indisponível", zap.Error(err))
		return identity.Anonymous()
	}
	if id.IsAnonymous() {
		return id
	}

	if err := cache.SetJSON(ctx, m.cache, key, id, m.ttl); err != nil {
		m.logger.Warn("[REMOTE-AUTH] escrita no cache falhou", zap.Error(err))
	}
	return id
}

func (m *Middleware) store(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	if err := m.cache.Set(ctx, key, value, ttl); err != nil {
		m.logger.Warn("[REMOTE-AUTH] escrita no cache falhou", zap.Error(err))
	}
}

// Handler anexa a identidade resolvida e segue adiante; nunca aborta.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity.Set(c, m.Resolve(c.Request.Context(), c.GetHeader("Authorization")))
		c.Next()
	}
}
