package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var (
	ErrMiss          = errors.New("cache miss")
	ErrUnknownDriver = errors.New("unknown cache driver")
)

const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverNone   = "none"
)

// Store é o contrato de chave/valor com expiração usado pelas camadas de
// domínio. Um TTL <= 0 desabilita a escrita: a entrada nunca é gravada.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type Config struct {
	Driver        string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// New cria o Store de acordo com o driver configurado.
func New(cfg Config) (Store, error) {
	switch cfg.Driver {
	case "", DriverMemory:
		return NewMemory(), nil
	case DriverRedis:
		if cfg.RedisAddr == "" {
			return nil, errors.New("redis address cannot be empty")
		}
		return NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB), nil
	case DriverNone:
		return NewNoop(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, cfg.Driver)
	}
}

// GetJSON lê a chave e decodifica o JSON em dst.
func GetJSON(ctx context.Context, s Store, key string, dst any) error {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode cache entry %s: %w", key, err)
	}
	return nil
}

// SetJSON codifica v em JSON e grava com o TTL informado.
func SetJSON(ctx context.Context, s Store, key string, v any, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode cache entry %s: %w", key, err)
	}
	return s.Set(ctx, key, raw, ttl)
}
