package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	c *redis.Client
}

// NewRedis cria um Store compartilhado entre instâncias.
func NewRedis(addr, password string, db int) Store {
	return NewRedisFromClient(redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}))
}

func NewRedisFromClient(c *redis.Client) Store {
	return &redisStore{c: c}
}

func (r *redisStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.c.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, err
	}
	return val, nil
}

func (r *redisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.c.Set(ctx, key, value, ttl).Err()
}

func (r *redisStore) Delete(ctx context.Context, key string) error {
	return r.c.Del(ctx, key).Err()
}

// Ping testa a conexão quando o Store é baseado em redis.
func Ping(ctx context.Context, s Store) error {
	rs, ok := s.(*redisStore)
	if !ok {
		return nil
	}
	return rs.c.Ping(ctx).Err()
}
