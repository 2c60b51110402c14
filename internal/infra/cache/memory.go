package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type memoryStore struct {
	c *gocache.Cache
}

// NewMemory cria um Store em memória, local ao processo.
func NewMemory() Store {
	return &memoryStore{c: gocache.New(5*time.Minute, 10*time.Minute)}
}

func (m *memoryStore) Get(_ context.Context, key string) ([]byte, error) {
	v, found := m.c.Get(key)
	if !found {
		return nil, ErrMiss
	}
	raw, ok := v.([]byte)
	if !ok {
		return nil, ErrMiss
	}
	return raw, nil
}

func (m *memoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	// copia para que o chamador possa reutilizar o buffer
	buf := make([]byte, len(value))
	copy(buf, value)
	m.c.Set(key, buf, ttl)
	return nil
}

func (m *memoryStore) Delete(_ context.Context, key string) error {
	m.c.Delete(key)
	return nil
}
