package cache

import (
	"context"
	"time"
)

type noopStore struct{}

// NewNoop retorna um Store que nunca guarda nada (cache desabilitado).
func NewNoop() Store { return noopStore{} }

func (noopStore) Get(context.Context, string) ([]byte, error)              { return nil, ErrMiss }
func (noopStore) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (noopStore) Delete(context.Context, string) error                     { return nil }
