// Package batch grava registros de log em lotes a partir de uma fila
// limitada. A requisição nunca espera pelo banco: se a fila estiver cheia o
// registro é descartado e contado.
package batch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrClosed = errors.New("batch writer closed")

// Sink persiste um lote. Implementações devem aceitar lotes de qualquer tamanho.
type Sink[T any] interface {
	Save(ctx context.Context, entries []T) error
}

type Config struct {
	QueueSize     int
	BatchSize     int
	FlushInterval time.Duration
	SaveTimeout   time.Duration
}

func DefaultConfig() Config {
	return Config{
		QueueSize:     1024,
		BatchSize:     100,
		FlushInterval: time.Second,
		SaveTimeout:   5 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.QueueSize <= 0 {
		c.QueueSize = d.QueueSize
	}
	if c.BatchSize <= 0 {
		c.BatchSize = d.BatchSize
	}
	if c.FlushInterval <= 0 {
		c.FlushInterval = d.FlushInterval
	}
	if c.SaveTimeout <= 0 {
		c.SaveTimeout = d.SaveTimeout
	}
	return c
}

type Writer[T any] struct {
	name   string
	sink   Sink[T]
	cfg    Config
	logger *zap.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan T
	done   chan struct{}

	dropped atomic.Int64
	failed  atomic.Int64
}

// New inicia o worker de gravação. Chame Close para drenar a fila.
func New[T any](name string, sink Sink[T], cfg Config, logger *zap.Logger) *Writer[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg = cfg.withDefaults()
	w := &Writer[T]{
		name:   name,
		sink:   sink,
		cfg:    cfg,
		logger: logger,
		queue:  make(chan T, cfg.QueueSize),
		done:   make(chan struct{}),
	}
	go w.run()
	return w
}

// Enqueue nunca bloqueia. Retorna false quando o registro foi descartado.
func (w *Writer[T]) Enqueue(entry T) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		w.dropped.Add(1)
		return false
	}
	select {
	case w.queue <- entry:
		return true
	default:
		if w.dropped.Add(1) == 1 {
			w.logger.Warn("["+w.name+"] fila cheia, descartando registros", zap.Int("queue_size", w.cfg.QueueSize))
		}
		return false
	}
}

// Dropped conta registros descartados (fila cheia ou writer fechado).
func (w *Writer[T]) Dropped() int64 { return w.dropped.Load() }

// Failed conta registros cujo lote falhou ao gravar.
func (w *Writer[T]) Failed() int64 { return w.failed.Load() }

// Close para de aceitar registros e espera o worker gravar o que restou.
func (w *Writer[T]) Close(ctx context.Context) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrClosed
	}
	w.closed = true
	close(w.queue)
	w.mu.Unlock()

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Writer[T]) run() {
	defer close(w.done)
	ticker := time.NewTicker(w.cfg.FlushInterval)
	defer ticker.Stop()

	pending := make([]T, 0, w.cfg.BatchSize)
	for {
		select {
		case entry, ok := <-w.queue:
			if !ok {
				w.flush(pending)
				return
			}
			pending = append(pending, entry)
			if len(pending) >= w.cfg.BatchSize {
				w.flush(pending)
				pending = make([]T, 0, w.cfg.BatchSize)
			}
		case <-ticker.C:
			if len(pending) > 0 {
				w.flush(pending)
				pending = make([]T, 0, w.cfg.BatchSize)
			}
		}
	}
}

func (w *Writer[T]) flush(entries []T) {
	if len(entries) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), w.cfg.SaveTimeout)
	defer cancel()
	if err := w.sink.Save(ctx, entries); err != nil {
		w.failed.Add(int64(len(entries)))
		w.logger.Error("["+w.name+"] falha ao gravar lote", zap.Int("entries", len(entries)), zap.Error(err))
	}
}

type gormSink[T any] struct {
	db        *gorm.DB
	batchSize int
}

// GormSink grava o lote com um único INSERT por bloco de batchSize linhas.
func GormSink[T any](db *gorm.DB, batchSize int) Sink[T] {
	if batchSize <= 0 {
		batchSize = DefaultConfig().BatchSize
	}
	return &gormSink[T]{db: db, batchSize: batchSize}
}

func (s *gormSink[T]) Save(ctx context.Context, entries []T) error {
	return s.db.WithContext(ctx).CreateInBatches(&entries, s.batchSize).Error
}
