package system

import (
	"errors"
	"sync"
	"time"

	"github.com/Joker-Pro-Max/Basalt/internal/iam/middleware"
	"github.com/Joker-Pro-Max/Basalt/internal/infra/cache"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	instance *UseSystem
	once     sync.Once
	initErr  error

	ErrNotInitialized = errors.New("system registry not initialized")
)

// UseSystem agrupa as camadas do registro de sistemas.
type UseSystem struct {
	Repository Repository
	Service    Service
	Controller Controller
}

// New monta o registro uma única vez. O cache guarda sistemas por código
// durante ttl (zero desliga o cache).
func New(db *gorm.DB, store cache.Store, ttl time.Duration, mw middleware.Middleware, logger *zap.Logger) (*UseSystem, error) {
	once.Do(func() {
		if db == nil {
			initErr = errors.New("database connection cannot be nil")
			return
		}
		if store == nil {
			store = cache.NewNoop()
		}

		repo := NewRepository(db)
		svc := NewService(repo, store, ttl, logger)
		instance = &UseSystem{
			Repository: repo,
			Service:    svc,
			Controller: NewController(svc, mw, logger),
		}
	})

	return instance, initErr
}

// MustUse entra em pânico se New ainda não rodou.
func MustUse() *UseSystem {
	if instance == nil {
		panic(ErrNotInitialized)
	}
	return instance
}
