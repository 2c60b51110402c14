package user

import (
	"errors"
	"sync"

	"github.com/Joker-Pro-Max/Basalt/internal/iam/domain/system"
	"github.com/Joker-Pro-Max/Basalt/internal/iam/middleware"
	"github.com/Joker-Pro-Max/Basalt/internal/pkg/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	instance *UseUser
	once     sync.Once
	initErr  error

	ErrNotInitialized = errors.New("user module not initialized")
)

type UseUser struct {
	Repository Repository
	Service    Service
	Controller Controller
}

// New monta repositório, serviço e controller sobre o registro de sistemas
// já inicializado.
func New(db *gorm.DB, systems *system.UseSystem, mw middleware.Middleware, logger *zap.Logger) (*UseUser, error) {
	once.Do(func() {
		switch {
		case db == nil:
			initErr = errors.New("database connection cannot be nil")
			return
		case systems == nil:
			initErr = errors.New("system registry is required")
			return
		case mw == nil:
			initErr = errors.New("auth middleware is required")
			return
		}

		repo := NewRepository(db, systems.Repository)
		svc := NewService(repo, systems.Service, util.UsePassword(), logger)
		instance = &UseUser{
			Repository: repo,
			Service:    svc,
			Controller: NewController(svc, mw, logger),
		}
	})

	return instance, initErr
}

func MustUse() *UseUser {
	if instance == nil {
		panic(ErrNotInitialized)
	}
	return instance
}
