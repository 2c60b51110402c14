package account

import (
	"errors"
	"sync"

	"github.com/Joker-Pro-Max/Basalt/internal/iam/domain/user"
	"github.com/Joker-Pro-Max/Basalt/internal/iam/middleware"
	"github.com/Joker-Pro-Max/Basalt/internal/pkg/util"

	"go.uber.org/zap"
)

var (
	instance *UseAccount
	once     sync.Once
	initErr  error
)

type UseAccount struct {
	Service    Service
	Controller Controller
}

func New(users user.Service, tokens TokenIssuer, mw middleware.Middleware, logger *zap.Logger) (*UseAccount, error) {
	once.Do(func() {
		if users == nil || tokens == nil || mw == nil {
			initErr = errors.New("account dependencies cannot be nil")
			return
		}

		svc := NewService(users, util.UsePassword(), tokens, logger)
		instance = &UseAccount{
			Service:    svc,
			Controller: NewController(svc, mw, logger),
		}
	})

	return instance, initErr
}
