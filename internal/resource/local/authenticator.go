// Package local autentica bearer tokens decodificando o JWT com a chave
// compartilhada, sem chamada de rede.
package local

import (
	"errors"

	"github.com/Joker-Pro-Max/Basalt/internal/iam/identity"
	"github.com/Joker-Pro-Max/Basalt/internal/infra/jwt"
	"github.com/Joker-Pro-Max/Basalt/internal/pkg/rest_err"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Authenticator struct {
	key    []byte
	logger *zap.Logger
}

func NewAuthenticator(signingKey string, logger *zap.Logger) (*Authenticator, error) {
	if signingKey == "" {
		return nil, errors.New("signing key cannot be empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Authenticator{key: []byte(signingKey), logger: logger}, nil
}

// Authenticate devolve anônimo quando não há bearer token. Um token presente
// mas inválido é erro (jwt.ErrTokenExpired ou jwt.ErrTokenInvalid).
func (a *Authenticator) Authenticate(authorization string) (identity.Identity, error) {
	token, ok := identity.ExtractBearerToken(authorization)
	if !ok {
		return identity.Anonymous(), nil
	}
	claims, err := jwt.Parse(token, a.key, jwt.TypeAccess)
	if err != nil {
		return identity.Anonymous(), err
	}
	return identity.FromClaims(claims), nil
}

func (a *Authenticator) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := a.Authenticate(c.GetHeader("Authorization"))
		if err != nil {
			detail := jwt.ErrTokenInvalid.Error()
			if errors.Is(err, jwt.ErrTokenExpired) {
				detail = jwt.ErrTokenExpired.Error()
			} else {
				a.logger.Debug("[LOCAL-AUTH] token rejeitado", zap.Error(err))
			}
			e := rest_err.NewUnauthorizedError(detail)
			c.AbortWithStatusJSON(e.Code, e)
			return
		}
		identity.Set(c, id)
		c.Next()
	}
}
