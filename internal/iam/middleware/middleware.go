package middleware

import (
	"errors"

	"github.com/Joker-Pro-Max/Basalt/internal/iam/identity"
	"github.com/Joker-Pro-Max/Basalt/internal/infra/jwt"
	"github.com/Joker-Pro-Max/Basalt/internal/pkg/rest_err"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AccessParser verifica tokens de acesso emitidos por este serviço.
type AccessParser interface {
	ParseAccess(token string) (*jwt.Claims, error)
}

type Middleware interface {
	SetContextAutorization() gin.HandlerFunc
	RequirePermission(codenames ...string) gin.HandlerFunc
}

type impl struct {
	parser AccessParser
	logger *zap.Logger
}

func NewMiddleware(parser AccessParser, logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &impl{
		parser: parser,
		logger: logger,
	}
}

// SetContextAutorization exige um bearer token de acesso válido e anexa a
// identidade do sujeito à requisição.
func (mw *impl) SetContextAutorization() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := identity.ExtractBearerToken(c.GetHeader("Authorization"))
		if !ok {
			e := rest_err.NewUnauthorizedError("authentication credentials were not provided")
			c.AbortWithStatusJSON(e.Code, e)
			return
		}

		claims, err := mw.parser.ParseAccess(token)
		if err != nil {
			var e *rest_err.RestErr
			if errors.Is(err, jwt.ErrTokenExpired) {
				e = rest_err.NewUnauthorizedError(jwt.ErrTokenExpired.Error())
			} else {
				mw.logger.Debug("[AUTH] token rejeitado", zap.Error(err))
				e = rest_err.NewUnauthorizedError(jwt.ErrTokenInvalid.Error())
			}
			c.AbortWithStatusJSON(e.Code, e)
			return
		}

		identity.Set(c, identity.FromClaims(claims))
		c.Next()
	}
}

func (mw *impl) RequirePermission(codenames ...string) gin.HandlerFunc {
	return identity.RequirePermission(codenames...)
}
