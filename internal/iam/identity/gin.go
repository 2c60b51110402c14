package identity

import (
	"fmt"
	"strings"

	"github.com/Joker-Pro-Max/Basalt/internal/pkg/rest_err"

	"github.com/gin-gonic/gin"
)

const ContextKey = "AuthenticatedIdentityKey"

// Set anexa a identidade ao gin.Context e ao context.Context da requisição.
func Set(c *gin.Context, id Identity) {
	c.Set(ContextKey, id)
	c.Request = c.Request.WithContext(WithContext(c.Request.Context(), id))
}

func Get(c *gin.Context) Identity {
	value, exists := c.Get(ContextKey)
	if !exists {
		return Anonymous()
	}
	id, ok := value.(Identity)
	if !ok {
		return Anonymous()
	}
	return id
}

// RequireIdentity rejeita chamadores anônimos com 401.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if Get(c).IsAnonymous() {
			e := rest_err.NewUnauthorizedError("authentication credentials were not provided")
			c.AbortWithStatusJSON(e.Code, e)
			return
		}
		c.Next()
	}
}

// RequirePermission exige todas as permissões informadas.
func RequirePermission(codenames ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := Get(c)
		if id.IsAnonymous() {
			e := rest_err.NewUnauthorizedError("authentication credentials were not provided")
			c.AbortWithStatusJSON(e.Code, e)
			return
		}
		for _, codename := range codenames {
			if !id.HasPermission(codename) {
				e := rest_err.NewForbiddenError(fmt.Sprintf("permission required: %v", codenames))
				c.AbortWithStatusJSON(e.Code, e)
				return
			}
		}
		c.Next()
	}
}

// ExtractBearerToken devolve o token de um cabeçalho "Authorization: Bearer <token>".
func ExtractBearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return "", false
	}
	return token, true
}
