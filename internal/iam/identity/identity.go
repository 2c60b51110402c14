// Package identity define quem está chamando a API: um chamador anônimo ou
// um sujeito autenticado com suas claims. A identidade é resolvida uma única
// vez por requisição e transportada explicitamente.
package identity

import (
	"context"
	"encoding/json"
	"slices"

	"github.com/Joker-Pro-Max/Basalt/internal/infra/jwt"
)

type Identity struct {
	Authenticated bool     `json:"-"`
	UUID          string   `json:"uuid"`
	Username      string   `json:"username"`
	Email         string   `json:"email"`
	Permissions   []string `json:"permissions"`
}

func Anonymous() Identity {
	return Identity{}
}

func Authenticated(uuid, username, email string, permissions []string) Identity {
	if permissions == nil {
		permissions = []string{}
	}
	return Identity{
		Authenticated: true,
		UUID:          uuid,
		Username:      username,
		Email:         email,
		Permissions:   permissions,
	}
}

// FromClaims monta a identidade a partir de um token de acesso já verificado.
func FromClaims(c *jwt.Claims) Identity {
	return Authenticated(c.UserID, c.Username, c.Email, c.Permissions)
}

// Decode interpreta o payload de identidade devolvido pelo endpoint "me".
// Um payload sem uuid não identifica ninguém e resulta em anônimo.
func Decode(raw []byte) (Identity, error) {
	var id Identity
	if err := json.Unmarshal(raw, &id); err != nil {
		return Anonymous(), err
	}
	if id.UUID == "" {
		return Anonymous(), nil
	}
	return Authenticated(id.UUID, id.Username, id.Email, id.Permissions), nil
}

func (i Identity) IsAnonymous() bool {
	return !i.Authenticated
}

func (i Identity) HasPermission(codename string) bool {
	return i.Authenticated && slices.Contains(i.Permissions, codename)
}

type ctxKey struct{}

func WithContext(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) Identity {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	if !ok {
		return Anonymous()
	}
	return id
}
