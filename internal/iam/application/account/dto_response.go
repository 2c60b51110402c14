package account

import (
	"github.com/Joker-Pro-Max/Basalt/internal/iam/domain/model"
	"github.com/Joker-Pro-Max/Basalt/internal/infra/jwt"

	"github.com/google/uuid"
)

type UserResponseDto struct {
	UUID        uuid.UUID `json:"uuid"`
	Username    string    `json:"username"`
	Email       *string   `json:"email"`
	Phone       *string   `json:"phone"`
	System      *string   `json:"system"`
	Permissions []string  `json:"permissions"`
}

type AuthResponse struct {
	Msg     string          `json:"msg,omitempty"`
	Refresh string          `json:"refresh"`
	Access  string          `json:"access"`
	User    UserResponseDto `json:"user"`
}

type TokenResponse struct {
	Refresh string `json:"refresh"`
	Access  string `json:"access"`
}

func newUserResponse(u model.User) UserResponseDto {
	var sys *string
	if code := u.SystemCode(); code != "" {
		sys = &code
	}
	return UserResponseDto{
		UUID:        u.UUID,
		Username:    u.Username,
		Email:       u.Email,
		Phone:       u.Phone,
		System:      sys,
		Permissions: u.AllPermissions(),
	}
}

func newAuthResponse(u model.User, pair jwt.TokenPair) AuthResponse {
	return AuthResponse{
		Refresh: pair.Refresh,
		Access:  pair.Access,
		User:    newUserResponse(u),
	}
}
