package account

import (
	"github.com/Joker-Pro-Max/Basalt/internal/iam/domain/model"

	"github.com/google/uuid"
)

type RegisterInput struct {
	Username   string
	Email      string
	Phone      string
	Password   string
	SystemCode string
}

// UserEntity é a visão de domínio de um usuário recém-registrado. Record é
// o registro persistido, usado para emitir os tokens.
type UserEntity struct {
	UUID        uuid.UUID
	Username    string
	Email       *string
	Phone       *string
	SystemCode  string
	Permissions []string
	Record      model.User
}

func newUserEntity(u model.User) UserEntity {
	return UserEntity{
		UUID:        u.UUID,
		Username:    u.Username,
		Email:       u.Email,
		Phone:       u.Phone,
		SystemCode:  u.SystemCode(),
		Permissions: u.AllPermissions(),
		Record:      u,
	}
}
