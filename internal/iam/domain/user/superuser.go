package user

import (
	"context"
	"errors"
)

var ErrSuperuserExists = errors.New("a superuser already exists")

const (
	DefaultSuperuserName   = "admin"
	DefaultSuperuserSystem = "default"
)

// CreateSuperuser cria o primeiro superusuário. Recusa quando já existe um.
func CreateSuperuser(ctx context.Context, svc Service, in NewUser) (User, error) {
	yes := true
	_, total, err := svc.List(ctx, ListFilter{IsSuperuser: &yes}, 1, 1)
	if err != nil {
		return User{}, err
	}
	if total > 0 {
		return User{}, ErrSuperuserExists
	}

	if in.Username == "" {
		in.Username = DefaultSuperuserName
	}
	if in.SystemCode == "" {
		in.SystemCode = DefaultSuperuserSystem
	}
	in.IsStaff = true
	in.IsSuperuser = true
	return svc.Create(ctx, in)
}
