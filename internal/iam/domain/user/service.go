package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/Joker-Pro-Max/Basalt/internal/iam/domain/model"
	"github.com/Joker-Pro-Max/Basalt/internal/iam/domain/system"
	"github.com/Joker-Pro-Max/Basalt/internal/pkg/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Resolve(ctx context.Context, account, systemCode string) (User, error)
	ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error)
	Create(ctx context.Context, in NewUser) (User, error)
	GetByUUID(ctx context.Context, id uuid.UUID) (User, error)
	List(ctx context.Context, filter ListFilter, page, pageSize int) ([]User, int64, error)
}

type serviceImpl struct {
	repository Repository
	systems    system.Service
	password   util.Password
	logger     *zap.Logger
}

func NewService(repository Repository, systems system.Service, password util.Password, logger *zap.Logger) Service {
	if password == nil {
		password = util.UsePassword()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &serviceImpl{
		repository: repository,
		systems:    systems,
		password:   password,
		logger:     logger,
	}
}

// Resolve encontra exatamente um usuário para o identificador de conta no
// sistema informado. Um sistema inexistente devolve system.ErrNotFound,
// distinto de ErrNotFound.
func (s *serviceImpl) Resolve(ctx context.Context, account, systemCode string) (User, error) {
	sys, err := s.systems.GetByCode(ctx, systemCode)
	if err != nil {
		return User{}, err
	}

	kind := Classify(account)
	users, err := s.repository.FindByAccount(ctx, sys.ID, kind, account)
	if err != nil {
		return User{}, err
	}

	switch len(users) {
	case 0:
		s.logger.Info("[LOGIN] usuário não encontrado",
			zap.String("kind", kind.String()), zap.String("system", systemCode))
		return User{}, ErrNotFound
	case 1:
	default:
		s.logger.Warn("[LOGIN] múltiplos usuários para a mesma conta, usando o mais antigo",
			zap.String("kind", kind.String()),
			zap.String("system", systemCode),
			zap.Uint("user_id", users[0].ID))
	}
	u := users[0]
	if u.System == nil {
		u.System = &sys
	}
	return u, nil
}

func (s *serviceImpl) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	return s.repository.ExistsByEmailOrPhone(ctx, email, phone)
}

func (s *serviceImpl) Create(ctx context.Context, in NewUser) (User, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	if in.Email == "" && in.Phone == "" {
		return User{}, fmt.Errorf("%w: phone or email is required", ErrInvalidInput)
	}
	if in.SystemCode == "" || in.Password == "" {
		return User{}, ErrInvalidInput
	}

	hashPwd, err := s.password.Hash(in.Password)
	if err != nil {
		return User{}, err
	}

	newUser := User{
		UUID:        uuid.New(),
		Username:    in.Username,
		Email:       optional(in.Email),
		Phone:       optional(in.Phone),
		Password:    hashPwd,
		IsActive:    true,
		IsStaff:     in.IsStaff,
		IsSuperuser: in.IsSuperuser,
	}

	created, err := s.repository.Create(ctx, newUser, in.SystemCode, model.DefaultSystemName)
	if err != nil {
		return User{}, err
	}
	if created.System != nil {
		s.systems.Remember(ctx, *created.System)
	}
	return created, nil
}

func (s *serviceImpl) GetByUUID(ctx context.Context, id uuid.UUID) (User, error) {
	return s.repository.GetByUUID(ctx, id)
}

func (s *serviceImpl) List(ctx context.Context, filter ListFilter, page, pageSize int) ([]User, int64, error) {
	return s.repository.List(ctx, filter, page, pageSize)
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
