package account

import (
	"context"
	"errors"
	"strings"

	"github.com/Joker-Pro-Max/Basalt/internal/iam/domain/model"
	"github.com/Joker-Pro-Max/Basalt/internal/iam/domain/system"
	"github.com/Joker-Pro-Max/Basalt/internal/iam/domain/user"
	"github.com/Joker-Pro-Max/Basalt/internal/iam/identity"
	"github.com/Joker-Pro-Max/Basalt/internal/infra/jwt"
	"github.com/Joker-Pro-Max/Basalt/internal/pkg/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenIssuer emite e valida os pares de tokens deste serviço.
type TokenIssuer interface {
	IssuePair(s jwt.Subject) (jwt.TokenPair, error)
	ParseRefresh(token string) (*jwt.Claims, error)
}

type Service interface {
	Register(ctx context.Context, in RegisterInput) (UserEntity, error)
	Authenticate(ctx context.Context, account, password, systemCode string) (model.User, error)
	IssueTokens(u model.User) (jwt.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (jwt.TokenPair, error)
	Me(ctx context.Context, id uuid.UUID) (identity.Identity, error)
}

type implService struct {
	users    user.Service
	password util.Password
	tokens   TokenIssuer
	logger   *zap.Logger
}

func NewService(users user.Service, password util.Password, tokens TokenIssuer, logger *zap.Logger) Service {
	if password == nil {
		password = util.UsePassword()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &implService{
		users:    users,
		password: password,
		tokens:   tokens,
		logger:   logger,
	}
}

func (s *implService) Register(ctx context.Context, in RegisterInput) (UserEntity, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	if in.Email == "" && in.Phone == "" {
		return UserEntity{}, ErrInvalidInput
	}

	exists, err := s.users.ExistsByEmailOrPhone(ctx, in.Email, in.Phone)
	if err != nil {
		return UserEntity{}, err
	}
	if exists {
		return UserEntity{}, ErrDuplicateIdentifier
	}

	created, err := s.users.Create(ctx, user.NewUser{
		Username:   in.Username,
		Email:      in.Email,
		Phone:      in.Phone,
		Password:   in.Password,
		SystemCode: in.SystemCode,
	})
	if err != nil {
		switch {
		// corrida entre a checagem e o insert
		case errors.Is(err, user.ErrDuplicated):
			return UserEntity{}, ErrDuplicateIdentifier
		case errors.Is(err, user.ErrInvalidInput):
			return UserEntity{}, ErrInvalidInput
		}
		return UserEntity{}, err
	}

	s.logger.Info("[REGISTER] usuário criado",
		zap.String("uuid", created.UUID.String()),
		zap.String("system", created.SystemCode()))
	return newUserEntity(created), nil
}

// Authenticate resolve a conta, confere a senha e só então verifica se a
// conta está ativa.
func (s *implService) Authenticate(ctx context.Context, account, password, systemCode string) (model.User, error) {
	found, err := s.users.Resolve(ctx, account, systemCode)
	if err != nil {
		if errors.Is(err, system.ErrNotFound) || errors.Is(err, user.ErrNotFound) {
			return model.User{}, ErrInvalidCredentials
		}
		return model.User{}, err
	}

	if err := s.password.Compare(found.Password, password); err != nil {
		if !errors.Is(err, util.ErrPasswordMismatch) {
			s.logger.Warn("[LOGIN] hash de senha ilegível", zap.Uint("user_id", found.ID), zap.Error(err))
		}
		return model.User{}, ErrInvalidCredentials
	}

	if !found.IsActive {
		return model.User{}, ErrAccountDisabled
	}
	return found, nil
}

func (s *implService) IssueTokens(u model.User) (jwt.TokenPair, error) {
	return s.tokens.IssuePair(jwt.Subject{
		UUID:        u.UUID,
		Username:    u.Username,
		Email:       u.EmailValue(),
		Permissions: u.AllPermissions(),
	})
}

// Refresh troca um refresh token válido por um novo par, relendo o usuário
// para refletir permissões atuais e bloqueios.
func (s *implService) Refresh(ctx context.Context, refreshToken string) (jwt.TokenPair, error) {
	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return jwt.TokenPair{}, err
	}

	found, err := s.current(ctx, claims.UserID)
	if err != nil {
		return jwt.TokenPair{}, err
	}
	return s.IssueTokens(found)
}

// Me devolve a identidade atual do sujeito. Usuários removidos ou
// desativados deixam de ser reconhecidos.
func (s *implService) Me(ctx context.Context, id uuid.UUID) (identity.Identity, error) {
	found, err := s.current(ctx, id.String())
	if err != nil {
		return identity.Anonymous(), err
	}
	return identity.Authenticated(found.UUID.String(), found.Username, found.EmailValue(), found.AllPermissions()), nil
}

func (s *implService) current(ctx context.Context, rawID string) (model.User, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return model.User{}, jwt.ErrTokenInvalid
	}
	found, err := s.users.GetByUUID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) || errors.Is(err, user.ErrInvalidInput) {
			return model.User{}, ErrInvalidCredentials
		}
		return model.User{}, err
	}
	if !found.IsActive {
		return model.User{}, ErrAccountDisabled
	}
	return found, nil
}
