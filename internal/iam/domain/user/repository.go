package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Joker-Pro-Max/Basalt/internal/iam/domain/system"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Create(ctx context.Context, user User, systemCode, defaultSystemName string) (User, error)
	ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error)
	FindByAccount(ctx context.Context, systemID uint, kind AccountKind, account string) ([]User, error)
	GetByUUID(ctx context.Context, id uuid.UUID) (User, error)
	List(ctx context.Context, filter ListFilter, page, pageSize int) ([]User, int64, error)
}

type repositoryImpl struct {
	db      *gorm.DB
	systems system.Repository
}

func NewRepository(db *gorm.DB, systems system.Repository) Repository {
	return &repositoryImpl{
		db:      db,
		systems: systems,
	}
}

// Create grava o sistema (se ausente) e o usuário na mesma transação. As
// violações de unicidade do banco são a garantia final contra registros
// concorrentes com o mesmo e-mail ou telefone.
func (r *repositoryImpl) Create(ctx context.Context, user User, systemCode, defaultSystemName string) (User, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sys, err := r.systems.WithTx(tx).GetOrCreate(ctx, systemCode, defaultSystemName)
		if err != nil {
			return err
		}

		user.SystemID = &sys.ID
		user.System = nil
		if err := tx.Omit(clause.Associations).Create(&user).Error; err != nil {
			return translateError(err)
		}
		user.System = &sys
		return nil
	})
	if err != nil {
		return User{}, err
	}
	return user, nil
}

func (r *repositoryImpl) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	if email != "" {
		var count int64
		err := r.db.WithContext(ctx).Model(&User{}).
			Where("LOWER(email) = LOWER(?)", email).
			Count(&count).Error
		if err != nil {
			return false, err
		}
		if count > 0 {
			return true, nil
		}
	}
	if phone != "" {
		var count int64
		err := r.db.WithContext(ctx).Model(&User{}).
			Where("phone = ?", phone).
			Count(&count).Error
		if err != nil {
			return false, err
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}

// FindByAccount devolve no máximo dois usuários, do mais antigo para o mais
// novo; mais de um resultado indica anomalia de dados.
func (r *repositoryImpl) FindByAccount(ctx context.Context, systemID uint, kind AccountKind, account string) ([]User, error) {
	query := r.withAssociations(r.db.WithContext(ctx)).
		Where("system_id = ? AND is_deleted = ?", systemID, false)

	switch kind {
	case KindEmail:
		query = query.Where("LOWER(email) = LOWER(?)", account)
	case KindPhone:
		query = query.Where("phone = ?", account)
	default:
		query = query.Where("username = ?", account)
	}

	var users []User
	if err := query.Order("id ASC").Limit(2).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("find user by %s: %w", kind, err)
	}
	return users, nil
}

func (r *repositoryImpl) GetByUUID(ctx context.Context, id uuid.UUID) (User, error) {
	if id == uuid.Nil {
		return User{}, ErrInvalidInput
	}
	var u User
	err := r.withAssociations(r.db.WithContext(ctx)).
		Where("uuid = ? AND is_deleted = ?", id, false).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

func (r *repositoryImpl) List(ctx context.Context, filter ListFilter, page, pageSize int) ([]User, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []User
	offset := (page - 1) * pageSize
	result := r.withAssociations(r.filtered(ctx, filter)).
		Order("account_user.created_at DESC, account_user.id DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&users)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return users, total, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern monta o padrão LIKE de "contém"; % e _ do usuário são literais.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

func (r *repositoryImpl) filtered(ctx context.Context, filter ListFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&User{}).
		Where("account_user.is_deleted = ?", false)

	if filter.SystemCode != "" {
		query = query.Joins("INNER JOIN account_system ON account_system.id = account_user.system_id").
			Where("account_system.code = ?", filter.SystemCode)
	}
	if filter.Username != "" {
		query = query.Where("account_user.username LIKE ? ESCAPE '\\'", containsPattern(filter.Username))
	}
	if filter.Email != "" {
		query = query.Where("account_user.email LIKE ? ESCAPE '\\'", containsPattern(filter.Email))
	}
	if filter.Phone != "" {
		query = query.Where("account_user.phone LIKE ? ESCAPE '\\'", containsPattern(filter.Phone))
	}
	if filter.IsStaff != nil {
		query = query.Where("account_user.is_staff = ?", *filter.IsStaff)
	}
	if filter.IsActive != nil {
		query = query.Where("account_user.is_active = ?", *filter.IsActive)
	}
	if filter.IsSuperuser != nil {
		query = query.Where("account_user.is_superuser = ?", *filter.IsSuperuser)
	}
	if filter.RoleID != nil {
		query = query.Where(
			"EXISTS (SELECT 1 FROM account_user_roles ur WHERE ur.user_id = account_user.id AND ur.role_id = ?)",
			*filter.RoleID,
		)
	}
	return query
}

func (r *repositoryImpl) withAssociations(db *gorm.DB) *gorm.DB {
	return db.Preload("System").Preload("Permissions").Preload("Roles.Permissions")
}

func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // Unique violation
			return ErrDuplicated
		case "23514": // Check violation (email/telefone ausentes)
			return ErrInvalidInput
		}
		return fmt.Errorf("database error (%s): %w", pgErr.Code, err)
	}
	return err
}
