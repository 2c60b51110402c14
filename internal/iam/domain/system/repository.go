package system

import (
	"context"
	"errors"
	"fmt"

	"github.com/Joker-Pro-Max/Basalt/internal/iam/domain/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	GetByCode(ctx context.Context, code string) (model.System, error)
	GetOrCreate(ctx context.Context, code, defaultName string) (model.System, error)
	List(ctx context.Context, page, pageSize int) ([]model.System, int64, error)
	WithTx(tx *gorm.DB) Repository
}

type implRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &implRepository{db: db}
}

func (r *implRepository) WithTx(tx *gorm.DB) Repository {
	return &implRepository{db: tx}
}

func (r *implRepository) GetByCode(ctx context.Context, code string) (model.System, error) {
	if code == "" {
		return model.System{}, ErrInvalidInput
	}
	var m model.System
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.System{}, ErrNotFound
		}
		return model.System{}, fmt.Errorf("read system %s: %w", code, err)
	}
	return m, nil
}

// GetOrCreate insere o sistema se ele ainda não existir. O ON CONFLICT
// garante que dois registros concorrentes no mesmo código não falhem.
func (r *implRepository) GetOrCreate(ctx context.Context, code, defaultName string) (model.System, error) {
	if code == "" {
		return model.System{}, ErrInvalidInput
	}
	candidate := model.System{
		UUID: uuid.New(),
		Code: code,
		Name: defaultName,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "code"}}, DoNothing: true}).
		Create(&candidate).Error
	if err != nil {
		return model.System{}, fmt.Errorf("create system %s: %w", code, err)
	}
	return r.GetByCode(ctx, code)
}

func (r *implRepository) List(ctx context.Context, page, pageSize int) ([]model.System, int64, error) {
	var (
		systems []model.System
		total   int64
	)
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	if err := r.db.WithContext(ctx).Model(&model.System{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * pageSize
	if err := r.db.WithContext(ctx).Order("id ASC").Limit(pageSize).Offset(offset).Find(&systems).Error; err != nil {
		return nil, 0, err
	}
	return systems, total, nil
}
