package model

import (
	"time"

	"github.com/google/uuid"
)

type Role struct {
	ID          uint         `gorm:"primaryKey"`
	UUID        uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex"`
	SystemID    uint         `gorm:"not null;index"`
	Name        string       `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description *string      `gorm:"type:text"`
	CreatedByID *uint        `gorm:"index"`
	Permissions []Permission `gorm:"many2many:account_role_permissions;constraint:OnDelete:CASCADE"`
	System      System       `gorm:"foreignKey:SystemID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt   time.Time    `gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt   time.Time    `gorm:"column:updated_at;not null;autoUpdateTime"`
}

func (Role) TableName() string {
	return "account_role"
}
