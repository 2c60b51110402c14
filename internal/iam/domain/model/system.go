package model

import (
	"time"

	"github.com/google/uuid"
)

// DefaultSystemName é o nome dado a um sistema criado implicitamente no registro.
const DefaultSystemName = "Basalt"

// System é o tenant: um namespace isolado de usuários identificado por Code.
type System struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UUID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"uuid"`
	Code        string    `gorm:"type:varchar(50);not null;uniqueIndex" json:"code"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	CreatedByID *uint     `gorm:"index" json:"created_by_id,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null;autoUpdateTime" json:"updated_at"`
}

func (System) TableName() string {
	return "account_system"
}
