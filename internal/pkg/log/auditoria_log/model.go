package auditoria_log

import (
	"time"

	"github.com/google/uuid"
)

type Action string

const (
	ActionRegister Action = "register"
	ActionLogin    Action = "login"
	ActionRefresh  Action = "refresh"
)

// AuditLog registra o resultado de uma operação de conta. Input já chega
// redigido (ver Redact).
type AuditLog struct {
	ID         uint       `gorm:"primaryKey"`
	SystemCode string     `gorm:"size:50"`
	UserUUID   *uuid.UUID `gorm:"type:uuid"`
	Identifier string     `gorm:"type:text"`
	RequestID  string     `gorm:"size:100;not null"`
	Action     Action     `gorm:"size:50;not null"`
	Success    bool       `gorm:"not null"`
	Detail     string     `gorm:"type:text"`
	ClientIP   string     `gorm:"type:text"`
	Input      string     `gorm:"type:text"`
	CreatedAt  time.Time  `gorm:"not null"`
}

func (AuditLog) TableName() string {
	return "audit_log"
}
