package acess_log

import (
	"time"

	"github.com/google/uuid"
)

// AccessLog é uma linha por requisição HTTP atendida. Route guarda o padrão
// registrado no gin (ex.: /api/account/me) e Path o caminho real.
type AccessLog struct {
	ID         uint       `gorm:"primaryKey"`
	Service    string     `gorm:"size:20;not null"`
	UserUUID   *uuid.UUID `gorm:"type:uuid"`
	Identifier string     `gorm:"type:text"`
	RequestID  string     `gorm:"size:100;not null"`

	Method     string `gorm:"size:10;not null"`
	Route      string `gorm:"type:text"`
	Path       string `gorm:"type:text;not null"`
	StatusCode int    `gorm:"not null"`
	IP         string `gorm:"type:inet;not null"`
	UserAgent  string `gorm:"type:text"`

	RequestTime time.Time `gorm:"not null"`
	LatencyMs   float64   `gorm:"not null"`
}

func (AccessLog) TableName() string {
	return "access_log"
}
