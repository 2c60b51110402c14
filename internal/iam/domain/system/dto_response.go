package system

import (
	"time"

	"github.com/Joker-Pro-Max/Basalt/internal/iam/domain/model"

	"github.com/google/uuid"
)

type SystemResponseDto struct {
	UUID        uuid.UUID `json:"uuid"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type SystemsResponseDto struct {
	Count    int64               `json:"count"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
	Results  []SystemResponseDto `json:"results"`
}

func NewSystemResponse(s model.System) SystemResponseDto {
	return SystemResponseDto{
		UUID:        s.UUID,
		Code:        s.Code,
		Name:        s.Name,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
	}
}
