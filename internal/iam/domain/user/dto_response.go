package user

import (
	"time"

	"github.com/google/uuid"
)

type MyInfoResponseDto struct {
	UUID        uuid.UUID `json:"uuid"`
	Username    string    `json:"username"`
	Email       *string   `json:"email"`
	Phone       *string   `json:"phone"`
	SystemCode  string    `json:"system_code"`
	Roles       []string  `json:"roles"`
	Permissions []string  `json:"permissions"`
}

type UserListItemDto struct {
	UUID        uuid.UUID `json:"uuid"`
	Username    string    `json:"username"`
	Email       *string   `json:"email"`
	Phone       *string   `json:"phone"`
	SystemCode  string    `json:"system_code"`
	IsActive    bool      `json:"is_active"`
	IsStaff     bool      `json:"is_staff"`
	IsSuperuser bool      `json:"is_superuser"`
	Roles       []string  `json:"roles"`
	CreatedAt   time.Time `json:"created_at"`
}

type UserListResponseDto struct {
	Count    int64             `json:"count"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Results  []UserListItemDto `json:"results"`
}

func NewMyInfoResponse(u User) MyInfoResponseDto {
	return MyInfoResponseDto{
		UUID:        u.UUID,
		Username:    u.Username,
		Email:       u.Email,
		Phone:       u.Phone,
		SystemCode:  u.SystemCode(),
		Roles:       u.RoleNames(),
		Permissions: u.AllPermissions(),
	}
}

func NewUserListItem(u User) UserListItemDto {
	return UserListItemDto{
		UUID:        u.UUID,
		Username:    u.Username,
		Email:       u.Email,
		Phone:       u.Phone,
		SystemCode:  u.SystemCode(),
		IsActive:    u.IsActive,
		IsStaff:     u.IsStaff,
		IsSuperuser: u.IsSuperuser,
		Roles:       u.RoleNames(),
		CreatedAt:   u.CreatedAt,
	}
}
