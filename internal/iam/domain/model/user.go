package model

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID          uint         `gorm:"primaryKey"`
	UUID        uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex"`
	SystemID    *uint        `gorm:"index"`
	Username    string       `gorm:"type:varchar(150);not null;index"`
	Email       *string      `gorm:"type:varchar(254)"`
	Phone       *string      `gorm:"type:varchar(20)"`
	Password    string       `gorm:"column:password_hash;type:varchar(255);not null"`
	IsActive    bool         `gorm:"not null;default:true"`
	IsStaff     bool         `gorm:"not null;default:false"`
	IsSuperuser bool         `gorm:"not null;default:false"`
	IsDeleted   bool         `gorm:"not null;default:false"`
	Roles       []Role       `gorm:"many2many:account_user_roles;constraint:OnDelete:CASCADE"`
	Permissions []Permission `gorm:"many2many:account_user_permissions;constraint:OnDelete:CASCADE"`
	System      *System      `gorm:"foreignKey:SystemID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt   time.Time    `gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt   time.Time    `gorm:"column:updated_at;not null;autoUpdateTime"`
}

func (User) TableName() string {
	return "account_user"
}

// AllPermissions é a união dos codenames diretos com os herdados dos papéis.
// Depende de Roles.Permissions e Permissions estarem carregados; nunca é persistido.
func (u User) AllPermissions() []string {
	set := make(map[string]struct{})
	for _, p := range u.Permissions {
		set[p.Codename] = struct{}{}
	}
	for _, r := range u.Roles {
		for _, p := range r.Permissions {
			set[p.Codename] = struct{}{}
		}
	}

	perms := make([]string, 0, len(set))
	for codename := range set {
		perms = append(perms, codename)
	}
	sort.Strings(perms)
	return perms
}

func (u User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

func (u User) SystemCode() string {
	if u.System == nil {
		return ""
	}
	return u.System.Code
}

func (u User) EmailValue() string {
	if u.Email == nil {
		return ""
	}
	return *u.Email
}

func (u User) PhoneValue() string {
	if u.Phone == nil {
		return ""
	}
	return *u.Phone
}
