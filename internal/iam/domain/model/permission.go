package model

type Permission struct {
	ID       uint   `gorm:"primaryKey"`
	Codename string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Name     string `gorm:"type:varchar(255);not null"`
}

func (Permission) TableName() string {
	return "account_permission"
}
