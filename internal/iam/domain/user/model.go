package user

import (
	"regexp"

	"github.com/Joker-Pro-Max/Basalt/internal/iam/domain/model"
)

// --- Type Aliases ---
type User = model.User

// AccountKind indica qual coluna um identificador de conta consulta.
type AccountKind int

const (
	KindUsername AccountKind = iota
	KindEmail
	KindPhone
)

func (k AccountKind) String() string {
	switch k {
	case KindEmail:
		return "email"
	case KindPhone:
		return "phone"
	default:
		return "username"
	}
}

var (
	emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)
	phonePattern = regexp.MustCompile(`^1\d{10}$`)
)

// Classify é puramente sintático: e-mail tem precedência sobre telefone, e
// qualquer outra coisa (inclusive números fora do padrão 1XXXXXXXXXX) é
// tratada como username.
func Classify(account string) AccountKind {
	switch {
	case emailPattern.MatchString(account):
		return KindEmail
	case phonePattern.MatchString(account):
		return KindPhone
	default:
		return KindUsername
	}
}

// NewUser é a entrada de criação de usuário, com a senha ainda em texto puro.
type NewUser struct {
	Username    string
	Email       string
	Phone       string
	Password    string
	SystemCode  string
	IsStaff     bool
	IsSuperuser bool
}

// ListFilter combina os filtros com AND. Os booleanos são tri-state: nil
// significa "não filtrar", e um false explícito filtra por false.
type ListFilter struct {
	SystemCode  string
	Username    string
	Email       string
	Phone       string
	IsStaff     *bool
	IsActive    *bool
	IsSuperuser *bool
	RoleID      *uint
}
