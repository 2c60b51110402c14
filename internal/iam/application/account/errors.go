package account

import "errors"

var (
	ErrDuplicateIdentifier = errors.New("email or phone already registered")
	// A mesma mensagem cobre conta inexistente, sistema inexistente e senha
	// errada, para não revelar quais contas existem.
	ErrInvalidCredentials = errors.New("invalid account or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrInvalidInput       = errors.New("phone or email is required")
)
