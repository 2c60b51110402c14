package user

import "errors"

var (
	ErrDuplicated   = errors.New("email or phone already registered")
	ErrNotFound     = errors.New("user not found")
	ErrInvalidInput = errors.New("invalid input data")
)
