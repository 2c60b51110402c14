package system

import "errors"

var (
	ErrNotFound     = errors.New("system not found")
	ErrInvalidInput = errors.New("invalid input data")
)
