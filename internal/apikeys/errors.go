package apikeys

import "errors"

var (
	ErrNotFound        = errors.New("api key not found")
	ErrInvalidProvider = errors.New("unsupported provider")
	ErrInvalidInput    = errors.New("invalid input")
	ErrNoKey           = errors.New("no api key available for provider")
)
