package emails

import "errors"

var (
	ErrNotFound      = errors.New("email not found")
	ErrInvalidStatus = errors.New("invalid outreach status")
)
