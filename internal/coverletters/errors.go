package coverletters

import "errors"

var (
	ErrNotFound      = errors.New("cover letter not found")
	ErrInvalidStatus = errors.New("invalid outreach status")
)
