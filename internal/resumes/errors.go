package resumes

import "errors"

var (
	ErrNotFound     = errors.New("resume not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrLimitReached = errors.New("resume limit reached")
)
