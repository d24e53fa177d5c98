package usage

import "errors"

var (
	ErrLimitReached = errors.New("monthly limit reached")
	ErrUnknownTier  = errors.New("unknown tier")
	ErrUnknownKind  = errors.New("unknown counter kind")
	ErrInvalidInput = errors.New("invalid settings")
)
