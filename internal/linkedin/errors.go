package linkedin

import "errors"

var (
	ErrNotFound         = errors.New("linkedin message not found")
	ErrInvalidStatus    = errors.New("invalid outreach status")
	ErrRecipientLimit   = errors.New("recipient message limit reached")
	ErrMissingRecipient = errors.New("recipient profile url required")
)
