package generate

import "errors"

var (
	// ErrInvalidInput marks a request missing required fields.
	ErrInvalidInput = errors.New("invalid generation input")
	// ErrProvider wraps failures from the LLM vendor call.
	ErrProvider = errors.New("provider request failed")
)
