package recommend

import "errors"

// Domain-specific errors for the recommend package.
var (
	ErrEmptyMessage    = errors.New("message text is empty")
	ErrSessionNotFound = errors.New("session not found")
)
