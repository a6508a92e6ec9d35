package domain

import "errors"

// Domain errors (no external dependencies). Adapters wrap these with
// context; handlers map them to HTTP statuses.
var (
	ErrNotFound             = errors.New("resource not found")
	ErrValidation           = errors.New("invalid or inconsistent input")
	ErrInsufficientQuantity = errors.New("insufficient quantity at base")
	ErrInvalidState         = errors.New("illegal assignment state transition")
	ErrContention           = errors.New("lock retry budget exceeded")
	ErrUserNotFound         = errors.New("user not found")
	ErrUnauthorized         = errors.New("unauthorized")
)
