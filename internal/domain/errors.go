package domain

import "errors"

// Sentinel errors shared by services and delivery.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ConstraintError reports a foreign-key, uniqueness or check violation raised by the store.
// It wraps the driver error unchanged.
type ConstraintError struct {
	Constraint string
	Err        error
}

func (e *ConstraintError) Error() string {
	return "constraint violation: " + e.Err.Error()
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}
