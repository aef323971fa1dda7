package domain

import "errors"

// Error kinds shared by every module. Module errors wrap one of these so the
// HTTP layer can map them with errors.Is.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidState    = errors.New("invalid state")
	ErrConflict        = errors.New("conflict")
)

// Error is a module-level error carrying an API code and a client-safe message.
type Error struct {
	Kind    error
	Code    string
	Message string
}

func NewError(kind error, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }
