package errors

import "errors"

// Error kinds produced by the auth flow. Match with errors.Is.
var (
	ErrValidation         = errors.New("validation error")
	ErrDuplicateUser      = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingToken       = errors.New("missing token")
	ErrInvalidSignature   = errors.New("invalid token signature")
	ErrExpired            = errors.New("token expired")
	ErrStorage            = errors.New("storage error")
	ErrNotFound           = errors.New("not found")
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
	Err        error // kind, optional
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

func (e *ErrorWithStatusCode) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a store lookup miss.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
