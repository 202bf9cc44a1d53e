package domain

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrUnauthorized       = errors.New("token invalid")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrForbidden          = errors.New("access forbidden")
	ErrBlogNotFound       = errors.New("blog not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidID          = errors.New("malformatted id")
)

// ValidationError reports a single user-correctable input problem.
// errors.Is(err, ErrValidation) holds for every ValidationError.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
