package domain

import "errors"

// ErrInvalidCredentials is returned for both unknown emails and wrong
// passwords so callers cannot enumerate accounts.
var ErrInvalidCredentials = errors.New("Username or password is incorrect.")

var ErrNoGamesAvailable = errors.New("no games available")

// ValidationError reports a malformed or missing field on a candidate
// entity. It is raised before any field is assigned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Required builds the canonical "<field> is required." validation error.
func Required(field string) error {
	return &ValidationError{Message: field + " is required."}
}

// Invalid builds a validation error with a custom message.
func Invalid(message string) error {
	return &ValidationError{Message: message}
}

// NotFoundError reports that a referenced entity does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// NotFound builds a NotFoundError with the given message.
func NotFound(message string) error {
	return &NotFoundError{Message: message}
}

// ConflictError reports a uniqueness violation (duplicate user, tag label).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// Conflict builds a ConflictError with the given message.
func Conflict(message string) error {
	return &ConflictError{Message: message}
}

// AuthorizationError reports that an authenticated principal is not
// permitted to perform an operation. Distinct from an authentication
// failure: the caller is known, just not allowed.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string { return e.Message }

// Forbidden builds an AuthorizationError with the given message.
func Forbidden(message string) error {
	return &AuthorizationError{Message: message}
}
