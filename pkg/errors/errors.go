package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// JWT and tokens
	ErrInvalidSigningMethod = fmt.Errorf("invalid token signing method")
	ErrInvalidToken         = fmt.Errorf("invalid token")
	ErrTokenExpired         = fmt.Errorf("token expired")

	// Authorization
	ErrEmptyAuthHeader    = fmt.Errorf("authorization header is missing")
	ErrInvalidAuthHeader  = fmt.Errorf("invalid authorization header format")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrUnauthorized       = fmt.Errorf("unauthorized")
	ErrActorNotFound      = fmt.Errorf("actor not found in request context")

	// Domain
	ErrNotFound              = fmt.Errorf("record not found")
	ErrInvalidRange          = fmt.Errorf("end date must be after start date")
	ErrConflict              = fmt.Errorf("unit is already booked for this period")
	ErrDuplicate             = fmt.Errorf("record with the same unique value already exists")
	ErrDependencyUnavailable = fmt.Errorf("dependency unavailable, retry later")
	ErrBadRequest            = fmt.Errorf("bad request")
)

type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// HttpError carries the status code and client message; Err is logged, never sent.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, details interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Details: details}
}

func NewNotFoundError(message string) *HttpError {
	return NewHttpError(http.StatusNotFound, message, ErrNotFound, nil)
}

// StatusCode maps a domain error onto the HTTP status the API returns for it.
func StatusCode(err error) int {
	var invalid *InvalidInputError
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidRange), errors.Is(err, ErrConflict), errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.As(err, &invalid):
		return http.StatusBadRequest
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrDependencyUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrInvalidToken), errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrEmptyAuthHeader), errors.Is(err, ErrInvalidAuthHeader),
		errors.Is(err, ErrActorNotFound):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
