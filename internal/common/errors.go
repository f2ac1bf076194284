package common

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrValidation     = errors.New("validation failed")
	ErrConflict       = errors.New("resource conflict") // e.g., email already registered
	ErrAuthentication = errors.New("invalid credentials")
	ErrUnauthorized   = errors.New("unauthorized access")
	ErrNotFound       = errors.New("requested resource not found")
	ErrInternalServer = errors.New("internal server error")
)

const internalErrorMessage = "Internal server error"

// appError pairs an error kind with a message that is safe to show to clients.
type appError struct {
	kind    error
	message string
}

func (e *appError) Error() string { return e.message }

func (e *appError) Unwrap() error { return e.kind }

// New returns an error whose message is safe to send to clients and which
// matches kind through errors.Is.
func New(kind error, message string) error {
	return &appError{kind: kind, message: message}
}

// HTTPStatusFromError maps domain errors to HTTP status codes.
func HTTPStatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.Is(err, ErrValidation) || errors.Is(err, ErrConflict) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrAuthentication) || errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}

	// A unique violation that escaped the repository layer is still a conflict.
	if IsUniqueViolation(err) {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// PublicMessage returns the message to put in an error response. Internal
// failures never leak their details.
func PublicMessage(err error) string {
	if HTTPStatusFromError(err) == http.StatusInternalServerError {
		return internalErrorMessage
	}
	var ae *appError
	if errors.As(err, &ae) {
		return ae.message
	}
	if IsUniqueViolation(err) {
		return ErrConflict.Error()
	}
	return err.Error()
}

// IsUniqueViolation reports whether err is a Postgres unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
