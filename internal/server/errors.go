package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ErrNoDatabase is returned by persistence routes when the server runs without a store.
var ErrNoDatabase = errors.New("database not configured")

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrNotFound indicates a user or application does not exist.
type ErrNotFound struct {
	Resource string
	ID       uuid.UUID
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
// Anything unrecognized is a core failure and maps to 500.
func HTTPStatus(err error) int {
	var (
		emailErr    *ErrEmailAlreadyExists
		notFoundErr *ErrNotFound
		validErr    *ErrValidation
	)
	switch {
	case errors.As(err, &validErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &emailErr):
		return http.StatusConflict
	case errors.Is(err, ErrNoDatabase):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// validationError converts validator output into an ErrValidation for the first failing field.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	fe := verrs[0]
	return &ErrValidation{Field: fe.Field(), Message: describeTag(fe)}
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "uuid":
		return "must be a valid UUID"
	case "min", "max":
		return fmt.Sprintf("must satisfy %s=%s", fe.Tag(), fe.Param())
	default:
		return strings.TrimSpace("failed " + fe.Tag() + " " + fe.Param())
	}
}
