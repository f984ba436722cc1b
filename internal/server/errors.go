// Package server provides the HTTP REST API for the career guide.
package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/career-guide/internal/auth"
	"github.com/jonathan/career-guide/internal/counsel"
	"github.com/jonathan/career-guide/internal/profile"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		exists     *auth.ErrEmailAlreadyExists
		badCreds   *auth.ErrInvalidCredentials
		badReq     *ErrValidation
		badProfile *profile.ValidationError
		notImage   *profile.ErrPhotoNotImage
		tooLarge   *profile.ErrPhotoTooLarge
		fields     validator.ValidationErrors
		svc        *counsel.ServiceError
	)

	switch {
	case errors.As(err, &exists):
		return http.StatusConflict
	case errors.As(err, &badCreds):
		return http.StatusUnauthorized
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &notImage):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &badReq), errors.As(err, &badProfile), errors.As(err, &fields):
		return http.StatusBadRequest
	case errors.As(err, &svc):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage returns the message shown to the client for err.
// Counselor failures carry a fixed user-facing message and internal errors
// are not echoed.
func errorMessage(err error) string {
	var (
		svc    *counsel.ServiceError
		fields validator.ValidationErrors
	)
	switch {
	case errors.As(err, &svc):
		return svc.UserMessage()
	case errors.As(err, &fields):
		return extractValidationErrors(fields)
	case HTTPStatus(err) == http.StatusInternalServerError:
		return "Internal server error"
	default:
		return err.Error()
	}
}

// extractValidationErrors lists the failed fields of a validator error.
func extractValidationErrors(errs validator.ValidationErrors) string {
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		parts = append(parts, fmt.Sprintf("%s - %s", fe.Field(), fe.Tag()))
	}
	return "validation error: " + strings.Join(parts, ", ")
}
