package profile

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrPhotoNotImage is returned when an uploaded photo is not a JPEG or PNG
// image.
type ErrPhotoNotImage struct {
	MIME string
}

func (e *ErrPhotoNotImage) Error() string {
	return fmt.Sprintf("photo is not a JPEG or PNG image: %q", e.MIME)
}

// ErrPhotoTooLarge is returned when an uploaded photo exceeds MaxPhotoBytes.
type ErrPhotoTooLarge struct {
	Size int
}

func (e *ErrPhotoTooLarge) Error() string {
	return fmt.Sprintf("photo is %d bytes, limit is %d", e.Size, MaxPhotoBytes)
}

// ValidationError reports profile entries that fail their field rules.
type ValidationError struct {
	Fields []string
	Cause  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid profile: %s", strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

func newValidationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("failed to validate profile: %w", err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", strings.TrimPrefix(fe.Namespace(), "Profile."), fe.Tag()))
	}
	return &ValidationError{Fields: fields, Cause: err}
}
