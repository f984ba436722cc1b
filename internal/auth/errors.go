// Package auth provides the credential store: registration, sign-in and the current session.
package auth

import "fmt"

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("user already exists: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid sign-in credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid credentials"
}
