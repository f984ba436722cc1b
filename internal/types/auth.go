// Package types provides type definitions for structured data used throughout the career-guide system.
package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// User is a registered user record as kept in the users list.
// The password is stored in plain text; see DESIGN.md.
type User struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Password string    `json:"password,omitempty"`
}

// Session is the part of a user record retained after authentication.
type Session struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// Session returns the user without its secret.
func (u *User) Session() *Session {
	return &Session{ID: u.ID, Name: u.Name, Email: u.Email}
}

// SignupRequest represents the request to register a new user.
type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SigninRequest represents the sign-in request.
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse represents the signup/signin response with session data and bearer token.
type SessionResponse struct {
	Session *Session `json:"session"`
	Token   string   `json:"token"`
}

// Validate validates the SignupRequest using the validator.
func (r *SignupRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SigninRequest using the validator.
func (r *SigninRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
