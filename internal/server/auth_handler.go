package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/jonathan/career-guide/internal/auth"
	"github.com/jonathan/career-guide/internal/server/middleware"
	"github.com/jonathan/career-guide/internal/types"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	users      *auth.Store
	jwtService *JWTService
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(users *auth.Store, jwtService *JWTService) *AuthHandler {
	return &AuthHandler{
		users:      users,
		jwtService: jwtService,
	}
}

// Signup registers a user and returns the new session with a bearer token.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req types.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeJSONError(w, http.StatusBadRequest, errorMessage(err))
		return
	}

	session, err := h.users.Register(r.Context(), types.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeJSONError(w, HTTPStatus(err), errorMessage(err))
		return
	}

	h.respondWithToken(w, http.StatusCreated, session)
}

// Signin checks credentials and returns the session with a bearer token.
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req types.SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeJSONError(w, http.StatusBadRequest, errorMessage(err))
		return
	}

	session, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeJSONError(w, HTTPStatus(err), errorMessage(err))
		return
	}

	h.respondWithToken(w, http.StatusOK, session)
}

// Me returns the session of the authenticated caller.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	session, err := middleware.GetSession(r)
	if err != nil {
		writeJSONError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, status int, session *types.Session) {
	token, err := h.jwtService.GenerateToken(session)
	if err != nil {
		log.Printf("[AUTH] Failed to generate token: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	writeJSON(w, status, types.SessionResponse{Session: session, Token: token})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
