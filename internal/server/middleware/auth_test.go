package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/career-guide/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTokenValidator accepts the tokens it was given.
type testTokenValidator struct {
	valid map[string]types.Session
}

func (v *testTokenValidator) ValidateToken(tokenString string) (SessionGetter, error) {
	session, ok := v.valid[tokenString]
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return testClaims(session), nil
}

type testClaims types.Session

func (c testClaims) GetSession() types.Session { return types.Session(c) }

func TestAuthMiddleware(t *testing.T) {
	session := types.Session{ID: uuid.New(), Name: "Asha Rao", Email: "asha@example.com"}
	validator := &testTokenValidator{valid: map[string]types.Session{"good-token": session}}

	var seen *types.Session
	handler := AuthMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, err := GetSession(r)
		require.NoError(t, err)
		seen = s
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid token", "Bearer good-token", http.StatusNoContent},
		{"lower-case scheme", "bearer good-token", http.StatusNoContent},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good-token", http.StatusUnauthorized},
		{"no token", "Bearer", http.StatusUnauthorized},
		{"extra parts", "Bearer good-token extra", http.StatusUnauthorized},
		{"unknown token", "Bearer bad-token", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusNoContent {
				require.NotNil(t, seen)
				assert.Equal(t, session, *seen)
			} else {
				assert.Nil(t, seen)
				assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
				assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestGetSession_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	_, err := GetSession(req)
	assert.Error(t, err)
}

func TestWithSession(t *testing.T) {
	session := &types.Session{Email: "ravi@example.com"}
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req = req.WithContext(WithSession(req.Context(), session))

	got, err := GetSession(req)
	require.NoError(t, err)
	assert.Same(t, session, got)
}
