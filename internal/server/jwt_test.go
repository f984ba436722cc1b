package server

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jonathan/career-guide/internal/config"
	"github.com/jonathan/career-guide/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt-signing-minimum-32-bytes"

func setupTestJWTService(_ *testing.T) *JWTService {
	return NewJWTService(&config.JWTConfig{Secret: testSecret})
}

func testSession() *types.Session {
	return &types.Session{ID: uuid.New(), Name: "Asha Rao", Email: "asha@example.com"}
}

func TestJWTService_RoundTrip(t *testing.T) {
	service := setupTestJWTService(t)
	session := testSession()

	token, err := service.GenerateToken(session)
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, *session, claims.GetSession())
	assert.Nil(t, claims.ExpiresAt, "sessions never expire")
	assert.NotNil(t, claims.IssuedAt)
}

func TestJWTService_UniqueTokens(t *testing.T) {
	service := setupTestJWTService(t)
	session := testSession()

	token1, err := service.GenerateToken(session)
	require.NoError(t, err)
	token2, err := service.GenerateToken(session)
	require.NoError(t, err)

	assert.NotEqual(t, token1, token2)
}

func TestJWTService_OldTokensStayValid(t *testing.T) {
	service := setupTestJWTService(t)
	service.now = func() time.Time { return time.Now().AddDate(-5, 0, 0) }

	token, err := service.GenerateToken(testSession())
	require.NoError(t, err)

	service.now = time.Now
	_, err = service.ValidateToken(token)
	assert.NoError(t, err)
}

func TestJWTService_ValidateToken_Errors(t *testing.T) {
	service := setupTestJWTService(t)
	other := NewJWTService(&config.JWTConfig{Secret: "another-secret-key-of-enough-length"})

	foreign, err := other.GenerateToken(testSession())
	require.NoError(t, err)

	noEmail, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{Name: "x"}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	wrongAlg, err := jwt.NewWithClaims(jwt.SigningMethodHS512, &Claims{Email: "a@b.co"}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr string
	}{
		{"empty", "", "token string is empty"},
		{"malformed", "not-a-token", "malformed token"},
		{"foreign signature", foreign, "invalid token signature"},
		{"no email", noEmail, "no email claim"},
		{"wrong algorithm", wrongAlg, "invalid token signature"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateToken(tt.token)
			assert.Nil(t, claims)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestJWTService_GenerateToken_NilSession(t *testing.T) {
	_, err := setupTestJWTService(t).GenerateToken(nil)
	assert.Error(t, err)
}

func TestJWTService_AsTokenValidator(t *testing.T) {
	service := setupTestJWTService(t)
	session := testSession()
	token, err := service.GenerateToken(session)
	require.NoError(t, err)

	getter, err := service.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, *session, getter.GetSession())

	_, err = service.AsTokenValidator().ValidateToken("bad")
	assert.Error(t, err)
}
