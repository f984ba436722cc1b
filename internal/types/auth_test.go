//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		request SignupRequest
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid request",
			request: SignupRequest{Name: "Asha", Email: "asha@example.com", Password: "x"},
			wantErr: false,
		},
		{
			name:    "missing name",
			request: SignupRequest{Email: "asha@example.com", Password: "secret"},
			wantErr: true,
			errMsg:  "required",
		},
		{
			name:    "invalid email format",
			request: SignupRequest{Name: "Asha", Email: "not-an-email", Password: "secret"},
			wantErr: true,
			errMsg:  "email",
		},
		{
			name:    "missing password",
			request: SignupRequest{Name: "Asha", Email: "asha@example.com"},
			wantErr: true,
			errMsg:  "required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestSigninRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		request SigninRequest
		wantErr bool
	}{
		{"valid request", SigninRequest{Email: "a@b.co", Password: "p"}, false},
		{"missing email", SigninRequest{Password: "p"}, true},
		{"missing password", SigninRequest{Email: "a@b.co"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAssessmentRequest_Validation(t *testing.T) {
	valid := AssessmentRequest{
		EducationLevel: "12th",
		Stream:         "Science",
		Skills:         "Maths",
		Interests:      "Farming technology",
	}
	require.NoError(t, valid.Validate())

	missing := valid
	missing.Interests = ""
	err := missing.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Interests")
}

func TestChatRequest_Validation(t *testing.T) {
	assert.NoError(t, (&ChatRequest{Message: "hello"}).Validate())
	assert.Error(t, (&ChatRequest{Language: "Hindi"}).Validate())
}

func TestUser_SessionOmitsPassword(t *testing.T) {
	u := &User{ID: uuid.New(), Name: "Asha", Email: "asha@example.com", Password: "secret"}

	s := u.Session()
	assert.Equal(t, u.ID, s.ID)
	assert.Equal(t, u.Email, s.Email)

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret")
	assert.NotContains(t, string(data), "password")
}

func TestRecommendationBundle_JSON(t *testing.T) {
	raw := `{"analysis":"Good fit","topCareers":[{"title":"Agronomist","description":"d","salary":"4-6 LPA"}],
		"courses":["B.Sc Agriculture"],"jobRoles":["Field officer"],"skillsToImprove":["English"]}`

	var b RecommendationBundle
	require.NoError(t, json.Unmarshal([]byte(raw), &b))
	assert.Equal(t, "Good fit", b.Analysis)
	require.Len(t, b.TopCareers, 1)
	assert.Equal(t, "4-6 LPA", b.TopCareers[0].Salary)
	assert.Equal(t, []string{"Field officer"}, b.JobRoles)
}
