package types

import "github.com/go-playground/validator/v10"

// AssessmentRequest is the career assessment form submitted for recommendations.
type AssessmentRequest struct {
	EducationLevel string `json:"educationLevel" validate:"required"`
	Stream         string `json:"stream" validate:"required"`
	Skills         string `json:"skills" validate:"required"`
	Interests      string `json:"interests" validate:"required"`
}

// Validate validates the AssessmentRequest using the validator.
func (r *AssessmentRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// CareerOption is one recommended career path.
type CareerOption struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Salary      string `json:"salary"`
}

// RecommendationBundle is the structured result of a career recommendation request.
type RecommendationBundle struct {
	Analysis        string         `json:"analysis"`
	TopCareers      []CareerOption `json:"topCareers"`
	Courses         []string       `json:"courses"`
	JobRoles        []string       `json:"jobRoles"`
	SkillsToImprove []string       `json:"skillsToImprove"`
}

// Chat roles used in transcripts and model history.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// ChatMessage is one entry in a chat transcript.
type ChatMessage struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// ChatRequest is a chat message submitted by the user.
type ChatRequest struct {
	Message  string `json:"message" validate:"required"`
	Language string `json:"language,omitempty"`
}

// Validate validates the ChatRequest using the validator.
func (r *ChatRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
