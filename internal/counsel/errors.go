package counsel

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey is the cause recorded when no Gemini API key is configured.
var ErrMissingAPIKey = errors.New("gemini API key is missing")

// Generic messages shown to the user when a counselor call fails.
const (
	MsgRecommendFailed = "Failed to generate recommendations. Please try again."
	MsgChatFailed      = "Failed to get response. Please try again."
)

// ServiceError is returned for every counselor failure (missing key,
// transport, malformed or off-schema output). The cause is for logs only.
type ServiceError struct {
	Op      string
	Message string
	Cause   error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("counsel %s: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("counsel %s failed", e.Op)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// UserMessage returns the generic retry prompt for the failed operation.
func (e *ServiceError) UserMessage() string {
	return e.Message
}
