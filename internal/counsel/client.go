// Package counsel implements the career counselor: structured career
// recommendations and a language-aware chat, both backed by Gemini.
package counsel

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/jonathan/career-guide/internal/llm"
	"github.com/jonathan/career-guide/internal/metrics"
	"github.com/jonathan/career-guide/internal/prompts"
	"github.com/jonathan/career-guide/internal/schemas"
	"github.com/jonathan/career-guide/internal/types"
)

const promptFile = "counseling.json"

// Operation names used in errors, logs and metrics.
const (
	OpRecommend = "recommend"
	OpChat      = "chat"
)

// Client talks to the generative service.
type Client struct {
	llm  llm.Client
	tier llm.ModelTier
}

// NewClient creates a counselor over c. A nil c stands for a missing API key:
// every call then fails with a ServiceError wrapping ErrMissingAPIKey.
func NewClient(c llm.Client) *Client {
	return &Client{llm: c, tier: llm.TierStandard}
}

// RecommendCareers asks the model for career recommendations matching req.
// Invalid requests are rejected before any call is made.
func (c *Client) RecommendCareers(ctx context.Context, req types.AssessmentRequest) (*types.RecommendationBundle, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	bundle, err := c.recommend(ctx, req)
	metrics.ObserveCounsel(OpRecommend, err)
	if err != nil {
		return nil, c.fail(OpRecommend, MsgRecommendFailed, err)
	}
	return bundle, nil
}

func (c *Client) recommend(ctx context.Context, req types.AssessmentRequest) (*types.RecommendationBundle, error) {
	if c.llm == nil {
		return nil, ErrMissingAPIKey
	}

	prompt, err := prompts.Render(promptFile, "recommend-careers", map[string]string{
		"EducationLevel": req.EducationLevel,
		"Stream":         req.Stream,
		"Skills":         req.Skills,
		"Interests":      req.Interests,
	})
	if err != nil {
		return nil, err
	}

	text, err := c.llm.GenerateJSON(ctx, prompt, c.tier)
	if err != nil {
		return nil, err
	}
	text = llm.CleanJSONBlock(text)

	if err := schemas.ValidateRecommendation(text); err != nil {
		return nil, err
	}

	var bundle types.RecommendationBundle
	if err := json.Unmarshal([]byte(text), &bundle); err != nil {
		return nil, fmt.Errorf("failed to decode recommendations: %w", err)
	}
	return &bundle, nil
}

// Chat sends message after history and returns the model's reply in
// language (an English language name such as "Kannada").
func (c *Client) Chat(ctx context.Context, message string, history []types.ChatMessage, language string) (string, error) {
	reply, err := c.chat(ctx, message, history, language)
	metrics.ObserveCounsel(OpChat, err)
	if err != nil {
		return "", c.fail(OpChat, MsgChatFailed, err)
	}
	return reply, nil
}

func (c *Client) chat(ctx context.Context, message string, history []types.ChatMessage, language string) (string, error) {
	if c.llm == nil {
		return "", ErrMissingAPIKey
	}

	turns, err := primedHistory(history, language)
	if err != nil {
		return "", err
	}
	return c.llm.Chat(ctx, turns, message, c.tier)
}

// primedHistory prepends the counselor instruction and its acknowledgement
// to the transcript.
func primedHistory(history []types.ChatMessage, language string) ([]llm.Turn, error) {
	data := map[string]string{"Language": language}
	system, err := prompts.Render(promptFile, "chat-system", data)
	if err != nil {
		return nil, err
	}
	ack, err := prompts.Render(promptFile, "chat-ack", data)
	if err != nil {
		return nil, err
	}

	turns := make([]llm.Turn, 0, len(history)+2)
	turns = append(turns,
		llm.Turn{Role: types.RoleUser, Text: system},
		llm.Turn{Role: types.RoleModel, Text: ack},
	)
	for _, m := range history {
		turns = append(turns, llm.Turn{Role: m.Role, Text: m.Content})
	}
	return turns, nil
}

func (c *Client) fail(op, message string, cause error) error {
	log.Printf("[COUNSEL] %s failed: %v", op, cause)
	return &ServiceError{Op: op, Message: message, Cause: cause}
}
