package counsel

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/career-guide/internal/db"
	"github.com/jonathan/career-guide/internal/types"
)

// Canned transcript messages.
const (
	WelcomeMessage = "Hello! I'm your career guide. How can I help you today? I can assist you in English, Kannada, Hindi, Tamil, and Telugu."
	ErrorReply     = "I'm sorry, I encountered an error. Please check your internet connection or API key and try again."
)

// ClearedMessage is the model message that replaces a cleared transcript.
func ClearedMessage(language string) string {
	return fmt.Sprintf("Chat cleared. How can I help you in %s?", language)
}

// transcriptLocks holds one *sync.Mutex per storage key. Transcripts are
// opened per request, so the lock cannot live on the Transcript itself.
var transcriptLocks sync.Map

func lockKey(key string) func() {
	m, _ := transcriptLocks.LoadOrStore(key, &sync.Mutex{})
	mu := m.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// Transcript is the persisted chat history of one identity.
type Transcript struct {
	kv  db.Store
	key string
	now func() time.Time
}

// NewTranscript opens the transcript of identity. An empty identity uses the
// shared device transcript.
func NewTranscript(kv db.Store, identity string) *Transcript {
	return &Transcript{kv: kv, key: db.ChatHistoryKey(identity), now: time.Now}
}

// NewMessage creates a message stamped with a fresh id and the current time.
func (t *Transcript) NewMessage(role, content string) types.ChatMessage {
	return types.ChatMessage{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: t.now().UnixMilli(),
	}
}

// Load returns the saved messages, or just the welcome message when the
// transcript is empty.
func (t *Transcript) Load(ctx context.Context) ([]types.ChatMessage, error) {
	var messages []types.ChatMessage
	found, err := db.GetJSON(ctx, t.kv, t.key, &messages)
	if err != nil {
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}
	if !found || len(messages) == 0 {
		return []types.ChatMessage{t.NewMessage(types.RoleModel, WelcomeMessage)}, nil
	}
	return messages, nil
}

// Append adds messages to the end of the transcript and saves it.
func (t *Transcript) Append(ctx context.Context, messages ...types.ChatMessage) ([]types.ChatMessage, error) {
	defer lockKey(t.key)()

	current, err := t.Load(ctx)
	if err != nil {
		return nil, err
	}
	current = append(current, messages...)
	if err := t.save(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

// Clear replaces the transcript with a single "chat cleared" message.
func (t *Transcript) Clear(ctx context.Context, language string) ([]types.ChatMessage, error) {
	messages := []types.ChatMessage{t.NewMessage(types.RoleModel, ClearedMessage(language))}
	defer lockKey(t.key)()
	if err := t.save(ctx, messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// Recent returns up to n of the latest messages, newest first.
func (t *Transcript) Recent(ctx context.Context, n int) ([]types.ChatMessage, error) {
	messages, err := t.Load(ctx)
	if err != nil {
		return nil, err
	}
	if n < len(messages) {
		messages = messages[len(messages)-n:]
	}
	recent := make([]types.ChatMessage, 0, len(messages))
	for i := len(messages) - 1; i >= 0; i-- {
		recent = append(recent, messages[i])
	}
	return recent, nil
}

// Converse records the user's message, asks the counselor with the prior
// transcript as history and records the reply. The pair is appended to the
// transcript as saved when the reply arrives, so messages written meanwhile
// are kept. When the counselor fails the
// generic error reply is recorded instead and returned together with the
// *ServiceError.
func (t *Transcript) Converse(ctx context.Context, c *Client, message, language string) (types.ChatMessage, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return types.ChatMessage{}, errors.New("message is empty")
	}

	history, err := t.Load(ctx)
	if err != nil {
		return types.ChatMessage{}, err
	}
	userMsg := t.NewMessage(types.RoleUser, message)

	var reply types.ChatMessage
	text, chatErr := c.Chat(ctx, message, history, language)
	if chatErr != nil {
		reply = t.NewMessage(types.RoleModel, ErrorReply)
	} else {
		reply = t.NewMessage(types.RoleModel, text)
	}

	if _, err := t.Append(ctx, userMsg, reply); err != nil {
		return types.ChatMessage{}, err
	}
	return reply, chatErr
}

func (t *Transcript) save(ctx context.Context, messages []types.ChatMessage) error {
	if err := db.SetJSON(ctx, t.kv, t.key, messages); err != nil {
		return fmt.Errorf("failed to save chat history: %w", err)
	}
	return nil
}
