package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		key      string
		contains string
		errMsg   string
	}{
		{name: "recommendation prompt", file: "counseling.json", key: "recommend-careers", contains: "rural students in India"},
		{name: "raw placeholders kept", file: "counseling.json", key: "chat-ack", contains: "{{.Language}}"},
		{name: "unknown file", file: "nonexistent.json", key: "x", errMsg: "failed to read prompt file"},
		{name: "unknown key", file: "counseling.json", key: "nonexistent-key", errMsg: "not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt, err := Get(tt.file, tt.key)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, prompt, tt.contains)
		})
	}
}

func TestRender(t *testing.T) {
	ack, err := Render("counseling.json", "chat-ack", map[string]string{"Language": "Hindi"})
	require.NoError(t, err)
	assert.Equal(t, "Understood. I will act as a career counselor and respond in Hindi.", ack)

	system, err := Render("counseling.json", "chat-system", map[string]string{"Language": "Tamil"})
	require.NoError(t, err)
	assert.Contains(t, system, "Please respond in Tamil.")
	assert.NotContains(t, system, "{{")

	recommend, err := Render("counseling.json", "recommend-careers", map[string]string{
		"EducationLevel": "10th",
		"Stream":         "General",
		"Skills":         "Drawing <sketching> & painting",
		"Interests":      "Design",
	})
	require.NoError(t, err)
	assert.Contains(t, recommend, "- Skills: Drawing <sketching> & painting")
	assert.Contains(t, recommend, `"skillsToImprove"`)
}

func TestRender_MissingValue(t *testing.T) {
	_, err := Render("counseling.json", "recommend-careers", map[string]string{"Stream": "Arts"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EducationLevel")
}

func TestRender_UnknownKey(t *testing.T) {
	_, err := Render("counseling.json", "missing", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestKeys(t *testing.T) {
	keys, err := Keys("counseling.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"chat-ack", "chat-system", "recommend-careers"}, keys)
}
