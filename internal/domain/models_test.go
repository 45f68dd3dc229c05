package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/emberhq/hearth/internal/domain"
)

func TestContent(t *testing.T) {
	t.Run("should decode a bare string", func(t *testing.T) {
		var msg domain.Message
		require.NoError(t, json.Unmarshal([]byte(`{"role":"user","content":"hello"}`), &msg))
		require.False(t, msg.Content.IsParts())
		require.Equal(t, "hello", msg.Content.AsText())
	})

	t.Run("should decode a part array", func(t *testing.T) {
		raw := `{"role":"user","content":[
			{"type":"text","text":"look at"},
			{"type":"image_url","image_url":{"url":"https://example.com/a.png"}},
			{"type":"text","text":"this"}]}`

		var msg domain.Message
		require.NoError(t, json.Unmarshal([]byte(raw), &msg))
		require.True(t, msg.Content.IsParts())
		require.Len(t, msg.Content.Parts, 3)
		require.Equal(t, "look at\nthis", msg.Content.AsText())
	})

	t.Run("should re-encode in the form it was built from", func(t *testing.T) {
		plain, err := json.Marshal(domain.TextContent("hi"))
		require.NoError(t, err)
		require.JSONEq(t, `"hi"`, string(plain))

		parts, err := json.Marshal(domain.PartsContent(domain.TextPart("hi")))
		require.NoError(t, err)
		require.JSONEq(t, `[{"type":"text","text":"hi"}]`, string(parts))
	})

	t.Run("should reject content that is neither", func(t *testing.T) {
		var content domain.Content
		require.Error(t, json.Unmarshal([]byte(`42`), &content))
	})
}

func TestToolChoice(t *testing.T) {
	t.Run("should decode a bare mode string", func(t *testing.T) {
		var choice domain.ToolChoice
		require.NoError(t, json.Unmarshal([]byte(`"auto"`), &choice))
		require.Equal(t, domain.ToolChoiceAuto, choice.Mode)
		require.Empty(t, choice.Function)
	})

	t.Run("should decode a function selector", func(t *testing.T) {
		var choice domain.ToolChoice
		raw := `{"type":"function","function":{"name":"get_weather"}}`
		require.NoError(t, json.Unmarshal([]byte(raw), &choice))
		require.Equal(t, "get_weather", choice.Function)
		require.Empty(t, choice.Mode)
	})

	t.Run("should encode a selector back to the object form", func(t *testing.T) {
		data, err := json.Marshal(domain.ToolChoiceFunction("get_weather"))
		require.NoError(t, err)
		require.JSONEq(t, `{"type":"function","function":{"name":"get_weather"}}`, string(data))
	})
}

func TestStop(t *testing.T) {
	t.Run("should decode a bare string as one sequence", func(t *testing.T) {
		var stop domain.Stop
		require.NoError(t, json.Unmarshal([]byte(`"\n"`), &stop))
		require.Equal(t, domain.Stop{"\n"}, stop)
	})

	t.Run("should decode an array of sequences", func(t *testing.T) {
		var stop domain.Stop
		require.NoError(t, json.Unmarshal([]byte(`["a","b"]`), &stop))
		require.Equal(t, domain.Stop{"a", "b"}, stop)
	})
}

func TestSplitModelID(t *testing.T) {
	t.Run("should split on the first separator only", func(t *testing.T) {
		prefix, model, ok := domain.SplitModelID("openai/ft:gpt-4o/custom")
		require.True(t, ok)
		require.Equal(t, "openai", prefix)
		require.Equal(t, "ft:gpt-4o/custom", model)
	})

	t.Run("should report missing separators", func(t *testing.T) {
		_, _, ok := domain.SplitModelID("gpt-4o")
		require.False(t, ok)
		require.Equal(t, "gpt-4o", domain.BackendModel("gpt-4o"))
	})

	t.Run("should strip the prefix for the backend model", func(t *testing.T) {
		require.Equal(t, "gpt-4o", domain.BackendModel("openai/gpt-4o"))
	})
}
