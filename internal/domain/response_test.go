package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/emberhq/hearth/internal/domain"
)

// fullCompletionDoc exercises every known wire field of a completed
// response: tool calls with null content, logprobs and usage breakdowns.
const fullCompletionDoc = `{
	"id": "chatcmpl-9XYz",
	"object": "chat.completion",
	"created": 1729000000,
	"model": "gpt-4o-2024-08-06",
	"system_fingerprint": "fp_abc123",
	"service_tier": "default",
	"choices": [
		{
			"finish_reason": "tool_calls",
			"index": 0,
			"message": {
				"role": "assistant",
				"content": null,
				"tool_calls": [
					{
						"id": "call_1",
						"type": "function",
						"function": {"name": "get_weather", "arguments": "{\"city\":\"Paris\"}"}
					}
				]
			},
			"logprobs": {
				"content": [
					{
						"token": "Hello",
						"logprob": -0.31,
						"bytes": [72, 101, 108, 108, 111],
						"top_logprobs": [
							{"token": "Hello", "logprob": -0.31},
							{"token": "Hi", "logprob": -1.42}
						]
					}
				]
			}
		}
	],
	"usage": {
		"prompt_tokens": 57,
		"completion_tokens": 17,
		"total_tokens": 74,
		"prompt_tokens_details": {"cached_tokens": 0, "audio_tokens": 0},
		"completion_tokens_details": {
			"reasoning_tokens": 0,
			"audio_tokens": 0,
			"accepted_prediction_tokens": 0,
			"rejected_prediction_tokens": 0
		}
	}
}`

func TestResponse_RoundTrip(t *testing.T) {
	t.Run("should survive a decode and re-encode without loss", func(t *testing.T) {
		var resp domain.Response
		require.NoError(t, json.Unmarshal([]byte(fullCompletionDoc), &resp))

		encoded, err := json.Marshal(&resp)
		require.NoError(t, err)
		require.JSONEq(t, fullCompletionDoc, string(encoded))
	})

	t.Run("should expose tool calls alongside null content", func(t *testing.T) {
		var resp domain.Response
		require.NoError(t, json.Unmarshal([]byte(fullCompletionDoc), &resp))

		msg := resp.Choices[0].Message
		require.Nil(t, msg.Content)
		require.Empty(t, msg.Text())
		require.Len(t, msg.ToolCalls, 1)
		require.Equal(t, "get_weather", msg.ToolCalls[0].Function.Name)
		require.JSONEq(t, `{"city":"Paris"}`, msg.ToolCalls[0].Function.Arguments)
		require.Equal(t, "tool_calls", resp.Choices[0].FinishReason)
	})
}

func TestDeltaResponse_Decode(t *testing.T) {
	t.Run("should decode incremental tool call fragments", func(t *testing.T) {
		raw := `{
			"id": "chatcmpl-9XYz",
			"object": "chat.completion.chunk",
			"created": 1729000000,
			"model": "gpt-4o",
			"choices": [{
				"index": 0,
				"delta": {
					"tool_calls": [{"index": 0, "function": {"arguments": "\"Par"}}]
				},
				"finish_reason": null
			}]
		}`

		var chunk domain.DeltaResponse
		require.NoError(t, json.Unmarshal([]byte(raw), &chunk))

		choice := chunk.Choices[0]
		require.Nil(t, choice.FinishReason)
		require.Len(t, choice.Delta.ToolCalls, 1)
		require.Equal(t, `"Par`, choice.Delta.ToolCalls[0].Function.Arguments)
	})
}
