package openai

import (
	"encoding/json"

	"github.com/emberhq/hearth/internal/domain"
)

// Object kinds the backend reports on completion documents.
const (
	objectChatCompletion = "chat.completion"
	objectChatChunk      = "chat.completion.chunk"
)

// decodeResponse normalizes a whole-response JSON document into the typed
// result graph. Malformed JSON is a decode error; a document of the wrong
// kind is an unexpected-response error.
func decodeResponse(body []byte) (*domain.Response, error) {
	var resp domain.Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, decodeError(err)
	}
	if resp.Object != "" && resp.Object != objectChatCompletion {
		return nil, unexpectedError("unexpected response object %q, want %q", resp.Object, objectChatCompletion)
	}
	if resp.ID == "" && len(resp.Choices) == 0 {
		return nil, unexpectedError("response carries neither an id nor choices")
	}
	return &resp, nil
}

// decodeChunk normalizes one streaming frame payload into the typed delta
// graph.
func decodeChunk(data []byte) (*domain.DeltaResponse, error) {
	var chunk domain.DeltaResponse
	if err := json.Unmarshal(data, &chunk); err != nil {
		return nil, decodeError(err)
	}
	if chunk.Object != "" && chunk.Object != objectChatChunk {
		return nil, unexpectedError("unexpected chunk object %q, want %q", chunk.Object, objectChatChunk)
	}
	return &chunk, nil
}
