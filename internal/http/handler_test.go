package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/emberhq/hearth/internal/domain"
	hearthhttp "github.com/emberhq/hearth/internal/http"
	"github.com/emberhq/hearth/internal/provider/echo"
	"github.com/emberhq/hearth/internal/provider/registry"
)

func newTestHandler(t *testing.T) *hearthhttp.Handler {
	t.Helper()

	reg := registry.NewRegistry()
	provider := echo.NewProvider()
	require.NoError(t, reg.Register(context.Background(), provider.Name(), provider))

	gateway := domain.NewGatewayService(reg, nil, nil, nil, nil)
	return hearthhttp.NewHandler(gateway)
}

func TestHandler_HandleChatCompletion(t *testing.T) {
	t.Run("should complete a routed request", func(t *testing.T) {
		handler := newTestHandler(t)

		body := `{"model": "echo/gpt-x", "messages": [{"role": "user", "content": "hello"}]}`
		req := httptest.NewRequest(http.MethodPost, "/v1/chat/completions", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.HandleChatCompletion(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var resp domain.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Equal(t, "echo", resp.Provider)
		require.Equal(t, domain.RoleAssistant, resp.Choices[0].Message.Role)
		require.Contains(t, resp.Choices[0].Message.Text(), "hello")
	})

	t.Run("should reject non-POST methods", func(t *testing.T) {
		handler := newTestHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/v1/chat/completions", nil)
		rec := httptest.NewRecorder()

		handler.HandleChatCompletion(rec, req)
		require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})

	t.Run("should reject a malformed body", func(t *testing.T) {
		handler := newTestHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/v1/chat/completions", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()

		handler.HandleChatCompletion(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should map unknown prefixes to 404", func(t *testing.T) {
		handler := newTestHandler(t)

		body := `{"model": "nope/gpt-x", "messages": [{"role": "user", "content": "hello"}]}`
		req := httptest.NewRequest(http.MethodPost, "/v1/chat/completions", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.HandleChatCompletion(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Body.String(), `unknown provider prefix "nope"`)
	})

	t.Run("should map validation failures to 400", func(t *testing.T) {
		handler := newTestHandler(t)

		body := `{"model": "echo/gpt-x", "messages": []}`
		req := httptest.NewRequest(http.MethodPost, "/v1/chat/completions", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.HandleChatCompletion(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "messages empty")
	})

	t.Run("should stream SSE frames ending with the sentinel", func(t *testing.T) {
		handler := newTestHandler(t)

		body := `{"model": "echo/gpt-x", "stream": true, "messages": [{"role": "user", "content": "one two"}]}`
		req := httptest.NewRequest(http.MethodPost, "/v1/chat/completions", strings.NewReader(body))
		rec := httptest.NewRecorder()

		handler.HandleChatCompletion(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

		raw := rec.Body.String()
		require.True(t, strings.HasSuffix(raw, "data: [DONE]\n\n"))

		frames := strings.Split(strings.TrimSpace(raw), "\n\n")
		require.GreaterOrEqual(t, len(frames), 3)

		var text string
		for _, frame := range frames {
			payload := strings.TrimPrefix(frame, "data: ")
			if payload == "[DONE]" {
				continue
			}
			var chunk domain.DeltaResponse
			require.NoError(t, json.Unmarshal([]byte(payload), &chunk))
			for _, choice := range chunk.Choices {
				text += choice.Delta.Text()
			}
		}
		require.Equal(t, "[user]: one two", text)
	})
}

func TestHandler_HandleHealth(t *testing.T) {
	t.Run("should report healthy", func(t *testing.T) {
		handler := newTestHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()

		handler.HandleHealth(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"status": "healthy"}`, rec.Body.String())
	})
}
