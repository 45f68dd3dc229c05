package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/emberhq/hearth/internal/domain"
	"github.com/emberhq/hearth/internal/observability"
	"go.uber.org/zap"
)

// Handler handles HTTP requests.
type Handler struct {
	gateway *domain.GatewayService
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(gateway *domain.GatewayService) *Handler {
	return &Handler{
		gateway: gateway,
	}
}

// HandleChatCompletion processes chat completion requests. The request body
// is the normalized OpenAI-format request with a prefixed model identifier;
// routing happens on the prefix.
func (h *Handler) HandleChatCompletion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	ctx = observability.WithModel(ctx, req.Model)
	logger := observability.FromContext(ctx)
	logger.Info("completion request received",
		zap.String("model", req.Model),
		zap.Bool("stream", req.Stream),
	)

	if req.Stream {
		h.handleStream(w, r.WithContext(ctx), &req)
		return
	}

	response, err := h.gateway.Complete(ctx, &req)
	if err != nil {
		logger.Error("completion failed", zap.Error(err))
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if encodeErr := json.NewEncoder(w).Encode(response); encodeErr != nil {
		logger.Error("failed to encode response", zap.Error(encodeErr))
	}
}

func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request, req *domain.Request) {
	ctx := r.Context()
	logger := observability.FromContext(ctx)

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	chunks, err := h.gateway.Stream(ctx, req)
	if err != nil {
		logger.Error("stream failed", zap.Error(err))
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	for chunk := range chunks {
		if chunk.Err != nil {
			logger.Error("stream chunk error", zap.Error(chunk.Err))
			fmt.Fprintf(w, "event: error\ndata: %s\n\n", chunk.Err.Error())
			flusher.Flush()
			return
		}

		data, _ := json.Marshal(chunk.Delta)
		fmt.Fprintf(w, "data: %s\n\n", data)
		flusher.Flush()
	}

	fmt.Fprint(w, "data: [DONE]\n\n")
	flusher.Flush()
	logger.Info("stream completed")
}

// HandleHealth handles health check requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
	})
}

// writeError maps taxonomy members to HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	var (
		validationErr *domain.ValidationError
		unknownErr    *domain.UnknownProviderError
		apiErr        *domain.APIError
	)
	switch {
	case errors.As(err, &validationErr):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &unknownErr):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &apiErr):
		switch apiErr.Kind {
		case domain.ErrorKindClient:
			status := apiErr.StatusCode
			if status == 0 {
				status = http.StatusBadRequest
			}
			http.Error(w, err.Error(), status)
		case domain.ErrorKindTimeout:
			http.Error(w, err.Error(), http.StatusGatewayTimeout)
		default:
			http.Error(w, err.Error(), http.StatusBadGateway)
		}
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
