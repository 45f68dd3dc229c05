package observability

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

type contextKey string

// Context keys for request-scoped identity and routing metadata. FromContext
// turns whichever of these are set into log fields.
const (
	TraceIDKey   contextKey = "trace_id"
	SpanIDKey    contextKey = "span_id"
	RequestIDKey contextKey = "request_id"
	ProviderKey  contextKey = "provider"
	ModelKey     contextKey = "model"
)

// W3C-compatible ID sizes.
const (
	traceIDBytes = 16
	spanIDBytes  = 8
)

// WithTraceID injects the trace ID into context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// WithSpanID injects the span ID into context.
func WithSpanID(ctx context.Context, spanID string) context.Context {
	return context.WithValue(ctx, SpanIDKey, spanID)
}

// WithRequestID injects the request ID into context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

// WithProvider injects the routed provider name into context.
func WithProvider(ctx context.Context, provider string) context.Context {
	return context.WithValue(ctx, ProviderKey, provider)
}

// WithModel injects the requested model identifier into context.
func WithModel(ctx context.Context, model string) context.Context {
	return context.WithValue(ctx, ModelKey, model)
}

// GetTraceID extracts the trace ID, or "" when absent.
func GetTraceID(ctx context.Context) string { return getString(ctx, TraceIDKey) }

// GetSpanID extracts the span ID, or "" when absent.
func GetSpanID(ctx context.Context) string { return getString(ctx, SpanIDKey) }

// GetRequestID extracts the request ID, or "" when absent.
func GetRequestID(ctx context.Context) string { return getString(ctx, RequestIDKey) }

// GetProvider extracts the routed provider name, or "" when absent.
func GetProvider(ctx context.Context) string { return getString(ctx, ProviderKey) }

// GetModel extracts the requested model identifier, or "" when absent.
func GetModel(ctx context.Context) string { return getString(ctx, ModelKey) }

func getString(ctx context.Context, key contextKey) string {
	value, _ := ctx.Value(key).(string)
	return value
}

// GenerateTraceID generates a 32-hex-char trace ID.
func GenerateTraceID() string {
	return randomHex(traceIDBytes)
}

// GenerateSpanID generates a 16-hex-char span ID.
func GenerateSpanID() string {
	return randomHex(spanIDBytes)
}

// GenerateRequestID generates a unique request identifier.
func GenerateRequestID() string {
	return uuid.New().String()
}

func randomHex(n int) string {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return uuid.New().String()[:2*n]
	}
	return hex.EncodeToString(bytes)
}
