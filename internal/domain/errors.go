package domain

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes transport-class failures raised at the provider
// boundary.
type ErrorKind string

const (
	// ErrorKindClient is a backend HTTP 4xx response.
	ErrorKindClient ErrorKind = "client"

	// ErrorKindServer is a backend HTTP 5xx response.
	ErrorKindServer ErrorKind = "server"

	// ErrorKindTimeout is a connect or read timeout.
	ErrorKindTimeout ErrorKind = "timeout"

	// ErrorKindTLS is a TLS handshake or certificate failure.
	ErrorKindTLS ErrorKind = "tls"

	// ErrorKindNetwork is a lower-level connection failure.
	ErrorKindNetwork ErrorKind = "network"

	// ErrorKindDecode is a malformed streaming frame or response document.
	ErrorKindDecode ErrorKind = "decode"

	// ErrorKindUnexpected is any backend response shape not covered above.
	ErrorKindUnexpected ErrorKind = "unexpected"
)

// APIError is the canonical transport-class error. Providers catch raw
// transport and decode failures at their boundary and re-raise them as an
// APIError; low-level errors never leak to callers undecorated.
type APIError struct {
	Kind       ErrorKind
	Provider   string
	StatusCode int // set for client/server kinds only
	Message    string
	Err        error // underlying cause, may be nil
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s error (status %d): %s", e.Provider, e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s error: %s", e.Provider, e.Kind, e.Message)
}

// Unwrap exposes the underlying cause.
func (e *APIError) Unwrap() error {
	return e.Err
}

// ValidationError is a request that fails a validation rule. It is raised
// before any network I/O and is never retried.
type ValidationError struct {
	Param   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Message)
}

// NewValidationError builds a ValidationError for a parameter.
func NewValidationError(param, format string, args ...any) *ValidationError {
	return &ValidationError{Param: param, Message: fmt.Sprintf(format, args...)}
}

// ConfigurationError is a missing or malformed credential or provider
// setting. It is fatal and raised at provider construction.
type ConfigurationError struct {
	Provider string
	Message  string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s configuration: %s", e.Provider, e.Message)
}

// UnknownProviderError is a model identifier whose prefix has no registered
// provider.
type UnknownProviderError struct {
	Prefix string
}

// Error implements the error interface.
func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("unknown provider prefix %q", e.Prefix)
}

// IsRetryable reports whether an error class may be retried. Only backend
// 5xx responses and timeouts qualify; validation, configuration and client
// errors never do.
func IsRetryable(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Kind == ErrorKindServer || apiErr.Kind == ErrorKindTimeout
}
