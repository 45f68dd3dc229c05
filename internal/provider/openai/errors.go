package openai

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/emberhq/hearth/internal/domain"
)

// wireError is the error envelope backends put in non-2xx bodies.
type wireError struct {
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Param   string `json:"param"`
		Code    string `json:"code"`
	} `json:"error"`
}

// mapTransportError converts a raw transport failure into the canonical
// taxonomy. Low-level errors are wrapped, never surfaced undecorated.
func mapTransportError(err error) *domain.APIError {
	apiErr := &domain.APIError{
		Provider: Prefix,
		Message:  err.Error(),
		Err:      err,
	}

	var (
		netErr         net.Error
		recordErr      tls.RecordHeaderError
		certErr        *tls.CertificateVerificationError
		unknownAuthErr x509.UnknownAuthorityError
		hostnameErr    x509.HostnameError
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		apiErr.Kind = domain.ErrorKindTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		apiErr.Kind = domain.ErrorKindTimeout
	case errors.As(err, &certErr),
		errors.As(err, &recordErr),
		errors.As(err, &unknownAuthErr),
		errors.As(err, &hostnameErr):
		apiErr.Kind = domain.ErrorKindTLS
	default:
		apiErr.Kind = domain.ErrorKindNetwork
	}
	return apiErr
}

// mapStatusError converts a non-2xx HTTP response into a client or server
// error, preferring the backend's own error message when the body parses.
func mapStatusError(statusCode int, body []byte) *domain.APIError {
	kind := domain.ErrorKindClient
	if statusCode >= http.StatusInternalServerError {
		kind = domain.ErrorKindServer
	}

	message := string(body)
	var envelope wireError
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != nil {
		message = envelope.Error.Message
		if envelope.Error.Code != "" {
			message = fmt.Sprintf("%s (%s)", message, envelope.Error.Code)
		}
	}

	return &domain.APIError{
		Kind:       kind,
		Provider:   Prefix,
		StatusCode: statusCode,
		Message:    message,
	}
}

// decodeError wraps a malformed frame or response document.
func decodeError(err error) *domain.APIError {
	return &domain.APIError{
		Kind:     domain.ErrorKindDecode,
		Provider: Prefix,
		Message:  err.Error(),
		Err:      err,
	}
}

// unexpectedError flags a backend response shape outside the taxonomy.
func unexpectedError(format string, args ...any) *domain.APIError {
	return &domain.APIError{
		Kind:     domain.ErrorKindUnexpected,
		Provider: Prefix,
		Message:  fmt.Sprintf(format, args...),
	}
}
