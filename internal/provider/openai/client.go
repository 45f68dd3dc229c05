package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/emberhq/hearth/internal/domain"
	"github.com/emberhq/hearth/internal/provider/sse"
)

const streamReadBufferSize = 4 * 1024

// Client is the HTTP transport for the chat-completion endpoint. TLS
// verification is always on. Two http.Clients share one transport: the sync
// client bounds the whole exchange, the stream client only bounds the wait
// for response headers so long streams are not cut off mid-flight.
type Client struct {
	apiKey       string
	baseURL      string
	syncClient   *http.Client
	streamClient *http.Client
}

// NewClient creates a new chat-completion transport from provider
// configuration.
func NewClient(config Config) *Client {
	connectTimeout := time.Duration(config.ConnectTimeout) * time.Second
	requestTimeout := time.Duration(config.RequestTimeout) * time.Second

	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: connectTimeout,
		}).DialContext,
		TLSHandshakeTimeout:   connectTimeout,
		ResponseHeaderTimeout: requestTimeout,
	}

	return &Client{
		apiKey:  config.APIKey,
		baseURL: strings.TrimSuffix(config.BaseURL, "/"),
		syncClient: &http.Client{
			Transport: transport,
			Timeout:   requestTimeout,
		},
		streamClient: &http.Client{
			Transport: transport,
		},
	}
}

// CreateChatCompletion executes a non-streaming completion call and returns
// the normalized response.
func (c *Client) CreateChatCompletion(ctx context.Context, payload *chatRequest) (*domain.Response, error) {
	resp, err := c.post(ctx, payload, false)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, mapTransportError(err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, mapStatusError(resp.StatusCode, body)
	}
	return decodeResponse(body)
}

// StreamChatCompletion executes a streaming completion call. Decoded chunks
// are delivered in arrival order; the channel is closed when the stream
// terminates. A decode error terminates the stream rather than skipping the
// bad frame. Canceling ctx aborts the underlying connection, which surfaces
// as a transport error.
func (c *Client) StreamChatCompletion(ctx context.Context, payload *chatRequest) (<-chan domain.StreamChunk, error) {
	resp, err := c.post(ctx, payload, true)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return nil, mapStatusError(resp.StatusCode, body)
	}

	out := make(chan domain.StreamChunk)
	go c.readStream(resp.Body, out)
	return out, nil
}

func (c *Client) post(ctx context.Context, payload *chatRequest, streaming bool) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	if streaming {
		httpReq.Header.Set("Accept", "text/event-stream")
	} else {
		httpReq.Header.Set("Accept", "application/json")
	}

	client := c.syncClient
	if streaming {
		client = c.streamClient
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, mapTransportError(err)
	}
	return resp, nil
}

// readStream pumps the response body through the frame decoder. Reads come
// in arbitrary sizes; the decoder buffers partial frames until complete.
func (c *Client) readStream(body io.ReadCloser, out chan<- domain.StreamChunk) {
	defer close(out)
	defer body.Close()

	var decoder sse.Decoder
	buf := make([]byte, streamReadBufferSize)

	for {
		n, readErr := body.Read(buf)
		if n > 0 {
			events, done := decoder.Feed(buf[:n])
			for _, event := range events {
				chunk, err := decodeChunk(event)
				if err != nil {
					out <- domain.StreamChunk{Err: err}
					return
				}
				out <- domain.StreamChunk{Delta: chunk}
			}
			if done {
				return
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				if decoder.Buffered() > 0 {
					out <- domain.StreamChunk{Err: decodeError(errors.New("stream ended with an incomplete frame"))}
				}
				return
			}
			out <- domain.StreamChunk{Err: mapTransportError(readErr)}
			return
		}
	}
}
