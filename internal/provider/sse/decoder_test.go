package sse_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/emberhq/hearth/internal/provider/sse"
)

func TestDecoder_Feed(t *testing.T) {
	t.Run("should extract complete frames in order", func(t *testing.T) {
		var dec sse.Decoder

		events, done := dec.Feed([]byte("data: {\"a\":1}\n\ndata: {\"b\":2}\n\n"))

		require.False(t, done)
		require.Len(t, events, 2)
		require.Equal(t, `{"a":1}`, string(events[0]))
		require.Equal(t, `{"b":2}`, string(events[1]))
	})

	t.Run("should buffer a partial frame across reads", func(t *testing.T) {
		var dec sse.Decoder

		events, done := dec.Feed([]byte("data: {\"a\""))
		require.False(t, done)
		require.Empty(t, events)
		require.Positive(t, dec.Buffered())

		events, done = dec.Feed([]byte(":1}\n\n"))
		require.False(t, done)
		require.Len(t, events, 1)
		require.Equal(t, `{"a":1}`, string(events[0]))
		require.Zero(t, dec.Buffered())
	})

	t.Run("should handle a delimiter split across reads", func(t *testing.T) {
		var dec sse.Decoder

		events, _ := dec.Feed([]byte("data: {\"a\":1}\n"))
		require.Empty(t, events)

		events, _ = dec.Feed([]byte("\n"))
		require.Len(t, events, 1)
	})

	t.Run("should handle CRLF delimiters", func(t *testing.T) {
		var dec sse.Decoder

		events, done := dec.Feed([]byte("data: {\"a\":1}\r\n\r\ndata: [DONE]\r\n\r\n"))

		require.True(t, done)
		require.Len(t, events, 1)
		require.Equal(t, `{"a":1}`, string(events[0]))
	})

	t.Run("should stop at the termination sentinel without emitting it", func(t *testing.T) {
		var dec sse.Decoder

		events, done := dec.Feed([]byte("data: {\"a\":1}\n\ndata: [DONE]\n\ndata: {\"late\":true}\n\n"))

		require.True(t, done)
		require.Len(t, events, 1)
		require.Equal(t, `{"a":1}`, string(events[0]))
		require.True(t, dec.Done())
		require.Zero(t, dec.Buffered())
	})

	t.Run("should ignore feeds after the sentinel", func(t *testing.T) {
		var dec sse.Decoder

		_, done := dec.Feed([]byte("data: [DONE]\n\n"))
		require.True(t, done)

		events, done := dec.Feed([]byte("data: {\"a\":1}\n\n"))
		require.True(t, done)
		require.Empty(t, events)
	})

	t.Run("should skip comment frames", func(t *testing.T) {
		var dec sse.Decoder

		events, done := dec.Feed([]byte(": keep-alive\n\ndata: {\"a\":1}\n\n"))

		require.False(t, done)
		require.Len(t, events, 1)
	})

	t.Run("should join multi-line data fields", func(t *testing.T) {
		var dec sse.Decoder

		events, _ := dec.Feed([]byte("data: first\ndata: second\n\n"))

		require.Len(t, events, 1)
		require.Equal(t, "first\nsecond", string(events[0]))
	})

	t.Run("should accept data fields without a space after the colon", func(t *testing.T) {
		var dec sse.Decoder

		events, _ := dec.Feed([]byte("data:{\"a\":1}\n\n"))

		require.Len(t, events, 1)
		require.Equal(t, `{"a":1}`, string(events[0]))
	})

	t.Run("should handle byte-at-a-time delivery", func(t *testing.T) {
		var dec sse.Decoder
		input := []byte("data: {\"n\":1}\n\ndata: [DONE]\n\n")

		var collected [][]byte
		var done bool
		for _, b := range input {
			events, d := dec.Feed([]byte{b})
			collected = append(collected, events...)
			done = d
		}

		require.True(t, done)
		require.Len(t, collected, 1)
		require.Equal(t, `{"n":1}`, string(collected[0]))
	})
}
