// Package sse decodes server-sent-event streams as produced by
// OpenAI-compatible completion endpoints: a sequence of "data: <json>"
// frames delimited by blank lines and terminated by a "data: [DONE]"
// sentinel.
package sse

import (
	"bytes"
	"strings"
)

// doneSentinel is the literal payload of the stream-termination frame.
const doneSentinel = "[DONE]"

// Decoder is a stateful accumulator over arbitrarily-chunked byte reads.
// One network read does not equal one event: Feed appends incoming bytes to
// an internal buffer, extracts only the complete frames, and keeps any
// trailing partial frame buffered for the next call. The zero value is
// ready to use. A Decoder is not safe for concurrent use.
type Decoder struct {
	buf  []byte
	done bool
}

// Feed appends p to the internal buffer and returns the data payloads of
// every complete frame now available, in order. done becomes true when the
// termination sentinel is reached; the sentinel itself is never returned as
// an event and any frames buffered after it are discarded.
func (d *Decoder) Feed(p []byte) (events [][]byte, done bool) {
	if d.done {
		return nil, true
	}
	d.buf = append(d.buf, p...)

	for {
		frame, rest, ok := cutFrame(d.buf)
		if !ok {
			return events, false
		}
		d.buf = rest

		data, ok := frameData(frame)
		if !ok {
			// Comment or non-data frame, skipped.
			continue
		}
		if data == doneSentinel {
			d.done = true
			d.buf = nil
			return events, true
		}
		events = append(events, []byte(data))
	}
}

// Done reports whether the termination sentinel has been seen.
func (d *Decoder) Done() bool {
	return d.done
}

// Buffered returns the number of bytes held for the next complete frame.
func (d *Decoder) Buffered() int {
	return len(d.buf)
}

// cutFrame splits buf around the first blank-line delimiter.
func cutFrame(buf []byte) (frame, rest []byte, ok bool) {
	idx := bytes.Index(buf, []byte("\n\n"))
	sep := 2
	if crlf := bytes.Index(buf, []byte("\r\n\r\n")); crlf != -1 && (idx == -1 || crlf < idx) {
		idx, sep = crlf, 4
	}
	if idx == -1 {
		return nil, buf, false
	}
	return buf[:idx], buf[idx+sep:], true
}

// frameData extracts and joins the data field lines of one frame. ok is
// false for frames carrying no data field (comments, other event fields).
func frameData(frame []byte) (string, bool) {
	var parts []string
	for _, line := range strings.Split(string(frame), "\n") {
		line = strings.TrimSuffix(line, "\r")
		switch {
		case strings.HasPrefix(line, "data: "):
			parts = append(parts, strings.TrimPrefix(line, "data: "))
		case strings.HasPrefix(line, "data:"):
			parts = append(parts, strings.TrimPrefix(line, "data:"))
		}
	}
	if parts == nil {
		return "", false
	}
	return strings.Join(parts, "\n"), true
}
