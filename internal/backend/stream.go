// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the ragdesk backend service.
package backend

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// STREAMING: Robust SSE parsing with error handling

// =============================================================================
// SSE READER
// =============================================================================

// SSEReader parses Server-Sent Events from a stream.
type SSEReader struct {
	reader *bufio.Reader
}

// NewSSEReader creates a new SSE reader from an io.Reader.
func NewSSEReader(r io.Reader) *SSEReader {
	return &SSEReader{
		reader: bufio.NewReader(r),
	}
}

// ReadEvent reads the next SSE event from the stream and returns the event
// type and joined data lines. Returns io.EOF when the stream ends.
func (s *SSEReader) ReadEvent() (string, []byte, error) {
	var eventType string
	var dataLines [][]byte

	for {
		line, err := s.reader.ReadBytes('\n')
		if err != nil {
			if err == io.EOF {
				// Deliver a trailing event that was not newline-terminated.
				if len(dataLines) > 0 {
					return eventType, bytes.Join(dataLines, []byte("\n")), nil
				}
				return "", nil, io.EOF
			}
			return "", nil, err
		}

		line = bytes.TrimRight(line, "\r\n")

		// Empty line signals end of event.
		if len(line) == 0 {
			if len(dataLines) > 0 {
				return eventType, bytes.Join(dataLines, []byte("\n")), nil
			}
			continue
		}

		if bytes.HasPrefix(line, []byte("event:")) {
			eventType = string(bytes.TrimSpace(line[6:]))
		} else if bytes.HasPrefix(line, []byte("data:")) {
			dataLines = append(dataLines, bytes.TrimSpace(line[5:]))
		}
		// Ignore other fields (id:, retry:, comments starting with :).
	}
}

// =============================================================================
// TASK UPDATE STREAM
// =============================================================================

// TaskEventCallback is called for each task event received on the stream.
type TaskEventCallback func(event TaskEvent)

// StreamTaskUpdates opens the automation SSE stream and invokes the callback
// for each event, in order, until a terminal event arrives, the stream ends,
// or the context is canceled. The connection is always closed on return.
func (c *Client) StreamTaskUpdates(ctx context.Context, callback func(event TaskEvent)) error {
	// Streaming connections manage their own lifetime through the context;
	// a client-level timeout would kill long-running task batches.
	streamClient := &http.Client{}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/task-updates", nil)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := streamClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return ErrTimeout
		}
		return &ClientError{Type: ErrTypeConnection, Message: "backend is unreachable", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &ClientError{
			Type:    ErrTypeConnection,
			Message: "task stream request failed: " + resp.Status,
		}
	}

	reader := NewSSEReader(resp.Body)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		_, data, err := reader.ReadEvent()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			if errors.Is(err, context.Canceled) {
				return ctx.Err()
			}
			return &ClientError{Type: ErrTypeConnection, Message: "task stream interrupted", Cause: err}
		}

		var event TaskEvent
		if err := json.Unmarshal(data, &event); err != nil {
			return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode task event", Cause: err}
		}

		callback(event)

		if event.IsTerminal() {
			return nil
		}
	}
}

// StreamTaskUpdatesChan opens the automation SSE stream and returns a channel
// of events. The channel is closed when the stream ends; errors are delivered
// as a final error-status event carrying the failure text.
func (c *Client) StreamTaskUpdatesChan(ctx context.Context) <-chan TaskEvent {
	ch := make(chan TaskEvent)

	go func() {
		defer close(ch)

		err := c.StreamTaskUpdates(ctx, func(event TaskEvent) {
			select {
			case ch <- event:
			case <-ctx.Done():
			}
		})

		if err != nil && !errors.Is(err, context.Canceled) {
			select {
			case ch <- TaskEvent{Status: EventError, Message: err.Error()}:
			case <-ctx.Done():
			}
		}
	}()

	return ch
}
