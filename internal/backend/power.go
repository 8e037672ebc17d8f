// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the ragdesk backend service.
package backend

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"time"
)

// =============================================================================
// POWER CLIENT
// =============================================================================

// PowerClient reads the remote machine's power status and writes the desired
// power flag to its external state store. The two endpoints are independent
// of the main backend service.
type PowerClient struct {
	statusURL  string
	stateURL   string
	httpClient *http.Client
}

// NewPowerClient creates a power client for the given status and state-store
// URLs. A zero timeout defaults to 10s; power probes should fail fast.
func NewPowerClient(statusURL, stateURL string, timeout time.Duration) *PowerClient {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &PowerClient{
		statusURL:  statusURL,
		stateURL:   stateURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Status probes the machine. Any HTTP 200 means "on"; an unreachable host or
// non-200 status means "off". An offline machine is an expected state, not
// an error, so the error return covers only request construction failures.
func (p *PowerClient) Status(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.statusURL, nil)
	if err != nil {
		return false, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return false, ctx.Err()
		}
		return false, nil
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	return resp.StatusCode == http.StatusOK, nil
}

// SetDesired writes the boolean power flag to the external state store.
// The on-site agent polls this flag and powers the machine accordingly.
func (p *PowerClient) SetDesired(ctx context.Context, on bool) error {
	payload := []byte("false")
	if on {
		payload = []byte("true")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, p.stateURL, bytes.NewReader(payload))
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return &ClientError{Type: ErrTypeConnection, Message: "power state store is unreachable", Cause: err}
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ClientError{
			Type:    ErrTypeBackend,
			Message: "power state write rejected: " + resp.Status,
		}
	}
	return nil
}
