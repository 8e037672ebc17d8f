// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the ragdesk backend service.
package backend

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"
)

// =============================================================================
// SSE READER TESTS
// =============================================================================

func TestSSEReader_ReadEvent(t *testing.T) {
	input := "event: update\ndata: {\"a\":1}\n\ndata: {\"b\":2}\n\n"
	r := NewSSEReader(strings.NewReader(input))

	eventType, data, err := r.ReadEvent()
	if err != nil {
		t.Fatalf("first ReadEvent failed: %v", err)
	}
	if eventType != "update" {
		t.Errorf("event type = %q, want update", eventType)
	}
	if string(data) != `{"a":1}` {
		t.Errorf("data = %q", data)
	}

	_, data, err = r.ReadEvent()
	if err != nil {
		t.Fatalf("second ReadEvent failed: %v", err)
	}
	if string(data) != `{"b":2}` {
		t.Errorf("data = %q", data)
	}
}

func TestSSEReader_MultilineData(t *testing.T) {
	input := "data: line1\ndata: line2\n\n"
	r := NewSSEReader(strings.NewReader(input))

	_, data, err := r.ReadEvent()
	if err != nil {
		t.Fatalf("ReadEvent failed: %v", err)
	}
	if string(data) != "line1\nline2" {
		t.Errorf("data = %q, want joined lines", data)
	}
}

func TestSSEReader_IgnoresComments(t *testing.T) {
	input := ": keepalive\nid: 7\ndata: payload\n\n"
	r := NewSSEReader(strings.NewReader(input))

	_, data, err := r.ReadEvent()
	if err != nil {
		t.Fatalf("ReadEvent failed: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("data = %q", data)
	}
}

func TestSSEReader_TrailingEventWithoutNewline(t *testing.T) {
	r := NewSSEReader(strings.NewReader("data: tail"))

	_, data, err := r.ReadEvent()
	if err != nil {
		t.Fatalf("ReadEvent failed: %v", err)
	}
	if string(data) != "tail" {
		t.Errorf("data = %q", data)
	}
}

// =============================================================================
// TASK STREAM TESTS
// =============================================================================

func TestStreamTaskUpdates_TerminatesOnAllCompleted(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/task-updates" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"status\":\"progress\",\"task_num\":1,\"type\":\"main_task\"}\n\n")
		fmt.Fprint(w, "data: {\"status\":\"heartbeat\"}\n\n")
		fmt.Fprint(w, "data: {\"status\":\"completed\",\"task_num\":1,\"type\":\"main_task\",\"result\":\"ok\"}\n\n")
		fmt.Fprint(w, "data: {\"status\":\"all_completed\"}\n\n")
		// Anything after the terminal event must not be delivered.
		fmt.Fprint(w, "data: {\"status\":\"progress\",\"task_num\":99}\n\n")
	}))

	var events []TaskEvent
	err := client.StreamTaskUpdates(context.Background(), func(e TaskEvent) {
		events = append(events, e)
	})
	if err != nil {
		t.Fatalf("StreamTaskUpdates failed: %v", err)
	}

	if len(events) != 4 {
		t.Fatalf("got %d events, want 4: %+v", len(events), events)
	}
	if events[0].Status != EventProgress || events[0].TaskNum != 1 {
		t.Errorf("first event = %+v", events[0])
	}
	if events[2].Result != "ok" {
		t.Errorf("completed event = %+v", events[2])
	}
	if !events[3].IsTerminal() {
		t.Error("all_completed should be terminal")
	}
}

func TestStreamTaskUpdates_TerminatesOnError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"status\":\"error\",\"message\":\"browser crashed\"}\n\n")
	}))

	var last TaskEvent
	err := client.StreamTaskUpdates(context.Background(), func(e TaskEvent) { last = e })
	if err != nil {
		t.Fatalf("StreamTaskUpdates failed: %v", err)
	}
	if last.Status != EventError || last.Message != "browser crashed" {
		t.Errorf("last event = %+v", last)
	}
}

func TestStreamTaskUpdatesChan_ClosesChannel(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"status\":\"all_completed\"}\n\n")
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var got []TaskEvent
	for e := range client.StreamTaskUpdatesChan(ctx) {
		got = append(got, e)
	}
	if len(got) != 1 || got[0].Status != EventAllCompleted {
		t.Errorf("events = %+v", got)
	}
}

func TestStreamTaskUpdates_ContextCancel(t *testing.T) {
	release := make(chan struct{})
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"status\":\"progress\",\"task_num\":1}\n\n")
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		<-release
	}))
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- client.StreamTaskUpdates(ctx, func(e TaskEvent) {
			cancel() // cancel as soon as the first event lands
		})
	}()

	select {
	case err := <-errCh:
		if err == nil {
			t.Fatal("expected cancellation error")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("stream did not terminate after cancel")
	}
}
