// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tasks tracks browser automation batches submitted to the backend.
package tasks

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jeranaias/ragdesk-tui/internal/backend"
)

// =============================================================================
// TRACKER
// =============================================================================

// Tracker holds the client-side state of one submitted automation batch.
// The backend reports progress by 1-based task number, so the tracker keeps
// tasks in submission order and applies each event to the matching slot.
type Tracker struct {
	// tasks is the batch in submission order
	tasks []*Task

	// batchErr is set when the stream reports a batch-level error
	batchErr string

	// done is set once a terminal event has been applied
	done bool

	// mu protects concurrent access to the tracker
	mu sync.RWMutex

	// notifyChan sends notifications when task state changes
	notifyChan chan Notification
}

// Notification represents a task state change worth surfacing in the UI.
type Notification struct {
	Num      int
	Main     string
	Status   Status
	Error    string
	Duration time.Duration
}

// =============================================================================
// TRACKER CREATION
// =============================================================================

// NewTracker creates a tracker for the given batch. Empty specs are skipped,
// matching what the submission path sends to the backend.
func NewTracker(specs []Spec) *Tracker {
	t := &Tracker{
		notifyChan: make(chan Notification, 100),
	}
	for _, spec := range specs {
		if spec.IsEmpty() {
			continue
		}
		t.tasks = append(t.tasks, NewTask(len(t.tasks)+1, spec))
	}
	return t
}

// Payload returns the batch as the wire-format task list for submission.
func (t *Tracker) Payload() []backend.AutomationTask {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]backend.AutomationTask, len(t.tasks))
	for i, task := range t.tasks {
		out[i] = backend.AutomationTask{
			MainTask:     task.Main,
			FollowupTask: task.Followup,
		}
	}
	return out
}

// =============================================================================
// EVENT APPLICATION
// =============================================================================

// Apply updates the tracker from one stream event.
// Heartbeats and events for unknown task numbers are ignored; events arriving
// after the batch is done are dropped so a late write never resurrects state.
func (t *Tracker) Apply(e backend.TaskEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.done {
		return
	}

	switch e.Status {
	case backend.EventHeartbeat:
		return

	case backend.EventProgress:
		if task := t.byNumLocked(e.TaskNum); task != nil {
			task.MarkStarted()
			t.notifyLocked(task)
		}

	case backend.EventCompleted:
		if task := t.byNumLocked(e.TaskNum); task != nil {
			task.MarkComplete(e.Result, e.Type == "followup_task")
			t.notifyLocked(task)
		}

	case backend.EventError:
		if task := t.byNumLocked(e.TaskNum); task != nil {
			task.MarkFailed(e.Message)
			t.notifyLocked(task)
		} else {
			t.batchErr = e.Message
		}
		// An error event ends the whole stream, so queued tasks never run.
		for _, task := range t.tasks {
			if !task.IsDone() {
				task.MarkCanceled()
				t.notifyLocked(task)
			}
		}
		t.finishLocked()

	case backend.EventAllCompleted:
		for _, task := range t.tasks {
			if !task.IsDone() {
				task.MarkComplete(task.Result, task.Followup != "")
				t.notifyLocked(task)
			}
		}
		t.finishLocked()
	}
}

// finishLocked marks the batch done and closes the notification channel.
// All sends happen under t.mu while done is false, so closing here is safe.
func (t *Tracker) finishLocked() {
	t.done = true
	close(t.notifyChan)
}

// byNumLocked finds a task by its batch number (must be called with lock held).
func (t *Tracker) byNumLocked(num int) *Task {
	if num < 1 || num > len(t.tasks) {
		return nil
	}
	return t.tasks[num-1]
}

// notifyLocked sends a notification (must be called with lock held).
func (t *Tracker) notifyLocked(task *Task) {
	n := Notification{
		Num:      task.Num,
		Main:     task.Main,
		Status:   task.GetStatus(),
		Error:    task.Error,
		Duration: task.Duration(),
	}
	select {
	case t.notifyChan <- n:
	default:
		// Channel full, drop notification and log warning
		log.Printf("WARNING: notification channel full, dropped update for task %d (status: %s)",
			n.Num, n.Status)
	}
}

// =============================================================================
// TRACKER QUERIES
// =============================================================================

// All returns a copy of the batch in submission order.
func (t *Tracker) All() []*Task {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make([]*Task, len(t.tasks))
	for i, task := range t.tasks {
		result[i] = task.Clone()
	}
	return result
}

// Get retrieves a task by its batch number.
// Returns nil if the number is out of range.
func (t *Tracker) Get(num int) *Task {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if task := t.byNumLocked(num); task != nil {
		return task.Clone()
	}
	return nil
}

// Len returns the number of tasks in the batch.
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.tasks)
}

// Done reports whether the batch has reached a terminal state.
func (t *Tracker) Done() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.done
}

// BatchError returns the batch-level error message, or "" when none.
func (t *Tracker) BatchError() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.batchErr
}

// Cancel marks every unfinished task as canceled and ends the batch.
// Used when the user closes the browser mid-run.
func (t *Tracker) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.done {
		return
	}
	for _, task := range t.tasks {
		if !task.IsDone() {
			task.MarkCanceled()
			t.notifyLocked(task)
		}
	}
	t.finishLocked()
}

// =============================================================================
// NOTIFICATIONS
// =============================================================================

// Notifications returns the notification channel.
// Consumers can read from this channel to receive task state changes.
func (t *Tracker) Notifications() <-chan Notification {
	return t.notifyChan
}

// =============================================================================
// FORMATTING
// =============================================================================

// Summary returns a formatted summary of the batch.
func (t *Tracker) Summary() string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	running := 0
	queued := 0
	completed := 0
	failed := 0

	for _, task := range t.tasks {
		switch task.GetStatus() {
		case StatusQueued:
			queued++
		case StatusRunning:
			running++
		case StatusComplete:
			completed++
		case StatusFailed:
			failed++
		}
	}

	return fmt.Sprintf("Running: %d | Queued: %d | Completed: %d | Failed: %d",
		running, queued, completed, failed)
}
