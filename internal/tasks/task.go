// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tasks tracks browser automation batches submitted to the backend.
package tasks

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// TASK STATUS
// =============================================================================

// Status represents the current state of an automation task.
type Status string

const (
	// StatusQueued indicates the task is waiting for the backend to reach it
	StatusQueued Status = "Queued"

	// StatusRunning indicates the backend is currently executing the task
	StatusRunning Status = "Running"

	// StatusComplete indicates the task finished successfully
	StatusComplete Status = "Complete"

	// StatusFailed indicates the task encountered an error
	StatusFailed Status = "Failed"

	// StatusCanceled indicates the batch was aborted before the task ran
	StatusCanceled Status = "Canceled"
)

// String returns the string representation of the task status.
func (s Status) String() string {
	return string(s)
}

// =============================================================================
// TASK SPEC
// =============================================================================

// Spec describes an automation task before submission: the main instruction
// and an optional followup carried out after the main one succeeds.
type Spec struct {
	Main     string
	Followup string
}

// IsEmpty reports whether the spec has no main instruction.
func (s Spec) IsEmpty() bool {
	return s.Main == ""
}

// =============================================================================
// TASK STRUCTURE
// =============================================================================

// Task represents one automation task in a submitted batch.
// The backend identifies tasks by their 1-based position in the batch, so Num
// is the join key between local state and the event stream.
type Task struct {
	// ID is a unique identifier for this task
	ID string

	// Num is the task's 1-based position in the submitted batch
	Num int

	// Main is the main automation instruction
	Main string

	// Followup is the optional followup instruction
	Followup string

	// Status is the current state of the task
	Status Status

	// StartTime is when the backend started executing the task
	StartTime time.Time

	// EndTime is when the task completed or failed
	EndTime time.Time

	// Result is the text the backend extracted while executing the task
	Result string

	// FollowupResult is the result of the followup instruction, if any
	FollowupResult string

	// Error is the error message if the task failed
	Error string

	// mu protects concurrent access to the task
	mu sync.RWMutex
}

// =============================================================================
// TASK CREATION
// =============================================================================

// NewTask creates a queued task at the given batch position.
func NewTask(num int, spec Spec) *Task {
	return &Task{
		ID:       uuid.New().String(),
		Num:      num,
		Main:     spec.Main,
		Followup: spec.Followup,
		Status:   StatusQueued,
	}
}

// =============================================================================
// TASK METHODS
// =============================================================================

// SetStatus updates the task status (thread-safe).
// Validates state transitions to prevent invalid status changes.
// Valid transitions: Queued -> Running -> Complete/Failed/Canceled
func (t *Task) SetStatus(status Status) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.isValidTransition(t.Status, status) {
		return fmt.Errorf("invalid status transition from %s to %s", t.Status, status)
	}

	t.Status = status
	return nil
}

// isValidTransition checks if a status transition is valid (must be called with lock held).
func (t *Task) isValidTransition(from, to Status) bool {
	// Allow setting the same status (idempotent)
	if from == to {
		return true
	}

	switch from {
	case StatusQueued:
		return to == StatusRunning || to == StatusCanceled
	case StatusRunning:
		return to == StatusComplete || to == StatusFailed || to == StatusCanceled
	case StatusComplete, StatusFailed, StatusCanceled:
		// Terminal states, no transitions allowed
		return false
	default:
		return false
	}
}

// GetStatus returns the current task status (thread-safe).
func (t *Task) GetStatus() Status {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.Status
}

// MarkStarted marks the task as running (thread-safe).
// This bypasses status transition validation for internal use.
func (t *Task) MarkStarted() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Status != StatusQueued {
		return
	}
	t.Status = StatusRunning
	t.StartTime = time.Now()
}

// MarkComplete records a result and marks the task as complete (thread-safe).
// Followup results arrive as separate events, so isFollowup selects which
// result field the text lands in; the followup completion is what ends the task.
func (t *Task) MarkComplete(result string, isFollowup bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if isFollowup {
		t.FollowupResult = result
	} else {
		t.Result = result
	}
	if isFollowup || t.Followup == "" {
		t.Status = StatusComplete
		t.EndTime = time.Now()
	}
}

// MarkFailed sets the error message and marks the task as failed (thread-safe).
func (t *Task) MarkFailed(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Error = message
	t.Status = StatusFailed
	t.EndTime = time.Now()
}

// MarkCanceled marks the task as canceled (thread-safe).
// Tasks that already reached a terminal state are left alone.
func (t *Task) MarkCanceled() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.Status == StatusComplete || t.Status == StatusFailed {
		return
	}
	t.Status = StatusCanceled
	t.EndTime = time.Now()
}

// Duration returns how long the task has been running or took to complete.
func (t *Task) Duration() time.Duration {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.StartTime.IsZero() {
		return 0
	}

	if t.EndTime.IsZero() {
		return time.Since(t.StartTime)
	}

	return t.EndTime.Sub(t.StartTime)
}

// IsRunning returns true if the task is currently running.
func (t *Task) IsRunning() bool {
	return t.GetStatus() == StatusRunning
}

// IsDone returns true if the task has finished (success, failure, or canceled).
func (t *Task) IsDone() bool {
	status := t.GetStatus()
	return status == StatusComplete || status == StatusFailed || status == StatusCanceled
}

// Summary returns a one-line summary of the task.
func (t *Task) Summary() string {
	status := t.GetStatus()
	duration := t.Duration()

	summary := fmt.Sprintf("[%d] %s - %s", t.Num, t.Main, status)

	if duration > 0 {
		summary += fmt.Sprintf(" (%.1fs)", duration.Seconds())
	}

	return summary
}

// Clone creates a thread-safe copy of the task for reading.
func (t *Task) Clone() *Task {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return &Task{
		ID:             t.ID,
		Num:            t.Num,
		Main:           t.Main,
		Followup:       t.Followup,
		Status:         t.Status,
		StartTime:      t.StartTime,
		EndTime:        t.EndTime,
		Result:         t.Result,
		FollowupResult: t.FollowupResult,
		Error:          t.Error,
	}
}
