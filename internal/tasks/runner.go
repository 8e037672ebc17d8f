// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tasks tracks browser automation batches submitted to the backend.
package tasks

import (
	"context"
	"fmt"

	"github.com/jeranaias/ragdesk-tui/internal/backend"
)

// =============================================================================
// AUTOMATION SERVICE
// =============================================================================

// Service is the slice of the backend client the runner needs.
type Service interface {
	RunTasks(ctx context.Context, tasks []backend.AutomationTask) error
	StreamTaskUpdates(ctx context.Context, fn func(backend.TaskEvent)) error
	CloseBrowser(ctx context.Context) error
}

// =============================================================================
// RUNNER
// =============================================================================

// Runner submits an automation batch and pumps the progress stream into its
// tracker. One runner drives one batch; create a new runner per submission.
type Runner struct {
	service Service
	tracker *Tracker
	cancel  context.CancelFunc
}

// NewRunner creates a runner for the given backend service and batch tracker.
func NewRunner(service Service, tracker *Tracker) *Runner {
	return &Runner{service: service, tracker: tracker}
}

// Tracker returns the batch tracker this runner feeds.
func (r *Runner) Tracker() *Tracker {
	return r.tracker
}

// Run submits the batch and starts consuming the progress stream in the
// background. The returned channel delivers exactly one value when the batch
// ends: nil on normal termination, or the submission/stream error.
func (r *Runner) Run(ctx context.Context) <-chan error {
	done := make(chan error, 1)

	if r.tracker.Len() == 0 {
		done <- fmt.Errorf("no tasks to run")
		return done
	}

	ctx, r.cancel = context.WithCancel(ctx)

	go func() {
		if err := r.service.RunTasks(ctx, r.tracker.Payload()); err != nil {
			r.tracker.Cancel()
			done <- err
			return
		}

		err := r.service.StreamTaskUpdates(ctx, r.tracker.Apply)
		if err != nil {
			// The stream died without a terminal event; reflect that in
			// the tracker so no task is left showing as running.
			r.tracker.Cancel()
			done <- err
			return
		}
		// A stream that ended without a terminal event still ends the batch.
		r.tracker.Cancel()
		done <- nil
	}()

	return done
}

// Abort asks the backend to close the browser and stops the stream consumer.
// The tracker is canceled immediately so the UI settles without waiting for
// the backend to acknowledge.
func (r *Runner) Abort(ctx context.Context) error {
	if r.cancel != nil {
		r.cancel()
	}
	r.tracker.Cancel()
	return r.service.CloseBrowser(ctx)
}
