// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package tasks tracks browser automation batches submitted to the backend.
//
// A batch is an ordered list of automation tasks (a main instruction plus an
// optional followup). The backend executes the batch remotely and reports
// progress over a server-sent event stream; this package keeps the
// client-side view of each task's status in sync with that stream.
//
// # Key Types
//
//   - Task: one automation task with status, result, and timing
//   - Tracker: the client-side state of a submitted batch, updated from events
//   - Runner: submits a batch and pumps the event stream into a Tracker
//
// # Usage
//
// Submit a batch and watch it run:
//
//	tracker := tasks.NewTracker([]tasks.Spec{{Main: "open the dashboard"}})
//	runner := tasks.NewRunner(client, tracker)
//	done := runner.Run(ctx)
//
//	for n := range tracker.Notifications() {
//	    fmt.Printf("task %d: %s\n", n.Num, n.Status)
//	}
//	if err := <-done; err != nil {
//	    log.Printf("batch failed: %v", err)
//	}
package tasks
