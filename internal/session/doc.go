// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the conversation state of the chat screen.
//
// The Manager holds the conversation list, the active conversation's message
// history, and the lifecycle of each question/answer exchange. The UI calls
// command constructors (ListConversations, Send, ...) which perform network
// I/O off the update loop and deliver typed messages; the matching Apply
// methods fold those messages back into state. All mutation happens on the
// update loop, so the manager needs no locking.
//
// # Key Types
//
//   - Manager: conversation list, history, and exchange state
//   - Backend: the slice of the HTTP client the manager depends on
//   - PrefsStore: the durable cell holding the active conversation id
//
// # Exchange lifecycle
//
// A send optimistically appends a user message and a pending bot placeholder
// sharing one timestamp token. The backend response resolves or fails the
// placeholder in place, keyed by message id. One exchange is in flight at a
// time, and a response arriving after the user switched conversations is
// discarded rather than resolved into the wrong history.
package session
