// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the client-side data structures for the ragdesk TUI.
package model

import (
	"strconv"
	"time"
)

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// MessageType identifies the sender of a message.
type MessageType string

const (
	MessageUser MessageType = "user"
	MessageBot  MessageType = "bot"
)

// DisplayName returns a human-readable name for the message type.
func (t MessageType) DisplayName() string {
	switch t {
	case MessageUser:
		return "You"
	case MessageBot:
		return "Assistant"
	default:
		return string(t)
	}
}

// =============================================================================
// MESSAGE STATE
// =============================================================================

// MessageState tracks the exchange lifecycle of a bot message.
// User messages are always Resolved.
type MessageState int

const (
	// StatePending marks a placeholder bot message awaiting its answer.
	StatePending MessageState = iota
	// StateResolved marks a message whose content is final.
	StateResolved
	// StateFailed marks a placeholder that received an error instead of
	// an answer. Failed exchanges stay visible in history.
	StateFailed
)

// String returns the string representation of the state.
func (s MessageState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateResolved:
		return "resolved"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// =============================================================================
// MESSAGE
// =============================================================================

// Message is a single entry in a conversation's history.
//
// Wire tags match the backend's history payload so loaded messages decode
// directly. State and ShowDetails are client-only.
type Message struct {
	ID        string      `json:"id"`
	Type      MessageType `json:"type"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`

	// Answer metadata, present once a query resolves.
	Sources    []string `json:"sources,omitempty"`
	NichesUsed []string `json:"niches_used,omitempty"`
	ChunksUsed int      `json:"chunks_used,omitempty"`

	// Client-only state.
	State       MessageState `json:"-"`
	ShowDetails bool         `json:"-"`
}

// NewExchangePair creates the optimistic user message and its pending bot
// placeholder for one send. Both IDs share the same timestamp token so the
// pair can be correlated.
func NewExchangePair(question string, now time.Time) (*Message, *Message) {
	token := strconv.FormatInt(now.UnixMilli(), 10)
	user := &Message{
		ID:        "user-" + token,
		Type:      MessageUser,
		Content:   question,
		Timestamp: now,
		State:     StateResolved,
	}
	bot := &Message{
		ID:        "bot-" + token,
		Type:      MessageBot,
		Timestamp: now,
		State:     StatePending,
	}
	return user, bot
}

// NewGreeting creates the seeded bot greeting shown when a conversation is
// opened or created.
func NewGreeting(id, content string, now time.Time) *Message {
	return &Message{
		ID:        "welcome-" + id,
		Type:      MessageBot,
		Content:   content,
		Timestamp: now,
		State:     StateResolved,
	}
}

// IsPending reports whether the message is still awaiting its answer.
func (m *Message) IsPending() bool {
	return m.State == StatePending
}

// HasDetails reports whether the message carries expandable answer metadata.
// ShowDetails is only meaningful when this is true.
func (m *Message) HasDetails() bool {
	return len(m.Sources) > 0
}

// =============================================================================
// ANSWER
// =============================================================================

// Answer holds the fields of a successful query response that get merged
// into a pending placeholder.
type Answer struct {
	Content    string
	Sources    []string
	NichesUsed []string
	ChunksUsed int
}

// =============================================================================
// HISTORY
// =============================================================================

// History is the ordered message list of the active conversation.
// Insertion order is chronological order; messages are never reordered and
// never removed individually, only cleared en masse.
type History struct {
	Messages []*Message
}

// Append adds messages at the end of the history.
func (h *History) Append(msgs ...*Message) {
	h.Messages = append(h.Messages, msgs...)
}

// Clear drops all messages.
func (h *History) Clear() {
	h.Messages = nil
}

// Len returns the number of messages.
func (h *History) Len() int {
	return len(h.Messages)
}

// ByID returns the message with the given id, or nil.
func (h *History) ByID(id string) *Message {
	for _, m := range h.Messages {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// Resolve merges an answer into the pending placeholder with the given id.
// The reducer is keyed by message id so late or duplicate responses cannot
// touch any other entry. Returns false if no pending message matches.
func (h *History) Resolve(id string, ans Answer) bool {
	m := h.ByID(id)
	if m == nil || m.State != StatePending {
		return false
	}
	m.Content = ans.Content
	m.Sources = ans.Sources
	m.NichesUsed = ans.NichesUsed
	m.ChunksUsed = ans.ChunksUsed
	m.State = StateResolved
	m.ShowDetails = false
	return true
}

// Fail marks the pending placeholder with the given id as failed, baking the
// error text into its content. Returns false if no pending message matches.
func (h *History) Fail(id string, errText string) bool {
	m := h.ByID(id)
	if m == nil || m.State != StatePending {
		return false
	}
	m.Content = "Error: " + errText
	m.State = StateFailed
	return true
}

// ToggleDetails flips the sources/niches detail panel for a message.
// No-op for messages without details.
func (h *History) ToggleDetails(id string) {
	m := h.ByID(id)
	if m != nil && m.HasDetails() {
		m.ShowDetails = !m.ShowDetails
	}
}

// HasPending reports whether any message is still awaiting its answer.
func (h *History) HasPending() bool {
	for _, m := range h.Messages {
		if m.State == StatePending {
			return true
		}
	}
	return false
}
