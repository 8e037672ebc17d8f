// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the client-side data structures for the ragdesk TUI.
package model

// =============================================================================
// CONVERSATION
// =============================================================================

// Conversation is a named, backend-persisted chat. The backend assigns the
// id; the name is user-supplied and not guaranteed unique.
type Conversation struct {
	ChatID   string `json:"chatId"`
	ChatName string `json:"chatName"`
}

// =============================================================================
// CONVERSATION LIST
// =============================================================================

// ConversationList holds the sidebar's conversations plus the active id.
// At most one conversation is active; an empty ActiveID means none.
type ConversationList struct {
	Conversations []Conversation
	ActiveID      string
}

// Replace swaps in a freshly listed set of conversations.
func (l *ConversationList) Replace(convs []Conversation) {
	l.Conversations = convs
}

// Append adds a newly created conversation at the end of the list.
func (l *ConversationList) Append(c Conversation) {
	l.Conversations = append(l.Conversations, c)
}

// Remove deletes the conversation with the given id from the list.
// Returns true if it was present.
func (l *ConversationList) Remove(id string) bool {
	for i, c := range l.Conversations {
		if c.ChatID == id {
			l.Conversations = append(l.Conversations[:i], l.Conversations[i+1:]...)
			return true
		}
	}
	return false
}

// ByID returns the conversation with the given id, or nil.
func (l *ConversationList) ByID(id string) *Conversation {
	for i := range l.Conversations {
		if l.Conversations[i].ChatID == id {
			return &l.Conversations[i]
		}
	}
	return nil
}

// Contains reports whether a conversation with the given id exists.
func (l *ConversationList) Contains(id string) bool {
	return l.ByID(id) != nil
}

// Active returns the active conversation, or nil when none is active.
func (l *ConversationList) Active() *Conversation {
	if l.ActiveID == "" {
		return nil
	}
	return l.ByID(l.ActiveID)
}

// First returns the id of the first conversation, or "" when empty.
func (l *ConversationList) First() string {
	if len(l.Conversations) == 0 {
		return ""
	}
	return l.Conversations[0].ChatID
}

// Len returns the number of conversations.
func (l *ConversationList) Len() int {
	return len(l.Conversations)
}

// NameOf returns the display name for an id, falling back to the id itself
// when the conversation is not in the list.
func (l *ConversationList) NameOf(id string) string {
	if c := l.ByID(id); c != nil {
		return c.ChatName
	}
	return id
}
