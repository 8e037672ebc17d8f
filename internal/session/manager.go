// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the conversation state of the chat screen.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ragdesk-tui/internal/backend"
	"github.com/jeranaias/ragdesk-tui/internal/model"
)

// =============================================================================
// DEPENDENCIES
// =============================================================================

// Backend is the slice of the HTTP client the manager depends on.
type Backend interface {
	ListConversations(ctx context.Context) ([]model.Conversation, error)
	CreateConversation(ctx context.Context, name string) (model.Conversation, error)
	DeleteConversation(ctx context.Context, chatID string) error
	History(ctx context.Context, chatID string) ([]*model.Message, error)
	Query(ctx context.Context, question string, selectedNiches []string, chatID string) (model.Answer, error)
}

// PrefsStore is the durable cell holding the active conversation id.
// An empty id means no active conversation.
type PrefsStore interface {
	ActiveConversationID() (string, error)
	SetActiveConversationID(id string) error
}

// =============================================================================
// VALIDATION ERRORS
// =============================================================================

var (
	// ErrEmptyName rejects conversation names that trim to nothing.
	ErrEmptyName = errors.New("chat name cannot be empty")

	// ErrEmptyQuestion rejects questions that trim to nothing.
	ErrEmptyQuestion = errors.New("question cannot be empty")

	// ErrNoActiveConversation rejects a send with no conversation selected.
	ErrNoActiveConversation = errors.New("no active chat")

	// ErrExchangeInFlight rejects a send while an answer is still pending.
	ErrExchangeInFlight = errors.New("an exchange is already in flight")
)

// =============================================================================
// MESSAGES
// =============================================================================

// ConversationsLoadedMsg delivers the conversation list.
type ConversationsLoadedMsg struct {
	Conversations []model.Conversation
	Err           error
}

// ConversationCreatedMsg delivers the backend-confirmed new conversation.
type ConversationCreatedMsg struct {
	Conversation model.Conversation
	Err          error
}

// ConversationDeletedMsg confirms a deletion.
type ConversationDeletedMsg struct {
	ID  string
	Err error
}

// HistoryLoadedMsg delivers one conversation's message history.
// ChatID tags which conversation was loaded so a slow load for a
// conversation the user already left is discarded.
type HistoryLoadedMsg struct {
	ChatID   string
	Messages []*model.Message
	Err      error
}

// QueryResultMsg delivers the outcome of one exchange. ChatID and BotID are
// captured at send time; the reducer uses them to find the placeholder and
// to detect responses for a no-longer-active conversation.
type QueryResultMsg struct {
	ChatID string
	BotID  string
	Answer model.Answer
	Err    error
}

// =============================================================================
// MANAGER
// =============================================================================

// Manager tracks conversations, the active history, and in-flight exchanges.
// It is owned by the update loop and must not be shared across goroutines.
type Manager struct {
	backend Backend
	prefs   PrefsStore

	// greetName personalizes the seeded greeting; empty is fine.
	greetName string

	// Conversations is the sidebar list plus the active id.
	Conversations model.ConversationList

	// History is the active conversation's message list.
	History model.History

	// persistedID is the active id read from the prefs store at init,
	// reconciled once the conversation list arrives.
	persistedID string

	// pendingBotID / pendingChatID identify the in-flight exchange.
	pendingBotID  string
	pendingChatID string

	// ErrorBanner is the dismissible screen-level error, "" when clear.
	ErrorBanner string

	// now is the clock, replaceable in tests.
	now func() time.Time
}

// NewManager creates a manager and reads the persisted active conversation
// id. A prefs read failure is not fatal; it degrades to no restored state.
func NewManager(b Backend, prefs PrefsStore, greetName string) *Manager {
	m := &Manager{
		backend:   b,
		prefs:     prefs,
		greetName: greetName,
		now:       time.Now,
	}
	if id, err := prefs.ActiveConversationID(); err == nil {
		m.persistedID = id
	}
	return m
}

// =============================================================================
// CONVERSATION LIST
// =============================================================================

// ListConversations fetches the conversation list.
func (m *Manager) ListConversations() tea.Cmd {
	return func() tea.Msg {
		convs, err := m.backend.ListConversations(context.Background())
		return ConversationsLoadedMsg{Conversations: convs, Err: err}
	}
}

// ApplyConversations folds the listed conversations into state and picks the
// active conversation. A persisted id that still exists is restored; a stale
// one falls back to no active conversation, never an error and never a jump
// to a chat the user did not pick. Only with nothing persisted does the first
// conversation become active. Returns the follow-up command (history load),
// if any.
func (m *Manager) ApplyConversations(msg ConversationsLoadedMsg) tea.Cmd {
	if msg.Err != nil {
		m.ErrorBanner = backend.UserMessage(msg.Err)
		return nil
	}

	m.Conversations.Replace(msg.Conversations)

	active := ""
	switch {
	case m.persistedID == "":
		active = m.Conversations.First()
	case m.Conversations.Contains(m.persistedID):
		active = m.persistedID
	}
	m.persistedID = ""

	return m.activate(active)
}

// CreateConversation validates the name and returns the creation command.
// Validation failures return an error without touching the network.
func (m *Manager) CreateConversation(name string) (tea.Cmd, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return func() tea.Msg {
		conv, err := m.backend.CreateConversation(context.Background(), name)
		return ConversationCreatedMsg{Conversation: conv, Err: err}
	}, nil
}

// ApplyCreated appends and activates the confirmed conversation and seeds
// its history with the new-chat greeting.
func (m *Manager) ApplyCreated(msg ConversationCreatedMsg) {
	if msg.Err != nil {
		m.ErrorBanner = backend.UserMessage(msg.Err)
		return
	}

	m.Conversations.Append(msg.Conversation)
	m.Conversations.ActiveID = msg.Conversation.ChatID
	m.persist(msg.Conversation.ChatID)

	m.History.Clear()
	m.History.Append(model.NewGreeting(
		msg.Conversation.ChatID,
		m.createdGreeting(msg.Conversation.ChatName),
		m.now(),
	))
}

// DeleteConversation returns the deletion command. The confirmation prompt
// is the UI's job; by the time this runs the user has confirmed.
func (m *Manager) DeleteConversation(id string) tea.Cmd {
	return func() tea.Msg {
		err := m.backend.DeleteConversation(context.Background(), id)
		return ConversationDeletedMsg{ID: id, Err: err}
	}
}

// ApplyDeleted removes the conversation. Deleting the active conversation
// activates the first remaining one and loads its history; deleting the last
// conversation clears the history and the persisted id. Returns the
// follow-up command, if any.
func (m *Manager) ApplyDeleted(msg ConversationDeletedMsg) tea.Cmd {
	if msg.Err != nil {
		m.ErrorBanner = backend.UserMessage(msg.Err)
		return nil
	}

	wasActive := m.Conversations.ActiveID == msg.ID
	m.Conversations.Remove(msg.ID)

	if !wasActive {
		return nil
	}
	return m.activate(m.Conversations.First())
}

// SwitchConversation makes the given conversation active, persists the
// choice, and returns the history load command. No-op for the already
// active conversation or an unknown id.
func (m *Manager) SwitchConversation(id string) tea.Cmd {
	if id == m.Conversations.ActiveID || !m.Conversations.Contains(id) {
		return nil
	}
	return m.activate(id)
}

// activate sets (or clears) the active conversation, persists it, and
// returns the history load command when there is one to load.
func (m *Manager) activate(id string) tea.Cmd {
	m.Conversations.ActiveID = id
	m.persist(id)

	if id == "" {
		m.History.Clear()
		return nil
	}
	return m.loadHistory(id)
}

// persist writes the active id to the durable cell. Failures surface on the
// banner but never block the switch itself.
func (m *Manager) persist(id string) {
	if err := m.prefs.SetActiveConversationID(id); err != nil {
		m.ErrorBanner = "Failed to save active chat: " + err.Error()
	}
}

// =============================================================================
// HISTORY
// =============================================================================

// loadHistory fetches one conversation's history.
func (m *Manager) loadHistory(chatID string) tea.Cmd {
	return func() tea.Msg {
		msgs, err := m.backend.History(context.Background(), chatID)
		return HistoryLoadedMsg{ChatID: chatID, Messages: msgs, Err: err}
	}
}

// ApplyHistory folds a loaded history into state. A load for a conversation
// that is no longer active is discarded. An empty or failed load seeds the
// greeting so the screen is never blank.
func (m *Manager) ApplyHistory(msg HistoryLoadedMsg) {
	if msg.ChatID != m.Conversations.ActiveID {
		return
	}

	if msg.Err != nil {
		m.ErrorBanner = backend.UserMessage(msg.Err)
	}

	m.History.Clear()
	if msg.Err == nil && len(msg.Messages) > 0 {
		m.History.Append(msg.Messages...)
		return
	}
	m.History.Append(model.NewGreeting(
		msg.ChatID,
		m.openGreeting(m.Conversations.NameOf(msg.ChatID)),
		m.now(),
	))
}

// =============================================================================
// EXCHANGE ENGINE
// =============================================================================

// CanSend reports whether a new exchange may start.
func (m *Manager) CanSend() bool {
	return m.Conversations.ActiveID != "" && !m.History.HasPending()
}

// Send starts one exchange: it appends the optimistic user/placeholder pair
// and returns the query command. The command carries the conversation id and
// placeholder id captured now, so a late response cannot land anywhere else.
func (m *Manager) Send(question string, selectedNiches []string) (tea.Cmd, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}
	if m.Conversations.ActiveID == "" {
		return nil, ErrNoActiveConversation
	}
	if m.History.HasPending() {
		return nil, ErrExchangeInFlight
	}

	user, bot := model.NewExchangePair(question, m.now())
	m.History.Append(user, bot)
	m.pendingBotID = bot.ID
	m.pendingChatID = m.Conversations.ActiveID

	chatID := m.pendingChatID
	botID := m.pendingBotID
	niches := append([]string(nil), selectedNiches...)

	return func() tea.Msg {
		ans, err := m.backend.Query(context.Background(), question, niches, chatID)
		return QueryResultMsg{ChatID: chatID, BotID: botID, Answer: ans, Err: err}
	}, nil
}

// ApplyQueryResult reconciles a response into the placeholder it belongs to.
// A response for a conversation that is no longer active is discarded; the
// placeholder it would have resolved lives in that conversation's
// backend-side history, not on this screen.
func (m *Manager) ApplyQueryResult(msg QueryResultMsg) {
	if msg.BotID == m.pendingBotID {
		m.pendingBotID = ""
		m.pendingChatID = ""
	}

	if msg.ChatID != m.Conversations.ActiveID {
		return
	}

	if msg.Err != nil {
		m.History.Fail(msg.BotID, backend.UserMessage(msg.Err))
		m.ErrorBanner = backend.UserMessage(msg.Err)
		return
	}
	m.History.Resolve(msg.BotID, msg.Answer)
}

// =============================================================================
// ERROR BANNER
// =============================================================================

// ClearError dismisses the screen-level error banner.
func (m *Manager) ClearError() {
	m.ErrorBanner = ""
}

// =============================================================================
// GREETINGS
// =============================================================================

// hello returns the greeting prefix, personalized when a name is configured.
func (m *Manager) hello() string {
	if m.greetName == "" {
		return "Hello!"
	}
	return "Hello " + m.greetName + "!"
}

// openGreeting is the greeting seeded when a conversation opens empty.
func (m *Manager) openGreeting(chatName string) string {
	return fmt.Sprintf("%s You're in chat %q. Ask me anything!", m.hello(), chatName)
}

// createdGreeting is the greeting seeded right after a conversation is created.
func (m *Manager) createdGreeting(chatName string) string {
	return fmt.Sprintf("%s New chat %q created. Ask me anything!", m.hello(), chatName)
}
