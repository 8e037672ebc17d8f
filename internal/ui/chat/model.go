// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/ragdesk-tui/internal/model"
	"github.com/jeranaias/ragdesk-tui/internal/session"
	"github.com/jeranaias/ragdesk-tui/internal/ui/components"
	"github.com/jeranaias/ragdesk-tui/internal/ui/styles"
)

// =============================================================================
// FOCUS
// =============================================================================

// focusArea identifies which part of the chat screen owns key input.
type focusArea int

const (
	focusComposer focusArea = iota
	focusSidebar
	focusNichePicker
	focusNewChat
)

// =============================================================================
// MESSAGES
// =============================================================================

// NichesLoadedMsg delivers the niche directory for the filter.
type NichesLoadedMsg struct {
	Niches []model.Niche
	Err    error
}

// NicheBackend is the slice of the HTTP client the niche filter depends on.
type NicheBackend interface {
	ListNiches(ctx context.Context) ([]model.Niche, error)
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat screen.
type Model struct {
	// State
	session *session.Manager
	niches  NicheBackend
	keys    KeyMap

	// Niche filter
	Directory model.NicheSelection
	dir       []model.Niche

	// selectAllDefault seeds the filter with every niche once the
	// directory arrives, per the configured default scope.
	selectAllDefault bool
	dirSeeded        bool

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Focus
	focus         focusArea
	sidebarCursor int
	pickerCursor  int

	// UI components
	viewport  viewport.Model
	composer  textarea.Model
	newChat   textinput.Model
	spinner   components.Spinner
	banner    components.Banner
	confirm   components.Confirm
	confirmID string

	// Markdown rendering for resolved answers.
	renderer *glamour.TermRenderer

	// followTail keeps the viewport pinned to the newest message.
	followTail bool
}

// New creates the chat screen model.
func New(sess *session.Manager, niches NicheBackend, theme *styles.Theme, selectAllNiches bool) Model {
	composer := textarea.New()
	composer.Placeholder = "Ask me anything..."
	composer.ShowLineNumbers = false
	composer.SetHeight(3)
	composer.CharLimit = 4000
	composer.Focus()

	newChat := textinput.New()
	newChat.Placeholder = "New chat name"
	newChat.CharLimit = 80

	return Model{
		session:          sess,
		niches:           niches,
		keys:             DefaultKeyMap(),
		theme:            theme,
		selectAllDefault: selectAllNiches,
		viewport:         viewport.New(0, 0),
		composer:         composer,
		newChat:          newChat,
		spinner:          components.NewSpinner(),
		followTail:       true,
	}
}

// Init kicks off the initial loads.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.session.ListConversations(),
		m.loadNiches(),
		m.spinner.Tick(),
		textarea.Blink,
	)
}

// loadNiches fetches the niche directory.
func (m Model) loadNiches() tea.Cmd {
	return func() tea.Msg {
		dir, err := m.niches.ListNiches(context.Background())
		return NichesLoadedMsg{Niches: dir, Err: err}
	}
}

// SetSize resizes the screen to the content area it is given.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	mainWidth := width - sidebarWidth - 1
	if mainWidth < 20 {
		mainWidth = 20
	}

	composerHeight := m.composer.Height() + 2
	viewHeight := height - composerHeight - nicheHeaderHeight
	if viewHeight < 3 {
		viewHeight = 3
	}

	m.viewport.Width = mainWidth
	m.viewport.Height = viewHeight
	m.composer.SetWidth(mainWidth - 2)

	if r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(mainWidth-bubblePadding),
	); err == nil {
		m.renderer = r
	}
	m.refreshViewport()
}

// ErrorBanner exposes the current banner text for the status bar.
func (m Model) ErrorBanner() string {
	return m.session.ErrorBanner
}

// Busy reports whether an exchange is in flight.
func (m Model) Busy() bool {
	return m.session.History.HasPending()
}
