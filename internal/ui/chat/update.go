// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ragdesk-tui/internal/backend"
	"github.com/jeranaias/ragdesk-tui/internal/session"
	"github.com/jeranaias/ragdesk-tui/internal/ui/components"
)

// Update handles one message for the chat screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case session.ConversationsLoadedMsg:
		cmd := m.session.ApplyConversations(msg)
		m.syncBanner(&cmds)
		m.clampSidebarCursor()
		m.refreshViewport()
		if cmd != nil {
			cmds = append(cmds, cmd)
		}

	case session.ConversationCreatedMsg:
		m.session.ApplyCreated(msg)
		m.syncBanner(&cmds)
		m.clampSidebarCursor()
		m.refreshViewport()

	case session.ConversationDeletedMsg:
		cmd := m.session.ApplyDeleted(msg)
		m.syncBanner(&cmds)
		m.clampSidebarCursor()
		m.refreshViewport()
		if cmd != nil {
			cmds = append(cmds, cmd)
		}

	case session.HistoryLoadedMsg:
		m.session.ApplyHistory(msg)
		m.syncBanner(&cmds)
		m.followTail = true
		m.refreshViewport()

	case session.QueryResultMsg:
		m.session.ApplyQueryResult(msg)
		m.syncBanner(&cmds)
		m.refreshViewport()

	case NichesLoadedMsg:
		if msg.Err != nil {
			m.session.ErrorBanner = backend.UserMessage(msg.Err)
			m.syncBanner(&cmds)
			break
		}
		m.dir = msg.Niches
		if m.selectAllDefault && !m.dirSeeded {
			m.Directory.SelectAll(m.dir)
		}
		m.dirSeeded = true

	case components.BannerDismissMsg:
		if msg.ID == m.banner.ID {
			m.banner = components.Banner{}
			m.session.ClearError()
		}

	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
		if m.Busy() {
			m.refreshViewport()
		}
	}

	return m, tea.Batch(cmds...)
}

// syncBanner surfaces a manager error as a fresh banner exactly once.
func (m *Model) syncBanner(cmds *[]tea.Cmd) {
	if m.session.ErrorBanner == "" || m.session.ErrorBanner == m.banner.Message {
		return
	}
	var cmd tea.Cmd
	m.banner, cmd = components.NewBanner(components.BannerError, m.session.ErrorBanner)
	*cmds = append(*cmds, cmd)
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	// The confirm prompt and modal inputs capture all keys first.
	if m.confirm.Active() {
		return m.handleConfirmKey(msg)
	}

	switch m.focus {
	case focusSidebar:
		return m.handleSidebarKey(msg)
	case focusNichePicker:
		return m.handlePickerKey(msg)
	case focusNewChat:
		return m.handleNewChatKey(msg)
	default:
		return m.handleComposerKey(msg)
	}
}

func (m Model) handleComposerKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch {
	case key.Matches(msg, m.keys.Escape):
		if !m.banner.Empty() {
			m.banner = components.Banner{}
			m.session.ClearError()
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleSidebar):
		m.focus = focusSidebar
		m.composer.Blur()
		return m, nil

	case key.Matches(msg, m.keys.NicheFilter):
		m.focus = focusNichePicker
		m.pickerCursor = 0
		m.composer.Blur()
		return m, nil

	case key.Matches(msg, m.keys.NewChat):
		m.focus = focusNewChat
		m.composer.Blur()
		m.newChat.SetValue("")
		m.newChat.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.ToggleDetails):
		m.toggleLatestDetails()
		m.refreshViewport()
		return m, nil

	case key.Matches(msg, m.keys.Newline):
		m.composer.InsertString("\n")
		return m, nil

	case key.Matches(msg, m.keys.Send):
		return m.send()
	}

	// Page keys scroll the history; everything else edits the composer.
	switch msg.String() {
	case "pgup", "pgdown", "ctrl+u", "ctrl+d":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		m.followTail = m.viewport.AtBottom()
		return m, cmd
	}

	var cmd tea.Cmd
	m.composer, cmd = m.composer.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// send validates and dispatches the composer's question.
func (m Model) send() (Model, tea.Cmd) {
	cmd, err := m.session.Send(m.composer.Value(), m.Directory.Values())
	if err != nil {
		// Guard-rail rejections never clear the composer.
		if errors.Is(err, session.ErrEmptyQuestion) {
			return m, nil
		}
		var bcmd tea.Cmd
		m.banner, bcmd = components.NewBanner(components.BannerError, err.Error())
		return m, bcmd
	}

	m.composer.Reset()
	m.spinner.Reset()
	m.followTail = true
	m.refreshViewport()
	return m, cmd
}

// toggleLatestDetails flips the detail panel of the newest message that has
// one to show.
func (m *Model) toggleLatestDetails() {
	msgs := m.session.History.Messages
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].HasDetails() {
			m.session.History.ToggleDetails(msgs[i].ID)
			return
		}
	}
}

func (m Model) handleSidebarKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	list := m.session.Conversations.Conversations

	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.ToggleSidebar):
		m.focusComposerAgain()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.sidebarCursor > 0 {
			m.sidebarCursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.sidebarCursor < len(list)-1 {
			m.sidebarCursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		if m.sidebarCursor < len(list) {
			cmd := m.session.SwitchConversation(list[m.sidebarCursor].ChatID)
			m.focusComposerAgain()
			m.refreshViewport()
			return m, cmd
		}
		return m, nil

	case key.Matches(msg, m.keys.NewChat):
		m.focus = focusNewChat
		m.newChat.SetValue("")
		m.newChat.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.DeleteChat):
		if m.sidebarCursor < len(list) {
			target := list[m.sidebarCursor]
			m.confirmID = target.ChatID
			m.confirm.Ask(fmt.Sprintf("Delete chat %q? Its history is gone for good.", target.ChatName))
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		id := m.confirmID
		m.confirm.Dismiss()
		m.confirmID = ""
		return m, m.session.DeleteConversation(id)
	case "n", "N", "esc":
		m.confirm.Dismiss()
		m.confirmID = ""
		return m, nil
	}
	return m, nil
}

func (m Model) handlePickerKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.NicheFilter):
		m.focusComposerAgain()
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.pickerCursor > 0 {
			m.pickerCursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.pickerCursor < len(m.dir)-1 {
			m.pickerCursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		if m.pickerCursor < len(m.dir) {
			m.Directory.Toggle(m.dir[m.pickerCursor].Value)
		}
		return m, nil

	case key.Matches(msg, m.keys.SelectAll):
		m.Directory.SelectAll(m.dir)
		return m, nil

	case key.Matches(msg, m.keys.ClearFilter):
		m.Directory.Clear()
		return m, nil
	}
	return m, nil
}

func (m Model) handleNewChatKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.newChat.Blur()
		m.focusComposerAgain()
		return m, nil
	case "enter":
		cmd, err := m.session.CreateConversation(m.newChat.Value())
		if err != nil {
			// An empty name just keeps the input open.
			return m, nil
		}
		m.newChat.Blur()
		m.focusComposerAgain()
		return m, cmd
	}

	var cmd tea.Cmd
	m.newChat, cmd = m.newChat.Update(msg)
	return m, cmd
}

// focusComposerAgain returns key ownership to the composer.
func (m *Model) focusComposerAgain() {
	m.focus = focusComposer
	m.composer.Focus()
}

// clampSidebarCursor keeps the cursor on a real row after list changes.
func (m *Model) clampSidebarCursor() {
	if n := m.session.Conversations.Len(); m.sidebarCursor >= n && n > 0 {
		m.sidebarCursor = n - 1
	} else if n == 0 {
		m.sidebarCursor = 0
	}
}
