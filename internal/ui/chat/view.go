// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/ragdesk-tui/internal/model"
	"github.com/jeranaias/ragdesk-tui/internal/util"
)

// Layout constants.
const (
	sidebarWidth      = 24
	nicheHeaderHeight = 1
	bubblePadding     = 8
)

// View renders the chat screen.
func (m Model) View() string {
	if m.confirm.Active() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.confirm.View(m.theme))
	}
	if m.focus == focusNichePicker {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.viewPicker())
	}

	sidebar := m.viewSidebar()
	main := m.viewMain()
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", main)

	if !m.banner.Empty() {
		return lipgloss.JoinVertical(lipgloss.Left, m.banner.View(m.theme, m.width), body)
	}
	return body
}

// =============================================================================
// SIDEBAR
// =============================================================================

func (m Model) viewSidebar() string {
	var b strings.Builder
	b.WriteString(m.theme.SidebarTitle.Render("Chats"))
	b.WriteString("\n")

	list := m.session.Conversations.Conversations
	if len(list) == 0 {
		b.WriteString(m.theme.MutedText.Render(" no chats yet"))
		b.WriteString("\n")
	}

	for i, c := range list {
		name := util.TruncateWidth(c.ChatName, sidebarWidth-4)
		style := m.theme.SidebarItem
		prefix := "  "
		if c.ChatID == m.session.Conversations.ActiveID {
			style = m.theme.SidebarActiveItem
		}
		if m.focus == focusSidebar && i == m.sidebarCursor {
			prefix = "> "
		}
		b.WriteString(prefix + style.Render(name))
		b.WriteString("\n")
	}

	if m.focus == focusNewChat {
		b.WriteString("\n")
		b.WriteString(m.theme.FocusedBox.Width(sidebarWidth - 2).Render(m.newChat.View()))
	}

	return lipgloss.NewStyle().Width(sidebarWidth).Height(m.height).Render(b.String())
}

// =============================================================================
// MAIN COLUMN
// =============================================================================

func (m Model) viewMain() string {
	header := m.theme.AccentText.Render("Scope: " + m.Directory.Label(m.dir))

	composerBox := m.theme.InputBox
	if m.focus == focusComposer {
		composerBox = m.theme.FocusedBox
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		m.viewport.View(),
		composerBox.Width(m.viewport.Width-2).Render(m.composer.View()),
	)
}

// refreshViewport re-renders the history into the viewport.
func (m *Model) refreshViewport() {
	var parts []string
	for _, msg := range m.session.History.Messages {
		parts = append(parts, m.renderMessage(msg))
	}
	m.viewport.SetContent(strings.Join(parts, "\n"))
	if m.followTail {
		m.viewport.GotoBottom()
	}
}

// renderMessage renders one history entry.
func (m *Model) renderMessage(msg *model.Message) string {
	switch {
	case msg.Type == model.MessageUser:
		return lipgloss.PlaceHorizontal(m.viewport.Width, lipgloss.Right,
			m.theme.UserBubble.Render(msg.Content))

	case msg.IsPending():
		return m.theme.PendingText.Render(m.spinner.ViewWithLabel("Thinking"))

	case msg.State == model.StateFailed:
		return m.theme.FailureText.Render(msg.Content)
	}

	body := msg.Content
	if strings.HasPrefix(msg.ID, "welcome-") {
		return m.theme.Greeting.Render(body)
	}
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(body); err == nil {
			body = strings.TrimRight(rendered, "\n")
		}
	}
	out := m.theme.BotBubble.Render(body)

	if msg.HasDetails() {
		hint := "ctrl+o sources"
		if msg.ShowDetails {
			out += "\n" + m.renderDetails(msg)
			hint = "ctrl+o hide"
		}
		out += "\n" + m.theme.MutedText.Render(hint)
	}
	return out
}

// renderDetails renders the expandable sources/niches panel.
func (m *Model) renderDetails(msg *model.Message) string {
	var b strings.Builder
	b.WriteString("Sources:\n")
	for _, s := range msg.Sources {
		b.WriteString("  - " + s + "\n")
	}
	if len(msg.NichesUsed) > 0 {
		b.WriteString("Niches: " + strings.Join(msg.NichesUsed, ", ") + "\n")
	}
	if msg.ChunksUsed > 0 {
		b.WriteString("Chunks used: " + util.IntToString(msg.ChunksUsed))
	}
	return m.theme.SourceDetail.Render(strings.TrimRight(b.String(), "\n"))
}

// =============================================================================
// NICHE PICKER
// =============================================================================

func (m Model) viewPicker() string {
	var b strings.Builder
	b.WriteString(m.theme.SectionTitle.Render("Niche filter"))
	b.WriteString("\n\n")

	if len(m.dir) == 0 {
		b.WriteString(m.theme.MutedText.Render("No niches defined."))
		b.WriteString("\n")
	}

	for i, n := range m.dir {
		check := "[ ]"
		if m.Directory.Contains(n.Value) {
			check = "[x]"
		}
		line := check + " " + n.Label
		if i == m.pickerCursor {
			line = m.theme.AccentText.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.MutedText.Render("space toggle   a all   c general   esc close"))
	return m.theme.FocusedBox.Render(b.String())
}
