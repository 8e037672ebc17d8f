// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ingest

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/ragdesk-tui/internal/util"
)

// View renders the ingest screen.
func (m Model) View() string {
	if m.confirm.Active() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.confirm.View(m.theme))
	}
	if m.focus == focusNicheList || m.focus == focusNewNiche {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.viewNichePanel())
	}

	var b strings.Builder
	if !m.banner.Empty() {
		b.WriteString(m.banner.View(m.theme, m.width))
		b.WriteString("\n")
	}

	b.WriteString(m.viewModeTabs())
	b.WriteString("\n\n")

	target := "none (ctrl+t to pick)"
	if n := m.nicheByValue(m.target); n != nil {
		target = n.Label
	}
	b.WriteString(m.theme.InputLabel.Render("Target niche: "))
	b.WriteString(m.theme.AccentText.Render(target))
	b.WriteString("\n\n")

	switch m.mode {
	case ModeSync:
		b.WriteString(m.theme.MutedText.Render("Processes every new file in the backend's documents folder."))
		b.WriteString("\n\n")
		b.WriteString(m.theme.ShortcutKey.Render("enter") + m.theme.ShortcutDesc.Render(" start sync"))
	case ModeURLs:
		b.WriteString(m.theme.InputBox.Render(m.input.View()))
		b.WriteString("\n")
		b.WriteString(m.theme.ShortcutKey.Render("ctrl+r") + m.theme.ShortcutDesc.Render(" ingest"))
	case ModePDFs:
		b.WriteString(m.theme.MutedText.Render("Scans one page for linked PDFs and ingests each of them."))
		b.WriteString("\n")
		b.WriteString(m.theme.InputBox.Render(m.urlInput.View()))
		b.WriteString("\n")
		b.WriteString(m.theme.ShortcutKey.Render("enter") + m.theme.ShortcutDesc.Render(" extract"))
	case ModeYouTube:
		b.WriteString(m.theme.MutedText.Render("Fetches and ingests the video's transcript."))
		b.WriteString("\n")
		b.WriteString(m.theme.InputBox.Render(m.urlInput.View()))
		b.WriteString("\n")
		b.WriteString(m.theme.ShortcutKey.Render("enter") + m.theme.ShortcutDesc.Render(" transcribe"))
	}

	b.WriteString("\n\n")
	b.WriteString(m.viewResults())
	return b.String()
}

func (m Model) viewModeTabs() string {
	tabs := make([]string, 0, len(modeLabels))
	for i, label := range modeLabels {
		if Mode(i) == m.mode {
			tabs = append(tabs, m.theme.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.theme.TabInactive.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
}

// viewResults renders the spinner, the sync log, or per-source result rows.
func (m Model) viewResults() string {
	if m.running {
		return m.theme.PendingText.Render(m.spinner.ViewWithLabel("Working"))
	}

	var b strings.Builder
	for _, line := range m.log {
		b.WriteString(m.theme.MutedText.Render(util.TruncateWidth(line, m.width-2)))
		b.WriteString("\n")
	}

	for _, r := range m.results {
		mark := m.theme.SuccessText.Render("ok  ")
		if !strings.EqualFold(r.Status, "success") {
			mark = m.theme.FailureText.Render("fail")
		}
		line := mark + " " + util.TruncateWidth(r.URL, m.width-20)
		if r.Characters > 0 {
			line += m.theme.MutedText.Render("  " + util.IntToString(r.Characters) + " chars")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// viewNichePanel renders the niche directory admin panel.
func (m Model) viewNichePanel() string {
	var b strings.Builder
	b.WriteString(m.theme.SectionTitle.Render("Niches"))
	b.WriteString("\n\n")

	if len(m.dir) == 0 {
		b.WriteString(m.theme.MutedText.Render("No niches yet. Press n to add one."))
		b.WriteString("\n")
	}

	for i, n := range m.dir {
		line := "  " + n.Label
		if n.Value == m.target {
			line += " " + m.theme.SuccessText.Render("(target)")
		}
		if m.focus == focusNicheList && i == m.nicheCursor {
			line = m.theme.AccentText.Render(">") + line[1:]
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.focus == focusNewNiche {
		b.WriteString("\n")
		b.WriteString(m.theme.FocusedBox.Render(m.newNiche.View()))
	}

	b.WriteString("\n")
	b.WriteString(m.theme.MutedText.Render("enter pick   n new   d delete   esc back"))
	return m.theme.FocusedBox.Render(b.String())
}
