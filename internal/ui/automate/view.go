// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package automate

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/ragdesk-tui/internal/tasks"
	"github.com/jeranaias/ragdesk-tui/internal/util"
)

// View renders the automation screen.
func (m Model) View() string {
	var b strings.Builder

	if !m.banner.Empty() {
		b.WriteString(m.banner.View(m.theme, m.width))
		b.WriteString("\n")
	}

	b.WriteString(m.theme.SectionTitle.Render("Browser automation"))
	if m.listening {
		b.WriteString("  " + m.theme.PendingText.Render("listening... stops on silence"))
	}
	b.WriteString("\n\n")

	if m.running && m.tracker != nil {
		b.WriteString(m.viewRun())
	} else {
		b.WriteString(m.viewEditor())
	}

	b.WriteString("\n")
	b.WriteString(m.viewHints())
	return b.String()
}

// viewEditor renders the batch editor rows.
func (m Model) viewEditor() string {
	var b strings.Builder
	for i, spec := range m.specs {
		marker := "  "
		if i == m.row {
			marker = m.theme.AccentText.Render("> ")
		}

		main := spec.Main
		followup := spec.Followup
		if i == m.row {
			if m.col == colMain {
				main = m.editor.View()
			} else {
				followup = m.editor.View()
			}
		}
		if main == "" {
			main = m.theme.MutedText.Render("(empty)")
		}
		if followup == "" {
			followup = m.theme.MutedText.Render("(no followup)")
		}

		b.WriteString(marker + m.theme.InputLabel.Render("Task ") + util.IntToString(i+1))
		b.WriteString("\n")
		b.WriteString("    " + main)
		b.WriteString("\n")
		b.WriteString("    " + m.theme.MutedText.Render("then: ") + followup)
		b.WriteString("\n\n")
	}
	return b.String()
}

// viewRun renders live per-task status.
func (m Model) viewRun() string {
	var b strings.Builder
	for _, t := range m.tracker.All() {
		var badge string
		switch t.Status {
		case tasks.StatusQueued:
			badge = m.theme.MutedText.Render("queued  ")
		case tasks.StatusRunning:
			badge = m.theme.PendingText.Render(m.spinner.View() + " running")
		case tasks.StatusComplete:
			badge = m.theme.SuccessText.Render("complete")
		case tasks.StatusFailed:
			badge = m.theme.FailureText.Render("failed  ")
		case tasks.StatusCanceled:
			badge = m.theme.MutedText.Render("canceled")
		}

		b.WriteString(badge + "  " + util.TruncateWidth(t.Main, m.width-24))
		b.WriteString("\n")
		// Backend results can span lines; previews stay on one row.
		if t.Result != "" {
			b.WriteString("          " + m.theme.MutedText.Render(util.TruncateWidth(util.CollapseSpace(t.Result), m.width-14)))
			b.WriteString("\n")
		}
		if t.Error != "" {
			b.WriteString("          " + m.theme.FailureText.Render(util.TruncateWidth(util.CollapseSpace(t.Error), m.width-14)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.theme.MutedText.Render(m.tracker.Summary()))
	return b.String()
}

func (m Model) viewHints() string {
	hints := [][2]string{
		{"ctrl+r", "run"},
		{"ctrl+a", "add task"},
		{"ctrl+d", "remove task"},
		{"tab", "main/followup"},
	}
	if m.running {
		hints = [][2]string{{"ctrl+x", "abort + close browser"}}
	}
	if m.meter != nil && !m.running {
		hints = append(hints, [2]string{"ctrl+v", "voice"})
	}

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, m.theme.ShortcutKey.Render(h[0])+" "+m.theme.ShortcutDesc.Render(h[1]))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(parts, "   "))
}
