// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package automate

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ragdesk-tui/internal/backend"
	"github.com/jeranaias/ragdesk-tui/internal/tasks"
	"github.com/jeranaias/ragdesk-tui/internal/ui/components"
)

// Update handles one message for the automation screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case NotificationMsg:
		if !msg.OK {
			// Channel closed; the run-done message carries the verdict.
			break
		}
		// The tracker already holds the new state; keep listening.
		cmds = append(cmds, waitNotification(m.tracker))

	case RunDoneMsg:
		m.running = false
		var cmd tea.Cmd
		switch {
		case msg.Err != nil:
			m.banner, cmd = components.NewBanner(components.BannerError, backend.UserMessage(msg.Err))
		case m.tracker != nil && m.tracker.BatchError() != "":
			m.banner, cmd = components.NewBanner(components.BannerError, m.tracker.BatchError())
		default:
			m.banner, cmd = components.NewBanner(components.BannerSuccess, "All tasks completed")
		}
		cmds = append(cmds, cmd)

	case AbortDoneMsg:
		m.running = false
		var cmd tea.Cmd
		if msg.Err != nil {
			m.banner, cmd = components.NewBanner(components.BannerError, backend.UserMessage(msg.Err))
		} else {
			m.banner, cmd = components.NewBanner(components.BannerInfo, "Batch aborted, browser closed")
		}
		cmds = append(cmds, cmd)

	case VoiceDoneMsg:
		m.listening = false
		if m.voiceStop != nil {
			m.voiceStop()
			m.voiceStop = nil
		}
		if msg.Err != nil {
			var cmd tea.Cmd
			m.banner, cmd = components.NewBanner(components.BannerError, "Voice capture failed: "+msg.Err.Error())
			cmds = append(cmds, cmd)
		}

	case components.BannerDismissMsg:
		if msg.ID == m.banner.ID {
			m.banner = components.Banner{}
		}

	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if !m.banner.Empty() {
			m.banner = components.Banner{}
		}
		return m, nil

	case "ctrl+r":
		if m.running {
			return m, nil
		}
		return m, m.start()

	case "ctrl+x":
		if !m.running {
			return m, nil
		}
		return m, m.abort()

	case "ctrl+v":
		return m, m.startVoice()
	}

	if m.running {
		return m, nil
	}

	switch msg.String() {
	case "up":
		m.flushEditor()
		if m.row > 0 {
			m.row--
		}
		m.seedEditor()
		return m, nil

	case "down":
		m.flushEditor()
		if m.row < len(m.specs)-1 {
			m.row++
		}
		m.seedEditor()
		return m, nil

	case "tab":
		m.flushEditor()
		if m.col == colMain {
			m.col = colFollowup
		} else {
			m.col = colMain
		}
		m.seedEditor()
		return m, nil

	case "ctrl+a":
		m.flushEditor()
		m.specs = append(m.specs, tasks.Spec{})
		m.row = len(m.specs) - 1
		m.col = colMain
		m.seedEditor()
		return m, nil

	case "ctrl+d":
		if len(m.specs) > 1 {
			m.specs = append(m.specs[:m.row], m.specs[m.row+1:]...)
			if m.row >= len(m.specs) {
				m.row = len(m.specs) - 1
			}
			m.seedEditor()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	m.flushEditor()
	return m, cmd
}
