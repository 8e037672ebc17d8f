// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ingest

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ragdesk-tui/internal/backend"
	"github.com/jeranaias/ragdesk-tui/internal/model"
	"github.com/jeranaias/ragdesk-tui/internal/ui/components"
)

// Update handles one message for the ingest screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case NichesLoadedMsg:
		if msg.Err != nil {
			return m.fail(msg.Err)
		}
		m.dir = msg.Niches
		// A remembered niche that no longer exists falls back to none.
		if m.target != "" && m.nicheByValue(m.target) == nil {
			m.target = ""
		}

	case NicheAddedMsg:
		if msg.Err != nil {
			return m.fail(msg.Err)
		}
		m.dir = append(m.dir, msg.Niche)
		m.setTarget(msg.Niche.Value)
		var cmd tea.Cmd
		m.banner, cmd = components.NewBanner(components.BannerSuccess, fmt.Sprintf("Niche %q added", msg.Niche.Label))
		cmds = append(cmds, cmd)

	case NicheDeletedMsg:
		if msg.Err != nil {
			return m.fail(msg.Err)
		}
		for i, n := range m.dir {
			if n.Value == msg.Value {
				m.dir = append(m.dir[:i], m.dir[i+1:]...)
				break
			}
		}
		if m.target == msg.Value {
			m.setTarget("")
		}
		if m.nicheCursor >= len(m.dir) && m.nicheCursor > 0 {
			m.nicheCursor--
		}

	case SyncDoneMsg:
		m.running = false
		if msg.Err != nil {
			return m.fail(msg.Err)
		}
		m.log = msg.Log
		var cmd tea.Cmd
		m.banner, cmd = components.NewBanner(components.BannerSuccess, "Document sync complete")
		cmds = append(cmds, cmd)

	case IngestDoneMsg:
		m.running = false
		if msg.Err != nil {
			return m.fail(msg.Err)
		}
		m.results = msg.Results
		text := fmt.Sprintf("Processed %d source(s)", len(msg.Results))
		if msg.PDFCount > 0 {
			text = fmt.Sprintf("Found %d PDF(s), processed %d", msg.PDFCount, len(msg.Results))
		}
		var cmd tea.Cmd
		m.banner, cmd = components.NewBanner(components.BannerSuccess, text)
		cmds = append(cmds, cmd)

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

// fail surfaces an error on the banner and stops any run.
func (m Model) fail(err error) (Model, tea.Cmd) {
	m.running = false
	var cmd tea.Cmd
	m.banner, cmd = components.NewBanner(components.BannerError, backend.UserMessage(err))
	return m, cmd
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.confirm.Active() {
		return m.handleConfirmKey(msg)
	}

	switch m.focus {
	case focusNicheList:
		return m.handleNicheKey(msg)
	case focusNewNiche:
		return m.handleNewNicheKey(msg)
	}
	return m.handleFormKey(msg)
}

func (m Model) handleFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if !m.banner.Empty() {
			m.banner = components.Banner{}
		}
		return m, nil

	case "left", "shift+tab":
		if m.mode > ModeSync {
			m.mode--
		}
		return m, nil

	case "right":
		if m.mode < ModeYouTube {
			m.mode++
		}
		return m, nil

	case "ctrl+t":
		m.focus = focusNicheList
		m.input.Blur()
		m.urlInput.Blur()
		return m, nil

	case "enter":
		// The multi-URL textarea keeps enter for newlines; runs start
		// with ctrl+r there.
		if m.mode != ModeURLs {
			return m.run()
		}

	case "ctrl+r":
		return m.run()
	}

	var cmd tea.Cmd
	switch m.mode {
	case ModeURLs:
		if !m.input.Focused() {
			cmds := []tea.Cmd{m.input.Focus()}
			m.input, cmd = m.input.Update(msg)
			return m, tea.Batch(append(cmds, cmd)...)
		}
		m.input, cmd = m.input.Update(msg)
	case ModePDFs, ModeYouTube:
		if !m.urlInput.Focused() {
			m.urlInput.Focus()
		}
		m.urlInput, cmd = m.urlInput.Update(msg)
	}
	return m, cmd
}

// run validates the form and dispatches the ingestion command.
func (m Model) run() (Model, tea.Cmd) {
	if m.running {
		return m, nil
	}

	switch m.mode {
	case ModeSync:
		m.running = true
		m.log = nil
		m.results = nil
		m.spinner.Reset()
		return m, m.runSync()

	case ModeURLs:
		urls := SplitURLs(m.input.Value())
		if len(urls) == 0 {
			return m.warn("Enter at least one URL")
		}
		if m.target == "" {
			return m.warn("Pick a target niche first (ctrl+t)")
		}
		m.running = true
		m.results = nil
		m.spinner.Reset()
		return m, m.runURLs(m.target, urls)

	case ModePDFs, ModeYouTube:
		url := strings.TrimSpace(m.urlInput.Value())
		if url == "" {
			return m.warn("Enter a URL")
		}
		if m.target == "" {
			return m.warn("Pick a target niche first (ctrl+t)")
		}
		m.running = true
		m.results = nil
		m.spinner.Reset()
		if m.mode == ModePDFs {
			return m, m.runPDFs(m.target, url)
		}
		return m, m.runYouTube(m.target, url)
	}
	return m, nil
}

// warn shows a validation message without touching the network.
func (m Model) warn(text string) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.banner, cmd = components.NewBanner(components.BannerInfo, text)
	return m, cmd
}

func (m Model) handleNicheKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+t":
		m.focus = focusForm
		return m, nil

	case "up", "k":
		if m.nicheCursor > 0 {
			m.nicheCursor--
		}
		return m, nil

	case "down", "j":
		if m.nicheCursor < len(m.dir)-1 {
			m.nicheCursor++
		}
		return m, nil

	case "enter", " ":
		if m.nicheCursor < len(m.dir) {
			m.setTarget(m.dir[m.nicheCursor].Value)
			m.focus = focusForm
		}
		return m, nil

	case "n":
		m.focus = focusNewNiche
		m.newNiche.SetValue("")
		m.newNiche.Focus()
		return m, textinput.Blink

	case "d":
		if m.nicheCursor < len(m.dir) {
			n := m.dir[m.nicheCursor]
			m.confirmValue = n.Value
			m.confirm.Ask(fmt.Sprintf("Delete niche %q and all its documents?", n.Label))
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		value := m.confirmValue
		m.confirm.Dismiss()
		m.confirmValue = ""
		return m, m.deleteNiche(value)
	case "n", "N", "esc":
		m.confirm.Dismiss()
		m.confirmValue = ""
		return m, nil
	}
	return m, nil
}

func (m Model) handleNewNicheKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.newNiche.Blur()
		m.focus = focusNicheList
		return m, nil
	case "enter":
		name := strings.TrimSpace(m.newNiche.Value())
		if name == "" {
			return m, nil
		}
		m.newNiche.Blur()
		m.focus = focusNicheList
		return m, m.addNiche(name)
	}

	var cmd tea.Cmd
	m.newNiche, cmd = m.newNiche.Update(msg)
	return m, cmd
}

// =============================================================================
// HELPERS
// =============================================================================

// setTarget records the niche choice durably. A prefs write failure is not
// worth interrupting the flow for; the selection still applies this run.
func (m *Model) setTarget(value string) {
	m.target = value
	_ = m.prefs.SetIngestNiche(value)
}

func (m *Model) nicheByValue(value string) *model.Niche {
	for i := range m.dir {
		if m.dir[i].Value == value {
			return &m.dir[i]
		}
	}
	return nil
}
