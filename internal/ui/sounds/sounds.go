// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package sounds

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ragdesk-tui/internal/audio"
	"github.com/jeranaias/ragdesk-tui/internal/ui/components"
	"github.com/jeranaias/ragdesk-tui/internal/ui/styles"
	"github.com/jeranaias/ragdesk-tui/internal/util"
)

// volumeStep is how far one key press moves a channel's volume.
const volumeStep = 5

// Model is the Bubble Tea model for the sound board.
type Model struct {
	mixer  *audio.Mixer
	theme  *styles.Theme
	cursor int
	width  int
	height int
	banner components.Banner
}

// New creates the sound board over an existing mixer.
func New(mixer *audio.Mixer, theme *styles.Theme) Model {
	return Model{mixer: mixer, theme: theme}
}

// Init is a no-op; the mixer starts with every channel paused.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetSize resizes the screen.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// PlayingCount exposes how many channels are playing, for the status bar.
func (m Model) PlayingCount() int {
	return m.mixer.PlayingCount()
}

// Update handles one message for the sound board.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		channels := m.mixer.Channels()

		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < len(channels)-1 {
				m.cursor++
			}

		case "enter", " ":
			if m.cursor < len(channels) {
				if err := m.mixer.Toggle(channels[m.cursor].Sound.Name); err != nil {
					var cmd tea.Cmd
					m.banner, cmd = components.NewBanner(components.BannerError, err.Error())
					return m, cmd
				}
			}

		case "left", "h":
			return m, m.adjustVolume(channels, -volumeStep)

		case "right", "l":
			return m, m.adjustVolume(channels, volumeStep)

		case "esc":
			if !m.banner.Empty() {
				m.banner = components.Banner{}
			}
		}

	case components.BannerDismissMsg:
		if msg.ID == m.banner.ID {
			m.banner = components.Banner{}
		}
	}

	return m, nil
}

// adjustVolume moves the focused channel's volume. An output write can fail
// on a playing channel; that surfaces on the banner like a failed toggle.
func (m *Model) adjustVolume(channels []audio.Channel, delta int) tea.Cmd {
	if m.cursor >= len(channels) {
		return nil
	}
	ch := channels[m.cursor]
	if err := m.mixer.SetVolume(ch.Sound.Name, ch.Volume+delta); err != nil {
		var cmd tea.Cmd
		m.banner, cmd = components.NewBanner(components.BannerError, err.Error())
		return cmd
	}
	return nil
}

// View renders the sound board.
func (m Model) View() string {
	var b strings.Builder

	if !m.banner.Empty() {
		b.WriteString(m.banner.View(m.theme, m.width))
		b.WriteString("\n")
	}

	b.WriteString(m.theme.SectionTitle.Render("Ambient sounds"))
	b.WriteString("\n\n")

	channels := m.mixer.Channels()
	if len(channels) == 0 {
		b.WriteString(m.theme.MutedText.Render("No sounds configured. Add [[sounds]] entries to the config file."))
		return b.String()
	}

	for i, ch := range channels {
		marker := "  "
		if i == m.cursor {
			marker = m.theme.AccentText.Render("> ")
		}

		state := m.theme.MutedText.Render("paused ")
		if ch.Playing {
			state = m.theme.SuccessText.Render("playing")
		}

		name := util.PadRight(util.TruncateWidth(ch.Sound.Name, 16), 16)
		b.WriteString(marker + name + "  " + state + "  " + m.volumeBar(ch.Volume))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.ShortcutKey.Render("enter") + m.theme.ShortcutDesc.Render(" play/pause   "))
	b.WriteString(m.theme.ShortcutKey.Render("left/right") + m.theme.ShortcutDesc.Render(" volume"))
	return b.String()
}

// volumeBar renders a ten-segment volume gauge plus the numeric value.
func (m Model) volumeBar(volume int) string {
	filled := volume / 10
	bar := strings.Repeat("■", filled) + strings.Repeat("□", 10-filled)
	return m.theme.AccentText.Render(bar) + " " + m.theme.MutedText.Render(util.IntToString(volume))
}
