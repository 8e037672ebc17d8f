// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui assembles the screens into the application shell: the tab bar,
// the active screen, and the status bar.
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/ragdesk-tui/internal/config"
	"github.com/jeranaias/ragdesk-tui/internal/ui/automate"
	"github.com/jeranaias/ragdesk-tui/internal/ui/chat"
	"github.com/jeranaias/ragdesk-tui/internal/ui/components"
	"github.com/jeranaias/ragdesk-tui/internal/ui/ingest"
	"github.com/jeranaias/ragdesk-tui/internal/ui/power"
	"github.com/jeranaias/ragdesk-tui/internal/ui/sounds"
	"github.com/jeranaias/ragdesk-tui/internal/ui/styles"
	"github.com/jeranaias/ragdesk-tui/internal/util"
)

// =============================================================================
// SCREENS
// =============================================================================

// Screen indexes the application's screens in tab order.
type Screen int

const (
	ScreenChat Screen = iota
	ScreenIngest
	ScreenAutomate
	ScreenPower
	ScreenSounds
	screenCount
)

var screenLabels = []string{"Chat", "Ingest", "Automate", "Power", "Sounds"}

// ConfigReloadedMsg delivers a hot-reloaded config to the running program.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// =============================================================================
// APP MODEL
// =============================================================================

// App is the root Bubble Tea model.
type App struct {
	theme  *styles.Theme
	active Screen

	chat     chat.Model
	ingest   ingest.Model
	automate automate.Model
	power    power.Model
	sounds   sounds.Model

	width  int
	height int
}

// NewApp assembles the shell from already-constructed screens.
func NewApp(theme *styles.Theme, c chat.Model, i ingest.Model, a automate.Model, p power.Model, s sounds.Model) App {
	return App{
		theme:    theme,
		chat:     c,
		ingest:   i,
		automate: a,
		power:    p,
		sounds:   s,
	}
}

// Init starts every screen.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.chat.Init(),
		a.ingest.Init(),
		a.automate.Init(),
		a.power.Init(),
		a.sounds.Init(),
	)
}

// Update routes messages: keys go to the shell first and then the active
// screen; everything else fans out to every screen, since command results
// arrive regardless of which screen is showing.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		return a, nil

	case ConfigReloadedMsg:
		a.theme = styles.NewTheme(msg.Config.UI.Theme)
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "f1":
			a.active = ScreenChat
			return a, nil
		case "f2":
			a.active = ScreenIngest
			return a, nil
		case "f3":
			a.active = ScreenAutomate
			return a, nil
		case "f4":
			a.active = ScreenPower
			return a, nil
		case "f5":
			a.active = ScreenSounds
			return a, nil
		case "ctrl+right":
			a.active = (a.active + 1) % screenCount
			return a, nil
		case "ctrl+left":
			a.active = (a.active + screenCount - 1) % screenCount
			return a, nil
		}
		return a.updateActive(msg)
	}

	return a.updateAll(msg)
}

// updateActive delivers a key press to the showing screen only.
func (a App) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.active {
	case ScreenChat:
		a.chat, cmd = a.chat.Update(msg)
	case ScreenIngest:
		a.ingest, cmd = a.ingest.Update(msg)
	case ScreenAutomate:
		a.automate, cmd = a.automate.Update(msg)
	case ScreenPower:
		a.power, cmd = a.power.Update(msg)
	case ScreenSounds:
		a.sounds, cmd = a.sounds.Update(msg)
	}
	return a, cmd
}

// updateAll fans a message out to every screen.
func (a App) updateAll(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, int(screenCount))
	var cmd tea.Cmd

	a.chat, cmd = a.chat.Update(msg)
	cmds = append(cmds, cmd)
	a.ingest, cmd = a.ingest.Update(msg)
	cmds = append(cmds, cmd)
	a.automate, cmd = a.automate.Update(msg)
	cmds = append(cmds, cmd)
	a.power, cmd = a.power.Update(msg)
	cmds = append(cmds, cmd)
	a.sounds, cmd = a.sounds.Update(msg)
	cmds = append(cmds, cmd)

	return a, tea.Batch(cmds...)
}

// resize distributes the content area to every screen.
func (a *App) resize() {
	contentHeight := a.height - tabBarHeight - statusBarHeight
	if contentHeight < 5 {
		contentHeight = 5
	}
	a.chat.SetSize(a.width, contentHeight)
	a.ingest.SetSize(a.width, contentHeight)
	a.automate.SetSize(a.width, contentHeight)
	a.power.SetSize(a.width, contentHeight)
	a.sounds.SetSize(a.width, contentHeight)
}

// =============================================================================
// VIEW
// =============================================================================

const (
	tabBarHeight    = 2
	statusBarHeight = 1
)

// View renders the shell around the active screen.
func (a App) View() string {
	tabs := components.TabBar{Labels: screenLabels, Active: int(a.active)}

	var body string
	switch a.active {
	case ScreenChat:
		body = a.chat.View()
	case ScreenIngest:
		body = a.ingest.View()
	case ScreenAutomate:
		body = a.automate.View()
	case ScreenPower:
		body = a.power.View()
	case ScreenSounds:
		body = a.sounds.View()
	}

	bodyHeight := a.height - tabBarHeight - statusBarHeight
	if bodyHeight > 0 {
		body = lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		tabs.View(a.theme, a.width),
		body,
		a.statusBar().View(a.theme, a.width),
	)
}

// statusBar summarizes cross-screen state: in-flight work and playing sounds.
func (a App) statusBar() components.StatusBar {
	left := screenLabels[a.active]
	if a.chat.Busy() {
		left += "  thinking"
	}
	if a.ingest.Busy() {
		left += "  ingesting"
	}
	if a.automate.Busy() {
		left += "  automating"
	}
	if n := a.sounds.PlayingCount(); n > 0 {
		left += "  " + util.IntToString(n) + " sound(s)"
	}

	return components.StatusBar{
		Left: left,
		Shortcuts: []components.Shortcut{
			{Key: "f1-f5", Desc: "screens"},
			{Key: "ctrl+←/→", Desc: "cycle"},
			{Key: "ctrl+c", Desc: "quit"},
		},
	}
}
