// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// =============================================================================
// THEME
// =============================================================================

// Theme holds the styled components shared by every screen.
type Theme struct {
	IsDark       bool
	ColorProfile termenv.Profile

	// Tabs
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	TabBar      lipgloss.Style

	// Chat
	UserBubble   lipgloss.Style
	BotBubble    lipgloss.Style
	Greeting     lipgloss.Style
	SourceDetail lipgloss.Style

	// Sidebar
	SidebarItem       lipgloss.Style
	SidebarActiveItem lipgloss.Style
	SidebarTitle      lipgloss.Style

	// Status and feedback
	StatusBar    lipgloss.Style
	ErrorBanner  lipgloss.Style
	SuccessText  lipgloss.Style
	FailureText  lipgloss.Style
	PendingText  lipgloss.Style
	MutedText    lipgloss.Style
	AccentText   lipgloss.Style
	PrimaryText  lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// Inputs
	InputLabel   lipgloss.Style
	InputBox     lipgloss.Style
	FocusedBox   lipgloss.Style
	ConfirmBox   lipgloss.Style
	SectionTitle lipgloss.Style
}

// NewTheme builds a theme for the given mode: "dark", "light", or "auto".
// In auto mode the terminal background decides.
func NewTheme(mode string) *Theme {
	profile := termenv.ColorProfile()

	var dark bool
	switch strings.ToLower(mode) {
	case "dark":
		dark = true
	case "light":
		dark = false
	default:
		dark = termenv.HasDarkBackground()
	}
	lipgloss.SetHasDarkBackground(dark)

	t := &Theme{
		IsDark:       dark,
		ColorProfile: profile,
	}

	t.TabActive = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Purple).
		Bold(true).
		Padding(0, 2)
	t.TabInactive = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 2)
	t.TabBar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Overlay0)

	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		Background(UserBubbleBg).
		Padding(0, 1).
		MarginLeft(4)
	t.BotBubble = lipgloss.NewStyle().
		Foreground(BotBubbleFg).
		Background(BotBubbleBg).
		Padding(0, 1).
		MarginRight(4)
	t.Greeting = lipgloss.NewStyle().
		Foreground(Cyan).
		Italic(true)
	t.SourceDetail = lipgloss.NewStyle().
		Foreground(TextMuted).
		MarginLeft(2)

	t.SidebarItem = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)
	t.SidebarActiveItem = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Purple).
		Bold(true).
		Padding(0, 1)
	t.SidebarTitle = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true).
		Padding(0, 1)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(Surface1).
		Padding(0, 1)
	t.ErrorBanner = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Rose).
		Bold(true).
		Padding(0, 1)
	t.SuccessText = lipgloss.NewStyle().Foreground(Emerald)
	t.FailureText = lipgloss.NewStyle().Foreground(Rose)
	t.PendingText = lipgloss.NewStyle().Foreground(Amber)
	t.MutedText = lipgloss.NewStyle().Foreground(TextMuted)
	t.AccentText = lipgloss.NewStyle().Foreground(Cyan)
	t.PrimaryText = lipgloss.NewStyle().Foreground(TextPrimary)
	t.ShortcutKey = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	t.ShortcutDesc = lipgloss.NewStyle().Foreground(TextMuted)

	t.InputLabel = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)
	t.InputBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay0).
		Padding(0, 1)
	t.FocusedBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(0, 1)
	t.ConfirmBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Rose).
		Padding(1, 2)
	t.SectionTitle = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true)

	return t
}
