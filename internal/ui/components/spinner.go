// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/ragdesk-tui/internal/ui/styles"
)

// =============================================================================
// SPINNER
// =============================================================================

// asciiFrames render everywhere, including terminals without Unicode fonts.
var asciiFrames = spinner.Spinner{
	Frames: []string{"|", "/", "-", "\\"},
	FPS:    time.Second / 8,
}

// Spinner wraps the bubbles spinner with the application style.
type Spinner struct {
	model spinner.Model
	start time.Time
}

// NewSpinner creates a spinner styled with the pending color.
func NewSpinner() Spinner {
	m := spinner.New(
		spinner.WithSpinner(asciiFrames),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.Amber)),
	)
	return Spinner{model: m, start: time.Now()}
}

// Tick starts the spinner's animation.
func (s Spinner) Tick() tea.Cmd {
	return s.model.Tick
}

// Update advances the spinner animation.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	var cmd tea.Cmd
	s.model, cmd = s.model.Update(msg)
	return s, cmd
}

// View renders the current frame.
func (s Spinner) View() string {
	return s.model.View()
}

// ViewWithLabel renders the spinner followed by a label and elapsed time.
func (s Spinner) ViewWithLabel(label string) string {
	return fmt.Sprintf("%s %s (%s)", s.model.View(), label, formatElapsed(time.Since(s.start)))
}

// Reset restarts the elapsed timer.
func (s *Spinner) Reset() {
	s.start = time.Now()
}

// formatElapsed renders a duration as "3s" or "1m04s".
func formatElapsed(d time.Duration) string {
	secs := int(d.Seconds())
	if secs < 60 {
		return fmt.Sprintf("%ds", secs)
	}
	return fmt.Sprintf("%dm%02ds", secs/60, secs%60)
}
