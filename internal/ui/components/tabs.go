// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/ragdesk-tui/internal/ui/styles"
)

// =============================================================================
// TAB BAR
// =============================================================================

// TabBar renders the screen switcher across the top of the window.
type TabBar struct {
	Labels []string
	Active int
}

// View renders the tab row at the given width.
func (t TabBar) View(theme *styles.Theme, width int) string {
	tabs := make([]string, 0, len(t.Labels))
	for i, label := range t.Labels {
		if i == t.Active {
			tabs = append(tabs, theme.TabActive.Render(label))
		} else {
			tabs = append(tabs, theme.TabInactive.Render(label))
		}
	}
	row := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
	return theme.TabBar.Width(width).Render(row)
}
