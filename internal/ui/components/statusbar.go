// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/ragdesk-tui/internal/ui/styles"
	"github.com/jeranaias/ragdesk-tui/internal/util"
)

// =============================================================================
// STATUS BAR
// =============================================================================

// Shortcut is one key hint shown in the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar renders a left-aligned context string and right-aligned key hints.
type StatusBar struct {
	Left      string
	Shortcuts []Shortcut
}

// View renders the bar at the given width.
func (s StatusBar) View(theme *styles.Theme, width int) string {
	hints := make([]string, 0, len(s.Shortcuts))
	for _, sc := range s.Shortcuts {
		hints = append(hints, theme.ShortcutKey.Render(sc.Key)+" "+theme.ShortcutDesc.Render(sc.Desc))
	}
	right := strings.Join(hints, "  ")

	leftWidth := width - util.StringWidth(right) - 3
	if leftWidth < 0 {
		leftWidth = 0
		right = ""
	}
	left := util.PadRight(util.TruncateWidth(s.Left, leftWidth), leftWidth)

	return theme.StatusBar.Width(width).Render(left + " " + right)
}
