// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/jeranaias/ragdesk-tui/internal/ui/styles"
)

// =============================================================================
// CONFIRM PROMPT
// =============================================================================

// Confirm is an inline yes/no prompt shown before a destructive action.
// The owning model decides what the confirmation applies to.
type Confirm struct {
	Prompt string
	active bool
}

// Ask activates the prompt with the given question.
func (c *Confirm) Ask(prompt string) {
	c.Prompt = prompt
	c.active = true
}

// Dismiss deactivates the prompt.
func (c *Confirm) Dismiss() {
	c.Prompt = ""
	c.active = false
}

// Active reports whether the prompt is waiting for an answer.
func (c Confirm) Active() bool {
	return c.active
}

// View renders the prompt box.
func (c Confirm) View(theme *styles.Theme) string {
	if !c.active {
		return ""
	}
	return theme.ConfirmBox.Render(
		theme.PrimaryText.Render(c.Prompt) + "\n\n" +
			theme.ShortcutKey.Render("y") + theme.ShortcutDesc.Render(" confirm   ") +
			theme.ShortcutKey.Render("n") + theme.ShortcutDesc.Render(" cancel"),
	)
}
