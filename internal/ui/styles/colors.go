// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// BRAND COLORS
// =============================================================================

var (
	// Purple is the primary brand color, used for the active tab and the
	// user's side of the conversation.
	Purple = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

	// Cyan highlights interactive accents such as niche chips and links.
	Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

	// Emerald marks success states: completed tasks, power on, playing sounds.
	Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

	// Rose marks failures and destructive actions.
	Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

	// Amber marks pending and in-progress states.
	Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}
)

// =============================================================================
// SURFACE COLORS
// =============================================================================

var (
	Surface0 = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E2E"}
	Surface1 = lipgloss.AdaptiveColor{Light: "#F4F4F5", Dark: "#27273A"}
	Surface2 = lipgloss.AdaptiveColor{Light: "#E4E4E7", Dark: "#313145"}

	Overlay0 = lipgloss.AdaptiveColor{Light: "#D4D4D8", Dark: "#45475A"}
	Overlay1 = lipgloss.AdaptiveColor{Light: "#A1A1AA", Dark: "#585B70"}
)

// =============================================================================
// TEXT COLORS
// =============================================================================

var (
	TextPrimary   = lipgloss.AdaptiveColor{Light: "#18181B", Dark: "#E4E4E7"}
	TextSecondary = lipgloss.AdaptiveColor{Light: "#52525B", Dark: "#A1A1AA"}
	TextMuted     = lipgloss.AdaptiveColor{Light: "#A1A1AA", Dark: "#6C7086"}
	TextInverse   = lipgloss.AdaptiveColor{Light: "#FAFAFA", Dark: "#18181B"}
)

// =============================================================================
// CHAT BUBBLE COLORS
// =============================================================================

var (
	UserBubbleBg = lipgloss.AdaptiveColor{Light: "#EDE9FE", Dark: "#3B3261"}
	UserBubbleFg = lipgloss.AdaptiveColor{Light: "#4C1D95", Dark: "#DDD6FE"}

	BotBubbleBg = lipgloss.AdaptiveColor{Light: "#F4F4F5", Dark: "#2A2A3C"}
	BotBubbleFg = TextPrimary
)
