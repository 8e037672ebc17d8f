// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/ragdesk-tui/internal/ui/styles"
	"github.com/jeranaias/ragdesk-tui/internal/util"
)

// =============================================================================
// BANNER
// =============================================================================

// BannerKind selects the banner's color.
type BannerKind int

const (
	BannerError BannerKind = iota
	BannerSuccess
	BannerInfo
)

// BannerDismissMsg asks the owning model to clear an expired banner.
type BannerDismissMsg struct {
	ID int
}

// DefaultBannerDuration is how long a banner stays before auto-dismissing.
const DefaultBannerDuration = 8 * time.Second

var bannerSeq int

// Banner is a dismissible strip shown above the status bar. Unlike a modal
// it never blocks input; it auto-dismisses or clears on Esc.
type Banner struct {
	ID      int
	Message string
	Kind    BannerKind
}

// NewBanner creates a banner and returns it with the delayed dismiss command.
func NewBanner(kind BannerKind, message string) (Banner, tea.Cmd) {
	bannerSeq++
	b := Banner{ID: bannerSeq, Message: message, Kind: kind}
	id := b.ID
	return b, tea.Tick(DefaultBannerDuration, func(time.Time) tea.Msg {
		return BannerDismissMsg{ID: id}
	})
}

// Empty reports whether there is nothing to show.
func (b Banner) Empty() bool {
	return b.Message == ""
}

// View renders the banner at the given width.
func (b Banner) View(theme *styles.Theme, width int) string {
	if b.Empty() {
		return ""
	}

	style := theme.ErrorBanner
	switch b.Kind {
	case BannerSuccess:
		style = style.Background(styles.Emerald)
	case BannerInfo:
		style = style.Background(styles.Cyan)
	}

	msg := util.TruncateWidth(b.Message, max(width-4, 8))
	return style.Width(width).Render(msg + "  " + lipgloss.NewStyle().Faint(true).Render("esc to dismiss"))
}
