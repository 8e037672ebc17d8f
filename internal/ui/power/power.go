// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package power

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/time/rate"

	"github.com/jeranaias/ragdesk-tui/internal/backend"
	"github.com/jeranaias/ragdesk-tui/internal/ui/components"
	"github.com/jeranaias/ragdesk-tui/internal/ui/styles"
)

// =============================================================================
// DEPENDENCIES
// =============================================================================

// Backend is the slice of the power client this screen depends on.
type Backend interface {
	Status(ctx context.Context) (bool, error)
	SetDesired(ctx context.Context, on bool) error
}

// =============================================================================
// MESSAGES
// =============================================================================

// StatusMsg delivers one poll result. Err is only set for failures other
// than an unreachable machine.
type StatusMsg struct {
	On  bool
	Err error
}

// SetDoneMsg confirms a desired-state write.
type SetDoneMsg struct {
	Desired bool
	Err     error
}

// pollTickMsg fires the next scheduled poll.
type pollTickMsg struct{}

// =============================================================================
// POWER MODEL
// =============================================================================

// Model is the Bubble Tea model for the power panel.
type Model struct {
	backend  Backend
	theme    *styles.Theme
	interval time.Duration

	// limiter stops a held-down refresh key from hammering the endpoint
	// faster than the poll interval.
	limiter *rate.Limiter

	width  int
	height int

	// on is the last observed state; known is false until the first poll.
	on      bool
	known   bool
	polling bool

	// desired is set while a toggle is in flight.
	toggling bool

	spinner components.Spinner
	banner  components.Banner
}

// New creates the power panel. interval must be positive.
func New(b Backend, interval time.Duration, theme *styles.Theme) Model {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return Model{
		backend:  b,
		theme:    theme,
		interval: interval,
		limiter:  rate.NewLimiter(rate.Every(interval/2), 1),
		spinner:  components.NewSpinner(),
	}
}

// Init starts the first poll and the poll schedule.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.poll(), m.schedule(), m.spinner.Tick())
}

// SetSize resizes the screen.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// =============================================================================
// COMMANDS
// =============================================================================

// poll checks the machine once.
func (m Model) poll() tea.Cmd {
	return func() tea.Msg {
		on, err := m.backend.Status(context.Background())
		return StatusMsg{On: on, Err: err}
	}
}

// schedule fires the next poll tick.
func (m Model) schedule() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return pollTickMsg{}
	})
}

// setDesired writes the desired power state.
func (m Model) setDesired(on bool) tea.Cmd {
	return func() tea.Msg {
		err := m.backend.SetDesired(context.Background(), on)
		return SetDoneMsg{Desired: on, Err: err}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles one message for the power panel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "t", "enter", " ":
			if m.toggling || !m.known {
				return m, nil
			}
			m.toggling = true
			m.spinner.Reset()
			return m, m.setDesired(!m.on)

		case "r":
			if !m.limiter.Allow() {
				return m, nil
			}
			m.polling = true
			return m, m.poll()

		case "esc":
			if !m.banner.Empty() {
				m.banner = components.Banner{}
			}
			return m, nil
		}

	case pollTickMsg:
		m.polling = true
		cmds = append(cmds, m.poll(), m.schedule())

	case StatusMsg:
		m.polling = false
		if msg.Err != nil {
			var cmd tea.Cmd
			m.banner, cmd = components.NewBanner(components.BannerError, backend.UserMessage(msg.Err))
			cmds = append(cmds, cmd)
			break
		}
		m.on = msg.On
		m.known = true

	case SetDoneMsg:
		m.toggling = false
		var cmd tea.Cmd
		if msg.Err != nil {
			m.banner, cmd = components.NewBanner(components.BannerError, backend.UserMessage(msg.Err))
			cmds = append(cmds, cmd)
			break
		}
		verb := "off"
		if msg.Desired {
			verb = "on"
		}
		m.banner, cmd = components.NewBanner(components.BannerSuccess, "Requested power "+verb)
		cmds = append(cmds, cmd, m.poll())

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

// =============================================================================
// VIEW
// =============================================================================

// View renders the power panel.
func (m Model) View() string {
	var b strings.Builder

	if !m.banner.Empty() {
		b.WriteString(m.banner.View(m.theme, m.width))
		b.WriteString("\n")
	}

	b.WriteString(m.theme.SectionTitle.Render("PC power"))
	b.WriteString("\n\n")

	switch {
	case m.toggling:
		b.WriteString(m.theme.PendingText.Render(m.spinner.ViewWithLabel("Switching")))
	case !m.known:
		b.WriteString(m.theme.MutedText.Render(m.spinner.View() + " checking..."))
	case m.on:
		b.WriteString(m.theme.SuccessText.Render("● ON"))
	default:
		b.WriteString(m.theme.FailureText.Render("○ OFF"))
	}

	if m.polling && m.known {
		b.WriteString("  " + m.theme.MutedText.Render("refreshing"))
	}

	b.WriteString("\n\n")
	b.WriteString(m.theme.ShortcutKey.Render("t") + m.theme.ShortcutDesc.Render(" toggle   "))
	b.WriteString(m.theme.ShortcutKey.Render("r") + m.theme.ShortcutDesc.Render(" refresh"))
	return b.String()
}
