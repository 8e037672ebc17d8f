// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package automate

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ragdesk-tui/internal/audio"
	"github.com/jeranaias/ragdesk-tui/internal/tasks"
	"github.com/jeranaias/ragdesk-tui/internal/ui/components"
	"github.com/jeranaias/ragdesk-tui/internal/ui/styles"
)

// =============================================================================
// COLUMNS
// =============================================================================

// column identifies which field of the focused row is being edited.
type column int

const (
	colMain column = iota
	colFollowup
)

// =============================================================================
// MESSAGES
// =============================================================================

// RunDoneMsg reports the end of a batch run.
type RunDoneMsg struct {
	Err error
}

// NotificationMsg carries one task state change from the tracker. OK is
// false once the stream has finished and the channel closed.
type NotificationMsg struct {
	Notification tasks.Notification
	OK           bool
}

// AbortDoneMsg reports the outcome of an abort request.
type AbortDoneMsg struct {
	Err error
}

// VoiceDoneMsg reports that voice capture stopped, either on sustained
// silence or on error.
type VoiceDoneMsg struct {
	Err error
}

// =============================================================================
// AUTOMATE MODEL
// =============================================================================

// Model is the Bubble Tea model for the automation screen.
type Model struct {
	service tasks.Service
	theme   *styles.Theme

	width  int
	height int

	// Batch editor state
	specs  []tasks.Spec
	row    int
	col    column
	editor textinput.Model

	// Run state
	runner  *tasks.Runner
	tracker *tasks.Tracker
	running bool
	spinner components.Spinner
	banner  components.Banner

	// Voice capture
	meter     audio.LevelMeter
	silence   audio.SilenceConfig
	listening bool
	voiceStop context.CancelFunc
}

// New creates the automation screen model. meter may be nil, which disables
// voice capture.
func New(service tasks.Service, meter audio.LevelMeter, silence audio.SilenceConfig, theme *styles.Theme) Model {
	editor := textinput.New()
	editor.Placeholder = "Describe the task"
	editor.CharLimit = 1024
	editor.Focus()

	return Model{
		service: service,
		theme:   theme,
		specs:   []tasks.Spec{{}},
		editor:  editor,
		spinner: components.NewSpinner(),
		meter:   meter,
		silence: silence,
	}
}

// Init starts the spinner ticking.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick(), textinput.Blink)
}

// SetSize resizes the screen.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.editor.Width = width - 20
}

// Busy reports whether a batch is running.
func (m Model) Busy() bool {
	return m.running
}

// =============================================================================
// COMMANDS
// =============================================================================

// start submits the batch and begins consuming the event stream.
func (m *Model) start() tea.Cmd {
	m.flushEditor()

	tracker := tasks.NewTracker(m.specs)
	if tracker.Len() == 0 {
		var cmd tea.Cmd
		m.banner, cmd = components.NewBanner(components.BannerInfo, "Add at least one task first")
		return cmd
	}

	m.tracker = tracker
	m.runner = tasks.NewRunner(m.service, tracker)
	m.running = true
	m.spinner.Reset()

	errCh := m.runner.Run(context.Background())
	return tea.Batch(
		func() tea.Msg { return RunDoneMsg{Err: <-errCh} },
		waitNotification(tracker),
	)
}

// waitNotification blocks for the next tracker notification.
func waitNotification(tr *tasks.Tracker) tea.Cmd {
	return func() tea.Msg {
		n, ok := <-tr.Notifications()
		return NotificationMsg{Notification: n, OK: ok}
	}
}

// abort cancels the batch and closes the remote browser.
func (m *Model) abort() tea.Cmd {
	runner := m.runner
	if runner == nil {
		return nil
	}
	return func() tea.Msg {
		return AbortDoneMsg{Err: runner.Abort(context.Background())}
	}
}

// startVoice begins hands-free capture; it resolves when the room goes
// quiet for the configured duration.
func (m *Model) startVoice() tea.Cmd {
	if m.meter == nil || m.listening {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.voiceStop = cancel
	m.listening = true

	meter := m.meter
	cfg := m.silence
	return func() tea.Msg {
		return VoiceDoneMsg{Err: audio.Watch(ctx, meter, cfg)}
	}
}

// =============================================================================
// EDITOR PLUMBING
// =============================================================================

// flushEditor writes the editor's value back into the focused cell.
func (m *Model) flushEditor() {
	if m.row >= len(m.specs) {
		return
	}
	if m.col == colMain {
		m.specs[m.row].Main = m.editor.Value()
	} else {
		m.specs[m.row].Followup = m.editor.Value()
	}
}

// seedEditor loads the focused cell into the editor.
func (m *Model) seedEditor() {
	if m.row >= len(m.specs) {
		return
	}
	if m.col == colMain {
		m.editor.SetValue(m.specs[m.row].Main)
		m.editor.Placeholder = "Describe the task"
	} else {
		m.editor.SetValue(m.specs[m.row].Followup)
		m.editor.Placeholder = "Optional followup"
	}
	m.editor.CursorEnd()
}
