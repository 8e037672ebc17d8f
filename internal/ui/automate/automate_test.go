// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package automate

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ragdesk-tui/internal/audio"
	"github.com/jeranaias/ragdesk-tui/internal/backend"
	"github.com/jeranaias/ragdesk-tui/internal/tasks"
	"github.com/jeranaias/ragdesk-tui/internal/ui/styles"
)

// =============================================================================
// FAKES
// =============================================================================

// fakeService completes every submitted task immediately.
type fakeService struct {
	submitted []backend.AutomationTask
	closed    bool
}

func (f *fakeService) RunTasks(_ context.Context, batch []backend.AutomationTask) error {
	f.submitted = batch
	return nil
}

func (f *fakeService) StreamTaskUpdates(_ context.Context, fn func(backend.TaskEvent)) error {
	for i := range f.submitted {
		fn(backend.TaskEvent{Status: backend.EventProgress, TaskNum: i + 1})
		fn(backend.TaskEvent{Status: backend.EventCompleted, TaskNum: i + 1, Type: "main_task", Result: "done"})
	}
	fn(backend.TaskEvent{Status: backend.EventAllCompleted})
	return nil
}

func (f *fakeService) CloseBrowser(context.Context) error {
	f.closed = true
	return nil
}

func newTestModel(t *testing.T) (Model, *fakeService) {
	t.Helper()
	fs := &fakeService{}
	m := New(fs, nil, audio.SilenceConfig{}, styles.NewTheme("dark"))
	m.SetSize(100, 30)
	return m, fs
}

// =============================================================================
// EDITOR TESTS
// =============================================================================

func TestEditor_AddAndRemoveRows(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlA})
	if len(m.specs) != 2 || m.row != 1 {
		t.Errorf("specs = %d rows, cursor %d", len(m.specs), m.row)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	if len(m.specs) != 1 || m.row != 0 {
		t.Errorf("after remove: %d rows, cursor %d", len(m.specs), m.row)
	}

	// The last row cannot be removed.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	if len(m.specs) != 1 {
		t.Error("the last row should survive ctrl+d")
	}
}

func TestEditor_TabSwitchesColumn(t *testing.T) {
	m, _ := newTestModel(t)
	m.editor.SetValue("open example.com")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.col != colFollowup {
		t.Fatal("tab should move to the followup column")
	}
	if m.specs[0].Main != "open example.com" {
		t.Errorf("main = %q, edit should be flushed on tab", m.specs[0].Main)
	}

	m.editor.SetValue("screenshot it")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.specs[0].Followup != "screenshot it" {
		t.Errorf("followup = %q", m.specs[0].Followup)
	}
}

// =============================================================================
// RUN TESTS
// =============================================================================

func TestRun_EmptyBatchWarns(t *testing.T) {
	m, fs := newTestModel(t)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if m.Busy() {
		t.Error("an empty batch should not start")
	}
	if fs.submitted != nil {
		t.Error("nothing should reach the backend")
	}
}

func TestRun_BatchCompletes(t *testing.T) {
	m, fs := newTestModel(t)
	m.specs = []tasks.Spec{{Main: "open example.com", Followup: "screenshot"}}
	m.seedEditor()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if !m.Busy() {
		t.Fatal("run should mark the screen busy")
	}
	if len(fs.submitted) != 1 {
		t.Fatalf("submitted = %v", fs.submitted)
	}

	waitTrackerDone(t, m.tracker)

	m, _ = m.Update(RunDoneMsg{})
	if m.Busy() {
		t.Error("run completion should clear busy")
	}
	if got := m.tracker.Get(1).Status; got != tasks.StatusComplete {
		t.Errorf("task status = %v", got)
	}
	if !strings.Contains(m.banner.Message, "completed") {
		t.Errorf("banner = %q", m.banner.Message)
	}
}

func TestRunView_MultilineResultStaysOnOneRow(t *testing.T) {
	m, _ := newTestModel(t)
	m.specs = []tasks.Spec{{Main: "open example.com"}}
	m.seedEditor()

	tracker := tasks.NewTracker(m.specs)
	tracker.Apply(backend.TaskEvent{
		Status:  backend.EventCompleted,
		TaskNum: 1,
		Type:    "main_task",
		Result:  "first line\nsecond line",
	})
	m.tracker = tracker
	m.running = true

	out := m.View()
	if !strings.Contains(out, "first line second line") {
		t.Error("a multi-line result should collapse to one preview row")
	}
	if strings.Contains(out, "first line\nsecond line") {
		t.Error("raw newlines must not reach the run view")
	}
}

func TestRun_EditingLockedWhileRunning(t *testing.T) {
	m, _ := newTestModel(t)
	m.specs = []tasks.Spec{{Main: "task"}}
	m.seedEditor()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlA})
	if len(m.specs) != 1 {
		t.Error("rows must not change while running")
	}
}

func TestAbort_ClosesBrowser(t *testing.T) {
	m, fs := newTestModel(t)
	m.specs = []tasks.Spec{{Main: "task"}}
	m.seedEditor()

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	cmd := m.abort()
	if cmd == nil {
		t.Fatal("abort should return a command")
	}
	msg := cmd().(AbortDoneMsg)
	m, _ = m.Update(msg)

	if !fs.closed {
		t.Error("abort should close the browser")
	}
	if m.Busy() {
		t.Error("abort should clear busy")
	}
}

// =============================================================================
// VOICE TESTS
// =============================================================================

func TestVoice_DisabledWithoutMeter(t *testing.T) {
	m, _ := newTestModel(t)
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlV})
	if cmd != nil || m.listening {
		t.Error("voice capture should be disabled without a meter")
	}
}

func waitTrackerDone(t *testing.T, tr *tasks.Tracker) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !tr.Done() {
		if time.Now().After(deadline) {
			t.Fatal("tracker did not finish")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
