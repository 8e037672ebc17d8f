// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package power

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ragdesk-tui/internal/ui/styles"
)

type fakePower struct {
	on       bool
	statuses int
	writes   []bool
}

func (f *fakePower) Status(context.Context) (bool, error) {
	f.statuses++
	return f.on, nil
}

func (f *fakePower) SetDesired(_ context.Context, on bool) error {
	f.writes = append(f.writes, on)
	return nil
}

func newTestModel(t *testing.T) (Model, *fakePower) {
	t.Helper()
	fp := &fakePower{}
	m := New(fp, 10*time.Second, styles.NewTheme("dark"))
	m.SetSize(80, 20)
	return m, fp
}

func TestStatus_UpdatesState(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = m.Update(StatusMsg{On: true})
	if !m.on || !m.known {
		t.Error("status should update state")
	}
	if !strings.Contains(m.View(), "ON") {
		t.Error("view should show ON")
	}

	m, _ = m.Update(StatusMsg{On: false})
	if m.on {
		t.Error("status should track transitions to off")
	}
	if !strings.Contains(m.View(), "OFF") {
		t.Error("view should show OFF")
	}
}

func TestToggle_RequiresKnownState(t *testing.T) {
	m, fp := newTestModel(t)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	if cmd != nil {
		t.Error("toggle before the first poll should be a no-op")
	}
	if len(fp.writes) != 0 {
		t.Error("no write should happen before state is known")
	}
}

func TestToggle_WritesOppositeState(t *testing.T) {
	m, fp := newTestModel(t)
	m, _ = m.Update(StatusMsg{On: true})

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	if cmd == nil {
		t.Fatal("toggle should return a command")
	}
	msg := cmd().(SetDoneMsg)
	if len(fp.writes) != 1 || fp.writes[0] != false {
		t.Errorf("writes = %v, want [false]", fp.writes)
	}

	m, _ = m.Update(msg)
	if m.toggling {
		t.Error("toggle completion should clear the in-flight flag")
	}
	if !strings.Contains(m.banner.Message, "off") {
		t.Errorf("banner = %q", m.banner.Message)
	}
}

func TestToggle_BlockedWhileInFlight(t *testing.T) {
	m, fp := newTestModel(t)
	m, _ = m.Update(StatusMsg{On: false})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	if cmd != nil {
		t.Error("second toggle should be blocked while one is in flight")
	}
	if len(fp.writes) != 1 {
		t.Errorf("writes = %v", fp.writes)
	}
}

func TestRefresh_RateLimited(t *testing.T) {
	m, fp := newTestModel(t)
	m, _ = m.Update(StatusMsg{On: true})

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if cmd == nil {
		t.Fatal("first refresh should poll")
	}
	cmd()

	// Immediately pressing again exceeds the limiter's burst.
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if cmd != nil {
		t.Error("rapid refresh should be rate limited")
	}
	if fp.statuses != 1 {
		t.Errorf("statuses = %d, want 1", fp.statuses)
	}
}

func TestPollTick_ReschedulesAndPolls(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := m.Update(pollTickMsg{})
	if cmd == nil {
		t.Fatal("tick should poll and reschedule")
	}
	if !m.polling {
		t.Error("tick should mark a poll in flight")
	}
}
