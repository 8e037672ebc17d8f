// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ragdesk-tui/internal/model"
	"github.com/jeranaias/ragdesk-tui/internal/session"
	"github.com/jeranaias/ragdesk-tui/internal/ui/styles"
)

// =============================================================================
// FAKES
// =============================================================================

type fakeBackend struct {
	conversations []model.Conversation
	niches        []model.Niche
	deleted       []string
}

func (f *fakeBackend) ListConversations(context.Context) ([]model.Conversation, error) {
	return f.conversations, nil
}

func (f *fakeBackend) CreateConversation(_ context.Context, name string) (model.Conversation, error) {
	return model.Conversation{ChatID: "new-id", ChatName: name}, nil
}

func (f *fakeBackend) DeleteConversation(_ context.Context, chatID string) error {
	f.deleted = append(f.deleted, chatID)
	return nil
}

func (f *fakeBackend) History(context.Context, string) ([]*model.Message, error) {
	return nil, nil
}

func (f *fakeBackend) Query(context.Context, string, []string, string) (model.Answer, error) {
	return model.Answer{Content: "answer"}, nil
}

func (f *fakeBackend) ListNiches(context.Context) ([]model.Niche, error) {
	return f.niches, nil
}

type fakePrefs struct{ id string }

func (p *fakePrefs) ActiveConversationID() (string, error) { return p.id, nil }
func (p *fakePrefs) SetActiveConversationID(id string) error {
	p.id = id
	return nil
}

func newTestModel(t *testing.T, selectAll bool) (Model, *fakeBackend) {
	t.Helper()
	fb := &fakeBackend{
		conversations: []model.Conversation{
			{ChatID: "c1", ChatName: "research"},
			{ChatID: "c2", ChatName: "cooking"},
		},
		niches: []model.Niche{
			{Value: "go", Label: "Go"},
			{Value: "rust", Label: "Rust"},
		},
	}
	sess := session.NewManager(fb, &fakePrefs{}, "")
	m := New(sess, fb, styles.NewTheme("dark"), selectAll)
	m.SetSize(100, 30)
	return m, fb
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// =============================================================================
// NICHE FILTER TESTS
// =============================================================================

func TestNichesLoaded_DefaultScopeGeneral(t *testing.T) {
	m, fb := newTestModel(t, false)
	m, _ = m.Update(NichesLoadedMsg{Niches: fb.niches})
	if m.Directory.Len() != 0 {
		t.Errorf("general scope should select nothing, got %v", m.Directory.Values())
	}
}

func TestNichesLoaded_DefaultScopeAll(t *testing.T) {
	m, fb := newTestModel(t, true)
	m, _ = m.Update(NichesLoadedMsg{Niches: fb.niches})
	if m.Directory.Len() != 2 {
		t.Errorf("all scope should select every niche, got %v", m.Directory.Values())
	}
}

func TestPicker_ToggleAndClear(t *testing.T) {
	m, fb := newTestModel(t, false)
	m, _ = m.Update(NichesLoadedMsg{Niches: fb.niches})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlF})
	if m.focus != focusNichePicker {
		t.Fatal("ctrl+f should open the picker")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Directory.Contains("go") {
		t.Error("enter should toggle the niche under the cursor")
	}

	m, _ = m.Update(keyRune('a'))
	if m.Directory.Len() != 2 {
		t.Error("a should select all niches")
	}

	m, _ = m.Update(keyRune('c'))
	if m.Directory.Len() != 0 {
		t.Error("c should clear back to general search")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.focus != focusComposer {
		t.Error("esc should return to the composer")
	}
}

// =============================================================================
// SIDEBAR TESTS
// =============================================================================

func TestSidebar_DeleteAsksConfirmation(t *testing.T) {
	m, fb := newTestModel(t, false)
	m, _ = m.Update(session.ConversationsLoadedMsg{Conversations: fb.conversations})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlB})
	if m.focus != focusSidebar {
		t.Fatal("ctrl+b should focus the sidebar")
	}

	m, _ = m.Update(keyRune('d'))
	if !m.confirm.Active() {
		t.Fatal("delete should ask for confirmation")
	}
	if !strings.Contains(m.confirm.Prompt, "research") {
		t.Errorf("prompt should name the chat: %q", m.confirm.Prompt)
	}
	if len(fb.deleted) != 0 {
		t.Error("nothing should be deleted before confirmation")
	}

	// Declining leaves the list alone.
	m, _ = m.Update(keyRune('n'))
	if m.confirm.Active() {
		t.Error("n should dismiss the prompt")
	}
	if len(fb.deleted) != 0 {
		t.Error("declined delete must not reach the backend")
	}
}

func TestSidebar_ConfirmedDeleteRuns(t *testing.T) {
	m, fb := newTestModel(t, false)
	m, _ = m.Update(session.ConversationsLoadedMsg{Conversations: fb.conversations})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlB})
	m, _ = m.Update(keyRune('d'))
	m, cmd := m.Update(keyRune('y'))
	if cmd == nil {
		t.Fatal("confirmed delete should return a command")
	}
	if msg := cmd(); msg == nil {
		t.Fatal("delete command should produce a message")
	}
	if len(fb.deleted) != 1 || fb.deleted[0] != "c1" {
		t.Errorf("deleted = %v, want [c1]", fb.deleted)
	}
}

func TestSidebar_SwitchConversation(t *testing.T) {
	m, fb := newTestModel(t, false)
	m, _ = m.Update(session.ConversationsLoadedMsg{Conversations: fb.conversations})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlB})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("switching should load history")
	}
	if got := m.session.Conversations.ActiveID; got != "c2" {
		t.Errorf("active = %q, want c2", got)
	}
	if m.focus != focusComposer {
		t.Error("switching should return focus to the composer")
	}
}

// =============================================================================
// COMPOSER TESTS
// =============================================================================

func TestSend_EmptyQuestionIsNoop(t *testing.T) {
	m, fb := newTestModel(t, false)
	m, _ = m.Update(session.ConversationsLoadedMsg{Conversations: fb.conversations})

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("empty question should not dispatch")
	}
	if m.session.History.HasPending() {
		t.Error("empty question should not append a pair")
	}
}

func TestSend_AppendsPairAndClearsComposer(t *testing.T) {
	m, fb := newTestModel(t, false)
	m, _ = m.Update(session.ConversationsLoadedMsg{Conversations: fb.conversations})

	m.composer.SetValue("what is a niche?")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("send should return the query command")
	}
	if !m.session.History.HasPending() {
		t.Error("send should append the pending placeholder")
	}
	if m.composer.Value() != "" {
		t.Error("send should clear the composer")
	}
}

func TestNewChat_CreateFlow(t *testing.T) {
	m, _ := newTestModel(t, false)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	if m.focus != focusNewChat {
		t.Fatal("ctrl+n should open the new chat input")
	}

	m.newChat.SetValue("plans")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("enter with a name should return the create command")
	}

	msg, ok := cmd().(session.ConversationCreatedMsg)
	if !ok {
		t.Fatalf("expected ConversationCreatedMsg, got %T", msg)
	}
	if msg.Conversation.ChatName != "plans" {
		t.Errorf("created name = %q", msg.Conversation.ChatName)
	}
}

// =============================================================================
// VIEW TESTS
// =============================================================================

func TestView_ShowsGreetingAndScope(t *testing.T) {
	m, fb := newTestModel(t, false)
	m, _ = m.Update(NichesLoadedMsg{Niches: fb.niches})
	m, _ = m.Update(session.ConversationsLoadedMsg{Conversations: fb.conversations})
	m, _ = m.Update(session.HistoryLoadedMsg{ChatID: "c1"})

	out := m.View()
	if !strings.Contains(out, "General Search") {
		t.Error("view should show the scope label")
	}
	if !strings.Contains(out, "research") {
		t.Error("view should list the conversations")
	}
}
