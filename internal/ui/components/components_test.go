// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/jeranaias/ragdesk-tui/internal/ui/styles"
)

func testTheme() *styles.Theme {
	return styles.NewTheme("dark")
}

// =============================================================================
// BANNER TESTS
// =============================================================================

func TestBanner_EmptyRendersNothing(t *testing.T) {
	var b Banner
	if !b.Empty() {
		t.Error("zero banner should be empty")
	}
	if b.View(testTheme(), 80) != "" {
		t.Error("empty banner should render nothing")
	}
}

func TestNewBanner_UniqueIDsAndDismissCmd(t *testing.T) {
	b1, cmd1 := NewBanner(BannerError, "first")
	b2, _ := NewBanner(BannerError, "second")

	if b1.ID == b2.ID {
		t.Error("banners should get unique IDs")
	}
	if cmd1 == nil {
		t.Fatal("expected a dismiss command")
	}
	if b1.Empty() {
		t.Error("banner with message should not be empty")
	}
}

func TestBanner_ViewContainsMessage(t *testing.T) {
	b, _ := NewBanner(BannerSuccess, "documents synced")
	out := b.View(testTheme(), 80)
	if !strings.Contains(out, "documents synced") {
		t.Errorf("view missing message: %q", out)
	}
}

// =============================================================================
// CONFIRM TESTS
// =============================================================================

func TestConfirm_Lifecycle(t *testing.T) {
	var c Confirm
	if c.Active() {
		t.Error("new confirm should be inactive")
	}

	c.Ask("Delete chat \"research\"?")
	if !c.Active() {
		t.Error("Ask should activate")
	}
	if !strings.Contains(c.View(testTheme()), "research") {
		t.Error("view should contain the prompt")
	}

	c.Dismiss()
	if c.Active() || c.View(testTheme()) != "" {
		t.Error("Dismiss should clear the prompt")
	}
}

// =============================================================================
// TAB BAR TESTS
// =============================================================================

func TestTabBar_RendersAllLabels(t *testing.T) {
	bar := TabBar{Labels: []string{"Chat", "Ingest", "Automate", "Power", "Sounds"}, Active: 2}
	out := bar.View(testTheme(), 100)
	for _, label := range bar.Labels {
		if !strings.Contains(out, label) {
			t.Errorf("tab bar missing %q", label)
		}
	}
}

// =============================================================================
// STATUS BAR TESTS
// =============================================================================

func TestStatusBar_View(t *testing.T) {
	bar := StatusBar{
		Left:      "chat: research",
		Shortcuts: []Shortcut{{Key: "tab", Desc: "next screen"}, {Key: "q", Desc: "quit"}},
	}
	out := bar.View(testTheme(), 100)
	for _, want := range []string{"chat: research", "tab", "next screen", "quit"} {
		if !strings.Contains(out, want) {
			t.Errorf("status bar missing %q in %q", want, out)
		}
	}
}

// =============================================================================
// SPINNER TESTS
// =============================================================================

func TestFormatElapsed(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{3 * time.Second, "3s"},
		{59 * time.Second, "59s"},
		{64 * time.Second, "1m04s"},
		{10 * time.Minute, "10m00s"},
	}
	for _, tc := range cases {
		if got := formatElapsed(tc.d); got != tc.want {
			t.Errorf("formatElapsed(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}

func TestSpinner_ViewWithLabel(t *testing.T) {
	s := NewSpinner()
	if cmd := s.Tick(); cmd == nil {
		t.Error("Tick should return a command")
	}
	if out := s.ViewWithLabel("Thinking"); !strings.Contains(out, "Thinking") {
		t.Errorf("label missing: %q", out)
	}
}
