// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "testing"

func TestNewTheme_Modes(t *testing.T) {
	if th := NewTheme("dark"); !th.IsDark {
		t.Error("dark mode should set IsDark")
	}
	if th := NewTheme("light"); th.IsDark {
		t.Error("light mode should clear IsDark")
	}
	// Auto mode must not panic regardless of the terminal it runs in.
	_ = NewTheme("auto")
}

func TestNewTheme_CaseInsensitive(t *testing.T) {
	if th := NewTheme("DARK"); !th.IsDark {
		t.Error("mode should be case-insensitive")
	}
}
