// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the ragdesk TUI.
//
// Colors are defined as adaptive pairs that pick the right variant for
// light and dark terminal backgrounds. Theme bundles the lipgloss styles
// used by the screens and components.
package styles
