// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides shared UI components for the ragdesk TUI:
// the screen tab bar, status bar, spinner, dismissible error banner, and
// the confirmation prompt used before destructive actions.
package components
