// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across the ragdesk TUI.
//
// String Utilities:
//   - TruncateWidth: display-width aware truncation (CJK safe)
//   - CollapseSpace: single-line previews of multi-line content
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
package util
