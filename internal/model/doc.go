// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the client-side data structures for the ragdesk TUI:
// niches, conversations, and the message history with its pending/resolved/
// failed exchange lifecycle.
//
// The backend owns all durable chat state. These types only mirror what the
// UI needs between a request going out and its response coming back.
package model
