// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the chat screen: the conversation sidebar, the
// niche filter, the message viewport, and the composer. Conversation and
// exchange state lives in the session manager; this package renders it and
// translates key presses into manager calls.
package chat
