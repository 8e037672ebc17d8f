// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the ragdesk backend service.
//
// All chat, retrieval, ingestion, and automation logic lives server-side;
// this package only speaks the backend's JSON-over-HTTPS contract plus one
// Server-Sent-Events stream for automation task progress.
//
// Errors follow a small taxonomy: validation never reaches this package,
// backend-reported {error} payloads become ErrTypeBackend, transport
// failures become ErrTypeConnection, and undecodable bodies become
// ErrTypeInvalidResponse. Nothing here retries; a failure is terminal for
// that attempt.
package backend
