// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ingest implements the ingestion screen: syncing the backend's
// document folder, ingesting URLs, extracting linked PDFs, transcribing
// YouTube videos, and managing the niche directory. The target niche is
// remembered across runs.
package ingest
