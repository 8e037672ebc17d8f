// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package sounds implements the ambient sound board: independent looping
// channels that can play concurrently, each with its own play/pause toggle
// and volume.
package sounds
