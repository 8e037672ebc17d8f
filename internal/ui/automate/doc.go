// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package automate implements the browser automation screen: a batch editor
// for main/followup task pairs, live per-task status fed by the backend's
// event stream, an abort control that also closes the remote browser, and
// hands-free voice capture that stops on sustained silence.
package automate
