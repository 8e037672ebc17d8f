// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package power implements the PC power panel: it polls the machine's
// reachability on a fixed interval and toggles the desired power state
// through the control endpoint. An unreachable machine reads as "off",
// never as an error.
package power
