// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the client-side data structures for the ragdesk TUI.
package model

import (
	"strings"

	"github.com/jeranaias/ragdesk-tui/internal/util"
)

// =============================================================================
// NICHE
// =============================================================================

// Niche is a backend-defined content category used to scope retrieval.
type Niche struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// =============================================================================
// NICHE SELECTION
// =============================================================================

// NicheSelection is the transient set of niches scoping the next query.
// An empty selection means "general/unscoped search". Selection order is
// preserved for display.
type NicheSelection struct {
	values []string
}

// Toggle adds the value to the selection, or removes it if present.
func (s *NicheSelection) Toggle(value string) {
	for i, v := range s.values {
		if v == value {
			s.values = append(s.values[:i], s.values[i+1:]...)
			return
		}
	}
	s.values = append(s.values, value)
}

// Contains reports whether the value is selected.
func (s *NicheSelection) Contains(value string) bool {
	for _, v := range s.values {
		if v == value {
			return true
		}
	}
	return false
}

// Values returns the selected values in selection order.
func (s *NicheSelection) Values() []string {
	out := make([]string, len(s.values))
	copy(out, s.values)
	return out
}

// Len returns the number of selected niches.
func (s *NicheSelection) Len() int {
	return len(s.values)
}

// Clear empties the selection back to general search.
func (s *NicheSelection) Clear() {
	s.values = nil
}

// SelectAll replaces the selection with every niche in the directory.
func (s *NicheSelection) SelectAll(dir []Niche) {
	s.values = make([]string, 0, len(dir))
	for _, n := range dir {
		s.values = append(s.values, n.Value)
	}
}

// Remove drops a value if selected (used when a niche is deleted).
func (s *NicheSelection) Remove(value string) {
	for i, v := range s.values {
		if v == value {
			s.values = append(s.values[:i], s.values[i+1:]...)
			return
		}
	}
}

// Label summarizes the selection for the niche-filter header:
// "General Search" when empty, a comma-joined label list for 1-2 niches,
// and "N niches selected" otherwise. Values missing from the directory are
// skipped in the label list.
func (s *NicheSelection) Label(dir []Niche) string {
	if len(s.values) == 0 {
		return "General Search"
	}
	if len(s.values) > 2 {
		return util.IntToString(len(s.values)) + " niches selected"
	}

	labels := make([]string, 0, len(s.values))
	for _, v := range s.values {
		for _, n := range dir {
			if n.Value == v {
				labels = append(labels, n.Label)
				break
			}
		}
	}
	return strings.Join(labels, ", ")
}
