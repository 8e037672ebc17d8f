// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package prefs provides durable client-side preferences for the ragdesk TUI.
package prefs

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prefs.db")
	store, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, path
}

func TestActiveConversationID_RoundTrip(t *testing.T) {
	store, _ := openTestStore(t)

	id, err := store.ActiveConversationID()
	require.NoError(t, err)
	assert.Equal(t, "", id, "fresh store should have no active conversation")

	require.NoError(t, store.SetActiveConversationID("abc"))

	id, err = store.ActiveConversationID()
	require.NoError(t, err)
	assert.Equal(t, "abc", id)
}

func TestActiveConversationID_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.SetActiveConversationID("abc"))
	require.NoError(t, store.Close())

	// Simulated reload: the id must be readable before any network call.
	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	id, err := store.ActiveConversationID()
	require.NoError(t, err)
	assert.Equal(t, "abc", id)
}

func TestSetActiveConversationID_EmptyClears(t *testing.T) {
	store, _ := openTestStore(t)

	require.NoError(t, store.SetActiveConversationID("abc"))
	require.NoError(t, store.SetActiveConversationID(""))

	id, err := store.ActiveConversationID()
	require.NoError(t, err)
	assert.Equal(t, "", id)
}

func TestSetActiveConversationID_Overwrite(t *testing.T) {
	store, _ := openTestStore(t)

	require.NoError(t, store.SetActiveConversationID("one"))
	require.NoError(t, store.SetActiveConversationID("two"))

	id, err := store.ActiveConversationID()
	require.NoError(t, err)
	assert.Equal(t, "two", id)
}

func TestIngestNiche_IndependentOfActiveID(t *testing.T) {
	store, _ := openTestStore(t)

	require.NoError(t, store.SetActiveConversationID("chat"))
	require.NoError(t, store.SetIngestNiche("tech"))

	niche, err := store.IngestNiche()
	require.NoError(t, err)
	assert.Equal(t, "tech", niche)

	require.NoError(t, store.SetActiveConversationID(""))
	niche, err = store.IngestNiche()
	require.NoError(t, err)
	assert.Equal(t, "tech", niche, "clearing the active id must not touch other keys")
}
