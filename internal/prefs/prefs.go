// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package prefs provides durable client-side preferences for the ragdesk TUI.
//
// The only cross-session state the client owns is a handful of small values,
// most importantly the active conversation id, which must survive a restart
// and be restored before any network call completes. Everything else in the
// application is either transient UI state or backend-owned.
package prefs

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// KEYS
// =============================================================================

const (
	// keyActiveConversation stores the active conversation id.
	keyActiveConversation = "active_conversation_id"

	// keyIngestNiche stores the last niche selected on the ingest screen.
	keyIngestNiche = "ingest_niche"
)

// =============================================================================
// STORE
// =============================================================================

// Store is a small sqlite-backed key/value store.
// Writes are serialized by the UI event loop; the store itself only needs to
// be safe for the single-writer pattern database/sql already provides.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the preferences database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create prefs directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open prefs database: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS prefs (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize prefs schema: %w", err)
	}

	return &Store{db: db}, nil
}

// OpenDefault opens the preferences database at ~/.ragdesk/prefs.db.
func OpenDefault() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return Open(filepath.Join(home, ".ragdesk", "prefs.db"))
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// =============================================================================
// GENERIC ACCESS
// =============================================================================

// get returns the value for key, or "" when unset.
func (s *Store) get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM prefs WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read pref %q: %w", key, err)
	}
	return value, nil
}

// set writes the value for key; an empty value deletes the key.
func (s *Store) set(key, value string) error {
	if value == "" {
		if _, err := s.db.Exec(`DELETE FROM prefs WHERE key = ?`, key); err != nil {
			return fmt.Errorf("failed to delete pref %q: %w", key, err)
		}
		return nil
	}
	if _, err := s.db.Exec(
		`INSERT INTO prefs (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value); err != nil {
		return fmt.Errorf("failed to write pref %q: %w", key, err)
	}
	return nil
}

// =============================================================================
// ACTIVE CONVERSATION
// =============================================================================

// ActiveConversationID returns the persisted active conversation id, or ""
// when none is stored.
func (s *Store) ActiveConversationID() (string, error) {
	return s.get(keyActiveConversation)
}

// SetActiveConversationID persists the active conversation id. An empty id
// clears the cell (no active conversation).
func (s *Store) SetActiveConversationID(id string) error {
	return s.set(keyActiveConversation, id)
}

// =============================================================================
// INGEST NICHE
// =============================================================================

// IngestNiche returns the last niche used on the ingest screen, or "".
func (s *Store) IngestNiche() (string, error) {
	return s.get(keyIngestNiche)
}

// SetIngestNiche persists the ingest screen's niche selection.
func (s *Store) SetIngestNiche(value string) error {
	return s.set(keyIngestNiche, value)
}
