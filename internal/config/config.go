// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for
// the ragdesk TUI.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/ragdesk-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete ragdesk configuration.
type Config struct {
	// General settings
	Version string `toml:"version" json:"version"`

	// Backend service configuration
	Backend BackendConfig `toml:"backend" json:"backend"`

	// Power panel configuration
	Power PowerConfig `toml:"power" json:"power"`

	// Chat screen configuration
	Chat ChatConfig `toml:"chat" json:"chat"`

	// Voice capture configuration
	Voice VoiceConfig `toml:"voice" json:"voice"`

	// Ambient sound list
	Sounds []SoundConfig `toml:"sounds" json:"sounds"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`
}

// BackendConfig contains backend service configuration.
type BackendConfig struct {
	// BaseURL is the URL of the ragdesk backend service
	BaseURL string `toml:"base_url" json:"base_url"`
	// TimeoutSecs is the timeout for regular requests in seconds
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
	// QueryTimeoutSecs is the timeout for RAG queries in seconds.
	// Queries run retrieval plus generation and need far more headroom.
	QueryTimeoutSecs int `toml:"query_timeout_secs" json:"query_timeout_secs"`
}

// PowerConfig contains remote power panel configuration.
type PowerConfig struct {
	// StatusURL is probed to read the machine's power state
	StatusURL string `toml:"status_url" json:"status_url"`
	// StateURL is the external state store holding the desired power flag
	StateURL string `toml:"state_url" json:"state_url"`
	// PollSecs is the status poll interval in seconds
	PollSecs int `toml:"poll_secs" json:"poll_secs"`
}

// ChatConfig contains chat screen configuration.
type ChatConfig struct {
	// DefaultNicheScope is the niche filter applied when niches load:
	// "general" starts with nothing selected (general search),
	// "all" starts with every niche selected.
	// The source material disagreed between revisions, so it is explicit.
	DefaultNicheScope string `toml:"default_niche_scope" json:"default_niche_scope"`
	// GreetName personalizes the seeded greeting message (empty = plain)
	GreetName string `toml:"greet_name" json:"greet_name"`
}

// VoiceConfig contains voice capture configuration.
type VoiceConfig struct {
	// SilenceThreshold is the 0..255 level below which input is silence
	SilenceThreshold int `toml:"silence_threshold" json:"silence_threshold"`
	// SilenceMillis is how long silence must last before capture auto-stops
	SilenceMillis int `toml:"silence_millis" json:"silence_millis"`
}

// SoundConfig is one entry of the ambient sound list.
type SoundConfig struct {
	Name string `toml:"name" json:"name"`
	File string `toml:"file" json:"file"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme" json:"theme"`
	// CompactMode uses a more compact UI layout
	CompactMode bool `toml:"compact_mode" json:"compact_mode"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		Backend: BackendConfig{
			BaseURL:          "https://ushapangeni.com.np",
			TimeoutSecs:      30,
			QueryTimeoutSecs: 120,
		},

		Power: PowerConfig{
			StatusURL: "",
			StateURL:  "",
			PollSecs:  10,
		},

		Chat: ChatConfig{
			DefaultNicheScope: "general",
			GreetName:         "",
		},

		Voice: VoiceConfig{
			SilenceThreshold: 10,
			SilenceMillis:    1500,
		},

		Sounds: []SoundConfig{
			{Name: "rain", File: "rain.mp3"},
			{Name: "fireplace", File: "fireplace.mp3"},
			{Name: "waves", File: "waves.mp3"},
		},

		UI: UIConfig{
			Theme:       "dark",
			CompactMode: false,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the ragdesk configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".ragdesk"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()
	var loadErr error

	// Try TOML first
	if tomlPath, err := ConfigPathTOML(); err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			if err := LoadTOML(cfg, tomlPath); err != nil {
				loadErr = fmt.Errorf("failed to load TOML config: %w", err)
			} else {
				return finishLoad(cfg)
			}
		}
	}

	// Try JSON as fallback
	if jsonPath, err := ConfigPathJSON(); err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			if err := LoadJSON(cfg, jsonPath); err != nil {
				loadErr = fmt.Errorf("failed to load JSON config: %w", err)
			} else {
				return finishLoad(cfg)
			}
		}
	}

	cfg, err := finishLoad(cfg)
	if err != nil {
		return nil, err
	}
	// Return defaults (with any load error for informational purposes)
	return cfg, loadErr
}

// LoadFromPath loads configuration from a specific file path with full
// validation. The extension selects the format; anything but .json is TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	return finishLoad(cfg)
}

// finishLoad applies env overrides, defaults, and validation.
func finishLoad(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON loads configuration from a JSON file.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	// Write header comment
	fmt.Fprintln(file, "# ragdesk configuration file")
	fmt.Fprintln(file, "# Generated by ragdesk - edit with care")
	fmt.Fprintln(file, "")

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

// SaveJSON saves the configuration to a JSON file.
// Atomic write with fsync prevents a torn file on crash.
func SaveJSON(cfg *Config, path string) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// Validate backend base URL
	if c.Backend.BaseURL == "" {
		errs = append(errs, ValidationError{
			Field:   "backend.base_url",
			Message: "cannot be empty",
		})
	} else if u, err := url.Parse(c.Backend.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "backend.base_url",
			Message: fmt.Sprintf("invalid URL '%s'", c.Backend.BaseURL),
		})
	}

	// Validate timeouts
	if c.Backend.TimeoutSecs < 1 {
		errs = append(errs, ValidationError{
			Field:   "backend.timeout_secs",
			Message: fmt.Sprintf("must be at least 1, got %d", c.Backend.TimeoutSecs),
		})
	}
	if c.Backend.QueryTimeoutSecs < c.Backend.TimeoutSecs {
		errs = append(errs, ValidationError{
			Field:   "backend.query_timeout_secs",
			Message: "must be at least timeout_secs",
		})
	}

	// Validate power URLs if configured
	for field, raw := range map[string]string{
		"power.status_url": c.Power.StatusURL,
		"power.state_url":  c.Power.StateURL,
	} {
		if raw == "" {
			continue
		}
		if u, err := url.Parse(raw); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("invalid URL '%s'", raw),
			})
		}
	}
	if c.Power.PollSecs < 1 {
		errs = append(errs, ValidationError{
			Field:   "power.poll_secs",
			Message: fmt.Sprintf("must be at least 1, got %d", c.Power.PollSecs),
		})
	}

	// Validate niche scope
	validScopes := map[string]bool{"general": true, "all": true}
	if !validScopes[strings.ToLower(c.Chat.DefaultNicheScope)] {
		errs = append(errs, ValidationError{
			Field:   "chat.default_niche_scope",
			Message: fmt.Sprintf("invalid scope '%s', must be one of: general, all", c.Chat.DefaultNicheScope),
		})
	}

	// Validate voice capture bounds
	if c.Voice.SilenceThreshold < 0 || c.Voice.SilenceThreshold > 255 {
		errs = append(errs, ValidationError{
			Field:   "voice.silence_threshold",
			Message: fmt.Sprintf("must be 0-255, got %d", c.Voice.SilenceThreshold),
		})
	}
	if c.Voice.SilenceMillis < 1 {
		errs = append(errs, ValidationError{
			Field:   "voice.silence_millis",
			Message: fmt.Sprintf("must be positive, got %d", c.Voice.SilenceMillis),
		})
	}

	// Validate sound entries
	for i, s := range c.Sounds {
		if s.Name == "" || s.File == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("sounds[%d]", i),
				Message: "name and file are both required",
			})
		}
	}

	// Validate UI theme
	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults sets default values for any missing or zero-value fields.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}

	if c.Backend.BaseURL == "" {
		c.Backend.BaseURL = defaults.Backend.BaseURL
	}
	if c.Backend.TimeoutSecs == 0 {
		c.Backend.TimeoutSecs = defaults.Backend.TimeoutSecs
	}
	if c.Backend.QueryTimeoutSecs == 0 {
		c.Backend.QueryTimeoutSecs = defaults.Backend.QueryTimeoutSecs
	}

	if c.Power.PollSecs == 0 {
		c.Power.PollSecs = defaults.Power.PollSecs
	}

	if c.Chat.DefaultNicheScope == "" {
		c.Chat.DefaultNicheScope = defaults.Chat.DefaultNicheScope
	}

	if c.Voice.SilenceThreshold == 0 {
		c.Voice.SilenceThreshold = defaults.Voice.SilenceThreshold
	}
	if c.Voice.SilenceMillis == 0 {
		c.Voice.SilenceMillis = defaults.Voice.SilenceMillis
	}

	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
}

// =============================================================================
// DERIVED VALUES
// =============================================================================

// Timeout returns the regular request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Backend.TimeoutSecs) * time.Second
}

// QueryTimeout returns the query timeout as a duration.
func (c *Config) QueryTimeout() time.Duration {
	return time.Duration(c.Backend.QueryTimeoutSecs) * time.Second
}

// SilenceDuration returns the voice silence window as a duration.
func (c *Config) SilenceDuration() time.Duration {
	return time.Duration(c.Voice.SilenceMillis) * time.Millisecond
}

// PowerPollInterval returns the power status poll interval as a duration.
func (c *Config) PowerPollInterval() time.Duration {
	return time.Duration(c.Power.PollSecs) * time.Second
}

// SelectAllNichesByDefault reports whether the niche filter starts with
// every niche selected.
func (c *Config) SelectAllNichesByDefault() bool {
	return strings.EqualFold(c.Chat.DefaultNicheScope, "all")
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - RAGDESK_BACKEND_URL: overrides backend.base_url
//   - RAGDESK_TIMEOUT_SECS: overrides backend.timeout_secs
//   - RAGDESK_QUERY_TIMEOUT_SECS: overrides backend.query_timeout_secs
//   - RAGDESK_POWER_STATUS_URL: overrides power.status_url
//   - RAGDESK_POWER_STATE_URL: overrides power.state_url
//   - RAGDESK_NICHE_SCOPE: overrides chat.default_niche_scope
//   - RAGDESK_THEME: overrides ui.theme
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("RAGDESK_BACKEND_URL"); v != "" {
		c.Backend.BaseURL = v
	}
	if v := os.Getenv("RAGDESK_TIMEOUT_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Backend.TimeoutSecs = n
		}
	}
	if v := os.Getenv("RAGDESK_QUERY_TIMEOUT_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Backend.QueryTimeoutSecs = n
		}
	}
	if v := os.Getenv("RAGDESK_POWER_STATUS_URL"); v != "" {
		c.Power.StatusURL = v
	}
	if v := os.Getenv("RAGDESK_POWER_STATE_URL"); v != "" {
		c.Power.StateURL = v
	}
	if v := os.Getenv("RAGDESK_NICHE_SCOPE"); v != "" {
		c.Chat.DefaultNicheScope = v
	}
	if v := os.Getenv("RAGDESK_THEME"); v != "" {
		c.UI.Theme = v
	}
}

// =============================================================================
// GLOBAL CONFIG
// =============================================================================

var (
	globalConfig *Config
	globalMu     sync.RWMutex
)

// Global returns the process-wide config, loading it on first use.
func Global() *Config {
	globalMu.RLock()
	if globalConfig != nil {
		defer globalMu.RUnlock()
		return globalConfig
	}
	globalMu.RUnlock()

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			cfg = Default()
		}
		globalConfig = cfg
	}
	return globalConfig
}

// SetGlobal replaces the process-wide config (used by the reload watcher).
func SetGlobal(cfg *Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting clears the global config so tests start clean.
func ResetGlobalForTesting() {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalConfig = nil
}
