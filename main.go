// ragdesk TUI - a terminal client for the ragdesk RAG backend.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/jeranaias/ragdesk-tui/internal/audio"
	"github.com/jeranaias/ragdesk-tui/internal/backend"
	"github.com/jeranaias/ragdesk-tui/internal/config"
	"github.com/jeranaias/ragdesk-tui/internal/prefs"
	"github.com/jeranaias/ragdesk-tui/internal/session"
	"github.com/jeranaias/ragdesk-tui/internal/ui"
	"github.com/jeranaias/ragdesk-tui/internal/ui/automate"
	"github.com/jeranaias/ragdesk-tui/internal/ui/chat"
	"github.com/jeranaias/ragdesk-tui/internal/ui/ingest"
	"github.com/jeranaias/ragdesk-tui/internal/ui/power"
	"github.com/jeranaias/ragdesk-tui/internal/ui/sounds"
	"github.com/jeranaias/ragdesk-tui/internal/ui/styles"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (default: ~/.ragdesk/config.toml)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("ragdesk %s (%s, built %s)\n", Version, GitCommit, BuildDate)
		return
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "ragdesk needs an interactive terminal")
		os.Exit(1)
	}

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "ragdesk: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.ApplyEnvOverrides()
	config.SetGlobal(cfg)

	store, err := prefs.OpenDefault()
	if err != nil {
		return fmt.Errorf("open preferences: %w", err)
	}
	defer store.Close()

	client := backend.NewClientWithConfig(&backend.ClientConfig{
		BaseURL:      cfg.Backend.BaseURL,
		Timeout:      cfg.Timeout(),
		QueryTimeout: cfg.QueryTimeout(),
	})

	theme := styles.NewTheme(cfg.UI.Theme)
	sess := session.NewManager(client, store, cfg.Chat.GreetName)
	mixer := audio.NewMixer(audio.NopOutput{}, soundList(cfg))
	defer mixer.Close()

	silence := audio.SilenceConfig{
		Threshold: cfg.Voice.SilenceThreshold,
		Duration:  cfg.SilenceDuration(),
	}

	app := ui.NewApp(theme,
		chat.New(sess, client, theme, cfg.SelectAllNichesByDefault()),
		ingest.New(client, store, theme),
		automate.New(client, nil, silence, theme),
		power.New(powerClient(cfg), cfg.PowerPollInterval(), theme),
		sounds.New(mixer, theme),
	)

	program := tea.NewProgram(app, tea.WithAltScreen())

	watcher := watchConfig(configPath, program)
	if watcher != nil {
		defer watcher.Close()
	}

	_, err = program.Run()
	return err
}

// loadConfig loads either the explicit path or the default locations.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

// watchConfig hot-reloads the config file into the running program.
// A watcher that cannot start is not fatal; edits just need a restart.
func watchConfig(explicitPath string, program *tea.Program) *config.Watcher {
	path := explicitPath
	if path == "" {
		p, err := config.ConfigPathTOML()
		if err != nil {
			return nil
		}
		path = p
	}

	w, err := config.NewWatcher(path, func(cfg *config.Config) {
		config.SetGlobal(cfg)
		program.Send(ui.ConfigReloadedMsg{Config: cfg})
	})
	if err != nil {
		return nil
	}
	if err := w.Watch(); err != nil {
		w.Close()
		return nil
	}
	return w
}

// powerClient builds the power panel client from the configured endpoints.
func powerClient(cfg *config.Config) *backend.PowerClient {
	return backend.NewPowerClient(cfg.Power.StatusURL, cfg.Power.StateURL, 10*time.Second)
}

// soundList converts the configured sound entries for the mixer.
func soundList(cfg *config.Config) []audio.Sound {
	out := make([]audio.Sound, 0, len(cfg.Sounds))
	for _, s := range cfg.Sounds {
		out = append(out, audio.Sound{Name: s.Name, File: s.File})
	}
	return out
}
