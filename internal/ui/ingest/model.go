// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ingest

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ragdesk-tui/internal/backend"
	"github.com/jeranaias/ragdesk-tui/internal/model"
	"github.com/jeranaias/ragdesk-tui/internal/ui/components"
	"github.com/jeranaias/ragdesk-tui/internal/ui/styles"
)

// =============================================================================
// DEPENDENCIES
// =============================================================================

// Backend is the slice of the HTTP client the ingest screen depends on.
type Backend interface {
	ListNiches(ctx context.Context) ([]model.Niche, error)
	AddNiche(ctx context.Context, name string) (model.Niche, error)
	DeleteNiche(ctx context.Context, value string) error
	SyncDocuments(ctx context.Context) ([]string, error)
	ProcessURLs(ctx context.Context, niche string, urls []string) ([]backend.IngestResult, error)
	ExtractPDFs(ctx context.Context, niche, url string) ([]backend.IngestResult, int, error)
	ProcessYouTube(ctx context.Context, niche, url string) ([]backend.IngestResult, error)
}

// NichePrefs is the durable cell remembering the ingest target niche.
type NichePrefs interface {
	IngestNiche() (string, error)
	SetIngestNiche(value string) error
}

// =============================================================================
// MODES
// =============================================================================

// Mode selects which ingestion operation the form drives.
type Mode int

const (
	ModeSync Mode = iota
	ModeURLs
	ModePDFs
	ModeYouTube
)

// modeLabels drive the mode selector, in display order.
var modeLabels = []string{"Sync documents", "Ingest URLs", "Extract PDFs", "YouTube"}

// Label returns the mode's display name.
func (m Mode) Label() string {
	return modeLabels[m]
}

// =============================================================================
// MESSAGES
// =============================================================================

// NichesLoadedMsg delivers the niche directory.
type NichesLoadedMsg struct {
	Niches []model.Niche
	Err    error
}

// NicheAddedMsg confirms a new niche.
type NicheAddedMsg struct {
	Niche model.Niche
	Err   error
}

// NicheDeletedMsg confirms a niche deletion.
type NicheDeletedMsg struct {
	Value string
	Err   error
}

// SyncDoneMsg delivers the document sync log.
type SyncDoneMsg struct {
	Log []string
	Err error
}

// IngestDoneMsg delivers per-source results for URL, PDF, and YouTube runs.
// PDFCount is only set for PDF extraction.
type IngestDoneMsg struct {
	Results  []backend.IngestResult
	PDFCount int
	Err      error
}

// =============================================================================
// FOCUS
// =============================================================================

type focusArea int

const (
	focusForm focusArea = iota
	focusNicheList
	focusNewNiche
)

// =============================================================================
// INGEST MODEL
// =============================================================================

// Model is the Bubble Tea model for the ingest screen.
type Model struct {
	backend Backend
	prefs   NichePrefs
	theme   *styles.Theme

	width  int
	height int

	// Form state
	mode     Mode
	focus    focusArea
	input    textarea.Model  // multi-URL input for ModeURLs
	urlInput textinput.Model // single-URL input for ModePDFs / ModeYouTube

	// Niche directory and target
	dir         []model.Niche
	nicheCursor int
	target      string // selected niche value, "" until picked
	newNiche    textinput.Model

	// Run state
	running bool
	spinner components.Spinner
	results []backend.IngestResult
	log     []string
	banner  components.Banner
	confirm components.Confirm
	// confirmValue is the niche pending delete confirmation.
	confirmValue string
}

// New creates the ingest screen model. The remembered target niche is
// restored from prefs; a read failure just means no preselection.
func New(b Backend, prefs NichePrefs, theme *styles.Theme) Model {
	input := textarea.New()
	input.Placeholder = "One or more URLs, separated by spaces, commas, or newlines"
	input.ShowLineNumbers = false
	input.SetHeight(4)

	urlInput := textinput.New()
	urlInput.Placeholder = "https://..."
	urlInput.CharLimit = 2048

	newNiche := textinput.New()
	newNiche.Placeholder = "New niche name"
	newNiche.CharLimit = 64

	m := Model{
		backend:  b,
		prefs:    prefs,
		theme:    theme,
		input:    input,
		urlInput: urlInput,
		newNiche: newNiche,
		spinner:  components.NewSpinner(),
	}
	if v, err := prefs.IngestNiche(); err == nil {
		m.target = v
	}
	return m
}

// Init loads the niche directory.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadNiches(), m.spinner.Tick())
}

// SetSize resizes the screen.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.SetWidth(width - 6)
	m.urlInput.Width = width - 10
}

// Busy reports whether an ingestion run is in flight.
func (m Model) Busy() bool {
	return m.running
}

// =============================================================================
// COMMANDS
// =============================================================================

func (m Model) loadNiches() tea.Cmd {
	return func() tea.Msg {
		dir, err := m.backend.ListNiches(context.Background())
		return NichesLoadedMsg{Niches: dir, Err: err}
	}
}

func (m Model) addNiche(name string) tea.Cmd {
	return func() tea.Msg {
		n, err := m.backend.AddNiche(context.Background(), name)
		return NicheAddedMsg{Niche: n, Err: err}
	}
}

func (m Model) deleteNiche(value string) tea.Cmd {
	return func() tea.Msg {
		err := m.backend.DeleteNiche(context.Background(), value)
		return NicheDeletedMsg{Value: value, Err: err}
	}
}

func (m Model) runSync() tea.Cmd {
	return func() tea.Msg {
		log, err := m.backend.SyncDocuments(context.Background())
		return SyncDoneMsg{Log: log, Err: err}
	}
}

func (m Model) runURLs(niche string, urls []string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.backend.ProcessURLs(context.Background(), niche, urls)
		return IngestDoneMsg{Results: res, Err: err}
	}
}

func (m Model) runPDFs(niche, url string) tea.Cmd {
	return func() tea.Msg {
		res, count, err := m.backend.ExtractPDFs(context.Background(), niche, url)
		return IngestDoneMsg{Results: res, PDFCount: count, Err: err}
	}
}

func (m Model) runYouTube(niche, url string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.backend.ProcessYouTube(context.Background(), niche, url)
		return IngestDoneMsg{Results: res, Err: err}
	}
}

// =============================================================================
// URL SPLITTING
// =============================================================================

// SplitURLs tokenizes pasted input on whitespace, commas, and newlines,
// dropping empty tokens.
func SplitURLs(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == ','
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
