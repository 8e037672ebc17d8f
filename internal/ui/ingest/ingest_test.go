// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ingest

import (
	"context"
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/ragdesk-tui/internal/backend"
	"github.com/jeranaias/ragdesk-tui/internal/model"
	"github.com/jeranaias/ragdesk-tui/internal/ui/styles"
)

// =============================================================================
// FAKES
// =============================================================================

type fakeBackend struct {
	niches      []model.Niche
	urlsNiche   string
	urlsSeen    []string
	pdfURL      string
	youtubeURL  string
	syncCalls   int
	deletedVals []string
}

func (f *fakeBackend) ListNiches(context.Context) ([]model.Niche, error) {
	return f.niches, nil
}

func (f *fakeBackend) AddNiche(_ context.Context, name string) (model.Niche, error) {
	return model.Niche{Value: strings.ToLower(name), Label: name}, nil
}

func (f *fakeBackend) DeleteNiche(_ context.Context, value string) error {
	f.deletedVals = append(f.deletedVals, value)
	return nil
}

func (f *fakeBackend) SyncDocuments(context.Context) ([]string, error) {
	f.syncCalls++
	return []string{"Processing report.pdf", "Done"}, nil
}

func (f *fakeBackend) ProcessURLs(_ context.Context, niche string, urls []string) ([]backend.IngestResult, error) {
	f.urlsNiche = niche
	f.urlsSeen = urls
	out := make([]backend.IngestResult, len(urls))
	for i, u := range urls {
		out[i] = backend.IngestResult{URL: u, Status: "success", Characters: 100}
	}
	return out, nil
}

func (f *fakeBackend) ExtractPDFs(_ context.Context, _, url string) ([]backend.IngestResult, int, error) {
	f.pdfURL = url
	return []backend.IngestResult{{URL: url, Status: "success"}}, 3, nil
}

func (f *fakeBackend) ProcessYouTube(_ context.Context, _, url string) ([]backend.IngestResult, error) {
	f.youtubeURL = url
	return []backend.IngestResult{{URL: url, Status: "success"}}, nil
}

type fakePrefs struct{ niche string }

func (p *fakePrefs) IngestNiche() (string, error) { return p.niche, nil }
func (p *fakePrefs) SetIngestNiche(v string) error {
	p.niche = v
	return nil
}

func newTestModel(t *testing.T) (Model, *fakeBackend, *fakePrefs) {
	t.Helper()
	fb := &fakeBackend{niches: []model.Niche{
		{Value: "go", Label: "Go"},
		{Value: "rust", Label: "Rust"},
	}}
	fp := &fakePrefs{}
	m := New(fb, fp, styles.NewTheme("dark"))
	m.SetSize(100, 30)
	m, _ = m.Update(NichesLoadedMsg{Niches: fb.niches})
	return m, fb, fp
}

// =============================================================================
// URL SPLITTING TESTS
// =============================================================================

func TestSplitURLs(t *testing.T) {
	raw := "https://a.com, https://b.com\nhttps://c.com  https://d.com,"
	want := []string{"https://a.com", "https://b.com", "https://c.com", "https://d.com"}
	if got := SplitURLs(raw); !reflect.DeepEqual(got, want) {
		t.Errorf("SplitURLs = %v, want %v", got, want)
	}
}

func TestSplitURLs_Empty(t *testing.T) {
	if got := SplitURLs("  \n, ,\t"); len(got) != 0 {
		t.Errorf("SplitURLs of separators = %v, want empty", got)
	}
}

// =============================================================================
// VALIDATION TESTS
// =============================================================================

func TestRun_URLsWithoutInputWarns(t *testing.T) {
	m, fb, _ := newTestModel(t)
	m.mode = ModeURLs

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if m.Busy() {
		t.Error("empty input should not start a run")
	}
	if fb.urlsSeen != nil {
		t.Error("validation failure must not reach the backend")
	}
}

func TestRun_URLsWithoutNicheWarns(t *testing.T) {
	m, fb, _ := newTestModel(t)
	m.mode = ModeURLs
	m.input.SetValue("https://a.com")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if m.Busy() || fb.urlsSeen != nil {
		t.Error("missing niche should block the run")
	}
}

// =============================================================================
// RUN TESTS
// =============================================================================

func TestRun_Sync(t *testing.T) {
	m, fb, _ := newTestModel(t)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Busy() {
		t.Fatal("sync should mark the screen busy")
	}
	m, _ = m.Update(cmd().(SyncDoneMsg))
	if m.Busy() {
		t.Error("sync completion should clear busy")
	}
	if fb.syncCalls != 1 {
		t.Errorf("syncCalls = %d", fb.syncCalls)
	}
	if len(m.log) != 2 {
		t.Errorf("log = %v", m.log)
	}
}

func TestRun_URLs(t *testing.T) {
	m, fb, _ := newTestModel(t)
	m.mode = ModeURLs
	m.target = "go"
	m.input.SetValue("https://a.com https://b.com")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	if cmd == nil {
		t.Fatal("expected run command")
	}
	m, _ = m.Update(cmd().(IngestDoneMsg))

	if fb.urlsNiche != "go" {
		t.Errorf("niche = %q", fb.urlsNiche)
	}
	if len(fb.urlsSeen) != 2 {
		t.Errorf("urls = %v", fb.urlsSeen)
	}
	if len(m.results) != 2 {
		t.Errorf("results = %v", m.results)
	}
}

func TestRun_PDFsAndYouTube(t *testing.T) {
	m, fb, _ := newTestModel(t)
	m.mode = ModePDFs
	m.target = "go"
	m.urlInput.SetValue("https://papers.example.com")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg := cmd().(IngestDoneMsg)
	if msg.PDFCount != 3 {
		t.Errorf("PDFCount = %d", msg.PDFCount)
	}
	if fb.pdfURL != "https://papers.example.com" {
		t.Errorf("pdfURL = %q", fb.pdfURL)
	}

	m, _ = m.Update(msg)
	m.mode = ModeYouTube
	m.urlInput.SetValue("https://youtube.com/watch?v=x")
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(cmd().(IngestDoneMsg))
	if fb.youtubeURL == "" {
		t.Error("youtube run should reach the backend")
	}
}

// =============================================================================
// NICHE ADMIN TESTS
// =============================================================================

func TestNichePanel_PickPersists(t *testing.T) {
	m, _, fp := newTestModel(t)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.focus != focusNicheList {
		t.Fatal("ctrl+t should open the niche panel")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.target != "rust" {
		t.Errorf("target = %q, want rust", m.target)
	}
	if fp.niche != "rust" {
		t.Errorf("persisted niche = %q, want rust", fp.niche)
	}
}

func TestNichePanel_StaleRememberedNicheCleared(t *testing.T) {
	fb := &fakeBackend{niches: []model.Niche{{Value: "go", Label: "Go"}}}
	fp := &fakePrefs{niche: "gone"}
	m := New(fb, fp, styles.NewTheme("dark"))
	m, _ = m.Update(NichesLoadedMsg{Niches: fb.niches})
	if m.target != "" {
		t.Errorf("stale remembered niche should clear, got %q", m.target)
	}
}

func TestNichePanel_DeleteConfirms(t *testing.T) {
	m, fb, _ := newTestModel(t)
	m.target = "go"

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	if !m.confirm.Active() {
		t.Fatal("delete should confirm first")
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	m, _ = m.Update(cmd().(NicheDeletedMsg))
	if len(fb.deletedVals) != 1 || fb.deletedVals[0] != "go" {
		t.Errorf("deleted = %v", fb.deletedVals)
	}
	if m.target != "" {
		t.Error("deleting the target niche should clear the target")
	}
	if len(m.dir) != 1 {
		t.Errorf("dir = %v", m.dir)
	}
}

func TestNichePanel_Add(t *testing.T) {
	m, _, _ := newTestModel(t)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	if m.focus != focusNewNiche {
		t.Fatal("n should open the new niche input")
	}

	m.newNiche.SetValue("History")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(cmd().(NicheAddedMsg))
	if len(m.dir) != 3 {
		t.Errorf("dir = %v", m.dir)
	}
	if m.target != "history" {
		t.Errorf("new niche should become the target, got %q", m.target)
	}
}
