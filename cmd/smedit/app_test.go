package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/smedit/internal/config"
	"github.com/iw2rmb/smedit/internal/enginetest"
	"github.com/iw2rmb/smedit/session"
)

func newTestApp(t *testing.T, files map[string]string) (*app, []string) {
	t.Helper()
	dir := t.TempDir()
	var paths []string
	for name, text := range files {
		p := filepath.Join(dir, name)
		if text != "" {
			if err := os.WriteFile(p, []byte(text), 0o644); err != nil {
				t.Fatal(err)
			}
		}
		paths = append(paths, p)
	}
	reg := session.NewRegistry(enginetest.New(), session.Options{})
	a, err := newApp(reg, config.Default(), slog.New(slog.DiscardHandler), paths)
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	return a, paths
}

func TestApp_EditAndSave(t *testing.T) {
	a, paths := newTestApp(t, map[string]string{"a.sm": "hello"})
	a.Update(tea.WindowSizeMsg{Width: 40, Height: 6})

	a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("> ")})
	if !strings.HasSuffix(strings.Split(a.View(), "\n")[0], "a.sm *") {
		t.Fatalf("title=%q, want a dirty marker", strings.Split(a.View(), "\n")[0])
	}

	a.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	data, err := os.ReadFile(paths[0])
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), "> hello"; got != want {
		t.Fatalf("saved=%q, want %q", got, want)
	}
	if a.dirty(paths[0]) {
		t.Fatalf("expected clean after save")
	}
}

func TestApp_NewFileAndCycle(t *testing.T) {
	a, _ := newTestApp(t, map[string]string{"a.sm": "one", "b.sm": ""})
	if got, want := len(a.paths), 2; got != want {
		t.Fatalf("paths=%d, want %d", got, want)
	}

	first := a.paths[a.cur]
	a.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	if a.paths[a.cur] == first {
		t.Fatalf("ctrl+n did not switch files")
	}
	a.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	if a.paths[a.cur] != first {
		t.Fatalf("ctrl+p did not return to %s", first)
	}
}

func TestApp_QuitAndDuplicatePath(t *testing.T) {
	a, paths := newTestApp(t, map[string]string{"a.sm": "x"})
	if _, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlQ}); cmd == nil {
		t.Fatalf("ctrl+q should quit")
	}

	reg := session.NewRegistry(enginetest.New(), session.Options{})
	if _, err := newApp(reg, config.Default(), slog.New(slog.DiscardHandler), []string{paths[0], paths[0]}); err == nil {
		t.Fatalf("expected an error for a path opened twice")
	}
}
