package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/smedit/editor"
	"github.com/iw2rmb/smedit/internal/config"
	"github.com/iw2rmb/smedit/session"
)

// app hosts one editor per open file. Sessions live in the registry keyed
// by path.
type app struct {
	reg     *session.Registry
	log     *slog.Logger
	paths   []string
	editors map[string]editor.Model
	saved   map[string]string
	cur     int

	width, height int
	notice        string
}

func newApp(reg *session.Registry, cfg config.Config, log *slog.Logger, paths []string) (*app, error) {
	theme, ok := editor.ThemeNamed(string(cfg.Theme), nil)
	if !ok {
		return nil, fmt.Errorf("unknown theme %q", cfg.Theme)
	}

	a := &app{
		reg:     reg,
		log:     log,
		editors: make(map[string]editor.Model),
		saved:   make(map[string]string),
	}
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("open %s: %w", p, err)
		}
		s, err := reg.Open(p, string(data))
		if err != nil {
			return nil, err
		}
		a.paths = append(a.paths, p)
		a.saved[p] = string(data)
		a.editors[p] = editor.New(editor.Config{
			Session:      s,
			Context:      context.Background(),
			Theme:        theme,
			ShowLineNums: true,
			ShowStatus:   true,
		})
		log.Info("opened", "path", p, "bytes", len(data))
	}
	return a, nil
}

func (a *app) Init() tea.Cmd { return nil }

func (a *app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		for p, ed := range a.editors {
			a.editors[p] = ed.SetSize(a.width, a.height-1)
		}
		return a, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+q":
			return a, tea.Quit
		case "ctrl+s":
			a.save()
			return a, nil
		case "ctrl+n":
			a.cycle(1)
			return a, nil
		case "ctrl+p":
			a.cycle(-1)
			return a, nil
		}
	}

	p := a.paths[a.cur]
	ed, cmd := a.editors[p].Update(msg)
	a.editors[p] = ed
	return a, cmd
}

func (a *app) View() string {
	return a.title() + "\n" + a.editors[a.paths[a.cur]].View()
}

func (a *app) title() string {
	p := a.paths[a.cur]
	t := fmt.Sprintf("[%d/%d] %s", a.cur+1, len(a.paths), p)
	if a.dirty(p) {
		t += " *"
	}
	if a.notice != "" {
		t += "  " + a.notice
	}
	return t
}

func (a *app) dirty(path string) bool {
	return a.editors[path].Text() != a.saved[path]
}

func (a *app) cycle(step int) {
	ids := a.reg.IDs()
	if len(ids) < 2 {
		return
	}
	cur := a.paths[a.cur]
	for i, id := range ids {
		if id == cur {
			next := ids[(i+step+len(ids))%len(ids)]
			for j, p := range a.paths {
				if p == next {
					a.cur = j
				}
			}
			break
		}
	}
	a.notice = ""
}

func (a *app) save() {
	p := a.paths[a.cur]
	s, err := a.reg.Get(p)
	if err != nil {
		a.notice = err.Error()
		return
	}
	text := s.Text()
	if err := os.WriteFile(p, []byte(text), 0o644); err != nil {
		a.log.Error("save failed", "path", p, "error", err)
		a.notice = "save failed: " + err.Error()
		return
	}
	a.saved[p] = text
	a.notice = "saved"
	a.log.Info("saved", "path", p, "bytes", len(text))
}
