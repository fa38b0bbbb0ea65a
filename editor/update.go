package editor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/smedit/buffer"
)

func (m Model) updateKey(msg tea.KeyMsg) Model {
	if !m.focused {
		return m
	}

	// Paste events insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		m.edit(func(b *buffer.Buffer) { b.InsertText(string(msg.Runes)) })
		return m
	}

	km := m.cfg.KeyMap
	for _, tb := range km.toolbar() {
		if key.Matches(msg, tb.binding) {
			if !m.cfg.ReadOnly {
				m.sess.Toggle(m.cfg.Context, tb.action)
			}
			return m
		}
	}

	switch {
	case key.Matches(msg, km.Left):
		m.move(buffer.MoveGrapheme, buffer.DirLeft, false)
	case key.Matches(msg, km.Right):
		m.move(buffer.MoveGrapheme, buffer.DirRight, false)
	case key.Matches(msg, km.Up):
		m.move(buffer.MoveLine, buffer.DirUp, false)
	case key.Matches(msg, km.Down):
		m.move(buffer.MoveLine, buffer.DirDown, false)

	case key.Matches(msg, km.ShiftLeft):
		m.move(buffer.MoveGrapheme, buffer.DirLeft, true)
	case key.Matches(msg, km.ShiftRight):
		m.move(buffer.MoveGrapheme, buffer.DirRight, true)
	case key.Matches(msg, km.ShiftUp):
		m.move(buffer.MoveLine, buffer.DirUp, true)
	case key.Matches(msg, km.ShiftDown):
		m.move(buffer.MoveLine, buffer.DirDown, true)

	case key.Matches(msg, km.WordLeft):
		m.move(buffer.MoveWord, buffer.DirLeft, false)
	case key.Matches(msg, km.WordRight):
		m.move(buffer.MoveWord, buffer.DirRight, false)

	case key.Matches(msg, km.Home):
		m.move(buffer.MoveLine, buffer.DirHome, false)
	case key.Matches(msg, km.End):
		m.move(buffer.MoveLine, buffer.DirEnd, false)
	case key.Matches(msg, km.ShiftHome):
		m.move(buffer.MoveLine, buffer.DirHome, true)
	case key.Matches(msg, km.ShiftEnd):
		m.move(buffer.MoveLine, buffer.DirEnd, true)
	case key.Matches(msg, km.DocStart):
		m.move(buffer.MoveDoc, buffer.DirHome, false)
	case key.Matches(msg, km.DocEnd):
		m.move(buffer.MoveDoc, buffer.DirEnd, false)

	case key.Matches(msg, km.Backspace):
		m.edit((*buffer.Buffer).DeleteBackward)
	case key.Matches(msg, km.Delete):
		m.edit((*buffer.Buffer).DeleteForward)
	case key.Matches(msg, km.Enter):
		m.edit((*buffer.Buffer).InsertNewline)

	case key.Matches(msg, km.Undo):
		if !m.cfg.ReadOnly {
			_ = m.sess.Undo()
		}
	case key.Matches(msg, km.Redo):
		if !m.cfg.ReadOnly {
			_ = m.sess.Redo()
		}

	case key.Matches(msg, km.Copy):
		m.copySelection()
	case key.Matches(msg, km.Cut):
		m.copySelection()
		m.edit((*buffer.Buffer).DeleteSelection)
	case key.Matches(msg, km.Paste):
		m.pasteClipboard()

	default:
		if msg.Type == tea.KeyTab {
			m.edit(func(b *buffer.Buffer) { b.InsertText("\t") })
			return m
		}
		if msg.Type == tea.KeySpace {
			m.edit(func(b *buffer.Buffer) { b.InsertText(" ") })
			return m
		}
		if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt {
			m.edit(func(b *buffer.Buffer) { b.InsertText(string(msg.Runes)) })
		}
	}
	return m
}

func (m Model) edit(fn func(b *buffer.Buffer)) {
	if m.cfg.ReadOnly {
		return
	}
	m.sess.Do(fn)
}

func (m Model) move(unit buffer.MoveUnit, dir buffer.MoveDir, extend bool) {
	m.sess.Do(func(b *buffer.Buffer) {
		b.Move(buffer.Move{Unit: unit, Dir: dir, Extend: extend})
	})
}

func (m Model) copySelection() {
	if m.cfg.Clipboard == nil {
		return
	}
	var s string
	m.sess.Do(func(b *buffer.Buffer) {
		r := b.Range()
		s = b.Slice(r.Start, r.End)
	})
	if s == "" {
		return
	}
	_ = m.cfg.Clipboard.WriteText(s)
}

func (m Model) pasteClipboard() {
	if m.cfg.Clipboard == nil || m.cfg.ReadOnly {
		return
	}
	s, err := m.cfg.Clipboard.ReadText()
	if err != nil || s == "" {
		return
	}
	m.edit(func(b *buffer.Buffer) { b.InsertText(s) })
}
