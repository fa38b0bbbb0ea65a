package editor

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/iw2rmb/smedit/toggle"
)

// KeyMap defines the editor key bindings.
//
// Bindings must be portable across terminals (ctrl/alt fallbacks).
type KeyMap struct {
	Left, Right, Up, Down                     key.Binding
	ShiftLeft, ShiftRight, ShiftUp, ShiftDown key.Binding
	WordLeft, WordRight                       key.Binding
	Home, End                                 key.Binding
	ShiftHome, ShiftEnd                       key.Binding
	DocStart, DocEnd                          key.Binding

	Backspace, Delete key.Binding
	Enter             key.Binding

	Undo, Redo       key.Binding
	Copy, Cut, Paste key.Binding

	// Formatting toggles.
	Bold, Italic, Underline, Strikethrough key.Binding
	Superscript, Subscript                 key.Binding
	Header1, Header2, Header3              key.Binding
	Quote, Fold                            key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),

		ShiftLeft:  key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("shift+←", "select left")),
		ShiftRight: key.NewBinding(key.WithKeys("shift+right"), key.WithHelp("shift+→", "select right")),
		ShiftUp:    key.NewBinding(key.WithKeys("shift+up"), key.WithHelp("shift+↑", "select up")),
		ShiftDown:  key.NewBinding(key.WithKeys("shift+down"), key.WithHelp("shift+↓", "select down")),

		// Portable word movement: terminals vary between alt+arrows and ctrl+arrows.
		WordLeft:  key.NewBinding(key.WithKeys("alt+left", "ctrl+left"), key.WithHelp("alt/ctrl+←", "word left")),
		WordRight: key.NewBinding(key.WithKeys("alt+right", "ctrl+right"), key.WithHelp("alt/ctrl+→", "word right")),

		Home:      key.NewBinding(key.WithKeys("home", "ctrl+a"), key.WithHelp("home", "line start")),
		End:       key.NewBinding(key.WithKeys("end", "ctrl+e"), key.WithHelp("end", "line end")),
		ShiftHome: key.NewBinding(key.WithKeys("shift+home"), key.WithHelp("shift+home", "select to line start")),
		ShiftEnd:  key.NewBinding(key.WithKeys("shift+end"), key.WithHelp("shift+end", "select to line end")),
		DocStart:  key.NewBinding(key.WithKeys("ctrl+home"), key.WithHelp("ctrl+home", "document start")),
		DocEnd:    key.NewBinding(key.WithKeys("ctrl+end"), key.WithHelp("ctrl+end", "document end")),

		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h"), key.WithHelp("backspace", "delete left")),
		Delete:    key.NewBinding(key.WithKeys("delete"), key.WithHelp("del", "delete right")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "newline")),

		Undo: key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "undo")),
		Redo: key.NewBinding(key.WithKeys("ctrl+y", "ctrl+shift+z"), key.WithHelp("ctrl+y", "redo")),

		Copy:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "copy")),
		Cut:   key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "cut")),
		Paste: key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),

		Bold:          key.NewBinding(key.WithKeys("alt+b"), key.WithHelp("alt+b", "bold")),
		Italic:        key.NewBinding(key.WithKeys("alt+i"), key.WithHelp("alt+i", "italic")),
		Underline:     key.NewBinding(key.WithKeys("alt+u"), key.WithHelp("alt+u", "underline")),
		Strikethrough: key.NewBinding(key.WithKeys("alt+s"), key.WithHelp("alt+s", "strikethrough")),
		Superscript:   key.NewBinding(key.WithKeys("alt+^", "alt+p"), key.WithHelp("alt+^", "superscript")),
		Subscript:     key.NewBinding(key.WithKeys("alt+,"), key.WithHelp("alt+,", "subscript")),
		Header1:       key.NewBinding(key.WithKeys("alt+1"), key.WithHelp("alt+1", "header 1")),
		Header2:       key.NewBinding(key.WithKeys("alt+2"), key.WithHelp("alt+2", "header 2")),
		Header3:       key.NewBinding(key.WithKeys("alt+3"), key.WithHelp("alt+3", "header 3")),
		Quote:         key.NewBinding(key.WithKeys("alt+q"), key.WithHelp("alt+q", "quote")),
		Fold:          key.NewBinding(key.WithKeys("alt+f"), key.WithHelp("alt+f", "fold")),
	}
}

type toolbarBinding struct {
	binding key.Binding
	action  toggle.Action
}

func (km KeyMap) toolbar() []toolbarBinding {
	return []toolbarBinding{
		{km.Bold, toggle.Bold},
		{km.Italic, toggle.Italic},
		{km.Underline, toggle.Underline},
		{km.Strikethrough, toggle.Strikethrough},
		{km.Superscript, toggle.Superscript},
		{km.Subscript, toggle.Subscript},
		{km.Header1, toggle.Header(1)},
		{km.Header2, toggle.Header(2)},
		{km.Header3, toggle.Header(3)},
		{km.Quote, toggle.BlockQuote},
		{km.Fold, toggle.Fold},
	}
}
