package editor

import (
	"context"

	"github.com/iw2rmb/smedit/session"
)

// Config configures the editor Model. Zero values select defaults.
type Config struct {
	// Session hosts the document. When nil, New opens a session over Text
	// without an engine, so nothing is highlighted.
	Session *session.Session
	Text    string
	// Forwarded to session.Options when New opens the session.
	HistoryLimit int

	// Context bounds engine calls. Defaults to context.Background().
	Context context.Context

	KeyMap KeyMap
	Theme  Theme

	ShowLineNums bool
	ShowStatus   bool
	ReadOnly     bool
	TabWidth     int // default 4

	Clipboard Clipboard
}

func (c Config) withDefaults() Config {
	if c.Context == nil {
		c.Context = context.Background()
	}
	if len(c.KeyMap.Left.Keys()) == 0 {
		c.KeyMap = DefaultKeyMap()
	}
	if c.Theme.Tags == nil {
		c.Theme = LightTheme(nil)
	}
	if c.TabWidth <= 0 {
		c.TabWidth = 4
	}
	return c
}
