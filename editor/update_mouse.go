package editor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/smedit/buffer"
	"github.com/iw2rmb/smedit/spantree"
)

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)

	if !m.focused {
		return m, cmd
	}

	// Only left button interactions move the cursor or selection.
	switch msg.Action { //nolint:exhaustive
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !m.mouseInBounds(msg.X, msg.Y) {
			return m, cmd
		}
		p := m.screenToOffset(msg.X, msg.Y)
		if msg.Shift {
			anchor := m.sel.Anchor
			m.mouseAnchor = anchor
			m.sess.Select(buffer.Selection{Anchor: anchor, Head: p})
		} else {
			m.mouseAnchor = p
			m.sess.Select(buffer.Caret(p))
		}
		m.mouseDragging = true

	case tea.MouseActionMotion:
		if !m.mouseDragging {
			return m, cmd
		}
		x, y := m.clampMouseToBounds(msg.X, msg.Y)
		p := m.screenToOffset(x, y)
		m.sess.Select(buffer.Selection{Anchor: m.mouseAnchor, Head: p})

	case tea.MouseActionRelease:
		m.mouseDragging = false
	}
	return m, cmd
}

func (m Model) mouseInBounds(x, y int) bool {
	if m.viewport.Width <= 0 || m.viewport.Height <= 0 {
		return false
	}
	return x >= 0 && x < m.viewport.Width && y >= 0 && y < m.viewport.Height
}

func (m Model) clampMouseToBounds(x, y int) (int, int) {
	if m.viewport.Width > 0 {
		x = min(max(x, 0), m.viewport.Width-1)
	}
	if m.viewport.Height > 0 {
		y = min(max(y, 0), m.viewport.Height-1)
	}
	return x, y
}

// screenToOffset maps a cell inside the viewport to a document offset.
// Clicks on the gutter land at the line start; clicks past the line end
// land at the line end.
func (m Model) screenToOffset(x, y int) int {
	if len(m.lines) == 0 {
		return 0
	}
	row := min(max(m.viewport.YOffset+y, 0), len(m.lines)-1)
	x = max(x-m.gutterWidth(), 0) + m.xOffset

	line := m.lines[row]
	base := m.starts[row]
	for _, c := range layoutLine(line, m.cfg.TabWidth) {
		if x < c.Col+c.Width {
			return base + c.Off
		}
	}
	return base + spantree.Len16(line)
}
