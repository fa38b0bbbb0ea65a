package editor

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	graphemeutil "github.com/iw2rmb/smedit/internal/grapheme"
	"github.com/iw2rmb/smedit/spantree"
)

// statusLine lists the node types active at the selection and the cursor
// position. The left part is truncated to keep the position visible.
func (m Model) statusLine() string {
	th := m.cfg.Theme

	right := m.position()
	left, leftStyle := m.activeLabel(), th.StatusActive
	if m.engineErr != nil {
		left, leftStyle = "engine: "+m.engineErr.Error(), th.StatusError
	}

	rw := runewidth.StringWidth(right)
	if m.width <= rw {
		return renderCells(th.Status, runewidth.Truncate(right, max(m.width, 0), ""))
	}
	avail := m.width - rw - 1
	left = runewidth.Truncate(left, avail, "…")
	gap := m.width - runewidth.StringWidth(left) - rw

	return renderCells(leftStyle, left) + renderCells(th.Status, strings.Repeat(" ", gap)+right)
}

func (m Model) activeLabel() string {
	parts := make([]string, 0, len(m.active))
	for _, t := range m.active {
		parts = append(parts, string(t))
	}
	return strings.Join(parts, " ")
}

// position reports the cursor as 1-based line and grapheme column.
func (m Model) position() string {
	col := 0
	if m.cursor.Row < len(m.lines) {
		src := spantree.NewSource(m.lines[m.cursor.Row])
		col = graphemeutil.Count(src.Slice(0, m.cursor.Col))
	}
	return fmt.Sprintf("Ln %d, Col %d", m.cursor.Row+1, col+1)
}
