package editor

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/smedit/buffer"
	"github.com/iw2rmb/smedit/spantree"
)

func (m *Model) renderContent() string {
	var sb strings.Builder
	for row := range m.lines {
		if row > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(m.renderGutter(row))
		sb.WriteString(m.renderLine(row))
	}
	return sb.String()
}

func (m *Model) digits() int {
	return len(strconv.Itoa(max(len(m.lines), 1)))
}

func (m *Model) gutterWidth() int {
	if !m.cfg.ShowLineNums {
		return 0
	}
	return m.digits() + 1
}

func (m *Model) contentWidth() int {
	return m.viewport.Width - m.gutterWidth()
}

func (m *Model) renderGutter(row int) string {
	if !m.cfg.ShowLineNums {
		return ""
	}
	num := fmt.Sprintf("%*d", m.digits(), row+1)
	st := m.cfg.Theme.LineNum
	if row == m.cursor.Row && m.focused {
		st = m.cfg.Theme.LineNumActive
	}
	return st.Render(num) + m.cfg.Theme.Gutter.Render(" ")
}

// renderLine paints the visible cells of one line. Cells that do not fit
// the content width, after horizontal scrolling, are dropped.
func (m *Model) renderLine(row int) string {
	th := m.cfg.Theme
	line := m.lines[row]
	base := m.starts[row]
	end := base + spantree.Len16(line)

	sel := buffer.Normalize(m.sel)
	cur := -1
	if m.focused {
		cur = m.cursorOffset()
	}

	left := m.xOffset
	right := -1
	if w := m.contentWidth(); w > 0 && m.viewport.Width > 0 {
		right = left + w
	}

	ri := sort.Search(len(m.runs), func(i int) bool { return m.runs[i].Span.End > base })

	var sb strings.Builder
	lastCol := 0
	for _, c := range layoutLine(line, m.cfg.TabWidth) {
		lastCol = c.Col + c.Width
		if c.Col < left {
			continue
		}
		if right >= 0 && c.Col+c.Width > right {
			break
		}
		off := base + c.Off
		for ri < len(m.runs) && m.runs[ri].Span.End <= off {
			ri++
		}

		st := th.Text
		if ri < len(m.runs) && m.runs[ri].Span.Start <= off {
			st = th.runStyle(m.runs[ri].Tags)
		}
		if sel.Start <= off && off < sel.End {
			st = th.Selection.Inherit(st)
		}
		if off == cur {
			st = th.Cursor.Inherit(st)
		}

		text := c.Text
		if text == "\t" {
			text = strings.Repeat(" ", c.Width)
		}
		sb.WriteString(st.Render(text))
	}

	if cur == end && lastCol >= left && (right < 0 || lastCol < right) {
		sb.WriteString(th.Cursor.Inherit(th.Text).Render(" "))
	}
	return sb.String()
}

// renderCells renders text in a single style, used by the status line.
func renderCells(st lipgloss.Style, text string) string {
	if text == "" {
		return ""
	}
	return st.Render(text)
}
