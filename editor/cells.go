package editor

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	graphemeutil "github.com/iw2rmb/smedit/internal/grapheme"
	"github.com/iw2rmb/smedit/spantree"
)

// cell is one grapheme of a line placed on the terminal grid.
type cell struct {
	Text  string
	Off   int // UTF-16 offset within the line
	Col   int // first terminal cell
	Width int
}

func layoutLine(line string, tabWidth int) []cell {
	clusters := graphemeutil.Split(line)
	out := make([]cell, 0, len(clusters))
	off, col := 0, 0
	for _, c := range clusters {
		w := graphemeCellWidth(c, col, tabWidth)
		out = append(out, cell{Text: c, Off: off, Col: col, Width: w})
		off += spantree.Len16(c)
		col += w
	}
	return out
}

// cellsBefore returns the terminal column of the UTF-16 column col16.
func cellsBefore(line string, col16, tabWidth int) int {
	col := 0
	for _, c := range layoutLine(line, tabWidth) {
		if c.Off >= col16 {
			return c.Col
		}
		col = c.Col + c.Width
	}
	return col
}

func graphemeCellWidth(text string, visualCol, tabWidth int) int {
	if text == "\t" {
		return tabAdvance(visualCol, tabWidth)
	}

	w := runewidth.StringWidth(text)
	if w < 0 {
		w = 0
	}
	if w == 0 {
		fallback := uniseg.StringWidth(text)
		if fallback > w {
			w = fallback
		}
	}
	return w
}

func tabAdvance(visualCol, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	return tabWidth - visualCol%tabWidth
}
