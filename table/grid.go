// Package table converts SevenMark table markup to an editable grid and back,
// and implements the merge/split/undo editing model of the table editor.
//
// Grid is the sparse form as written in markup: rows of cells, each cell
// possibly spanning several columns and rows. Layout computes the dense form
// where every (row, col) slot has an owner. All grid functions return new
// grids and never modify their input.
package table

// MaxSpan is the largest colspan or rowspan a cell can have. Markup values
// above it are ignored and grid values above it are read as MaxSpan.
const MaxSpan = 1000

// Cell is one table cell. Colspan and Rowspan are at least 1 in well-formed
// grids; smaller values are read as 1.
type Cell struct {
	Content string `json:"content"`
	Colspan int    `json:"colspan"`
	Rowspan int    `json:"rowspan"`
}

// NewCell returns a 1×1 cell.
func NewCell(content string) Cell {
	return Cell{Content: content, Colspan: 1, Rowspan: 1}
}

func (c Cell) cols() int { return clampInt(c.Colspan, 1, MaxSpan) }

func (c Cell) rows() int { return clampInt(c.Rowspan, 1, MaxSpan) }

// IsMerged reports whether the cell spans more than one slot.
func (c Cell) IsMerged() bool { return c.cols() > 1 || c.rows() > 1 }

// Grid is a table as rows of cells.
type Grid [][]Cell

// Clone returns a deep copy of g.
func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	out := make(Grid, len(g))
	for i, row := range g {
		out[i] = append([]Cell(nil), row...)
	}
	return out
}

// Equal reports whether g and o have the same rows and cells.
func (g Grid) Equal(o Grid) bool {
	if len(g) != len(o) {
		return false
	}
	for i := range g {
		if len(g[i]) != len(o[i]) {
			return false
		}
		for j := range g[i] {
			if g[i][j] != o[i][j] {
				return false
			}
		}
	}
	return true
}

// CellCount returns the number of cells across all rows.
func (g Grid) CellCount() int {
	n := 0
	for _, row := range g {
		n += len(row)
	}
	return n
}

// FromRows builds a grid of 1×1 cells from already decoded rows, such as an
// imported CSV sheet.
func FromRows(rows [][]string) Grid {
	out := make(Grid, len(rows))
	for i, row := range rows {
		cells := make([]Cell, len(row))
		for j, s := range row {
			cells[j] = NewCell(s)
		}
		out[i] = cells
	}
	return out
}
