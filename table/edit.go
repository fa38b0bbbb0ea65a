package table

// SetContent replaces the content of the cell covering dense slot (r, c).
// Out-of-range or empty slots leave the grid unchanged.
func SetContent(g Grid, r, c int, text string) Grid {
	out := g.Clone()
	ref, ok := Layout(g).At(r, c)
	if !ok {
		return out
	}
	out[ref.Row][ref.Index].Content = text
	return out
}

// AddRow appends a row of empty cells filling every free slot below the
// current grid.
func AddRow(g Grid) Grid {
	d := Layout(g)
	out := g.Clone()
	n := d.Cols
	if len(g) < d.Rows {
		n = freeSlots(d, len(g))
	}
	if d.Cols == 0 {
		n = 1
	}
	row := make([]Cell, n)
	for i := range row {
		row[i] = NewCell("")
	}
	return append(out, row)
}

// AddColumn appends empty cells to every row so that each row is filled one
// column past the current width. Ragged rows are padded on the way.
func AddColumn(g Grid) Grid {
	d := Layout(g)
	out := g.Clone()
	for r := range out {
		n := freeSlots(d, r) + 1
		for i := 0; i < n; i++ {
			out[r] = append(out[r], NewCell(""))
		}
	}
	return out
}

func freeSlots(d Dense, r int) int {
	if r >= d.Rows {
		return d.Cols
	}
	n := 0
	for _, ref := range d.Owner[r] {
		if ref == NoCell {
			n++
		}
	}
	return n
}
