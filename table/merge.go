package table

// Merge joins the dense rectangle (r0,c0)-(r1,c1) into one cell holding the
// top-left cell's content.
//
// A cell belongs to the merge when its origin lies inside the rectangle. The
// box grows to cover the full extent of every member, and cells whose origin
// falls into the grown box join too. If no cell originates at the box's
// top-left slot, or a cell originating outside the box covers a slot inside
// it, g is returned unchanged. Boxes wider or taller than MaxSpan are refused
// the same way.
func Merge(g Grid, r0, c0, r1, c1 int) Grid {
	d := Layout(g)
	box, ok := normRect(d, r0, c0, r1, c1)
	if !ok {
		return g.Clone()
	}

	members := map[CellRef]bool{}
	for grown := true; grown; {
		grown = false
		for r, row := range g {
			for i, c := range row {
				ref := CellRef{Row: r, Index: i}
				o := d.Origin(ref)
				if members[ref] || !box.has(o) {
					continue
				}
				members[ref] = true
				if end := o.Row + c.rows() - 1; end > box.r1 {
					box.r1 = minInt(end, d.Rows-1)
					grown = true
				}
				if end := o.Col + c.cols() - 1; end > box.c1 {
					box.c1 = minInt(end, d.Cols-1)
					grown = true
				}
			}
		}
	}

	if box.c1-box.c0+1 > MaxSpan || box.r1-box.r0+1 > MaxSpan {
		return g.Clone()
	}
	top, ok := d.At(box.r0, box.c0)
	if !ok || d.Origin(top) != (Point{box.r0, box.c0}) {
		return g.Clone()
	}
	for r := box.r0; r <= box.r1; r++ {
		for c := box.c0; c <= box.c1; c++ {
			if ref, ok := d.At(r, c); ok && !members[ref] {
				return g.Clone()
			}
		}
	}

	merged := g[top.Row][top.Index]
	merged.Colspan = box.c1 - box.c0 + 1
	merged.Rowspan = box.r1 - box.r0 + 1

	cells := []placed{{at: Point{box.r0, box.c0}, cell: merged}}
	for r, row := range g {
		for i, c := range row {
			ref := CellRef{Row: r, Index: i}
			if members[ref] {
				continue
			}
			cells = append(cells, placed{at: d.Origin(ref), cell: c})
		}
	}
	return rebuild(cells, len(g))
}

// Split expands every merged cell whose origin lies inside the dense
// rectangle (r0,c0)-(r1,c1) into 1×1 cells. Content stays at the origin
// slot; the new cells are empty.
func Split(g Grid, r0, c0, r1, c1 int) Grid {
	d := Layout(g)
	box, ok := normRect(d, r0, c0, r1, c1)
	if !ok {
		return g.Clone()
	}

	var cells []placed
	for r, row := range g {
		for i, c := range row {
			ref := CellRef{Row: r, Index: i}
			o := d.Origin(ref)
			if !c.IsMerged() || !box.has(o) {
				cells = append(cells, placed{at: o, cell: c})
				continue
			}
			for dy := 0; dy < c.rows(); dy++ {
				for dx := 0; dx < c.cols(); dx++ {
					p := Point{o.Row + dy, o.Col + dx}
					if owner, ok := d.At(p.Row, p.Col); !ok || owner != ref {
						continue
					}
					piece := NewCell("")
					if dy == 0 && dx == 0 {
						piece.Content = c.Content
					}
					cells = append(cells, placed{at: p, cell: piece})
				}
			}
		}
	}
	return rebuild(cells, len(g))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
