package table

import (
	"errors"
	"sort"
)

// CellRef identifies a cell in a Grid by row and index within the row.
type CellRef struct {
	Row   int
	Index int
}

// NoCell marks an empty slot in Dense.Owner.
var NoCell = CellRef{Row: -1, Index: -1}

// Point is a dense (row, col) position.
type Point struct {
	Row int
	Col int
}

// Dense is the occupancy map of a grid.
type Dense struct {
	Rows int
	Cols int
	// Owner[r][c] is the cell covering slot (r, c), or NoCell.
	Owner [][]CellRef
	// Origins[r][i] is the top-left slot of grid cell g[r][i].
	Origins [][]Point
}

// MaxSlots caps the dense area Check accepts.
const MaxSlots = 1 << 16

// ErrTooLarge is returned by Check for grids whose dense form exceeds
// MaxSlots.
var ErrTooLarge = errors.New("table: grid too large")

// Layout places every cell of g at the next free column of its row and
// records which slots it covers. Slots already claimed by an earlier cell
// are never reassigned, so overlapping spans in malformed tables resolve to
// the first claimant.
//
// Spans are read through MaxSpan but the area is not bounded; run Check on
// grids from untrusted input first.
func Layout(g Grid) Dense {
	pl, _ := place(g, -1)
	d := Dense{Rows: pl.rows, Cols: pl.cols, Origins: pl.origins}
	d.Owner = make([][]CellRef, d.Rows)
	for r := range d.Owner {
		d.Owner[r] = make([]CellRef, d.Cols)
		for c := range d.Owner[r] {
			d.Owner[r][c] = NoCell
		}
	}
	for p, ref := range pl.claimed {
		d.Owner[p.Row][p.Col] = ref
	}
	return d
}

// Check reports ErrTooLarge when the dense form of g would cover more than
// MaxSlots slots. It stops as soon as the limit is passed, so its cost is
// bounded for any input.
func Check(g Grid) error {
	if g.CellCount() > MaxSlots {
		return ErrTooLarge
	}
	pl, ok := place(g, MaxSlots)
	if !ok || pl.rows*pl.cols > MaxSlots {
		return ErrTooLarge
	}
	return nil
}

type placement struct {
	claimed    map[Point]CellRef
	origins    [][]Point
	rows, cols int
}

// place assigns slots to cells. With limit >= 0 it gives up, returning
// false, once more than limit slots have been visited.
func place(g Grid, limit int) (placement, bool) {
	pl := placement{
		claimed: map[Point]CellRef{},
		origins: make([][]Point, len(g)),
		rows:    len(g),
	}
	visited := 0
	for r, row := range g {
		col := 0
		pl.origins[r] = make([]Point, len(row))
		for i, c := range row {
			for {
				if _, taken := pl.claimed[Point{r, col}]; !taken {
					break
				}
				col++
			}
			pl.origins[r][i] = Point{r, col}
			ref := CellRef{Row: r, Index: i}
			for dy := 0; dy < c.rows(); dy++ {
				for dx := 0; dx < c.cols(); dx++ {
					if visited++; limit >= 0 && visited > limit {
						return pl, false
					}
					p := Point{r + dy, col + dx}
					if _, taken := pl.claimed[p]; !taken {
						pl.claimed[p] = ref
						pl.rows = max(pl.rows, p.Row+1)
						pl.cols = max(pl.cols, p.Col+1)
					}
				}
			}
			col += c.cols()
		}
	}
	return pl, true
}

// At returns the owner of slot (r, c). ok is false outside the map or on an
// empty slot.
func (d Dense) At(r, c int) (CellRef, bool) {
	if r < 0 || r >= d.Rows || c < 0 || c >= d.Cols {
		return NoCell, false
	}
	ref := d.Owner[r][c]
	return ref, ref != NoCell
}

// Origin returns the top-left slot of the referenced cell.
func (d Dense) Origin(ref CellRef) Point {
	return d.Origins[ref.Row][ref.Index]
}

// placed is a cell pinned to a dense origin, used to rebuild a grid.
type placed struct {
	at   Point
	cell Cell
}

// rebuild turns placed cells back into rows, ordered by column within each
// row. The result has at least minRows rows.
func rebuild(cells []placed, minRows int) Grid {
	rows := minRows
	for _, p := range cells {
		if p.at.Row+1 > rows {
			rows = p.at.Row + 1
		}
	}
	sort.SliceStable(cells, func(i, j int) bool {
		if cells[i].at.Row != cells[j].at.Row {
			return cells[i].at.Row < cells[j].at.Row
		}
		return cells[i].at.Col < cells[j].at.Col
	})
	out := make(Grid, rows)
	for r := range out {
		out[r] = []Cell{}
	}
	for _, p := range cells {
		out[p.at.Row] = append(out[p.at.Row], p.cell)
	}
	return out
}

// rect is an inclusive dense rectangle.
type rect struct {
	r0, c0, r1, c1 int
}

func normRect(d Dense, r0, c0, r1, c1 int) (rect, bool) {
	if d.Rows == 0 || d.Cols == 0 {
		return rect{}, false
	}
	if r0 > r1 {
		r0, r1 = r1, r0
	}
	if c0 > c1 {
		c0, c1 = c1, c0
	}
	return rect{
		r0: clampInt(r0, 0, d.Rows-1),
		c0: clampInt(c0, 0, d.Cols-1),
		r1: clampInt(r1, 0, d.Rows-1),
		c1: clampInt(c1, 0, d.Cols-1),
	}, true
}

func (b rect) has(p Point) bool {
	return b.r0 <= p.Row && p.Row <= b.r1 && b.c0 <= p.Col && p.Col <= b.c1
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
