package buffer

import "sort"

type OffsetClampMode uint8

const (
	OffsetError OffsetClampMode = iota
	OffsetClamp
)

type ConvertPolicy struct {
	ClampMode OffsetClampMode
}

// LineCount returns the number of rows; an empty document has one.
func (b *Buffer) LineCount() int { return len(b.lines) }

// Line returns the text of row without its line break.
func (b *Buffer) Line(row int) string {
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	start, end := b.lineBounds(row)
	return b.src.Slice(start, end)
}

// lineBounds returns the offsets of row, excluding its line break.
func (b *Buffer) lineBounds(row int) (start, end int) {
	start = b.lines[row]
	if row+1 < len(b.lines) {
		return start, b.lines[row+1] - 1
	}
	return start, b.Len()
}

func (b *Buffer) rowOf(off int) int {
	return sort.SearchInts(b.lines, off+1) - 1
}

// PosFromOffset converts a UTF-16 offset into a row/col position. With
// OffsetError, out-of-range offsets and offsets inside a surrogate pair are
// rejected; with OffsetClamp they are clamped and rounded down.
func (b *Buffer) PosFromOffset(off int, p ConvertPolicy) (Pos, bool) {
	switch p.ClampMode {
	case OffsetError:
		if off < 0 || off > b.Len() || b.src.Clamp(off) != off {
			return Pos{}, false
		}
	case OffsetClamp:
		off = b.src.Clamp(off)
	default:
		return Pos{}, false
	}
	row := b.rowOf(off)
	return Pos{Row: row, Col: off - b.lines[row]}, true
}

// OffsetFromPos converts a row/col position into a UTF-16 offset. With
// OffsetError, positions outside the document are rejected; with OffsetClamp
// the row and then the col are clamped.
func (b *Buffer) OffsetFromPos(pos Pos, p ConvertPolicy) (int, bool) {
	switch p.ClampMode {
	case OffsetError:
		if pos.Row < 0 || pos.Row >= len(b.lines) {
			return 0, false
		}
		start, end := b.lineBounds(pos.Row)
		off := start + pos.Col
		if pos.Col < 0 || off > end || b.src.Clamp(off) != off {
			return 0, false
		}
		return off, true
	case OffsetClamp:
		row := clampInt(pos.Row, 0, len(b.lines)-1)
		start, end := b.lineBounds(row)
		return b.src.Clamp(start + clampInt(pos.Col, 0, end-start)), true
	default:
		return 0, false
	}
}

// CursorPos returns the cursor as a row/col position.
func (b *Buffer) CursorPos() Pos {
	p, _ := b.PosFromOffset(b.sel.Head, ConvertPolicy{ClampMode: OffsetClamp})
	return p
}
