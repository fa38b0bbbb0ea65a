package buffer

import "github.com/iw2rmb/smedit/internal/grapheme"

type MoveUnit int

const (
	MoveGrapheme MoveUnit = iota
	MoveWord
	MoveLine
	MoveDoc
)

type MoveDir int

const (
	DirLeft MoveDir = iota
	DirRight
	DirUp
	DirDown
	DirHome // line start (or doc start for MoveDoc)
	DirEnd  // line end (or doc end for MoveDoc)
)

type Move struct {
	Unit   MoveUnit
	Dir    MoveDir
	Extend bool // if true, moves the head and keeps the anchor; if false collapses the selection
}

func (b *Buffer) Move(m Move) {
	prev := b.sel
	head := b.snap(b.moveCursor(prev.Head, m))

	next := Caret(head)
	if m.Extend {
		next.Anchor = prev.Anchor
	}
	if next == prev {
		return
	}
	b.sel = next
	b.version++
}

func (b *Buffer) moveCursor(off int, m Move) int {
	switch m.Unit {
	case MoveGrapheme:
		return b.moveGrapheme(off, m.Dir)
	case MoveWord:
		return b.moveWord(off, m.Dir)
	case MoveLine:
		return b.moveLine(off, m.Dir)
	case MoveDoc:
		return b.moveDoc(off, m.Dir)
	default:
		return off
	}
}

func (b *Buffer) moveGrapheme(off int, dir MoveDir) int {
	switch dir {
	case DirLeft:
		return b.prevStop(off)
	case DirRight:
		return b.nextStop(off)
	default:
		return b.moveLine(off, dir)
	}
}

func (b *Buffer) moveWord(off int, dir MoveDir) int {
	row := b.rowOf(off)
	start, end := b.lineBounds(row)

	switch dir {
	case DirLeft:
		return b.prevWordBoundary(off, start)
	case DirRight:
		return b.nextWordBoundary(off, end)
	case DirHome:
		return start
	case DirEnd:
		return end
	default:
		return off
	}
}

func (b *Buffer) moveLine(off int, dir MoveDir) int {
	row := b.rowOf(off)
	start, end := b.lineBounds(row)
	col := off - start

	switch dir {
	case DirHome:
		return start
	case DirEnd:
		return end
	case DirUp:
		if row == 0 {
			return off
		}
		o, _ := b.OffsetFromPos(Pos{Row: row - 1, Col: col}, ConvertPolicy{ClampMode: OffsetClamp})
		return o
	case DirDown:
		if row == len(b.lines)-1 {
			return off
		}
		o, _ := b.OffsetFromPos(Pos{Row: row + 1, Col: col}, ConvertPolicy{ClampMode: OffsetClamp})
		return o
	default:
		return off
	}
}

func (b *Buffer) moveDoc(off int, dir MoveDir) int {
	switch dir {
	case DirHome, DirUp:
		return 0
	case DirEnd, DirDown:
		return b.Len()
	default:
		return off
	}
}

// Word boundary rules:
// - skip whitespace, then skip non-whitespace
// - the line start/end is a hard boundary
func (b *Buffer) prevWordBoundary(off, limit int) int {
	i := off
	for i > limit && grapheme.IsSpace(b.src.Slice(b.prevStop(i), i)) {
		i = b.prevStop(i)
	}
	for i > limit && !grapheme.IsSpace(b.src.Slice(b.prevStop(i), i)) {
		i = b.prevStop(i)
	}
	return i
}

func (b *Buffer) nextWordBoundary(off, limit int) int {
	i := off
	for i < limit && grapheme.IsSpace(b.src.Slice(i, b.nextStop(i))) {
		i = b.nextStop(i)
	}
	for i < limit && !grapheme.IsSpace(b.src.Slice(i, b.nextStop(i))) {
		i = b.nextStop(i)
	}
	return i
}
