package buffer

import (
	"sort"
	"strings"

	"github.com/iw2rmb/smedit/internal/grapheme"
	"github.com/iw2rmb/smedit/spantree"
)

type Options struct {
	HistoryLimit int // default: 1000; negative disables undo
}

// Buffer is the pure document state: text and selection.
type Buffer struct {
	src spantree.Source
	// stops are grapheme cluster boundaries, lines are row start offsets.
	// Both are in UTF-16 units.
	stops []int
	lines []int

	version     uint64
	textVersion uint64

	sel Selection

	opt  Options
	hist historyState

	lastChange    Change
	hasLastChange bool
}

func New(text string, opt Options) *Buffer {
	if opt.HistoryLimit == 0 {
		opt.HistoryLimit = 1000
	}
	b := &Buffer{opt: opt}
	b.setText(text)
	return b
}

func (b *Buffer) Text() string { return b.src.Text() }

// Len returns the document length in UTF-16 units.
func (b *Buffer) Len() int { return b.src.Len() }

// Source returns the UTF-16 index of the current text.
func (b *Buffer) Source() spantree.Source { return b.src }

// Slice returns the text in [from, to).
func (b *Buffer) Slice(from, to int) string { return b.src.Slice(from, to) }

// Version changes on every text or selection change.
func (b *Buffer) Version() uint64 { return b.version }

// TextVersion changes only when the text changes.
func (b *Buffer) TextVersion() uint64 { return b.textVersion }

// Cursor returns the selection head.
func (b *Buffer) Cursor() int { return b.sel.Head }

// Selection returns the raw anchor/head pair, preserving direction.
func (b *Buffer) Selection() Selection { return b.sel }

// Range returns the selection as a forward span.
func (b *Buffer) Range() spantree.Span { return Normalize(b.sel) }

func (b *Buffer) HasSelection() bool { return b.sel.Anchor != b.sel.Head }

func (b *Buffer) SetCursor(off int) {
	b.SetSelection(Caret(off))
}

// SetSelection clamps both ends into the document and snaps them down to
// grapheme cluster boundaries.
func (b *Buffer) SetSelection(sel Selection) {
	next := Selection{Anchor: b.snap(sel.Anchor), Head: b.snap(sel.Head)}
	if next == b.sel {
		return
	}
	b.sel = next
	b.version++
}

func (b *Buffer) ClearSelection() {
	if !b.HasSelection() {
		return
	}
	b.sel = Caret(b.sel.Head)
	b.version++
}

func (b *Buffer) setText(text string) {
	b.src = spantree.NewSource(text)

	bounds := grapheme.Boundaries(text)
	b.stops = b.stops[:0]
	for _, off := range bounds {
		b.stops = append(b.stops, b.src.Offset(off))
	}

	b.lines = append(b.lines[:0], 0)
	for i := 0; i < len(text); {
		j := strings.IndexByte(text[i:], '\n')
		if j < 0 {
			break
		}
		i += j + 1
		b.lines = append(b.lines, b.src.Offset(i))
	}
}

// clamp limits off to the document without snapping.
func (b *Buffer) clamp(off int) int { return b.src.Clamp(off) }

// snap clamps off and rounds it down to a grapheme cluster boundary.
func (b *Buffer) snap(off int) int {
	off = b.src.Clamp(off)
	i := sort.SearchInts(b.stops, off)
	if i < len(b.stops) && b.stops[i] == off {
		return off
	}
	if i == 0 {
		return 0
	}
	return b.stops[i-1]
}

// prevStop returns the cluster boundary before off.
func (b *Buffer) prevStop(off int) int {
	i := sort.SearchInts(b.stops, off)
	if i == 0 {
		return 0
	}
	return b.stops[i-1]
}

// nextStop returns the cluster boundary after off.
func (b *Buffer) nextStop(off int) int {
	i := sort.SearchInts(b.stops, off+1)
	if i >= len(b.stops) {
		return b.Len()
	}
	return b.stops[i]
}
