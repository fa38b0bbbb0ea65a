package buffer

import "github.com/iw2rmb/smedit/spantree"

// InsertText inserts text at the cursor, or replaces the active selection.
func (b *Buffer) InsertText(s string) {
	if s == "" {
		b.DeleteSelection()
		return
	}
	r := b.Range()
	b.Apply(TextEdit{Span: r, Text: s})
}

// InsertNewline inserts a line break at the cursor, or replaces the active
// selection.
func (b *Buffer) InsertNewline() {
	b.InsertText("\n")
}

// DeleteBackward applies backspace semantics: the selection, or the grapheme
// cluster before the cursor.
func (b *Buffer) DeleteBackward() {
	if b.HasSelection() {
		b.DeleteSelection()
		return
	}
	off := b.sel.Head
	if off == 0 {
		return
	}
	b.Apply(TextEdit{Span: spantree.Span{Start: b.prevStop(off), End: off}})
}

// DeleteForward applies delete-key semantics: the selection, or the grapheme
// cluster after the cursor.
func (b *Buffer) DeleteForward() {
	if b.HasSelection() {
		b.DeleteSelection()
		return
	}
	off := b.sel.Head
	if off >= b.Len() {
		return
	}
	b.Apply(TextEdit{Span: spantree.Span{Start: off, End: b.nextStop(off)}})
}

// DeleteSelection deletes the active selection, if any.
func (b *Buffer) DeleteSelection() {
	if !b.HasSelection() {
		return
	}
	b.Apply(TextEdit{Span: b.Range()})
}

func (b *Buffer) replaceRange(from, to int, text string) (caret int, applied AppliedEdit, changed bool) {
	if from > to {
		from, to = to, from
	}
	from, to = b.clamp(from), b.clamp(to)
	if from == to && text == "" {
		return b.sel.Head, AppliedEdit{}, false
	}

	deleted := b.src.Slice(from, to)
	if deleted == text {
		return b.sel.Head, AppliedEdit{}, false
	}

	cur := b.Text()
	start, end := b.src.ByteOffset(from), b.src.ByteOffset(to)
	b.setText(cur[:start] + text + cur[end:])

	caret = from + spantree.Len16(text)
	applied = AppliedEdit{
		RangeBefore: spantree.Span{Start: from, End: to},
		RangeAfter:  spantree.Span{Start: from, End: caret},
		InsertText:  text,
		DeletedText: deleted,
	}
	return caret, applied, true
}
