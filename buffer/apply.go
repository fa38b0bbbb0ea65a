package buffer

// Apply applies a sequence of text edits in order. Each edit's span is
// interpreted against the buffer state at the time that edit is applied.
//
// - Spans are normalized and clamped into current document bounds.
// - Empty span + non-empty text inserts.
// - The caret moves to the end of the last effective edit.
// - All effective edits form one undo step.
//
// Apply reports whether the text changed.
func (b *Buffer) Apply(edits ...TextEdit) bool {
	return b.transact(edits, nil)
}

// ApplyWithSelection applies edits like Apply and then sets sel, clamped but
// not snapped, as one undo step. When no edit changes the text only the
// selection is updated.
func (b *Buffer) ApplyWithSelection(sel Selection, edits ...TextEdit) bool {
	return b.transact(edits, &sel)
}

func (b *Buffer) transact(edits []TextEdit, sel *Selection) bool {
	prev := b.snapshot()
	change := b.beginChange(ChangeSourceEdit)

	anyChanged := false
	caret := b.sel.Head
	for _, e := range edits {
		nextCaret, applied, changed := b.replaceRange(e.Span.Start, e.Span.End, e.Text)
		if !changed {
			continue
		}
		anyChanged = true
		caret = nextCaret
		change.addAppliedEdit(applied)
	}

	if !anyChanged {
		if sel != nil {
			if next := b.clampSelection(*sel); next != b.sel {
				b.sel = next
				b.version++
			}
		}
		return false
	}

	b.sel = Caret(caret)
	if sel != nil {
		b.sel = b.clampSelection(*sel)
	}
	b.version++
	b.textVersion++
	b.recordUndo(prev)
	b.commitChange(change)
	return true
}

func (b *Buffer) clampSelection(sel Selection) Selection {
	return Selection{Anchor: b.clamp(sel.Anchor), Head: b.clamp(sel.Head)}
}
