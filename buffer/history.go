package buffer

type bufferSnapshot struct {
	text string
	sel  Selection
}

type historyState struct {
	undo []bufferSnapshot
	redo []bufferSnapshot
}

func (b *Buffer) snapshot() bufferSnapshot {
	return bufferSnapshot{
		text: b.Text(),
		sel:  b.sel,
	}
}

func (b *Buffer) restore(s bufferSnapshot) {
	b.setText(s.text)
	b.sel = Selection{Anchor: b.snap(s.sel.Anchor), Head: b.snap(s.sel.Head)}
}

func (b *Buffer) recordUndo(prev bufferSnapshot) {
	limit := b.opt.HistoryLimit
	if limit <= 0 {
		return
	}

	b.hist.undo = append(b.hist.undo, prev)
	if len(b.hist.undo) > limit {
		b.hist.undo = b.hist.undo[len(b.hist.undo)-limit:]
	}
	b.hist.redo = nil
}

func (b *Buffer) CanUndo() bool { return len(b.hist.undo) > 0 }

func (b *Buffer) CanRedo() bool { return len(b.hist.redo) > 0 }

func (b *Buffer) Undo() bool {
	if len(b.hist.undo) == 0 {
		return false
	}

	cur := b.snapshot()
	change := b.beginChange(ChangeSourceUndo)

	i := len(b.hist.undo) - 1
	prev := b.hist.undo[i]
	b.hist.undo = b.hist.undo[:i]
	b.hist.redo = append(b.hist.redo, cur)

	b.restore(prev)
	b.version++
	b.textVersion++
	for _, e := range diffAppliedEdits(cur.text, prev.text) {
		change.addAppliedEdit(e)
	}
	b.commitChange(change)
	return true
}

func (b *Buffer) Redo() bool {
	if len(b.hist.redo) == 0 {
		return false
	}

	cur := b.snapshot()
	change := b.beginChange(ChangeSourceRedo)

	i := len(b.hist.redo) - 1
	next := b.hist.redo[i]
	b.hist.redo = b.hist.redo[:i]

	limit := b.opt.HistoryLimit
	if limit > 0 {
		b.hist.undo = append(b.hist.undo, cur)
		if len(b.hist.undo) > limit {
			b.hist.undo = b.hist.undo[len(b.hist.undo)-limit:]
		}
	}

	b.restore(next)
	b.version++
	b.textVersion++
	for _, e := range diffAppliedEdits(cur.text, next.text) {
		change.addAppliedEdit(e)
	}
	b.commitChange(change)
	return true
}
