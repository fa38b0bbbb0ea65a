package buffer

import (
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/iw2rmb/smedit/spantree"
)

// ChangeSource identifies what produced a change.
type ChangeSource uint8

const (
	ChangeSourceEdit ChangeSource = iota
	ChangeSourceUndo
	ChangeSourceRedo
)

// AppliedEdit describes one effective edit in a change transaction. Edits
// of one change apply in order, each against the result of the previous.
type AppliedEdit struct {
	RangeBefore spantree.Span
	RangeAfter  spantree.Span
	InsertText  string
	DeletedText string
}

// Change is a normalized, versioned mutation payload.
type Change struct {
	Source          ChangeSource
	VersionBefore   uint64
	VersionAfter    uint64
	SelectionBefore Selection
	SelectionAfter  Selection
	AppliedEdits    []AppliedEdit
}

type changeBuilder struct {
	source          ChangeSource
	versionBefore   uint64
	selectionBefore Selection
	appliedEdits    []AppliedEdit
}

// LastChange returns the most recent change to the text.
func (b *Buffer) LastChange() (Change, bool) {
	if !b.hasLastChange {
		return Change{}, false
	}
	return cloneChange(b.lastChange), true
}

func cloneChange(in Change) Change {
	out := in
	out.AppliedEdits = append([]AppliedEdit(nil), in.AppliedEdits...)
	return out
}

func (b *Buffer) beginChange(source ChangeSource) changeBuilder {
	return changeBuilder{
		source:          source,
		versionBefore:   b.version,
		selectionBefore: b.sel,
	}
}

func (cb *changeBuilder) addAppliedEdit(edit AppliedEdit) {
	cb.appliedEdits = append(cb.appliedEdits, edit)
}

func (b *Buffer) commitChange(cb changeBuilder) {
	if b.version == cb.versionBefore {
		return
	}
	b.lastChange = Change{
		Source:          cb.source,
		VersionBefore:   cb.versionBefore,
		VersionAfter:    b.version,
		SelectionBefore: cb.selectionBefore,
		SelectionAfter:  b.sel,
		AppliedEdits:    append([]AppliedEdit(nil), cb.appliedEdits...),
	}
	b.hasLastChange = true
}

// diffAppliedEdits describes the move from before to after as the minimal
// sequence of replacements found by diffmatchpatch.
func diffAppliedEdits(before, after string) []AppliedEdit {
	if before == after {
		return nil
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(before, after, false))

	var out []AppliedEdit
	var cur *AppliedEdit
	pos := 0
	flush := func() {
		if cur == nil {
			return
		}
		out = append(out, *cur)
		pos = cur.RangeAfter.End
		cur = nil
	}
	open := func() {
		if cur == nil {
			cur = &AppliedEdit{
				RangeBefore: spantree.Span{Start: pos, End: pos},
				RangeAfter:  spantree.Span{Start: pos, End: pos},
			}
		}
	}

	for _, d := range diffs {
		n := spantree.Len16(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			flush()
			pos += n
		case diffmatchpatch.DiffDelete:
			open()
			cur.DeletedText += d.Text
			cur.RangeBefore.End += n
		case diffmatchpatch.DiffInsert:
			open()
			cur.InsertText += d.Text
			cur.RangeAfter.End += n
		}
	}
	flush()
	return out
}
