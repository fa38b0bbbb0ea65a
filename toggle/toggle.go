// Package toggle plans smart wrap/unwrap edits for formatting markers.
//
// Planning is pure: a Result describes the replacement and the selection to
// restore, and the caller applies it to its buffer as one transaction.
package toggle

import (
	"github.com/iw2rmb/smedit/locate"
	"github.com/iw2rmb/smedit/spantree"
)

// Markers are the opening and closing delimiters of a syntax.
type Markers struct {
	Before string
	After  string
}

// TextEdit replaces Span with Text. Offsets are UTF-16 code units.
type TextEdit struct {
	Span spantree.Span `json:"span"`
	Text string        `json:"text"`
}

// Selection is the anchor/head pair to restore after an edit.
type Selection struct {
	Anchor int `json:"anchor"`
	Head   int `json:"head"`
}

// Result is the outcome of a toggle action.
type Result struct {
	// Text is the full document after the edit.
	Text      string
	Edit      TextEdit
	Selection Selection
	// Unwrapped is true when an enclosing node was stripped.
	Unwrapped bool
	// Changed is false for no-ops; Text then equals the input.
	Changed bool
}

// Toggle unwraps the innermost target node enclosing sel, or wraps the
// selection in m when there is none. An empty selection is wrapped around
// def.
//
// Unwrapping uses the node's content span when the engine reports one.
// Otherwise it strips exactly len(Before) and len(After) units from the
// node's span, and only after checking the source really carries those
// markers at both ends; anything else is a no-op so a mismatched tree can
// never corrupt the document.
func Toggle(src string, nodes []*spantree.Node, sel locate.Selection, m Markers, target spantree.Type, def string) Result {
	doc := spantree.NewSource(src)
	sel = clampSelection(doc, sel)

	if n := locate.FindEnclosing(nodes, sel, target); n != nil {
		return unwrap(doc, n, sel, m)
	}
	return wrap(doc, sel, m, def)
}

func unwrap(doc spantree.Source, n *spantree.Node, sel locate.Selection, m Markers) Result {
	noop := Result{Text: doc.Text(), Selection: Selection{Anchor: sel.From, Head: sel.To}}

	s, e := n.Span.Start, n.Span.End
	if e > doc.Len() {
		return noop
	}
	lb, la := spantree.Len16(m.Before), spantree.Len16(m.After)

	var inner spantree.Span
	switch {
	case n.Content != nil && n.Content.Valid() && s <= n.Content.Start && n.Content.End <= e:
		inner = *n.Content
	case e-s >= lb+la &&
		doc.Slice(s, s+lb) == m.Before &&
		doc.Slice(e-la, e) == m.After:
		inner = spantree.Span{Start: s + lb, End: e - la}
	default:
		return noop
	}

	content := doc.SliceSpan(inner)
	clen := spantree.Len16(content)

	// Shift the selection by what was removed in front of it.
	shift := inner.Start - s
	anchor := maxInt(s, sel.From-shift)
	head := minInt(s+clen, sel.To-shift)
	if head < anchor {
		head = anchor
	}

	edit := TextEdit{Span: n.Span, Text: content}
	return Result{
		Text:      apply(doc, edit),
		Edit:      edit,
		Selection: Selection{Anchor: anchor, Head: head},
		Unwrapped: true,
		Changed:   true,
	}
}

func wrap(doc spantree.Source, sel locate.Selection, m Markers, def string) Result {
	text := doc.Slice(sel.From, sel.To)
	if text == "" {
		text = def
	}
	insert := m.Before + text + m.After
	if insert == "" {
		return Result{Text: doc.Text(), Selection: Selection{Anchor: sel.From, Head: sel.To}}
	}

	caret := sel.From + spantree.Len16(m.Before)
	if !sel.IsEmpty() {
		caret += spantree.Len16(text)
	}
	edit := TextEdit{Span: spantree.Span{Start: sel.From, End: sel.To}, Text: insert}
	return Result{
		Text:      apply(doc, edit),
		Edit:      edit,
		Selection: Selection{Anchor: caret, Head: caret},
		Changed:   true,
	}
}

// WrapSelection is the degraded mode used when no tree is available. It
// unwraps when the selected text itself starts with Before and ends with
// After, and wraps otherwise. Markers that merely surround the selection, or
// a Before that reappears inside the content, are not recognized.
func WrapSelection(src string, sel locate.Selection, m Markers) Result {
	doc := spantree.NewSource(src)
	sel = clampSelection(doc, sel)

	selected := doc.Slice(sel.From, sel.To)
	lb, la := spantree.Len16(m.Before), spantree.Len16(m.After)
	n := spantree.Len16(selected)

	if !sel.IsEmpty() && n >= lb+la &&
		doc.Slice(sel.From, sel.From+lb) == m.Before &&
		doc.Slice(sel.To-la, sel.To) == m.After {
		content := doc.Slice(sel.From+lb, sel.To-la)
		edit := TextEdit{Span: spantree.Span{Start: sel.From, End: sel.To}, Text: content}
		return Result{
			Text:      apply(doc, edit),
			Edit:      edit,
			Selection: Selection{Anchor: sel.From, Head: sel.From + spantree.Len16(content)},
			Unwrapped: true,
			Changed:   true,
		}
	}
	return wrap(doc, sel, m, "")
}

// Apply applies edit to src and returns the new text.
func Apply(src string, edit TextEdit) string {
	return apply(spantree.NewSource(src), edit)
}

func apply(doc spantree.Source, edit TextEdit) string {
	start := doc.ByteOffset(edit.Span.Start)
	end := doc.ByteOffset(edit.Span.End)
	if end < start {
		start, end = end, start
	}
	text := doc.Text()
	return text[:start] + edit.Text + text[end:]
}

func clampSelection(doc spantree.Source, sel locate.Selection) locate.Selection {
	sel = sel.Normalize()
	return locate.Selection{From: doc.Clamp(sel.From), To: doc.Clamp(sel.To)}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
