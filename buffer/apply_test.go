package buffer

import (
	"testing"

	"github.com/iw2rmb/smedit/spantree"
)

func span(start, end int) spantree.Span { return spantree.Span{Start: start, End: end} }

func TestBuffer_Apply_AppliesSequentiallyAgainstEvolvingState(t *testing.T) {
	b := New("hello", Options{})
	v := b.Version()

	b.Apply(
		TextEdit{Span: span(0, 0), Text: "X"},
		TextEdit{Span: span(1, 2), Text: ""},
	)

	if got, want := b.Text(), "Xello"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), 1; got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}
	if b.HasSelection() {
		t.Fatalf("expected selection cleared")
	}
	if got := b.Version(); got != v+1 {
		t.Fatalf("version=%d, want %d", got, v+1)
	}
}

func TestBuffer_Apply_ClampsOutOfBoundsRanges(t *testing.T) {
	b := New("ab\ncd", Options{})

	b.Apply(
		TextEdit{Span: span(999, 999), Text: "X"},
		TextEdit{Span: span(-9, -5), Text: "Y"},
	)

	if got, want := b.Text(), "Yab\ncdX"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), 1; got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}
}

func TestBuffer_Apply_ReversedSpanIsNormalized(t *testing.T) {
	b := New("abcdef", Options{})
	b.Apply(TextEdit{Span: span(4, 1), Text: "-"})
	if got, want := b.Text(), "a-ef"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}

func TestBuffer_Apply_UTF16Offsets(t *testing.T) {
	b := New("😀 hi", Options{})
	b.Apply(TextEdit{Span: span(3, 5), Text: "**hi**"})
	if got, want := b.Text(), "😀 **hi**"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), 9; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
}

func TestBuffer_Apply_NoOpDoesNotBumpVersion(t *testing.T) {
	b := New("abc", Options{})
	v := b.Version()

	if b.Apply(TextEdit{Span: span(1, 1), Text: ""}, TextEdit{Span: span(0, 1), Text: "a"}) {
		t.Fatalf("expected no-op")
	}
	if got := b.Version(); got != v {
		t.Fatalf("version=%d, want %d", got, v)
	}
	if b.CanUndo() {
		t.Fatalf("no-op must not record history")
	}
}

func TestBuffer_ApplyWithSelection(t *testing.T) {
	b := New("hello world", Options{})
	b.SetSelection(Selection{Anchor: 0, Head: 5})

	ok := b.ApplyWithSelection(Selection{Anchor: 7, Head: 7}, TextEdit{Span: span(0, 5), Text: "**hello**"})
	if !ok {
		t.Fatalf("expected change")
	}
	if got, want := b.Text(), "**hello** world"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Selection(), (Selection{Anchor: 7, Head: 7}); got != want {
		t.Fatalf("selection=%v, want %v", got, want)
	}

	b.Undo()
	if got, want := b.Selection(), (Selection{Anchor: 0, Head: 5}); got != want {
		t.Fatalf("selection after undo=%v, want %v", got, want)
	}

	v := b.Version()
	if b.ApplyWithSelection(Selection{Anchor: 1, Head: 99}) {
		t.Fatalf("expected no text change")
	}
	if got, want := b.Selection(), (Selection{Anchor: 1, Head: 11}); got != want {
		t.Fatalf("selection=%v, want %v", got, want)
	}
	if got := b.Version(); got != v+1 {
		t.Fatalf("version=%d, want %d", got, v+1)
	}
}
