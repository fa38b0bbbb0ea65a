package buffer

import "testing"

const family = "\U0001F468\u200d\U0001F469\u200d\U0001F467"

func TestBuffer_InsertText_MultiLine(t *testing.T) {
	b := New("ac", Options{})
	b.SetCursor(1)
	b.InsertText("X\nY")

	if got, want := b.Text(), "aX\nYc"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.CursorPos(), (Pos{Row: 1, Col: 1}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}
}

func TestBuffer_InsertText_ReplacesSelection(t *testing.T) {
	b := New("hello", Options{})
	b.SetSelection(Selection{Anchor: 4, Head: 1})
	b.InsertText("i")

	if got, want := b.Text(), "hio"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), 2; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
	if b.HasSelection() {
		t.Fatalf("expected selection cleared")
	}
}

func TestBuffer_DeleteBackward_JoinsLinesAtSOL(t *testing.T) {
	b := New("ab\ncd", Options{})
	b.SetCursor(3)
	b.DeleteBackward()

	if got, want := b.Text(), "abcd"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), 2; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
}

func TestBuffer_DeleteForward_JoinsLinesAtEOL(t *testing.T) {
	b := New("ab\ncd", Options{})
	b.SetCursor(2)
	b.DeleteForward()

	if got, want := b.Text(), "abcd"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), 2; got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
}

func TestBuffer_Delete_SelectionFirstSemantics(t *testing.T) {
	b := New("abcdef", Options{})
	b.SetSelection(Selection{Anchor: 1, Head: 4})
	b.DeleteForward()
	if got, want := b.Text(), "aef"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}

	b.SetSelection(Selection{Anchor: 0, Head: 2})
	b.DeleteBackward()
	if got, want := b.Text(), "f"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}

func TestBuffer_Delete_NoOpsDoNotBumpVersion(t *testing.T) {
	b := New("ab", Options{})
	b.SetCursor(0)
	b.DeleteBackward()
	b.SetCursor(2)
	v := b.Version()
	b.DeleteForward()
	b.DeleteSelection()
	b.InsertText("")

	if got := b.Version(); got != v {
		t.Fatalf("version=%d, want %d", got, v)
	}
	if got, want := b.Text(), "ab"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}

func TestBuffer_DeleteBackward_RemovesWholeGraphemeCluster(t *testing.T) {
	b := New("a"+family+"e\u0301", Options{})
	b.SetCursor(b.Len())

	b.DeleteBackward()
	if got, want := b.Text(), "a"+family; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	b.DeleteBackward()
	if got, want := b.Text(), "a"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}

	b = New(family+"b", Options{})
	b.SetCursor(0)
	b.DeleteForward()
	if got, want := b.Text(), "b"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}
