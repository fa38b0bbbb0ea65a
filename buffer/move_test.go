package buffer

import "testing"

func TestBuffer_MoveGrapheme_BoundsAndLineCrossing(t *testing.T) {
	b := New("ab\n\u00e7d", Options{})

	b.SetCursor(0)
	b.Move(Move{Unit: MoveGrapheme, Dir: DirLeft})
	if got := b.Cursor(); got != 0 {
		t.Fatalf("cursor=%d, want 0", got)
	}

	b.Move(Move{Unit: MoveGrapheme, Dir: DirRight})
	if got := b.Cursor(); got != 1 {
		t.Fatalf("cursor=%d, want 1", got)
	}

	b.SetCursor(2)
	b.Move(Move{Unit: MoveGrapheme, Dir: DirRight})
	if got := b.CursorPos(); got != (Pos{Row: 1, Col: 0}) {
		t.Fatalf("cursor=%v, want (1,0)", got)
	}

	b.Move(Move{Unit: MoveGrapheme, Dir: DirLeft})
	if got := b.CursorPos(); got != (Pos{Row: 0, Col: 2}) {
		t.Fatalf("cursor=%v, want (0,2)", got)
	}

	b.SetCursor(b.Len())
	b.Move(Move{Unit: MoveGrapheme, Dir: DirRight})
	if got, want := b.Cursor(), b.Len(); got != want {
		t.Fatalf("cursor=%d, want %d", got, want)
	}
}

func TestBuffer_MoveLine_HomeEndAndVerticalClamp(t *testing.T) {
	b := New("hello\nw\nworld", Options{})

	b.SetCursor(3)
	b.Move(Move{Unit: MoveLine, Dir: DirEnd})
	if got := b.CursorPos(); got != (Pos{Row: 0, Col: 5}) {
		t.Fatalf("cursor=%v, want (0,5)", got)
	}

	b.Move(Move{Unit: MoveLine, Dir: DirHome})
	if got := b.CursorPos(); got != (Pos{Row: 0, Col: 0}) {
		t.Fatalf("cursor=%v, want (0,0)", got)
	}

	b.SetCursor(13)
	b.Move(Move{Unit: MoveLine, Dir: DirUp})
	if got := b.CursorPos(); got != (Pos{Row: 1, Col: 1}) {
		t.Fatalf("cursor=%v, want (1,1)", got)
	}

	b.Move(Move{Unit: MoveLine, Dir: DirDown})
	if got := b.CursorPos(); got != (Pos{Row: 2, Col: 1}) {
		t.Fatalf("cursor=%v, want (2,1)", got)
	}
}

func TestBuffer_MoveDoc_StartEnd(t *testing.T) {
	b := New("a\nbc", Options{})

	b.SetCursor(3)
	b.Move(Move{Unit: MoveDoc, Dir: DirHome})
	if got := b.Cursor(); got != 0 {
		t.Fatalf("cursor=%d, want 0", got)
	}
	b.Move(Move{Unit: MoveDoc, Dir: DirEnd})
	if got := b.Cursor(); got != 4 {
		t.Fatalf("cursor=%d, want 4", got)
	}
}

func TestBuffer_Move_ExtendSelectionAnchorStability(t *testing.T) {
	b := New("abcdef", Options{})
	b.SetCursor(2)

	b.Move(Move{Unit: MoveGrapheme, Dir: DirRight, Extend: true})
	b.Move(Move{Unit: MoveGrapheme, Dir: DirRight, Extend: true})
	if got, want := b.Selection(), (Selection{Anchor: 2, Head: 4}); got != want {
		t.Fatalf("selection=%v, want %v", got, want)
	}

	b.Move(Move{Unit: MoveLine, Dir: DirHome, Extend: true})
	if got, want := b.Selection(), (Selection{Anchor: 2, Head: 0}); got != want {
		t.Fatalf("selection=%v, want %v", got, want)
	}

	b.Move(Move{Unit: MoveGrapheme, Dir: DirRight})
	if b.HasSelection() {
		t.Fatalf("non-extending move should collapse the selection")
	}
}

func TestBuffer_Move_ExtendClearsWhenReturningToAnchor(t *testing.T) {
	b := New("abc", Options{})
	b.SetCursor(1)
	b.Move(Move{Unit: MoveGrapheme, Dir: DirRight, Extend: true})
	b.Move(Move{Unit: MoveGrapheme, Dir: DirLeft, Extend: true})
	if b.HasSelection() {
		t.Fatalf("expected empty selection, got %v", b.Selection())
	}
}

func TestBuffer_MoveWord_PortableSemantics(t *testing.T) {
	b := New("foo  bar baz", Options{})

	b.SetCursor(0)
	b.Move(Move{Unit: MoveWord, Dir: DirRight})
	if got := b.Cursor(); got != 3 {
		t.Fatalf("cursor=%d, want 3", got)
	}
	b.Move(Move{Unit: MoveWord, Dir: DirRight})
	if got := b.Cursor(); got != 8 {
		t.Fatalf("cursor=%d, want 8", got)
	}
	b.Move(Move{Unit: MoveWord, Dir: DirLeft})
	if got := b.Cursor(); got != 5 {
		t.Fatalf("cursor=%d, want 5", got)
	}
	b.Move(Move{Unit: MoveWord, Dir: DirLeft})
	if got := b.Cursor(); got != 0 {
		t.Fatalf("cursor=%d, want 0", got)
	}
}

func TestBuffer_MoveWord_UnicodeAndNewlineBoundary(t *testing.T) {
	b := New("h\u00e9llo w\u00f6rld\nnext", Options{})

	b.SetCursor(6)
	b.Move(Move{Unit: MoveWord, Dir: DirRight})
	if got := b.Cursor(); got != 11 {
		t.Fatalf("cursor=%d, want 11", got)
	}
	b.Move(Move{Unit: MoveWord, Dir: DirRight})
	if got := b.Cursor(); got != 11 {
		t.Fatalf("word move crossed the newline: %d", got)
	}

	b.SetCursor(12)
	b.Move(Move{Unit: MoveWord, Dir: DirLeft})
	if got := b.Cursor(); got != 12 {
		t.Fatalf("word move crossed the line start: %d", got)
	}
}

func TestBuffer_Move_Versioning_NoOpAndSelectionOnlyChanges(t *testing.T) {
	b := New("ab", Options{})
	v := b.Version()

	b.Move(Move{Unit: MoveGrapheme, Dir: DirLeft})
	if got := b.Version(); got != v {
		t.Fatalf("no-op move bumped version")
	}

	b.Move(Move{Unit: MoveGrapheme, Dir: DirRight, Extend: true})
	if got := b.Version(); got != v+1 {
		t.Fatalf("version=%d, want %d", got, v+1)
	}
}

func TestBuffer_MoveGrapheme_CombiningAndZWJ(t *testing.T) {
	text := "a" + "e\u0301" + family + "b"
	b := New(text, Options{})
	b.SetCursor(0)

	want := []int{1, 3, 3 + len16(family), 4 + len16(family)}
	for i, w := range want {
		b.Move(Move{Unit: MoveGrapheme, Dir: DirRight})
		if got := b.Cursor(); got != w {
			t.Fatalf("step %d: cursor=%d, want %d", i, got, w)
		}
	}
}

func len16(s string) int { return New(s, Options{}).Len() }
