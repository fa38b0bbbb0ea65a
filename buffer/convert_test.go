package buffer

import "testing"

var (
	strict  = ConvertPolicy{ClampMode: OffsetError}
	lenient = ConvertPolicy{ClampMode: OffsetClamp}
)

func TestBuffer_PosFromOffset(t *testing.T) {
	// Row 0: "a😀" (3 units), row 1: "", row 2: "bc".
	b := New("a😀\n\nbc", Options{})

	cases := []struct {
		off  int
		want Pos
	}{
		{off: 0, want: Pos{Row: 0, Col: 0}},
		{off: 1, want: Pos{Row: 0, Col: 1}},
		{off: 3, want: Pos{Row: 0, Col: 3}},
		{off: 4, want: Pos{Row: 1, Col: 0}},
		{off: 5, want: Pos{Row: 2, Col: 0}},
		{off: 7, want: Pos{Row: 2, Col: 2}},
	}
	for _, tc := range cases {
		got, ok := b.PosFromOffset(tc.off, strict)
		if !ok || got != tc.want {
			t.Fatalf("PosFromOffset(%d)=%v,%v, want %v,true", tc.off, got, ok, tc.want)
		}
		back, ok := b.OffsetFromPos(got, strict)
		if !ok || back != tc.off {
			t.Fatalf("OffsetFromPos(%v)=%d,%v, want %d,true", got, back, ok, tc.off)
		}
	}
}

func TestBuffer_PosFromOffset_RejectsInteriorAndOutOfRange(t *testing.T) {
	b := New("a😀", Options{})
	for _, off := range []int{-1, 2, 4} {
		if _, ok := b.PosFromOffset(off, strict); ok {
			t.Fatalf("PosFromOffset(%d) should fail", off)
		}
	}

	if got, _ := b.PosFromOffset(2, lenient); got != (Pos{Row: 0, Col: 1}) {
		t.Fatalf("lenient interior=%v, want (0,1)", got)
	}
	if got, _ := b.PosFromOffset(99, lenient); got != (Pos{Row: 0, Col: 3}) {
		t.Fatalf("lenient past end=%v, want (0,3)", got)
	}
	if _, ok := b.PosFromOffset(0, ConvertPolicy{ClampMode: 9}); ok {
		t.Fatalf("unknown clamp mode should fail")
	}
}

func TestBuffer_OffsetFromPos_Policies(t *testing.T) {
	b := New("ab\ncde", Options{})

	if _, ok := b.OffsetFromPos(Pos{Row: 0, Col: 3}, strict); ok {
		t.Fatalf("col past line end should fail")
	}
	if _, ok := b.OffsetFromPos(Pos{Row: 2, Col: 0}, strict); ok {
		t.Fatalf("row past end should fail")
	}

	cases := []struct {
		pos  Pos
		want int
	}{
		{pos: Pos{Row: 0, Col: 9}, want: 2},
		{pos: Pos{Row: 9, Col: 1}, want: 4},
		{pos: Pos{Row: -1, Col: -1}, want: 0},
	}
	for _, tc := range cases {
		got, ok := b.OffsetFromPos(tc.pos, lenient)
		if !ok || got != tc.want {
			t.Fatalf("OffsetFromPos(%v)=%d,%v, want %d", tc.pos, got, ok, tc.want)
		}
	}
}

func TestBuffer_Lines(t *testing.T) {
	b := New("one\n\nthree", Options{})
	if got, want := b.LineCount(), 3; got != want {
		t.Fatalf("lines=%d, want %d", got, want)
	}
	for i, want := range []string{"one", "", "three"} {
		if got := b.Line(i); got != want {
			t.Fatalf("line %d=%q, want %q", i, got, want)
		}
	}
	if got := b.Line(5); got != "" {
		t.Fatalf("line 5=%q", got)
	}

	b.SetCursor(7)
	if got, want := b.CursorPos(), (Pos{Row: 2, Col: 2}); got != want {
		t.Fatalf("cursor pos=%v, want %v", got, want)
	}

	if got := New("", Options{}).LineCount(); got != 1 {
		t.Fatalf("empty doc lines=%d, want 1", got)
	}
}
