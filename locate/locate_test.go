package locate

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/iw2rmb/smedit/spantree"
)

func sp(start, end int) spantree.Span { return spantree.Span{Start: start, End: end} }

// "# a **bold** z" with the Bold at [4,12).
func fixture() (header, bold *spantree.Node, roots []*spantree.Node) {
	bold = &spantree.Node{Type: spantree.Bold, Span: sp(4, 12), Children: []*spantree.Node{
		{Type: spantree.Text, Span: sp(6, 10)},
	}}
	header = &spantree.Node{Type: spantree.Header, Span: sp(0, 14), Level: 1, Children: []*spantree.Node{
		{Type: spantree.Text, Span: sp(2, 4)},
		bold,
		{Type: spantree.Text, Span: sp(12, 14)},
	}}
	return header, bold, []*spantree.Node{header, {Type: spantree.Italic, Span: sp(15, 20)}}
}

func TestFindEnclosing_InnermostWins(t *testing.T) {
	header, bold, roots := fixture()

	if got := FindEnclosing(roots, Selection{From: 7, To: 7}, spantree.Bold); got != bold {
		t.Fatalf("Bold lookup returned %+v", got)
	}
	if got := FindEnclosing(roots, Selection{From: 7, To: 7}, spantree.Header); got != header {
		t.Fatalf("Header lookup returned %+v", got)
	}
	if got := FindEnclosing(roots, Selection{From: 1, To: 1}, spantree.Bold); got != nil {
		t.Fatalf("expected nil outside bold, got %+v", got)
	}
}

func TestFindEnclosing_NestedSameType(t *testing.T) {
	inner := &spantree.Node{Type: spantree.Styled, Span: sp(5, 9)}
	outer := &spantree.Node{Type: spantree.Styled, Span: sp(0, 20), Children: []*spantree.Node{inner}}
	if got := FindEnclosing([]*spantree.Node{outer}, Selection{From: 6, To: 8}, spantree.Styled); got != inner {
		t.Fatalf("expected inner styled node, got %+v", got)
	}
	if got := FindEnclosing([]*spantree.Node{outer}, Selection{From: 3, To: 8}, spantree.Styled); got != outer {
		t.Fatalf("expected outer styled node, got %+v", got)
	}
}

func TestFindEnclosing_CaretOnBoundaries(t *testing.T) {
	_, bold, roots := fixture()
	cases := []struct {
		name string
		pos  int
		want *spantree.Node
	}{
		{name: "at-start", pos: 4, want: bold},
		{name: "at-end", pos: 12, want: bold},
		{name: "before", pos: 3, want: nil},
		{name: "after", pos: 13, want: nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FindEnclosing(roots, Selection{From: tc.pos, To: tc.pos}, spantree.Bold); got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestFindEnclosing_ReversedSelection(t *testing.T) {
	_, bold, roots := fixture()
	if got := FindEnclosing(roots, Selection{From: 11, To: 5}, spantree.Bold); got != bold {
		t.Fatalf("reversed selection should be normalized, got %+v", got)
	}
}

func TestFindEnclosing_ZeroWidthSpan(t *testing.T) {
	empty := &spantree.Node{Type: spantree.Null, Span: sp(3, 3)}
	if got := FindEnclosing([]*spantree.Node{empty}, Selection{From: 3, To: 3}, spantree.Null); got != empty {
		t.Fatalf("caret on zero-width span should match")
	}
	if got := FindEnclosing([]*spantree.Node{empty}, Selection{From: 3, To: 4}, spantree.Null); got != nil {
		t.Fatalf("range must not match zero-width span")
	}
}

func TestFindEnclosing_MalformedSiblingsFirstWins(t *testing.T) {
	a := &spantree.Node{Type: spantree.Bold, Span: sp(0, 10)}
	b := &spantree.Node{Type: spantree.Bold, Span: sp(2, 8)}
	if got := FindEnclosing([]*spantree.Node{a, b}, Selection{From: 4, To: 4}, spantree.Bold); got != a {
		t.Fatalf("first sibling in traversal order should win")
	}
}

func TestActiveTypes_AllDepths(t *testing.T) {
	_, _, roots := fixture()

	got := ActiveTypes(roots, Selection{From: 8, To: 8}).Sorted()
	if diff := cmp.Diff([]spantree.Type{spantree.Bold, spantree.Header}, got); diff != "" {
		t.Fatalf("active set mismatch (-want +got):\n%s", diff)
	}

	got = ActiveTypes(roots, Selection{From: 2, To: 3}).Sorted()
	if diff := cmp.Diff([]spantree.Type{spantree.Header}, got); diff != "" {
		t.Fatalf("active set mismatch (-want +got):\n%s", diff)
	}

	if got := ActiveTypes(roots, Selection{From: 30, To: 30}); len(got) != 0 {
		t.Fatalf("expected empty active set, got %v", got)
	}
}

func TestActiveTypes_SupersetOfFindEnclosing(t *testing.T) {
	_, _, roots := fixture()
	types := []spantree.Type{spantree.Header, spantree.Bold, spantree.Italic, spantree.Text}
	for pos := 0; pos <= 21; pos++ {
		sel := Selection{From: pos, To: pos}
		active := ActiveTypes(roots, sel)
		for _, typ := range types {
			n := FindEnclosing(roots, sel, typ)
			if n == nil || !spantree.IsHighlightable(n.Type) {
				continue
			}
			if !active.Has(n.Type) {
				t.Fatalf("pos=%d: active set %v misses %q", pos, active.Sorted(), n.Type)
			}
		}
	}
}

func TestPath_OuterToInner(t *testing.T) {
	header, bold, roots := fixture()
	got := Path(roots, Selection{From: 7, To: 8})
	if len(got) != 3 || got[0] != header || got[1] != bold || got[2].Type != spantree.Text {
		t.Fatalf("unexpected path: %+v", got)
	}
	if got := Path(roots, Selection{From: 99, To: 99}); len(got) != 0 {
		t.Fatalf("expected empty path, got %+v", got)
	}
}
