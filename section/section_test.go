package section

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/iw2rmb/smedit/spantree"
)

func header(level, start, end int) *spantree.Node {
	return &spantree.Node{Type: spantree.Header, Span: spantree.Span{Start: start, End: end}, Level: level}
}

func para(start, end int) *spantree.Node {
	return &spantree.Node{Type: spantree.Text, Span: spantree.Span{Start: start, End: end}}
}

// intro | # A | a | ## A1 | a1 | ### A1x | ## A2 | # B | b
func fixture() []*spantree.Node {
	return []*spantree.Node{
		para(0, 5),
		header(1, 6, 9),
		para(10, 11),
		header(2, 12, 17),
		para(18, 20),
		header(3, 21, 28),
		header(2, 29, 34),
		header(1, 35, 38),
		para(39, 40),
	}
}

func paths(t Tree) []string {
	var out []string
	t.Walk(func(s *Section, _ int) bool {
		out = append(out, s.Path)
		return true
	})
	return out
}

func TestBuild_Paths(t *testing.T) {
	tree := Build(fixture())
	if got, want := len(tree.Preamble), 1; got != want {
		t.Fatalf("preamble=%d, want %d", got, want)
	}
	want := []string{"1", "1.1", "1.1.1", "1.2", "2"}
	if diff := cmp.Diff(want, paths(tree)); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}

	a := tree.Sections[0]
	if got, want := len(a.Content), 1; got != want {
		t.Fatalf("A content=%d, want %d", got, want)
	}
	if got, want := a.Span(), (spantree.Span{Start: 6, End: 34}); got != want {
		t.Fatalf("A span=%v, want %v", got, want)
	}
}

func TestBuild_ShallowerAfterDeeper(t *testing.T) {
	// "## a" then "# b": the second header is not nested in the first.
	tree := Build([]*spantree.Node{header(2, 0, 4), header(1, 5, 8), header(3, 9, 14)})
	if diff := cmp.Diff([]string{"1", "2", "2.1"}, paths(tree)); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_SkipsMalformed(t *testing.T) {
	tree := Build([]*spantree.Node{nil, para(5, 1), header(1, 0, 3)})
	if len(tree.Preamble) != 0 || len(tree.Sections) != 1 {
		t.Fatalf("unexpected tree: %+v", tree)
	}
	if tree := Build(nil); len(tree.Sections) != 0 || len(tree.Preamble) != 0 {
		t.Fatalf("expected empty tree")
	}
}

func TestTree_At(t *testing.T) {
	tree := Build(fixture())
	cases := []struct {
		off  int
		want string
	}{
		{off: 2, want: ""},
		{off: 7, want: "1"},
		{off: 19, want: "1.1"},
		{off: 25, want: "1.1.1"},
		{off: 29, want: "1.2"},
		{off: 36, want: "2"},
		{off: 99, want: ""},
	}
	for _, tc := range cases {
		got := ""
		if s := tree.At(tc.off); s != nil {
			got = s.Path
		}
		if got != tc.want {
			t.Fatalf("At(%d)=%q, want %q", tc.off, got, tc.want)
		}
	}
}

func TestTree_FindAndOutline(t *testing.T) {
	tree := Build(fixture())
	if s := tree.Find("1.1.1"); s == nil || s.Level != 3 {
		t.Fatalf("Find(1.1.1)=%+v", s)
	}
	if s := tree.Find("3"); s != nil {
		t.Fatalf("Find(3)=%+v", s)
	}

	out := tree.Outline()
	if got, want := len(out), 5; got != want {
		t.Fatalf("outline=%d, want %d", got, want)
	}
	if got, want := out[2].Depth, 2; got != want {
		t.Fatalf("depth=%d, want %d", got, want)
	}
}
