package decorate

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/iw2rmb/smedit/spantree"
)

func sp(start, end int) spantree.Span { return spantree.Span{Start: start, End: end} }

// "# **hi** x\n" as the engine would report it.
func headerWithBold() []*spantree.Node {
	return []*spantree.Node{
		{
			Type: spantree.Header, Span: sp(0, 11), Level: 1,
			Children: []*spantree.Node{
				{Type: spantree.Bold, Span: sp(2, 8), Children: []*spantree.Node{
					{Type: spantree.Text, Span: sp(4, 6)},
				}},
				{Type: spantree.Text, Span: sp(8, 10)},
				{Type: spantree.SoftBreak, Span: sp(10, 11)},
			},
		},
	}
}

func TestCollect_EmitsNestedAndSkipsText(t *testing.T) {
	got := Collect(headerWithBold())
	want := []Decoration{
		{Span: sp(0, 11), Tag: spantree.Header, Depth: 0},
		{Span: sp(2, 8), Tag: spantree.Bold, Depth: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("decorations mismatch (-want +got):\n%s", diff)
	}
}

func TestCollect_SortedAndExcludesPlainTypes(t *testing.T) {
	// Deliberately out-of-order siblings, fold sub-trees and malformed nodes.
	roots := []*spantree.Node{
		{Type: spantree.Italic, Span: sp(20, 25)},
		{
			Type: spantree.Fold, Span: sp(0, 19),
			Summary: &spantree.Node{Type: spantree.Summary, Span: sp(9, 12), Children: []*spantree.Node{
				{Type: spantree.Underline, Span: sp(10, 12)},
			}},
			Details: &spantree.Node{Type: spantree.Details, Span: sp(13, 18), Children: []*spantree.Node{
				{Type: spantree.HardBreak, Span: sp(14, 15)},
				{Type: spantree.Code, Span: sp(15, 18)},
			}},
		},
		{Type: spantree.Bold, Span: sp(9, 2)},
		nil,
		{Type: spantree.Text, Span: sp(26, 30)},
	}

	got := Collect(roots)
	if !sort.SliceIsSorted(got, func(i, j int) bool { return got[i].Span.Start < got[j].Span.Start }) {
		t.Fatalf("decorations not sorted: %+v", got)
	}
	for _, d := range got {
		if !spantree.IsHighlightable(d.Tag) {
			t.Fatalf("unexpected decoration tag %q", d.Tag)
		}
	}
	var tags []spantree.Type
	for _, d := range got {
		tags = append(tags, d.Tag)
	}
	want := []spantree.Type{spantree.Fold, spantree.Summary, spantree.Underline, spantree.Details, spantree.Code, spantree.Italic}
	if diff := cmp.Diff(want, tags); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
}

func TestCollect_StableTies(t *testing.T) {
	roots := []*spantree.Node{
		{Type: spantree.Styled, Span: sp(0, 6), Children: []*spantree.Node{
			{Type: spantree.Bold, Span: sp(0, 6)},
		}},
	}
	got := Collect(roots)
	if len(got) != 2 || got[0].Tag != spantree.Styled || got[1].Tag != spantree.Bold {
		t.Fatalf("tie order not preserved: %+v", got)
	}
}

func TestCollect_EmptyInput(t *testing.T) {
	if got := Collect(nil); len(got) != 0 {
		t.Fatalf("expected no decorations, got %+v", got)
	}
}

func TestFlatten_LayersByDepth(t *testing.T) {
	runs := Flatten(Collect(headerWithBold()), 11)
	want := []Run{
		{Span: sp(0, 2), Tags: []spantree.Type{spantree.Header}},
		{Span: sp(2, 8), Tags: []spantree.Type{spantree.Header, spantree.Bold}},
		{Span: sp(8, 11), Tags: []spantree.Type{spantree.Header}},
	}
	if diff := cmp.Diff(want, runs); diff != "" {
		t.Fatalf("runs mismatch (-want +got):\n%s", diff)
	}
	if got := runs[1].Top(); got != spantree.Bold {
		t.Fatalf("top=%q, want Bold", got)
	}
	if got, want := runs[1].Classes(DefaultClassPrefix), "cm-sm-Header cm-sm-Bold"; got != want {
		t.Fatalf("classes=%q, want %q", got, want)
	}
}

func TestFlatten_ClampsAndOmitsGaps(t *testing.T) {
	decos := []Decoration{
		{Span: sp(-4, 2), Tag: spantree.Bold},
		{Span: sp(5, 50), Tag: spantree.Italic},
		{Span: sp(3, 3), Tag: spantree.Code},
	}
	want := []Run{
		{Span: sp(0, 2), Tags: []spantree.Type{spantree.Bold}},
		{Span: sp(5, 8), Tags: []spantree.Type{spantree.Italic}},
	}
	if diff := cmp.Diff(want, Flatten(decos, 8)); diff != "" {
		t.Fatalf("runs mismatch (-want +got):\n%s", diff)
	}
}

func TestFlatten_RunsDoNotOverlap(t *testing.T) {
	decos := []Decoration{
		{Span: sp(0, 10), Tag: spantree.BlockQuote, Depth: 0},
		{Span: sp(2, 6), Tag: spantree.Bold, Depth: 1},
		{Span: sp(4, 9), Tag: spantree.Italic, Depth: 1},
	}
	runs := Flatten(decos, 10)
	for i := 1; i < len(runs); i++ {
		if runs[i].Span.Start < runs[i-1].Span.End {
			t.Fatalf("runs overlap: %+v then %+v", runs[i-1], runs[i])
		}
	}
	// Same depth: encounter order decides, so Italic is drawn over Bold.
	for _, r := range runs {
		if r.Span.Start == 4 {
			if diff := cmp.Diff([]spantree.Type{spantree.BlockQuote, spantree.Bold, spantree.Italic}, r.Tags); diff != "" {
				t.Fatalf("stack mismatch (-want +got):\n%s", diff)
			}
		}
	}
}

// flattenNaive checks every layer against every cut.
func flattenNaive(decos []Decoration, length int) []Run {
	type layer struct {
		d   Decoration
		seq int
	}
	var layers []layer
	cuts := []int{0, length}
	for i, d := range decos {
		d.Span = sp(clampInt(d.Span.Start, 0, length), clampInt(d.Span.End, 0, length))
		if d.Span.Start >= d.Span.End {
			continue
		}
		layers = append(layers, layer{d: d, seq: i})
		cuts = append(cuts, d.Span.Start, d.Span.End)
	}
	sort.SliceStable(layers, func(i, j int) bool {
		if layers[i].d.Depth != layers[j].d.Depth {
			return layers[i].d.Depth < layers[j].d.Depth
		}
		return layers[i].seq < layers[j].seq
	})
	sort.Ints(cuts)
	cuts = dedupInts(cuts)

	var out []Run
	for i := 0; i+1 < len(cuts); i++ {
		var tags []spantree.Type
		for _, l := range layers {
			if l.d.Span.Start <= cuts[i] && cuts[i+1] <= l.d.Span.End {
				tags = append(tags, l.d.Tag)
			}
		}
		if len(tags) == 0 {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Span.End == cuts[i] && sameTags(out[n-1].Tags, tags) {
			out[n-1].Span.End = cuts[i+1]
			continue
		}
		out = append(out, Run{Span: sp(cuts[i], cuts[i+1]), Tags: tags})
	}
	return out
}

func TestFlatten_MatchesPerCutScan(t *testing.T) {
	tags := []spantree.Type{spantree.Header, spantree.Bold, spantree.Italic, spantree.Code}
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 200; round++ {
		length := 1 + rng.Intn(60)
		decos := make([]Decoration, rng.Intn(25))
		for i := range decos {
			start := rng.Intn(length+10) - 5
			decos[i] = Decoration{
				Span:  sp(start, start+rng.Intn(30)-3),
				Tag:   tags[rng.Intn(len(tags))],
				Depth: rng.Intn(4),
			}
		}
		if diff := cmp.Diff(flattenNaive(decos, length), Flatten(decos, length)); diff != "" {
			t.Fatalf("round %d: runs mismatch (-want +got):\n%s", round, diff)
		}
	}
}

func TestFlatten_LongDocument(t *testing.T) {
	decos, length := flatDoc(40000)
	runs := Flatten(decos, length)
	if got, want := len(runs), 3*40000; got != want {
		t.Fatalf("runs=%d, want %d", got, want)
	}
	if diff := cmp.Diff([]spantree.Type{spantree.Header, spantree.Bold}, runs[len(runs)-2].Tags); diff != "" {
		t.Fatalf("stack mismatch (-want +got):\n%s", diff)
	}
}
