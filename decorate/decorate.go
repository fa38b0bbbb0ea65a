// Package decorate derives syntax-highlighting decorations from a span tree.
//
// Nested nodes yield overlapping decorations (a Bold inside a Header). They
// are layered by nesting depth: Flatten cuts them into non-overlapping runs
// whose tag stacks are ordered outer to inner, and the innermost tag is drawn
// on top.
package decorate

import (
	"sort"
	"strings"

	"github.com/iw2rmb/smedit/spantree"
)

// DefaultClassPrefix matches the class names the preview stylesheet uses.
const DefaultClassPrefix = "cm-sm-"

// Decoration marks one highlightable node. Depth is its nesting level in the
// tree, 0 for top-level nodes.
type Decoration struct {
	Span  spantree.Span
	Tag   spantree.Type
	Depth int
}

// Collect emits one decoration per highlightable node, sorted by Span.Start.
// Ties keep pre-order encounter order.
func Collect(nodes []*spantree.Node) []Decoration {
	var out []Decoration
	spantree.Walk(nodes, func(n *spantree.Node, depth int) bool {
		if spantree.IsHighlightable(n.Type) {
			out = append(out, Decoration{Span: n.Span, Tag: n.Type, Depth: depth})
		}
		return true
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Span.Start < out[j].Span.Start
	})
	return out
}

// Run is a maximal stretch of text covered by the same decoration stack.
type Run struct {
	Span spantree.Span
	// Tags is ordered outer to inner.
	Tags []spantree.Type
}

// Top returns the innermost tag.
func (r Run) Top() spantree.Type {
	if len(r.Tags) == 0 {
		return ""
	}
	return r.Tags[len(r.Tags)-1]
}

// Classes returns the run's tags as a space separated class list.
func (r Run) Classes(prefix string) string {
	parts := make([]string, len(r.Tags))
	for i, t := range r.Tags {
		parts[i] = ClassName(prefix, t)
	}
	return strings.Join(parts, " ")
}

// ClassName returns the CSS class for tag t, e.g. "cm-sm-Bold" under
// DefaultClassPrefix.
func ClassName(prefix string, t spantree.Type) string {
	return prefix + string(t)
}

// Flatten layers decorations into non-overlapping runs. Spans are clamped to
// [0, length]; empty spans vanish. Within a run, tags are sorted by depth and
// then by encounter order, so the deepest node ends up last. Runs with no
// tags are omitted.
func Flatten(decos []Decoration, length int) []Run {
	if length < 0 {
		length = 0
	}

	type layer struct {
		d   Decoration
		seq int
	}
	layers := make([]layer, 0, len(decos))
	cuts := []int{0, length}
	for i, d := range decos {
		start := clampInt(d.Span.Start, 0, length)
		end := clampInt(d.Span.End, 0, length)
		if start >= end {
			continue
		}
		d.Span = spantree.Span{Start: start, End: end}
		layers = append(layers, layer{d: d, seq: i})
		cuts = append(cuts, start, end)
	}
	if len(layers) == 0 {
		return nil
	}
	sort.SliceStable(layers, func(i, j int) bool {
		if layers[i].d.Depth != layers[j].d.Depth {
			return layers[i].d.Depth < layers[j].d.Depth
		}
		return layers[i].seq < layers[j].seq
	})

	sort.Ints(cuts)
	cuts = dedupInts(cuts)

	// Layers are opened and closed in position order; active holds the
	// indexes into layers of the ones covering the current run, kept sorted
	// so tags come out in layer order.
	byStart := make([]int, len(layers))
	byEnd := make([]int, len(layers))
	for i := range layers {
		byStart[i], byEnd[i] = i, i
	}
	sort.Slice(byStart, func(i, j int) bool {
		return layers[byStart[i]].d.Span.Start < layers[byStart[j]].d.Span.Start
	})
	sort.Slice(byEnd, func(i, j int) bool {
		return layers[byEnd[i]].d.Span.End < layers[byEnd[j]].d.Span.End
	})

	var out []Run
	var active []int
	si, ei := 0, 0
	for i := 0; i+1 < len(cuts); i++ {
		start, end := cuts[i], cuts[i+1]
		for ; ei < len(byEnd) && layers[byEnd[ei]].d.Span.End <= start; ei++ {
			k := sort.SearchInts(active, byEnd[ei])
			active = append(active[:k], active[k+1:]...)
		}
		for ; si < len(byStart) && layers[byStart[si]].d.Span.Start <= start; si++ {
			k := sort.SearchInts(active, byStart[si])
			active = append(active, 0)
			copy(active[k+1:], active[k:])
			active[k] = byStart[si]
		}
		if len(active) == 0 {
			continue
		}
		tags := make([]spantree.Type, len(active))
		for j, k := range active {
			tags[j] = layers[k].d.Tag
		}
		if n := len(out); n > 0 && out[n-1].Span.End == start && sameTags(out[n-1].Tags, tags) {
			out[n-1].Span.End = end
			continue
		}
		out = append(out, Run{Span: spantree.Span{Start: start, End: end}, Tags: tags})
	}
	return out
}

func sameTags(a, b []spantree.Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func dedupInts(xs []int) []int {
	if len(xs) == 0 {
		return xs
	}
	out := xs[:1]
	for _, x := range xs[1:] {
		if x != out[len(out)-1] {
			out = append(out, x)
		}
	}
	return out
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
