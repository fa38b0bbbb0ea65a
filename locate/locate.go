// Package locate answers "what encloses the selection" questions over a span
// tree: the innermost node of a given type for toggle editing, and the set of
// all enclosing types for toolbar state.
//
// Containment is inclusive at both ends, so a caret sitting right after a
// closing marker still counts as inside the node.
package locate

import (
	"sort"

	"github.com/iw2rmb/smedit/spantree"
)

// Selection is a caret (From == To) or a range in UTF-16 offsets.
type Selection struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Normalize swaps From and To when reversed.
func (s Selection) Normalize() Selection {
	if s.From > s.To {
		return Selection{From: s.To, To: s.From}
	}
	return s
}

// IsEmpty reports whether the selection is a caret.
func (s Selection) IsEmpty() bool { return s.From == s.To }

func (s Selection) contained(n *spantree.Node) bool {
	return n.Span.Contains(s.From, s.To)
}

// FindEnclosing returns the innermost node of type target whose span contains
// sel, or nil.
func FindEnclosing(nodes []*spantree.Node, sel Selection, target spantree.Type) *spantree.Node {
	sel = sel.Normalize()
	return spantree.Find(nodes, sel.contained, func(n *spantree.Node) bool {
		return n.Type == target
	})
}

// TypeSet is a set of node types.
type TypeSet map[spantree.Type]struct{}

func (s TypeSet) Add(t spantree.Type) { s[t] = struct{}{} }

func (s TypeSet) Has(t spantree.Type) bool {
	_, ok := s[t]
	return ok
}

// Sorted returns the members in lexical order.
func (s TypeSet) Sorted() []spantree.Type {
	out := make([]spantree.Type, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ActiveTypes returns the highlightable types of every node containing sel,
// at every depth.
func ActiveTypes(nodes []*spantree.Node, sel Selection) TypeSet {
	sel = sel.Normalize()
	set := TypeSet{}
	spantree.Walk(nodes, func(n *spantree.Node, _ int) bool {
		if !sel.contained(n) {
			return false
		}
		if spantree.IsHighlightable(n.Type) {
			set.Add(n.Type)
		}
		return true
	})
	return set
}

// Path returns the chain of nodes containing sel, outer to inner. At every
// level the first containing node wins.
func Path(nodes []*spantree.Node, sel Selection) []*spantree.Node {
	sel = sel.Normalize()
	var out []*spantree.Node
	seen := make(map[*spantree.Node]struct{})
	level := nodes
	for {
		var next *spantree.Node
		for _, n := range level {
			if _, dup := seen[n]; dup {
				continue
			}
			if n != nil && sel.contained(n) {
				next = n
				break
			}
		}
		if next == nil {
			return out
		}
		seen[next] = struct{}{}
		out = append(out, next)
		level = next.Kids()
	}
}
